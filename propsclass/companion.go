package propsclass

import (
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/donutnomad/dartmod/codemod"
)

// CompanionSuggestorName 补充公开类建议器名称
const CompanionSuggestorName = "props-accompanying-class"

// companionTemplate 公开类模板，第一行为空行
var companionTemplate = template.Must(template.New("companion").Funcs(sprig.TxtFuncMap()).Parse(`
// AF-3369 This will be removed once the transition to Dart 2 is complete.
// ignore: mixin_of_non_class, undefined_class
{{ ternary "abstract " "" .Abstract }}class {{ .Public }} extends {{ .Hidden }} with {{ .Mixin }} {
  // ignore: undefined_identifier, undefined_class, const_initialized_with_non_constant_value
  static const {{ .MetaType }} meta = {{ .Meta }};
}`))

// companionData 模板数据
type companionData struct {
	Abstract bool
	Public   string
	Hidden   string
	Mixin    string
	MetaType string
	Meta     string
}

// CompanionSuggestor 在隐藏类之后补充继承它的公开类
//
//	class FooProps extends _$FooProps with _$FooPropsAccessorsMixin {
//	  static const PropsMeta meta = $metaForFooProps;
//	}
type CompanionSuggestor struct {
	*codemod.BaseSuggestor
	opts *options
}

func NewCompanionSuggestor(opts ...Option) *CompanionSuggestor {
	return &CompanionSuggestor{
		BaseSuggestor: codemod.NewBaseSuggestor(
			CompanionSuggestorName,
			"为 _$ 生成类补充公开类",
			AnnotationNames(),
		),
		opts: newOptions(opts),
	}
}

// Suggest 为每个缺少公开类的声明生成一个插入补丁
func (s *CompanionSuggestor) Suggest(path string, lines []string) ([]codemod.Patch, error) {
	decls, err := s.opts.scanner(s.Name(), path).Scan(lines)
	if err != nil {
		return nil, err
	}

	var patches []codemod.Patch
	for _, decl := range decls {
		outcome := Classify(decl, lines)
		s.opts.dump(s.Name(), path, decl, outcome)

		switch {
		case outcome == NeedsAccompanyingClass:
		case outcome == NeedsRename && s.opts.unrenamed && !HasWrapper(decl, lines):
		default:
			continue
		}

		patch, err := CompanionPatch(decl)
		if err != nil {
			return nil, err
		}
		patches = append(patches, patch)
	}
	return patches, nil
}

// CompanionPatch 在类体闭合行之后插入公开类
func CompanionPatch(decl *ClassDeclaration) (codemod.Patch, error) {
	lines, err := RenderCompanion(decl)
	if err != nil {
		return codemod.Patch{}, err
	}
	return codemod.InsertBefore(decl.CloseLine+1, lines...), nil
}

// RenderCompanion 渲染公开类的各行
func RenderCompanion(decl *ClassDeclaration) ([]string, error) {
	names := decl.Names()
	data := companionData{
		Abstract: decl.Abstract,
		Public:   names.Public,
		Hidden:   names.Hidden,
		Mixin:    names.AccessorsMixin(),
		MetaType: decl.Kind.MetaType(),
		Meta:     names.MetaConstant(),
	}

	var sb strings.Builder
	if err := companionTemplate.Execute(&sb, data); err != nil {
		return nil, err
	}
	return strings.Split(sb.String(), "\n"), nil
}
