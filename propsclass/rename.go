package propsclass

import (
	"slices"

	"github.com/donutnomad/dartmod/codemod"
)

// RenameSuggestorName 重命名建议器名称
const RenameSuggestorName = "props-rename"

// RenameSuggestor 将被注解的 props/state 类重命名为隐藏类名
//
//	@Props()                      @Props()
//	class FooProps extends …  ->  class _$FooProps extends …
type RenameSuggestor struct {
	*codemod.BaseSuggestor
	opts *options
}

func NewRenameSuggestor(opts ...Option) *RenameSuggestor {
	return &RenameSuggestor{
		BaseSuggestor: codemod.NewBaseSuggestor(
			RenameSuggestorName,
			"将 props/state 类重命名为 _$ 前缀的生成类",
			AnnotationNames(),
		),
		opts: newOptions(opts),
	}
}

// Suggest 为每个尚未重命名的声明生成一个补丁
func (s *RenameSuggestor) Suggest(path string, lines []string) ([]codemod.Patch, error) {
	decls, err := s.opts.scanner(s.Name(), path).Scan(lines)
	if err != nil {
		return nil, err
	}

	var patches []codemod.Patch
	for _, decl := range decls {
		outcome := Classify(decl, lines)
		s.opts.dump(s.Name(), path, decl, outcome)
		if outcome != NeedsRename {
			continue
		}
		patches = append(patches, RenamePatch(decl))
	}
	return patches, nil
}

// RenamePatch 替换从第一行注解到类头的整段内容，只改动类名
func RenamePatch(decl *ClassDeclaration) codemod.Patch {
	newLines := slices.Clone(decl.BlockLines)
	newLines[len(newLines)-1] = decl.RenamedHeader(decl.Names().Hidden)
	return codemod.Replace(decl.AnnotationLine, decl.HeaderLine, newLines...)
}
