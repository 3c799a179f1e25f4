package propsclass

import (
	"errors"
	"fmt"
	"iter"
	"regexp"
	"slices"
	"strings"

	"github.com/donutnomad/dartmod/codemod"
)

// ErrUnbalancedBraces 类体的花括号直到文件末尾都没有闭合
var ErrUnbalancedBraces = errors.New("类体花括号未闭合")

// ClassDeclaration 一次扫描得到的被注解类声明
// 行号均为 1 起始
type ClassDeclaration struct {
	Kind       AnnotationKind
	Annotation *codemod.Annotation // 触发迁移的注解

	// BlockLines 从第一行注解到类头的原始行
	// 包括额外注解（如 @Deprecated）以及夹在中间的注释、空行
	BlockLines []string

	Abstract   bool
	Identifier string
	BaseType   string
	Clause     string // extends 之后、{ 之前的 with/implements 子句

	AnnotationLine int // 第一行注解
	HeaderLine     int // 类头所在行
	CloseLine      int // 类体闭合 } 所在行

	identStart int // 类名在类头行中的起止列
	identEnd   int
}

// Names 返回由类名推导出的名称
func (d *ClassDeclaration) Names() Names {
	return NamesFor(d.Identifier)
}

// IsHidden 类名是否已带有生成类前缀
func (d *ClassDeclaration) IsHidden() bool {
	return IsHidden(d.Identifier)
}

// HeaderText 返回类头行原文
func (d *ClassDeclaration) HeaderText() string {
	return d.BlockLines[len(d.BlockLines)-1]
}

// RenamedHeader 返回把类名替换为 identifier 后的类头行，其余字符原样保留
func (d *ClassDeclaration) RenamedHeader(identifier string) string {
	header := d.HeaderText()
	return header[:d.identStart] + identifier + header[d.identEnd:]
}

// SkipReason 候选声明被放弃的原因
type SkipReason string

const (
	SkipNoHeader      SkipReason = "注解后没有类声明"
	SkipGeneric       SkipReason = "暂不支持泛型类"
	SkipWrongBase     SkipReason = "未继承注解要求的基类"
	SkipNoBrace       SkipReason = "类头与 { 不在同一行"
	SkipUnknownClause SkipReason = "无法识别的类头子句"
)

// Scanner 被注解类声明扫描器
// 只识别注解块、类头与类体范围，不做完整的 Dart 语法分析
type Scanner struct {
	onSkip func(line int, kind AnnotationKind, reason SkipReason)
}

// ScannerOption 扫描器选项
type ScannerOption func(*Scanner)

// WithSkipHandler 设置候选声明被放弃时的回调，line 为注解所在行
func WithSkipHandler(fn func(line int, kind AnnotationKind, reason SkipReason)) ScannerOption {
	return func(s *Scanner) {
		s.onSkip = fn
	}
}

func NewScanner(opts ...ScannerOption) *Scanner {
	s := &Scanner{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	// headerRegex 类头: [abstract] class Name extends Base <clause> {
	headerRegex = regexp.MustCompile(`^(abstract\s+)?class\s+([A-Za-z_$][\w$]*)\s+extends\s+([A-Za-z_$][\w$.]*)([^{]*)\{`)

	// classStartRegex 只匹配 [abstract] class Name，用于区分泛型与非类声明
	classStartRegex = regexp.MustCompile(`^(?:abstract\s+)?class\s+[A-Za-z_$][\w$]*(\s*<)?`)

	// clauseRegex 允许的附加子句
	clauseRegex = regexp.MustCompile(`^(?:(?:with|implements)\s+[^<]+)?$`)
)

// Declarations 惰性产出 lines 中的所有候选声明
// 序列可重复遍历；遇到文件级错误时产出 (nil, err) 后结束
func (s *Scanner) Declarations(lines []string) iter.Seq2[*ClassDeclaration, error] {
	return func(yield func(*ClassDeclaration, error) bool) {
		for i := 0; i < len(lines); {
			decl, next, err := s.scanAt(lines, i)
			if err != nil {
				yield(nil, err)
				return
			}
			if decl != nil && !yield(decl, nil) {
				return
			}
			i = next
		}
	}
}

// Scan 收集 lines 中的所有候选声明
// 出现文件级错误时不返回任何声明，避免对该文件做部分修改
func (s *Scanner) Scan(lines []string) ([]*ClassDeclaration, error) {
	var decls []*ClassDeclaration
	for decl, err := range s.Declarations(lines) {
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

// scanAt 尝试从第 i 行（0 起始）开始识别一个声明，返回下一次扫描的起始行
func (s *Scanner) scanAt(lines []string, i int) (*ClassDeclaration, int, error) {
	ann, ok := codemod.ParseAnnotationAt(lines, i)
	if !ok {
		return nil, i + 1, nil
	}
	next := ann.EndLine + 1

	kind, ok := KindByName(ann.Name)
	if !ok {
		return nil, next, nil
	}

	headerIdx, headerCol, ok := findHeader(lines, ann)
	if !ok {
		s.skip(i, kind, SkipNoHeader)
		return nil, next, nil
	}

	text := lines[headerIdx][headerCol:]
	start := classStartRegex.FindStringSubmatch(text)
	if start == nil {
		// 注解在非类声明上（如 mixin），不属于本迁移
		return nil, next, nil
	}
	if start[1] != "" {
		s.skip(i, kind, SkipGeneric)
		return nil, next, nil
	}

	m := headerRegex.FindStringSubmatchIndex(text)
	if m == nil {
		reason := SkipNoBrace
		if !strings.Contains(text, " extends ") {
			reason = SkipWrongBase
		}
		s.skip(i, kind, reason)
		return nil, next, nil
	}

	baseType := text[m[6]:m[7]]
	clause := strings.TrimSpace(text[m[8]:m[9]])
	switch {
	case strings.HasPrefix(clause, "<"):
		s.skip(i, kind, SkipGeneric)
		return nil, next, nil
	case baseType != kind.BaseType():
		s.skip(i, kind, SkipWrongBase)
		return nil, next, nil
	case !clauseRegex.MatchString(clause):
		s.skip(i, kind, SkipUnknownClause)
		return nil, next, nil
	}

	// 从类头的 { 开始按花括号深度查找类体结束位置
	braceCol := headerCol + m[1] - 1
	closeIdx, _, ok := codemod.MatchDelimiter(lines, headerIdx, braceCol, '{', '}')
	if !ok {
		return nil, 0, fmt.Errorf("第 %d 行 class %s: %w", headerIdx+1, text[m[4]:m[5]], ErrUnbalancedBraces)
	}

	decl := &ClassDeclaration{
		Kind:           kind,
		Annotation:     ann,
		BlockLines:     slices.Clone(lines[i : headerIdx+1]),
		Abstract:       m[2] >= 0,
		Identifier:     text[m[4]:m[5]],
		BaseType:       baseType,
		Clause:         clause,
		AnnotationLine: i + 1,
		HeaderLine:     headerIdx + 1,
		CloseLine:      closeIdx + 1,
		identStart:     headerCol + m[4],
		identEnd:       headerCol + m[5],
	}
	return decl, closeIdx + 1, nil
}

// findHeader 定位注解之后的类头，返回类头所在行及起始列
// 中间允许出现其他注解、注释（含跨行块注释）与空行
func findHeader(lines []string, ann *codemod.Annotation) (int, int, bool) {
	var lx codemod.Lexer
	line, col := ann.EndLine, firstCode(&lx, lines[ann.EndLine], ann.RestCol)

	for col < 0 {
		line++
		if line >= len(lines) {
			return 0, 0, false
		}
		col = firstCode(&lx, lines[line], 0)
		if col < 0 {
			continue
		}

		indent := len(lines[line]) - len(strings.TrimLeft(lines[line], " \t"))
		if col != indent {
			break
		}
		if extra, ok := codemod.ParseAnnotationAt(lines, line); ok {
			lx = codemod.Lexer{}
			line, col = extra.EndLine, firstCode(&lx, lines[extra.EndLine], extra.RestCol)
		}
	}

	if lines[line][col] == '@' {
		// 同一行上的多个注解不在支持范围内
		return 0, 0, false
	}
	return line, col, true
}

// firstCode 返回 from 列之后第一个不在注释或字符串中的非空白字符所在列，没有则返回 -1
func firstCode(lx *codemod.Lexer, line string, from int) int {
	col := lx.ScanLine(line[from:], 0, func(_ int, ch byte) bool {
		return ch == ' ' || ch == '\t'
	})
	if col < 0 {
		return -1
	}
	return from + col
}

func (s *Scanner) skip(line int, kind AnnotationKind, reason SkipReason) {
	if s.onSkip != nil {
		s.onSkip(line+1, kind, reason)
	}
}

// 默认扫描器
var defaultScanner = NewScanner()

// Declarations 使用默认扫描器惰性产出候选声明
func Declarations(lines []string) iter.Seq2[*ClassDeclaration, error] {
	return defaultScanner.Declarations(lines)
}

// Scan 使用默认扫描器收集候选声明
func Scan(lines []string) ([]*ClassDeclaration, error) {
	return defaultScanner.Scan(lines)
}
