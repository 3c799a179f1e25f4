package codemod

import (
	"regexp"
	"strings"
)

// annotationRegex 匹配行首的 Dart 注解名 @Name
var annotationRegex = regexp.MustCompile(`^@([A-Za-z_$][\w$]*)`)

// Annotation 表示源文件中的一个 Dart 注解
// 参数文本原样保留，不做解释
type Annotation struct {
	Name      string // 注解名称，如 "Props"
	Args      string // 括号内原始文本（可跨行，以 \n 连接）
	HasArgs   bool   // 是否带括号
	Raw       string // 原始注解文本
	StartLine int    // 注解起始行（0 起始的下标）
	EndLine   int    // 注解结束行（0 起始的下标，参数跨行时大于 StartLine）
	Rest      string // 结束行中注解之后的剩余文本（已去除首尾空白）
	RestCol   int    // Rest 在结束行中的起始列
}

// ParseAnnotationAt 尝试将 lines[i] 解析为注解行
// 行首（去除缩进后）必须为 @Name；参数括号可跨多行
func ParseAnnotationAt(lines []string, i int) (*Annotation, bool) {
	if i < 0 || i >= len(lines) {
		return nil, false
	}
	line := lines[i]
	indent := len(line) - len(strings.TrimLeft(line, " \t"))
	trimmed := line[indent:]

	match := annotationRegex.FindStringSubmatch(trimmed)
	if match == nil {
		return nil, false
	}

	ann := &Annotation{
		Name:      match[1],
		StartLine: i,
		EndLine:   i,
	}

	// 名称后紧跟（允许空白）左括号时解析参数
	after := indent + len(match[0])
	pos := after
	for pos < len(line) && (line[pos] == ' ' || line[pos] == '\t') {
		pos++
	}

	restCol := after
	if pos < len(line) && line[pos] == '(' {
		endLine, endCol, ok := MatchDelimiter(lines, i, pos, '(', ')')
		if !ok {
			return nil, false
		}
		ann.HasArgs = true
		ann.EndLine = endLine
		ann.Args = sliceAcross(lines, i, pos+1, endLine, endCol)
		ann.Raw = sliceAcross(lines, i, indent, endLine, endCol+1)
		restCol = endCol + 1
	} else {
		ann.Raw = line[indent:after]
	}

	endText := lines[ann.EndLine]
	rest := endText[restCol:]
	ann.Rest = strings.TrimSpace(rest)
	ann.RestCol = restCol + (len(rest) - len(strings.TrimLeft(rest, " \t")))
	return ann, true
}

// sliceAcross 截取 (startLine,startCol) 到 (endLine,endCol) 之间的文本，不含结束列
func sliceAcross(lines []string, startLine, startCol, endLine, endCol int) string {
	if startLine == endLine {
		return lines[startLine][startCol:endCol]
	}
	parts := []string{lines[startLine][startCol:]}
	parts = append(parts, lines[startLine+1:endLine]...)
	parts = append(parts, lines[endLine][:endCol])
	return strings.Join(parts, "\n")
}
