package codemod

import "strings"

// Lexer 浅层逐行词法扫描器
// 只区分"代码字符"与"注释/字符串内容"，不理解任何语法。
// 用于括号、花括号配对计数；字符串插值、嵌套引号等场景不做完整处理。
type Lexer struct {
	inBlockComment bool
	tripleQuote    string // 未闭合的多行字符串引号（''' 或 """）
	rawTriple      bool
}

// ScanLine 扫描一行，对位于 from 列及之后、且不在注释/字符串中的每个字符调用 fn
// fn 返回 false 时停止扫描并返回该列；完整扫描返回 -1
// 跨行状态（块注释、多行字符串）保存在 Lexer 中
func (l *Lexer) ScanLine(line string, from int, fn func(col int, ch byte) bool) int {
	i := 0
	for i < len(line) {
		// 块注释
		if l.inBlockComment {
			end := strings.Index(line[i:], "*/")
			if end < 0 {
				return -1
			}
			i += end + 2
			l.inBlockComment = false
			continue
		}

		// 多行字符串
		if l.tripleQuote != "" {
			end := indexClosingQuote(line, i, l.tripleQuote, l.rawTriple)
			if end < 0 {
				return -1
			}
			i = end + len(l.tripleQuote)
			l.tripleQuote = ""
			l.rawTriple = false
			continue
		}

		ch := line[i]
		switch {
		case ch == '/' && i+1 < len(line) && line[i+1] == '/':
			return -1
		case ch == '/' && i+1 < len(line) && line[i+1] == '*':
			l.inBlockComment = true
			i += 2
			continue
		case ch == '\'' || ch == '"':
			raw := i > 0 && line[i-1] == 'r' && (i < 2 || !isIdentByte(line[i-2]))
			quote := string(ch)
			if strings.HasPrefix(line[i:], strings.Repeat(quote, 3)) {
				l.tripleQuote = strings.Repeat(quote, 3)
				l.rawTriple = raw
				i += 3
				continue
			}
			end := indexClosingQuote(line, i+1, quote, raw)
			if end < 0 {
				// 未闭合的单行字符串，忽略行内剩余部分
				return -1
			}
			i = end + 1
			continue
		}

		if i >= from && !fn(i, ch) {
			return i
		}
		i++
	}
	return -1
}

// indexClosingQuote 查找从 start 开始的闭合引号位置，非 raw 字符串处理反斜杠转义
func indexClosingQuote(line string, start int, quote string, raw bool) int {
	for i := start; i < len(line); i++ {
		if !raw && line[i] == '\\' {
			i++
			continue
		}
		if strings.HasPrefix(line[i:], quote) {
			return i
		}
	}
	return -1
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// MatchDelimiter 从 lines[startLine] 的 startCol 列开始，查找与第一个 open 配对的 close
// 返回闭合符所在的行和列；到文件末尾仍未闭合时 ok 为 false
func MatchDelimiter(lines []string, startLine, startCol int, open, close byte) (line, col int, ok bool) {
	var lx Lexer
	depth := 0
	opened := false
	for i := startLine; i < len(lines); i++ {
		from := 0
		if i == startLine {
			from = startCol
		}
		stop := lx.ScanLine(lines[i], from, func(c int, ch byte) bool {
			switch ch {
			case open:
				depth++
				opened = true
			case close:
				if opened {
					depth--
				}
			}
			return !(opened && depth == 0)
		})
		if stop >= 0 {
			return i, stop, true
		}
	}
	return 0, 0, false
}
