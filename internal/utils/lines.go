package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Source 表示按行拆分后的源文件内容
// Lines 不包含行尾换行符，写回时按原始风格还原
type Source struct {
	Lines           []string
	LineEnding      string // "\n" 或 "\r\n"
	TrailingNewline bool   // 文件是否以换行符结尾
}

// SplitLines 将文件内容拆分为行
// 自动识别 CRLF 行尾；空内容返回零行
func SplitLines(content string) *Source {
	src := &Source{LineEnding: "\n"}
	if content == "" {
		return src
	}

	if strings.Contains(content, "\r\n") {
		src.LineEnding = "\r\n"
	}

	if strings.HasSuffix(content, "\n") {
		src.TrailingNewline = true
		content = strings.TrimSuffix(content, "\n")
		content = strings.TrimSuffix(content, "\r")
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	src.Lines = lines
	return src
}

// Join 按原始行尾风格还原文件内容
func (s *Source) Join() string {
	return JoinLines(s.Lines, s.LineEnding, s.TrailingNewline)
}

// JoinLines 使用指定的行尾拼接行
func JoinLines(lines []string, ending string, trailingNewline bool) string {
	if len(lines) == 0 {
		return ""
	}
	if ending == "" {
		ending = "\n"
	}
	out := strings.Join(lines, ending)
	if trailingNewline {
		out += ending
	}
	return out
}

// WriteFileAtomic 先写入同目录临时文件再重命名，保留原文件权限
func WriteFileAtomic(path string, data []byte) error {
	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // 重命名成功后为空操作

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("写入临时文件失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
