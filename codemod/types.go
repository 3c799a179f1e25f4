package codemod

import (
	"errors"
	"fmt"
)

// ErrOverlappingPatches 同一文件的补丁行范围重叠
var ErrOverlappingPatches = errors.New("补丁范围重叠")

// Patch 表示对一个文件的一次行级修改
// [StartLine, EndLine] 为 1 起始的闭区间，替换为 NewLines。
// EndLine == StartLine-1 表示空区间：在 StartLine 之前插入 NewLines。
type Patch struct {
	StartLine int      `json:"start_line"`
	EndLine   int      `json:"end_line"`
	NewLines  []string `json:"new_lines"`
}

// InsertBefore 创建在第 line 行之前插入的补丁（line 可为总行数+1，表示追加到末尾）
func InsertBefore(line int, newLines ...string) Patch {
	return Patch{StartLine: line, EndLine: line - 1, NewLines: newLines}
}

// Replace 创建替换 [start, end] 行的补丁
func Replace(start, end int, newLines ...string) Patch {
	return Patch{StartLine: start, EndLine: end, NewLines: newLines}
}

// IsInsertion 是否为纯插入补丁
func (p Patch) IsInsertion() bool {
	return p.EndLine == p.StartLine-1
}

// Overlaps 检查两个补丁是否作用于重叠的位置
// 两个插入点相同的纯插入补丁同样视为重叠，因为结果顺序不确定
func (p Patch) Overlaps(o Patch) bool {
	if p.IsInsertion() && o.IsInsertion() {
		return p.StartLine == o.StartLine
	}
	if p.IsInsertion() {
		return p.StartLine > o.StartLine && p.StartLine <= o.EndLine
	}
	if o.IsInsertion() {
		return o.Overlaps(p)
	}
	return p.StartLine <= o.EndLine && o.StartLine <= p.EndLine
}

func (p Patch) String() string {
	if p.IsInsertion() {
		return fmt.Sprintf("insert@%d(+%d)", p.StartLine, len(p.NewLines))
	}
	return fmt.Sprintf("replace[%d,%d](+%d)", p.StartLine, p.EndLine, len(p.NewLines))
}

// FilePatches 单个文件的补丁建议结果
type FilePatches struct {
	Path      string  // 文件路径
	Suggestor string  // 产生补丁的建议器名称
	Patches   []Patch // 补丁列表
}
