package codemod

import (
	"fmt"
	"slices"
)

// ValidatePatches 检查补丁是否越界以及互相重叠
func ValidatePatches(lineCount int, patches []Patch) error {
	for _, p := range patches {
		if p.StartLine < 1 || p.EndLine < p.StartLine-1 || p.EndLine > lineCount {
			return fmt.Errorf("补丁 %s 超出文件范围 (共 %d 行)", p, lineCount)
		}
	}
	for i := range patches {
		for j := i + 1; j < len(patches); j++ {
			if patches[i].Overlaps(patches[j]) {
				return fmt.Errorf("%w: %s 与 %s", ErrOverlappingPatches, patches[i], patches[j])
			}
		}
	}
	return nil
}

// ApplyPatches 将补丁应用到行序列，返回新的行序列，不修改输入
// 按起始行降序应用，保证前面的行号在应用过程中保持有效
func ApplyPatches(lines []string, patches []Patch) ([]string, error) {
	if err := ValidatePatches(len(lines), patches); err != nil {
		return nil, err
	}

	ordered := slices.Clone(patches)
	slices.SortStableFunc(ordered, func(a, b Patch) int {
		if a.StartLine != b.StartLine {
			return b.StartLine - a.StartLine
		}
		// 同一起始行：先替换，后插入，插入内容落在替换结果之前
		switch {
		case !a.IsInsertion() && b.IsInsertion():
			return -1
		case a.IsInsertion() && !b.IsInsertion():
			return 1
		}
		return 0
	})

	out := slices.Clone(lines)
	for _, p := range ordered {
		out = slices.Replace(out, p.StartLine-1, p.EndLine, p.NewLines...)
	}
	return out, nil
}
