package codemod

import (
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/samber/lo"
)

// PatchRecord 补丁的 JSON 记录，供外部补丁引擎消费
type PatchRecord struct {
	File      string   `json:"file"`
	Suggestor string   `json:"suggestor"`
	StartLine int      `json:"start_line"`
	EndLine   int      `json:"end_line"`
	NewLines  []string `json:"new_lines"`
}

// Records 将文件补丁展开为记录列表
func Records(results []*FilePatches) []PatchRecord {
	return lo.FlatMap(results, func(fp *FilePatches, _ int) []PatchRecord {
		return lo.Map(fp.Patches, func(p Patch, _ int) PatchRecord {
			return PatchRecord{
				File:      fp.Path,
				Suggestor: fp.Suggestor,
				StartLine: p.StartLine,
				EndLine:   p.EndLine,
				NewLines:  p.NewLines,
			}
		})
	})
}

// WriteJSONReport 以 JSON 数组输出所有补丁记录
func WriteJSONReport(w io.Writer, results []*FilePatches) error {
	data, err := sonic.ConfigStd.MarshalIndent(Records(results), "", "  ")
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// UnifiedDiff 生成修改前后的统一 diff 文本
func UnifiedDiff(path string, before, after []string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        withNewlines(before),
		B:        withNewlines(after),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}

func withNewlines(lines []string) []string {
	return lo.Map(lines, func(line string, _ int) string {
		return strings.TrimSuffix(line, "\n") + "\n"
	})
}
