package codemod

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"
)

// FormatHelpText 为所有注册的建议器生成帮助文本
func FormatHelpText(registry *Registry) string {
	suggestors := registry.Suggestors()
	if len(suggestors) == 0 {
		return "  (暂无已注册的建议器)\n"
	}

	width := lo.Max(lo.Map(suggestors, func(s Suggestor, _ int) int {
		return runewidth.StringWidth(s.Name())
	}))

	var sb strings.Builder
	for _, s := range suggestors {
		anns := lo.Map(s.Annotations(), func(item string, _ int) string {
			return "@" + item
		})
		sb.WriteString(fmt.Sprintf("  %s  %s\n", runewidth.FillRight(s.Name(), width), s.Description()))
		if len(anns) > 0 {
			sb.WriteString(fmt.Sprintf("  %s  注解: %s\n", strings.Repeat(" ", width), strings.Join(anns, ", ")))
		}
	}
	return sb.String()
}
