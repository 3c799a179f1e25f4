package propsclass

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// Outcome 声明的迁移状态
type Outcome int

const (
	// NeedsRename 类名尚未带有生成类前缀
	NeedsRename Outcome = iota + 1
	// NeedsAccompanyingClass 已重命名，但文件中没有公开类
	NeedsAccompanyingClass
	// AlreadyComplete 已重命名且公开类已存在
	AlreadyComplete
)

func (o Outcome) String() string {
	switch o {
	case NeedsRename:
		return "needs-rename"
	case NeedsAccompanyingClass:
		return "needs-accompanying-class"
	case AlreadyComplete:
		return "already-complete"
	default:
		return "unknown"
	}
}

// wrapperRegex 文件中任意 class A extends B ... 声明
var wrapperRegex = regexp.MustCompile(`^\s*(?:abstract\s+)?class\s+([A-Za-z_$][\w$]*)\s+extends\s+([A-Za-z_$][\w$]*)(.*)$`)

// withClauseRegex 提取 with 子句中的 mixin 列表
var withClauseRegex = regexp.MustCompile(`\bwith\s+(.*?)\s*(?:\bimplements\b|\{|$)`)

// Classify 判断声明所处的迁移阶段
// 同一份文件反复运行时，结果最终收敛到 AlreadyComplete
func Classify(decl *ClassDeclaration, lines []string) Outcome {
	if !decl.IsHidden() {
		return NeedsRename
	}
	if HasWrapper(decl, lines) {
		return AlreadyComplete
	}
	return NeedsAccompanyingClass
}

// HasWrapper 文件中是否已存在继承隐藏类的公开类
// 满足以下任一条件即视为存在：
//   - 类名为公开类名且继承隐藏类
//   - 继承隐藏类且 with 子句包含访问器 mixin
func HasWrapper(decl *ClassDeclaration, lines []string) bool {
	names := decl.Names()
	mixin := names.AccessorsMixin()

	return lo.SomeBy(lines, func(line string) bool {
		m := wrapperRegex.FindStringSubmatch(line)
		if m == nil || m[2] != names.Hidden {
			return false
		}
		if m[1] == names.Public {
			return true
		}
		with := withClauseRegex.FindStringSubmatch(m[3])
		if with == nil {
			return false
		}
		return lo.SomeBy(strings.Split(with[1], ","), func(item string) bool {
			return strings.TrimSpace(item) == mixin
		})
	})
}
