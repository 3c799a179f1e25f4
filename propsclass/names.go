package propsclass

import "strings"

// HiddenSigil 生成类名前缀
const HiddenSigil = "_$"

// Names 由类名推导出的一组名称
type Names struct {
	Hidden  string // 隐藏类名，如 _$FooProps
	Public  string // 公开类名，如 FooProps 或 _FooProps
	Bare    string // 去掉私有前缀的公开类名，如 FooProps
	Private bool   // 公开类是否为库私有（以 _ 开头）
}

// NamesFor 根据声明中的类名推导名称
//
//	FooProps    -> hidden _$FooProps, public FooProps
//	_FooProps   -> hidden _$FooProps, public _FooProps
//	_$FooProps  -> hidden _$FooProps, public FooProps
//	_$_FooProps -> hidden _$_FooProps, public _FooProps
func NamesFor(identifier string) Names {
	if rest, ok := strings.CutPrefix(identifier, HiddenSigil); ok {
		bare, private := strings.CutPrefix(rest, "_")
		return Names{Hidden: identifier, Public: rest, Bare: bare, Private: private}
	}

	bare, private := strings.CutPrefix(identifier, "_")
	return Names{Hidden: HiddenSigil + bare, Public: identifier, Bare: bare, Private: private}
}

// IsHidden 类名是否已带有生成类前缀
func IsHidden(identifier string) bool {
	return strings.HasPrefix(identifier, HiddenSigil)
}

// AccessorsMixin 生成的访问器 mixin 名称
func (n Names) AccessorsMixin() string {
	return HiddenSigil + n.Bare + "AccessorsMixin"
}

// MetaConstant 生成的 meta 常量引用
func (n Names) MetaConstant() string {
	if n.Private {
		return "_$metaFor" + n.Bare
	}
	return "$metaFor" + n.Bare
}
