package propsclass

import "github.com/samber/lo"

// AnnotationKind 触发迁移的注解类型
type AnnotationKind int

const (
	KindProps AnnotationKind = iota + 1
	KindAbstractProps
	KindState
	KindAbstractState
)

// kindSpec 注解类型对应的命名与继承约定
type kindSpec struct {
	annotation string // 注解名称
	baseType   string // 被注解类必须继承的基类
	metaType   string // 公开类中 meta 常量的类型
}

var kindSpecs = map[AnnotationKind]kindSpec{
	KindProps:         {annotation: "Props", baseType: "UiProps", metaType: "PropsMeta"},
	KindAbstractProps: {annotation: "AbstractProps", baseType: "UiProps", metaType: "PropsMeta"},
	KindState:         {annotation: "State", baseType: "UiState", metaType: "StateMeta"},
	KindAbstractState: {annotation: "AbstractState", baseType: "UiState", metaType: "StateMeta"},
}

// allKinds 固定顺序，保证注解列表输出稳定
var allKinds = []AnnotationKind{KindProps, KindAbstractProps, KindState, KindAbstractState}

func (k AnnotationKind) String() string {
	if spec, ok := kindSpecs[k]; ok {
		return spec.annotation
	}
	return "unknown"
}

// BaseType 返回该注解要求的基类
func (k AnnotationKind) BaseType() string {
	return kindSpecs[k].baseType
}

// MetaType 返回 PropsMeta 或 StateMeta
func (k AnnotationKind) MetaType() string {
	return kindSpecs[k].metaType
}

// KindByName 根据注解名查找类型
func KindByName(name string) (AnnotationKind, bool) {
	return lo.Find(allKinds, func(k AnnotationKind) bool {
		return kindSpecs[k].annotation == name
	})
}

// AnnotationNames 返回所有可识别的注解名
func AnnotationNames() []string {
	return lo.Map(allKinds, func(k AnnotationKind, _ int) string {
		return k.String()
	})
}
