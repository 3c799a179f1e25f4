// Package propsclass 提供 over_react props/state 类迁移的匹配与补丁生成。
//
// # 概述
//
// 带有 @Props、@AbstractProps、@State、@AbstractState 注解的类需要拆分为
// 隐藏的生成类与继承它的公开类。迁移分两次扫描（sweep）完成：
//   - props-rename: 将类名改为 _$ 前缀的隐藏类名
//   - props-accompanying-class: 在隐藏类之后补充公开类
//
// 完整迁移先以 WithUnrenamed(true) 补充公开类，再重命名。
// _FooProps 重命名为 _$FooProps 之后，公开类名只能推导为 FooProps，私有性随之丢失。
//
// # 示例
//
// 迁移前：
//
//	@Props()
//	class FooProps extends UiProps {
//	  String prop1;
//	}
//
// 两次扫描之后：
//
//	@Props()
//	class _$FooProps extends UiProps {
//	  String prop1;
//	}
//
//	// AF-3369 This will be removed once the transition to Dart 2 is complete.
//	// ignore: mixin_of_non_class, undefined_class
//	class FooProps extends _$FooProps with _$FooPropsAccessorsMixin {
//	  // ignore: undefined_identifier, undefined_class, const_initialized_with_non_constant_value
//	  static const PropsMeta meta = $metaForFooProps;
//	}
//
// # 匹配范围
//
// 扫描器不是 Dart 解析器：只识别注解块、类头，并通过花括号深度计数确定类体范围。
// 字符串与注释中的花括号会被忽略，但字符串插值中嵌套的引号不做处理。
// 带泛型参数的类、类头跨行的类会被跳过，不生成任何补丁。
// 基类带导入前缀（如 extends over_react.UiProps）时视为基类不匹配（SkipWrongBase）而跳过。
// 类体花括号未闭合时整个文件报错且不生成补丁。
package propsclass
