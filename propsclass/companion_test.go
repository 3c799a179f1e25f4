package propsclass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donutnomad/dartmod/codemod"
)

// companionLines 期望插入的公开类
func companionLines(header, metaType, meta string) []string {
	return []string{
		"",
		"// AF-3369 This will be removed once the transition to Dart 2 is complete.",
		"// ignore: mixin_of_non_class, undefined_class",
		header,
		"  // ignore: undefined_identifier, undefined_class, const_initialized_with_non_constant_value",
		"  static const " + metaType + " meta = " + meta + ";",
		"}",
	}
}

func TestCompanionSuggestor(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []codemod.Patch
	}{
		{
			name: "empty",
			src:  "",
		},
		{
			name: "no match",
			src: `library foo;

@PropsMixin()
class FooPropsMixin implements UiProps {
    String value;
}
`,
		},
		{
			name: "props",
			src: `library foo;

@Props()
class _$FooProps extends UiProps {
    String prop1;

    bool prop2;
}`,
			want: []codemod.Patch{
				codemod.InsertBefore(9, companionLines(
					"class FooProps extends _$FooProps with _$FooPropsAccessorsMixin {",
					"PropsMeta", "$metaForFooProps")...),
			},
		},
		{
			name: "abstract props",
			src: `library foo;

@AbstractProps()
abstract class _$FooProps extends UiProps {
    String prop1;

    bool prop2;
}`,
			want: []codemod.Patch{
				codemod.InsertBefore(9, companionLines(
					"abstract class FooProps extends _$FooProps with _$FooPropsAccessorsMixin {",
					"PropsMeta", "$metaForFooProps")...),
			},
		},
		{
			name: "state",
			src: `library foo;

@State()
class _$FooState extends UiState {
    String state1;

    bool state2;
}`,
			want: []codemod.Patch{
				codemod.InsertBefore(9, companionLines(
					"class FooState extends _$FooState with _$FooStateAccessorsMixin {",
					"StateMeta", "$metaForFooState")...),
			},
		},
		{
			name: "abstract state",
			src: `library foo;

@AbstractState()
abstract class _$FooState extends UiState {
    String state1;

    bool state2;
}`,
			want: []codemod.Patch{
				codemod.InsertBefore(9, companionLines(
					"abstract class FooState extends _$FooState with _$FooStateAccessorsMixin {",
					"StateMeta", "$metaForFooState")...),
			},
		},
		{
			name: "annotation with arg",
			src: `library foo;

@Props(keyNamespace: 'test')
class _$FooProps extends UiProps {
    String prop1;

    bool prop2;
}`,
			want: []codemod.Patch{
				codemod.InsertBefore(9, companionLines(
					"class FooProps extends _$FooProps with _$FooPropsAccessorsMixin {",
					"PropsMeta", "$metaForFooProps")...),
			},
		},
		{
			name: "multiple annotations",
			src: `library foo;

@Props()
@Deprecated('3.0.0')
class _$FooProps extends UiProps {
    String prop1;

    bool prop2;
}`,
			want: []codemod.Patch{
				codemod.InsertBefore(10, companionLines(
					"class FooProps extends _$FooProps with _$FooPropsAccessorsMixin {",
					"PropsMeta", "$metaForFooProps")...),
			},
		},
		{
			name: "hidden private class",
			src: `library foo;

@Props()
class _$_FooProps extends UiProps {
    String prop1;
}`,
			want: []codemod.Patch{
				codemod.InsertBefore(7, companionLines(
					"class _FooProps extends _$_FooProps with _$FooPropsAccessorsMixin {",
					"PropsMeta", "_$metaForFooProps")...),
			},
		},
		{
			name: "not yet renamed",
			src: `library foo;

@Props()
class FooProps extends UiProps {
    String prop1;
}`,
		},
		{
			name: "already added",
			src: `library foo;

@Props()
class _$FooProps extends UiProps {
    String prop1;

    bool prop2;
}

class FooProps extends _$FooProps with _$FooPropsAccessorsMixin {}`,
		},
		{
			name: "generics not supported",
			src: `library foo;

@Props()
class _$FooProps<T extends Iterable, Foo<U>> extends UiProps {
    String prop1;
}`,
		},
	}

	suggestor := NewCompanionSuggestor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patches, err := suggestor.Suggest("foo.dart", splitSource(tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, patches)
		})
	}
}

// 先补充公开类、再重命名的迁移顺序
func TestCompanionSuggestorUnrenamed(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []codemod.Patch
	}{
		{
			name: "props",
			src: `library foo;

@Props()
class FooProps extends UiProps {
    String prop1;

    bool prop2;
}`,
			want: []codemod.Patch{
				codemod.InsertBefore(9, companionLines(
					"class FooProps extends _$FooProps with _$FooPropsAccessorsMixin {",
					"PropsMeta", "$metaForFooProps")...),
			},
		},
		{
			name: "private class",
			src: `library foo;

@Props()
class _FooProps extends UiProps {
    String prop1;
}`,
			want: []codemod.Patch{
				codemod.InsertBefore(7, companionLines(
					"class _FooProps extends _$FooProps with _$FooPropsAccessorsMixin {",
					"PropsMeta", "_$metaForFooProps")...),
			},
		},
		{
			name: "wrapper already present",
			src: `@Props()
class FooProps extends UiProps {}

class FooProps extends _$FooProps with _$FooPropsAccessorsMixin {}`,
		},
	}

	suggestor := NewCompanionSuggestor(WithUnrenamed(true))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patches, err := suggestor.Suggest("foo.dart", splitSource(tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, patches)
		})
	}
}

func TestRenderCompanion(t *testing.T) {
	decls, err := Scan(splitSource("@AbstractState()\nabstract class _$FooState extends UiState {}"))
	require.NoError(t, err)
	require.Len(t, decls, 1)

	lines, err := RenderCompanion(decls[0])
	require.NoError(t, err)
	assert.Equal(t, companionLines(
		"abstract class FooState extends _$FooState with _$FooStateAccessorsMixin {",
		"StateMeta", "$metaForFooState"), lines)
}

// 先补充公开类再重命名，私有类保持私有；再次运行不再产生补丁
func TestMigrationIdempotent(t *testing.T) {
	src := `library foo;

@Props()
@Deprecated('3.0.0')
class FooProps extends UiProps {
  String prop1;
}

@AbstractState()
abstract class _AbstractFooState extends UiState {
  Map get m => {'}': 1};
}
`
	lines := splitSource(src)
	sweeps := []codemod.Suggestor{NewCompanionSuggestor(WithUnrenamed(true)), NewRenameSuggestor()}

	for _, s := range sweeps {
		patches, err := s.Suggest("foo.dart", lines)
		require.NoError(t, err)
		require.Len(t, patches, 2, s.Name())

		lines, err = codemod.ApplyPatches(lines, patches)
		require.NoError(t, err)
	}

	want := `library foo;

@Props()
@Deprecated('3.0.0')
class _$FooProps extends UiProps {
  String prop1;
}

// AF-3369 This will be removed once the transition to Dart 2 is complete.
// ignore: mixin_of_non_class, undefined_class
class FooProps extends _$FooProps with _$FooPropsAccessorsMixin {
  // ignore: undefined_identifier, undefined_class, const_initialized_with_non_constant_value
  static const PropsMeta meta = $metaForFooProps;
}

@AbstractState()
abstract class _$AbstractFooState extends UiState {
  Map get m => {'}': 1};
}

// AF-3369 This will be removed once the transition to Dart 2 is complete.
// ignore: mixin_of_non_class, undefined_class
abstract class _AbstractFooState extends _$AbstractFooState with _$AbstractFooStateAccessorsMixin {
  // ignore: undefined_identifier, undefined_class, const_initialized_with_non_constant_value
  static const StateMeta meta = _$metaForAbstractFooState;
}
`
	assert.Equal(t, splitSource(want), lines)

	// 再次运行任一扫描都不产生补丁
	for _, s := range append(sweeps, NewCompanionSuggestor()) {
		patches, err := s.Suggest("foo.dart", lines)
		require.NoError(t, err)
		assert.Empty(t, patches, s.Name())
	}
}
