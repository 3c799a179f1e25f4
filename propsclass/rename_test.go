package propsclass

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donutnomad/dartmod/codemod"
)

func TestRenameSuggestor(t *testing.T) {
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
class FooProps extends UiProps {
    String foo;
}`,
			want: []codemod.Patch{
				codemod.Replace(3, 4, "@Props()", "class _$FooProps extends UiProps {"),
			},
		},
		{
			name: "state",
			src: `library foo;

@State()
class FooState extends UiState {
    String foo;
}`,
			want: []codemod.Patch{
				codemod.Replace(3, 4, "@State()", "class _$FooState extends UiState {"),
			},
		},
		{
			name: "abstract props",
			src: `library foo;

@AbstractProps()
abstract class AbstractFooProps extends UiProps {
    String get foo;
}`,
			want: []codemod.Patch{
				codemod.Replace(3, 4, "@AbstractProps()", "abstract class _$AbstractFooProps extends UiProps {"),
			},
		},
		{
			name: "abstract state",
			src: `library foo;

@AbstractState()
abstract class AbstractFooState extends UiState {
    String get foo;
}`,
			want: []codemod.Patch{
				codemod.Replace(3, 4, "@AbstractState()", "abstract class _$AbstractFooState extends UiState {"),
			},
		},
		{
			name: "empty class body",
			src: `library foo;

@Props()
class FooProps extends UiProps {}`,
			want: []codemod.Patch{
				codemod.Replace(3, 4, "@Props()", "class _$FooProps extends UiProps {}"),
			},
		},
		{
			name: "extra annotation",
			src: `library foo;

@Props()
@Deprecated("3.0.0")
class FooProps extends UiProps {
    String foo;
}`,
			want: []codemod.Patch{
				codemod.Replace(3, 5, "@Props()", `@Deprecated("3.0.0")`, "class _$FooProps extends UiProps {"),
			},
		},
		{
			name: "annotation args",
			src: `library foo;

@Props(keyNamespace: "bar")
class FooProps extends UiProps {
    String foo;
}`,
			want: []codemod.Patch{
				codemod.Replace(3, 4, `@Props(keyNamespace: "bar")`, "class _$FooProps extends UiProps {"),
			},
		},
		{
			name: "private",
			src: `library foo;

@Props()
class _PrivateFooProps extends UiProps {
    String foo;
}`,
			want: []codemod.Patch{
				codemod.Replace(3, 4, "@Props()", "class _$PrivateFooProps extends UiProps {"),
			},
		},
		{
			name: "special chars",
			src: `library foo;

@Props()
class Foo_Props extends UiProps {
    String foo;
}`,
			want: []codemod.Patch{
				codemod.Replace(3, 4, "@Props()", "class _$Foo_Props extends UiProps {"),
			},
		},
		{
			name: "already renamed",
			src: `library foo;

@Props()
class _$FooProps extends UiProps {
    String foo;
}`,
		},
		{
			name: "generics not supported",
			src: `library foo;

@Props()
class FooProps<T extends Iterable, Foo<U>> extends UiProps {
    String prop1;
}`,
		},
		{
			name: "props and state in one file",
			src: `@Props()
class FooProps extends UiProps {}

@State()
class FooState extends UiState {}`,
			want: []codemod.Patch{
				codemod.Replace(1, 2, "@Props()", "class _$FooProps extends UiProps {}"),
				codemod.Replace(4, 5, "@State()", "class _$FooState extends UiState {}"),
			},
		},
	}

	suggestor := NewRenameSuggestor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patches, err := suggestor.Suggest("foo.dart", splitSource(tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, patches)
		})
	}
}

func TestRenameSuggestorUnbalanced(t *testing.T) {
	patches, err := NewRenameSuggestor().Suggest("foo.dart", splitSource("@Props()\nclass FooProps extends UiProps {"))
	assert.ErrorIs(t, err, ErrUnbalancedBraces)
	assert.Empty(t, patches)
}

func TestRenameSuggestorVerbose(t *testing.T) {
	var buf bytes.Buffer
	suggestor := NewRenameSuggestor(WithVerbose(&buf))

	src := `@Props()
class FooProps extends UiProps {}

@Props()
class BarProps<T> extends UiProps {}`
	patches, err := suggestor.Suggest("foo.dart", splitSource(src))
	require.NoError(t, err)
	assert.Len(t, patches, 1)

	out := buf.String()
	assert.Contains(t, out, "[props-rename] foo.dart:2 needs-rename")
	assert.Contains(t, out, "FooProps")
	assert.Contains(t, out, "foo.dart:4 跳过 @Props: "+string(SkipGeneric))
}

func TestRenameSuggestorMetadata(t *testing.T) {
	suggestor := NewRenameSuggestor()
	assert.Equal(t, RenameSuggestorName, suggestor.Name())
	assert.NotEmpty(t, suggestor.Description())
	assert.Equal(t, AnnotationNames(), suggestor.Annotations())

	var _ codemod.Suggestor = suggestor
}

// 类头前的跨行块注释属于被替换的注解块
func TestRenameSuggestorBlockCommentBeforeHeader(t *testing.T) {
	src := "@Props()\n/*\n * doc\n */\n/* x */ class FooProps extends UiProps {\n}"
	patches, err := NewRenameSuggestor().Suggest("foo.dart", splitSource(src))
	require.NoError(t, err)
	assert.Equal(t, []codemod.Patch{
		codemod.Replace(1, 5, "@Props()", "/*", " * doc", " */", "/* x */ class _$FooProps extends UiProps {"),
	}, patches)
}
