package propsclass

import (
	"fmt"
	"io"
	"sync"

	"github.com/davecgh/go-spew/spew"
)

// Option 建议器选项
type Option func(*options)

type options struct {
	verbose   io.Writer
	unrenamed bool
}

// WithVerbose 输出被跳过的候选声明以及每个声明的判定结果
func WithVerbose(w io.Writer) Option {
	return func(o *options) {
		o.verbose = w
	}
}

// WithUnrenamed 补充公开类时同时处理尚未重命名的声明
// 用于先补充公开类、再重命名的迁移顺序
func WithUnrenamed(v bool) Option {
	return func(o *options) {
		o.unrenamed = v
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// verboseMu 多个文件并行处理时，避免日志交错
var verboseMu sync.Mutex

// logf 详细模式下输出一行日志
func (o *options) logf(format string, args ...any) {
	if o.verbose == nil {
		return
	}
	verboseMu.Lock()
	defer verboseMu.Unlock()
	fmt.Fprintf(o.verbose, format+"\n", args...)
}

// declSummary 详细模式下打印的声明摘要
type declSummary struct {
	Kind       string
	Identifier string
	Abstract   bool
	BaseType   string
	Lines      [3]int // 注解行、类头行、闭合行
	Args       string
}

// dump 详细模式下打印声明及其判定结果
func (o *options) dump(name, path string, decl *ClassDeclaration, outcome Outcome) {
	if o.verbose == nil {
		return
	}
	summary := declSummary{
		Kind:       decl.Kind.String(),
		Identifier: decl.Identifier,
		Abstract:   decl.Abstract,
		BaseType:   decl.BaseType,
		Lines:      [3]int{decl.AnnotationLine, decl.HeaderLine, decl.CloseLine},
		Args:       decl.Annotation.Args,
	}
	o.logf("[%s] %s:%d %s\n%s", name, path, decl.HeaderLine, outcome, spew.Sdump(summary))
}

// scanner 根据选项创建扫描器
func (o *options) scanner(name, path string) *Scanner {
	if o.verbose == nil {
		return defaultScanner
	}
	return NewScanner(WithSkipHandler(func(line int, kind AnnotationKind, reason SkipReason) {
		o.logf("[%s] %s:%d 跳过 @%s: %s", name, path, line, kind, reason)
	}))
}
