package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/donutnomad/dartmod/codemod"
	"github.com/donutnomad/dartmod/propsclass"
)

var (
	verbose   = flag.Bool("v", false, "详细输出")
	help      = flag.Bool("h", false, "显示帮助信息")
	dryRun    = flag.Bool("dry-run", false, "只计算补丁，不写回文件")
	showDiff  = flag.Bool("diff", false, "输出统一 diff")
	jsonOut   = flag.Bool("json", false, "以 JSON 输出补丁记录（隐含 -dry-run）")
	workers   = flag.Int("workers", 0, "并行处理文件的数量（默认 CPU 核数）")
	unrenamed = flag.Bool("unrenamed", false, "补充公开类时同时处理尚未重命名的类")
)

// migrateSweeps migrate 命令依次执行的扫描。
// 公开类必须在重命名之前生成，否则 _FooProps 重命名为 _$FooProps 后无法再还原私有的公开类名
var migrateSweeps = []string{
	propsclass.CompanionSuggestorName,
	propsclass.RenameSuggestorName,
}

// registerSuggestors 集中注册所有建议器
func registerSuggestors(registry *codemod.Registry, unrenamedMode bool) {
	var opts []propsclass.Option
	if *verbose {
		opts = append(opts, propsclass.WithVerbose(os.Stdout))
	}
	registry.MustRegister(propsclass.NewRenameSuggestor(opts...))
	registry.MustRegister(propsclass.NewCompanionSuggestor(append(opts, propsclass.WithUnrenamed(unrenamedMode))...))
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	// 检查子命令
	cmd := args[0]
	// migrate 先为尚未重命名的类补充公开类
	registerSuggestors(codemod.Global(), *unrenamed || cmd == "migrate")

	switch cmd {
	case "run":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "错误: run 需要指定建议器名称")
			os.Exit(1)
		}
		runSweeps([]string{args[1]}, args[2:])
	case "migrate":
		runSweeps(migrateSweeps, args[1:])
	case "watch":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "错误: watch 需要指定建议器名称")
			os.Exit(1)
		}
		runWatch(args[1], args[2:])
	case "list":
		fmt.Print(codemod.FormatHelpText(codemod.Global()))
	default:
		fmt.Fprintf(os.Stderr, "未知命令: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

// runSweeps 依次执行多次扫描，每次扫描独立收集文件
func runSweeps(sweeps []string, patterns []string) {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	ctx := context.Background()
	failed := false
	for _, sweep := range sweeps {
		opts := newRunOptions(sweep, patterns)
		stats, err := codemod.RunWithOptionsAndStats(ctx, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "错误: [%s] %v\n", sweep, err)
			failed = true
		}
		printStats(sweep, stats)
	}

	if failed {
		os.Exit(1)
	}
}

func newRunOptions(sweep string, patterns []string) *codemod.RunOptions {
	return &codemod.RunOptions{
		Registry:  codemod.Global(),
		Suggestor: sweep,
		Patterns:  patterns,
		Verbose:   *verbose,
		DryRun:    *dryRun,
		Diff:      *showDiff,
		JSON:      *jsonOut,
		Workers:   *workers,
	}
}

// printStats 输出统计信息，JSON 模式下写入 stderr
func printStats(sweep string, stats *codemod.RunStats) {
	if stats == nil || (stats.ChangedCount == 0 && !*verbose) {
		return
	}
	out := os.Stdout
	if *jsonOut {
		out = os.Stderr
	}
	fmt.Fprintf(out, "\n[%s] 统计: 候选 %d 个文件, 修改 %d 个文件, 共 %d 个补丁, 错误 %d 个\n",
		sweep, stats.FileCount, stats.ChangedCount, stats.PatchCount, stats.ErrorCount)
	fmt.Fprintf(out, "[%s] 耗时: 扫描 %v, 处理 %v, 总计 %v\n",
		sweep, stats.ScanDuration, stats.SuggestDuration, stats.TotalDuration)
}

func usage() {
	_, _ = fmt.Fprintf(os.Stderr, `dartmod - over_react props/state 类迁移工具

用法:
  dartmod [选项] run <建议器> [路径...]
  dartmod [选项] migrate [路径...]
  dartmod [选项] watch <建议器> [路径...]
  dartmod list

命令:
  run       执行一次扫描（sweep）
  migrate   依次执行 props-accompanying-class（含未重命名的类）与 props-rename
  watch     监听文件变动，自动执行扫描
  list      列出所有建议器

路径:
  支持目录模式，如:
    ./...          递归扫描当前目录及子目录（默认）
    ./lib/...      递归扫描指定目录
    ./lib/foo.dart 单个文件

选项:
`)
	flag.PrintDefaults()

	// 动态生成建议器帮助信息
	registry := codemod.Global()
	if len(registry.Names()) == 0 {
		registerSuggestors(registry, *unrenamed)
	}
	_, _ = fmt.Fprintf(os.Stderr, "\n建议器:\n")
	_, _ = fmt.Fprint(os.Stderr, codemod.FormatHelpText(registry))

	_, _ = fmt.Fprintf(os.Stderr, `
示例:
  dartmod migrate ./lib/...                    完整迁移 lib 目录
  dartmod -diff -dry-run run props-rename ./... 预览重命名
  dartmod -json run props-accompanying-class    输出 JSON 补丁记录
  dartmod watch props-rename ./lib/...         监听模式
`)
}
