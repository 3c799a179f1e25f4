package codemod

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/donutnomad/dartmod/internal/utils"
)

// RunOptions 运行选项
type RunOptions struct {
	Registry  *Registry
	Suggestor string   // 本次扫描使用的建议器名称
	Patterns  []string // 路径模式
	Verbose   bool
	DryRun    bool // 只计算补丁，不写回文件
	Diff      bool // 输出统一 diff
	JSON      bool // 以 JSON 输出补丁记录（隐含 DryRun）
	Workers   int  // 并行处理文件的工作者数量，<=0 时使用 CPU 核数

	// Stdout 结果输出，默认 os.Stdout；JSON 模式下提示信息写入 Stderr
	Stdout io.Writer
	Stderr io.Writer
}

// RunStats 运行统计信息
type RunStats struct {
	ScanDuration    time.Duration // 文件收集耗时
	SuggestDuration time.Duration // 计算并应用补丁耗时
	TotalDuration   time.Duration // 总耗时
	FileCount       int           // 预筛后的候选文件数量
	ChangedCount    int           // 产生补丁的文件数量
	PatchCount      int           // 补丁总数
	ErrorCount      int           // 出错的文件数量

	// Results 每个产生补丁的文件的结果，按文件收集顺序排列
	Results []*FilePatches
}

// fileOutcome 单个文件的处理结果
type fileOutcome struct {
	patches *FilePatches
	diff    string
	err     error
}

func defaultWorkers() int {
	return runtime.NumCPU()
}

// RunWithOptionsAndStats 带选项运行并返回统计信息
// 1. 收集候选文件（快速匹配建议器的注解）
// 2. 并行对每个文件计算补丁并应用
// 3. 汇总输出 diff / JSON / 统计信息
// 单个文件失败不影响其他文件，所有错误在最后汇总返回
func RunWithOptionsAndStats(ctx context.Context, opts *RunOptions) (*RunStats, error) {
	totalStart := time.Now()
	stats := &RunStats{}

	registry := opts.Registry
	if registry == nil {
		registry = globalRegistry
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	// JSON 模式下 stdout 只输出 JSON
	info := stdout
	if opts.JSON {
		info = stderr
	}
	dryRun := opts.DryRun || opts.JSON

	suggestor, ok := registry.GetByName(opts.Suggestor)
	if !ok {
		return nil, fmt.Errorf("未知的建议器 %q，可用: %v", opts.Suggestor, registry.Names())
	}

	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers()
	}

	// 收集文件
	scanStart := time.Now()
	collector := NewFileCollector(
		WithWorkers(workers),
		WithAnnotationFilter(suggestor.Annotations()...),
	)
	files, err := collector.Collect(ctx, patterns...)
	if err != nil {
		return nil, fmt.Errorf("收集文件失败: %w", err)
	}
	stats.ScanDuration = time.Since(scanStart)
	stats.FileCount = len(files)

	if opts.Verbose {
		fmt.Fprintf(info, "[%s] 找到 %d 个候选文件 (耗时: %v)\n", suggestor.Name(), len(files), stats.ScanDuration)
	}

	suggestStart := time.Now()
	outcomes := make([]fileOutcome, len(files))

	indexCh := make(chan int, len(files))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case idx, ok := <-indexCh:
					if !ok {
						return
					}
					outcomes[idx] = processFile(files[idx], suggestor, dryRun, opts.Diff)
				}
			}
		}()
	}
	for i := range files {
		indexCh <- i
	}
	close(indexCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return stats, err
	}

	// 按文件顺序汇总
	var allErrors []error
	for _, out := range outcomes {
		if out.err != nil {
			allErrors = append(allErrors, out.err)
			continue
		}
		if out.patches == nil {
			continue
		}

		stats.ChangedCount++
		stats.PatchCount += len(out.patches.Patches)
		stats.Results = append(stats.Results, out.patches)

		if out.diff != "" {
			fmt.Fprint(stdout, out.diff)
		}
		switch {
		case opts.JSON:
		case dryRun:
			fmt.Fprintf(info, "待修改文件: %s (%d 个补丁)\n", out.patches.Path, len(out.patches.Patches))
		default:
			fmt.Fprintf(info, "修改文件: %s (%d 个补丁)\n", out.patches.Path, len(out.patches.Patches))
		}
	}

	if opts.JSON {
		if err := WriteJSONReport(stdout, stats.Results); err != nil {
			allErrors = append(allErrors, fmt.Errorf("输出 JSON 失败: %w", err))
		}
	}

	stats.ErrorCount = len(allErrors)
	stats.SuggestDuration = time.Since(suggestStart)
	stats.TotalDuration = time.Since(totalStart)

	if len(allErrors) > 0 {
		for _, e := range allErrors {
			fmt.Fprintf(stderr, "错误: %v\n", e)
		}
		return stats, fmt.Errorf("处理过程中出现 %d 个错误", len(allErrors))
	}

	return stats, nil
}

// processFile 读取单个文件，计算补丁并（非 dry-run 时）写回
func processFile(path string, suggestor Suggestor, dryRun, withDiff bool) fileOutcome {
	content, err := os.ReadFile(path)
	if err != nil {
		return fileOutcome{err: fmt.Errorf("读取文件 %s 失败: %w", path, err)}
	}

	src := utils.SplitLines(string(content))
	patches, err := suggestor.Suggest(path, src.Lines)
	if err != nil {
		return fileOutcome{err: fmt.Errorf("%s: %w", path, err)}
	}
	if len(patches) == 0 {
		return fileOutcome{}
	}

	updated, err := ApplyPatches(src.Lines, patches)
	if err != nil {
		return fileOutcome{err: fmt.Errorf("%s: %w", path, err)}
	}

	out := fileOutcome{
		patches: &FilePatches{
			Path:      path,
			Suggestor: suggestor.Name(),
			Patches:   patches,
		},
	}

	if withDiff {
		diff, err := UnifiedDiff(path, src.Lines, updated)
		if err != nil {
			return fileOutcome{err: fmt.Errorf("生成 diff 失败 %s: %w", path, err)}
		}
		out.diff = diff
	}

	if !dryRun {
		newSrc := &utils.Source{
			Lines:           updated,
			LineEnding:      src.LineEnding,
			TrailingNewline: src.TrailingNewline,
		}
		if err := utils.WriteFileAtomic(path, []byte(newSrc.Join())); err != nil {
			return fileOutcome{err: fmt.Errorf("写入文件 %s 失败: %w", path, err)}
		}
	}

	return out
}
