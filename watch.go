package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/donutnomad/dartmod/codemod"
	"github.com/fsnotify/fsnotify"
)

// WatchOptions watch 命令选项
type WatchOptions struct {
	Suggestor string        // 执行的建议器
	Patterns  []string      // 监听的路径模式
	Verbose   bool          // 详细输出
	Debounce  time.Duration // 防抖动时间
}

// watchRunner 处理文件变动的核心逻辑
type watchRunner struct {
	opts      *WatchOptions
	registry  *codemod.Registry
	watcher   *fsnotify.Watcher
	collector *codemod.FileCollector
	ctx       context.Context // 用于响应退出信号

	// 防抖动相关
	mu           sync.Mutex
	pendingFiles map[string]*time.Timer // key: 文件路径
}

// runWatch 启动监听模式
func runWatch(suggestor string, args []string) {
	patterns := args
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	opts := &WatchOptions{
		Suggestor: suggestor,
		Patterns:  patterns,
		Verbose:   *verbose,
		Debounce:  time.Second,
	}

	if err := watch(opts); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

// watch 启动监听模式
func watch(opts *WatchOptions) error {
	registry := codemod.Global()
	sug, ok := registry.GetByName(opts.Suggestor)
	if !ok {
		return fmt.Errorf("未知的建议器 %q，可用: %v", opts.Suggestor, registry.Names())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听退出信号
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\n正在退出...")
		cancel()
	}()

	// 创建 watcher
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("创建文件监听器失败: %w", err)
	}
	defer watcher.Close()

	runner := &watchRunner{
		opts:         opts,
		registry:     registry,
		watcher:      watcher,
		collector:    codemod.NewFileCollector(codemod.WithAnnotationFilter(sug.Annotations()...)),
		ctx:          ctx,
		pendingFiles: make(map[string]*time.Timer),
	}

	// 清理函数：退出时停止所有待处理的定时器
	defer func() {
		runner.mu.Lock()
		for _, timer := range runner.pendingFiles {
			timer.Stop()
		}
		runner.mu.Unlock()
	}()

	// 收集并添加监听目录
	dirs, err := collectWatchDirs(opts.Patterns)
	if err != nil {
		return fmt.Errorf("收集监听目录失败: %w", err)
	}

	if len(dirs) == 0 {
		return fmt.Errorf("没有找到需要监听的目录")
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("添加监听目录失败 %s: %w", dir, err)
		}
		if opts.Verbose {
			fmt.Printf("监听目录: %s\n", dir)
		}
	}

	fmt.Printf("监听模式已启动 [%s]，监听 %d 个目录\n", opts.Suggestor, len(dirs))
	fmt.Println("按 Ctrl+C 退出")
	fmt.Println()

	return runner.watchLoop(ctx)
}

// watchLoop 事件处理循环
func (r *watchRunner) watchLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			r.handleEvent(event)

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			if r.opts.Verbose {
				fmt.Printf("监听错误: %v\n", err)
			}
		}
	}
}

// handleEvent 处理文件事件
func (r *watchRunner) handleEvent(event fsnotify.Event) {
	// 只关注 Write 和 Create 事件
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}

	filePath := event.Name
	if !r.collector.IsSourceFile(filePath) {
		return
	}

	if r.opts.Verbose {
		fmt.Printf("检测到文件变化: %s\n", filePath)
	}

	// 检查文件是否包含注解
	hasAnnotation, err := r.collector.QuickMatchFile(filePath)
	if err != nil {
		if r.opts.Verbose {
			fmt.Printf("检查注解失败 %s: %v\n", filePath, err)
		}
		return
	}

	if !hasAnnotation {
		if r.opts.Verbose {
			fmt.Printf("跳过文件（无注解）: %s\n", filePath)
		}
		return
	}

	r.scheduleRun(filePath)
}

// scheduleRun 防抖动调度
func (r *watchRunner) scheduleRun(filePath string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// 取消之前的 timer
	if timer, exists := r.pendingFiles[filePath]; exists {
		timer.Stop()
	}

	r.pendingFiles[filePath] = time.AfterFunc(r.opts.Debounce, func() {
		// 检查 context 是否已取消
		select {
		case <-r.ctx.Done():
			return
		default:
		}

		r.runSweep(filePath)

		r.mu.Lock()
		delete(r.pendingFiles, filePath)
		r.mu.Unlock()
	})
}

// runSweep 对变动的文件执行扫描
// 写回文件会再次触发事件，由于补丁幂等，第二次运行不会产生补丁
func (r *watchRunner) runSweep(filePath string) {
	opts := newRunOptions(r.opts.Suggestor, []string{filePath})
	opts.Registry = r.registry

	stats, err := codemod.RunWithOptionsAndStats(r.ctx, opts)
	if err != nil {
		fmt.Printf("处理失败: %v\n", err)
		return
	}

	if stats != nil && stats.ChangedCount > 0 {
		fmt.Printf("处理完成: %d 个补丁 (耗时: %v)\n", stats.PatchCount, stats.TotalDuration)
	} else if r.opts.Verbose {
		fmt.Printf("处理完成: 无需修改 %s\n", filePath)
	}
}

// collectWatchDirs 收集所有需要监听的目录
func collectWatchDirs(patterns []string) ([]string, error) {
	var dirs []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		recursive := strings.HasSuffix(pattern, "/...")
		baseDir := strings.TrimSuffix(pattern, "/...")
		if baseDir == "" {
			baseDir = "."
		}

		absDir, err := filepath.Abs(baseDir)
		if err != nil {
			return nil, err
		}

		info, err := os.Stat(absDir)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			// 单个文件：监听其所在目录
			absDir = filepath.Dir(absDir)
			recursive = false
		}

		if recursive {
			// 递归收集所有子目录
			err := filepath.WalkDir(absDir, func(path string, d os.DirEntry, err error) error {
				if err != nil {
					return err
				}

				if !d.IsDir() {
					return nil
				}

				// 与文件收集使用同一组跳过规则
				if path != absDir && codemod.IsSkippedDir(d.Name()) {
					return filepath.SkipDir
				}

				if !seen[path] {
					seen[path] = true
					dirs = append(dirs, path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		} else if !seen[absDir] {
			seen[absDir] = true
			dirs = append(dirs, absDir)
		}
	}

	return dirs, nil
}
