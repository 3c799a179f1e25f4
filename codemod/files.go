package codemod

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// FileCollector 收集需要处理的源文件，并对文件做快速文本预筛
// 第一阶段：按路径模式遍历目录
// 第二阶段：并行读取文件，只保留包含目标注解的文件
type FileCollector struct {
	workers     int
	extensions  []string
	annotations []string
}

// CollectorOption 收集器选项
type CollectorOption func(*FileCollector)

func WithWorkers(n int) CollectorOption {
	return func(c *FileCollector) {
		if n > 0 {
			c.workers = n
		}
	}
}

func WithAnnotationFilter(annotations ...string) CollectorOption {
	return func(c *FileCollector) {
		c.annotations = annotations
	}
}

func NewFileCollector(opts ...CollectorOption) *FileCollector {
	c := &FileCollector{
		workers:    defaultWorkers(),
		extensions: []string{".dart"},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// quickMatchRegex 快速匹配行首注解 @Name
var quickMatchRegex = regexp.MustCompile(`^\s*@([A-Za-z_$][\w$]*)`)

// skippedDirs 遍历时跳过的目录，隐藏目录（. 开头）同样跳过
var skippedDirs = []string{"build", "packages", "node_modules"}

// IsSkippedDir 目录名是否在遍历时跳过
func IsSkippedDir(name string) bool {
	return strings.HasPrefix(name, ".") || lo.Contains(skippedDirs, name)
}

// Collect 收集并预筛文件
// 支持: ./... ./lib/... ./lib /abs/path/... 以及单个文件路径
func (c *FileCollector) Collect(ctx context.Context, patterns ...string) ([]string, error) {
	files, err := c.collectFiles(patterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 || len(c.annotations) == 0 {
		return files, nil
	}
	return c.quickMatch(ctx, files)
}

// collectFiles 收集所有需要扫描的文件
func (c *FileCollector) collectFiles(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		recursive := strings.HasSuffix(pattern, "/...")
		if recursive {
			pattern = strings.TrimSuffix(pattern, "/...")
			if pattern == "" {
				pattern = "."
			}
		}

		absPath, err := filepath.Abs(pattern)
		if err != nil {
			return nil, err
		}

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if c.IsSourceFile(absPath) && !seen[absPath] {
				seen[absPath] = true
				files = append(files, absPath)
			}
			continue
		}

		err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if path == absPath {
					return nil
				}
				name := d.Name()
				if IsSkippedDir(name) {
					return filepath.SkipDir
				}
				if !recursive {
					return filepath.SkipDir
				}
				return nil
			}

			if c.IsSourceFile(path) && !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// IsSourceFile 判断是否为需要处理的源文件，生成文件（*.g.dart）除外
func (c *FileCollector) IsSourceFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasSuffix(base, ".g.dart") {
		return false
	}
	return lo.SomeBy(c.extensions, func(ext string) bool {
		return strings.HasSuffix(base, ext)
	})
}

// quickMatch 第二阶段：快速文本匹配
// 并行读取文件，检查是否包含目标注解
func (c *FileCollector) quickMatch(ctx context.Context, files []string) ([]string, error) {
	type matchResult struct {
		index   int
		matched bool
		err     error
	}

	resultCh := make(chan matchResult, len(files))
	indexCh := make(chan int, len(files))

	// 启动工作者
	var wg sync.WaitGroup
	for i := 0; i < c.workers; i++ {
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
					matched, err := c.QuickMatchFile(files[idx])
					resultCh <- matchResult{index: idx, matched: matched, err: err}
				}
			}
		}()
	}

	// 发送文件
	for i := range files {
		indexCh <- i
	}
	close(indexCh)

	// 等待完成
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	// 收集匹配的文件，保持原有顺序
	matched := make([]bool, len(files))
	for r := range resultCh {
		if r.err != nil {
			continue // 跳过无法读取的文件
		}
		matched[r.index] = r.matched
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return lo.Filter(files, func(_ string, i int) bool {
		return matched[i]
	}), nil
}

// QuickMatchFile 快速检查文件是否包含目标注解
// 只看行首的 @Name，不保证一定能产生补丁
func (c *FileCollector) QuickMatchFile(filePath string) (bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return false, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		match := quickMatchRegex.FindStringSubmatch(scanner.Text())
		if match == nil {
			continue
		}
		if len(c.annotations) == 0 || lo.Contains(c.annotations, match[1]) {
			return true, nil
		}
	}

	return false, scanner.Err()
}
