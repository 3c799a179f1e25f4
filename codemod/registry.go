package codemod

import (
	"fmt"
	"slices"
	"sync"

	"golang.org/x/exp/maps"
)

// Registry 建议器注册表
// 管理名称到建议器的映射；多个建议器可以共享同一组注解
type Registry struct {
	mu sync.RWMutex

	// suggestors 建议器名 -> 建议器
	suggestors map[string]Suggestor
}

// NewRegistry 创建新的注册表
func NewRegistry() *Registry {
	return &Registry{
		suggestors: make(map[string]Suggestor),
	}
}

// Register 注册建议器
// 如果名称已被注册，返回错误
func (r *Registry) Register(s Suggestor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := s.Name()
	if name == "" {
		return fmt.Errorf("建议器名称不能为空")
	}
	if _, ok := r.suggestors[name]; ok {
		return fmt.Errorf("建议器 %q 已注册", name)
	}

	r.suggestors[name] = s
	return nil
}

// MustRegister 注册建议器，失败时 panic
func (r *Registry) MustRegister(s Suggestor) {
	if err := r.Register(s); err != nil {
		panic(err)
	}
}

// GetByName 根据名称获取建议器
func (r *Registry) GetByName(name string) (Suggestor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.suggestors[name]
	return s, ok
}

// Names 返回按字母排序的建议器名称
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := maps.Keys(r.suggestors)
	slices.Sort(names)
	return names
}

// Suggestors 返回按名称排序的所有建议器
func (r *Registry) Suggestors() []Suggestor {
	names := r.Names()

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Suggestor, 0, len(names))
	for _, name := range names {
		if s, ok := r.suggestors[name]; ok {
			result = append(result, s)
		}
	}
	return result
}

// 全局注册表
var globalRegistry = NewRegistry()

// Global 返回全局注册表
func Global() *Registry {
	return globalRegistry
}
