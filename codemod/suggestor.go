package codemod

// Suggestor 是补丁建议器接口
// 每个迁移步骤（如 props 类重命名、补充公开类）实现此接口。
// Suggest 必须是纯函数：只根据输入行计算补丁，不做任何 I/O。
type Suggestor interface {
	// Name 返回建议器名称，命令行中用于选择一次扫描（sweep）
	Name() string

	// Description 返回一行说明，用于帮助信息
	Description() string

	// Annotations 返回触发该建议器的注解列表
	// 用于快速文本匹配，跳过不可能产生补丁的文件
	Annotations() []string

	// Suggest 对单个文件的行序列计算补丁
	// 返回错误表示该文件无法安全处理，此时该文件不应用任何补丁
	Suggest(path string, lines []string) ([]Patch, error)
}

// BaseSuggestor 提供基础实现，可嵌入
type BaseSuggestor struct {
	name        string
	description string
	annotations []string
}

func NewBaseSuggestor(name, description string, annotations []string) *BaseSuggestor {
	return &BaseSuggestor{
		name:        name,
		description: description,
		annotations: annotations,
	}
}

func (s *BaseSuggestor) Name() string {
	return s.name
}

func (s *BaseSuggestor) Description() string {
	return s.description
}

func (s *BaseSuggestor) Annotations() []string {
	return s.annotations
}
