// Package board 解析 boardconfig.yaml 中的板级配置。
//
// 文件格式：
//
//	boards:
//	  <board-name>:
//	    templateFile: <filename-or-pattern>
//	    <param-name>: <filename-or-pattern>
//	    <param-name>:
//	      file: <filename-or-pattern>
//	      filter: <substring>
package board

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"go.yaml.in/yaml/v3"
)

// DefaultFileName 默认配置文件名。
const DefaultFileName = "boardconfig.yaml"

// TemplateKey 保留参数名，指向要渲染的模板文件。
const TemplateKey = "templateFile"

var (
	// ErrMissingBoards 表示文档缺少顶层 boards 键。
	ErrMissingBoards = errors.New("missing top-level \"boards\" key")
	// ErrUnknownBoard 表示配置中不存在该板。
	ErrUnknownBoard = errors.New("unknown board")
)

// UnknownBoardError 记录未找到的板名及配置文件名。
type UnknownBoardError struct {
	Name   string
	Source string
}

func (e *UnknownBoardError) Error() string {
	return fmt.Sprintf("Board %s not found in %s", e.Name, e.Source)
}

// Is 使 errors.Is(err, ErrUnknownBoard) 成立。
func (e *UnknownBoardError) Is(target error) bool {
	return target == ErrUnknownBoard
}

// Config 解析后的配置文档。
type Config struct {
	Boards map[string]ParameterSet `yaml:"boards"`

	source string
}

// Load 读取并解析 path 指向的配置文件。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the file search
	if err != nil {
		return nil, fmt.Errorf("read board config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.source = filepath.Base(path)

	return cfg, nil
}

// Parse 解析 YAML 文档，只校验 boards 键是否存在。
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Boards == nil {
		return nil, ErrMissingBoards
	}
	cfg.source = DefaultFileName

	return &cfg, nil
}

// Board 返回 name 对应的参数集。
func (c *Config) Board(name string) (ParameterSet, error) {
	set, ok := c.Boards[name]
	if !ok {
		return ParameterSet{}, &UnknownBoardError{Name: name, Source: c.source}
	}

	return set, nil
}

// Names 返回排序后的板名。
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Boards))
	for name := range c.Boards {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}
