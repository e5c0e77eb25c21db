// Package config 提供 proginfo 的运行配置。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - .proginfo.yaml / ~/.proginfo.yaml / /etc/proginfo/config.yaml，或 --config
//  3. 环境变量 - 前缀 PROGINFO_
//  4. CLI flags
package config

import (
	"github.com/lwmacct/261019-go-proginfo/internal/board"
	"github.com/lwmacct/261019-go-proginfo/internal/finder"
	"github.com/lwmacct/261019-go-proginfo/internal/logging"
)

// AppName 应用名称，用于默认配置路径。
const AppName = "proginfo"

// EnvPrefix 环境变量前缀。
const EnvPrefix = "PROGINFO_"

// Config 应用配置。
type Config struct {
	Search SearchConfig `json:"search" desc:"文件搜索配置"`
	Render RenderConfig `json:"render" desc:"模板渲染配置"`
	Log    LogConfig    `json:"log" desc:"日志配置"`
}

// SearchConfig 文件搜索配置。
type SearchConfig struct {
	Root       string `json:"root" desc:"递归搜索的根目录"`
	ConfigFile string `json:"config-file" desc:"板级配置文件名"`
}

// RenderConfig 模板渲染配置。
type RenderConfig struct {
	Strict bool `json:"strict" desc:"模板中非法的 $ 视为错误"`
}

// LogConfig 日志配置，日志始终写往 stderr。
type LogConfig struct {
	Level  string `json:"level" desc:"日志级别: debug, info, warn, error"`
	Format string `json:"format" desc:"日志格式: console, json"`
}

// DefaultConfig 返回默认配置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Search: SearchConfig{
			Root:       finder.DefaultRoot,
			ConfigFile: board.DefaultFileName,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: logging.FormatConsole,
		},
	}
}
