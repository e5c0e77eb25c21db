package cfgm

import (
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// options 配置加载选项。
type options struct {
	appName             string // 应用名称，用于生成默认配置路径
	cmd                 *cli.Command
	configPaths         []string
	requiredFile        string // 显式指定的配置文件，必须存在
	baseDir             string // 相对路径的基准目录，空字符串表示当前工作目录
	envPrefix           string
	noTemplateExpansion bool // 是否禁用配置文件的环境变量展开（默认启用）
	logger              *zap.Logger
}

// Option 配置加载选项函数。
type Option func(*options)

// WithCommand 绑定 CLI 命令，读取显式设置的 flags 以覆盖配置（最高优先级）。
func WithCommand(cmd *cli.Command) Option {
	return func(o *options) {
		o.cmd = cmd
	}
}

// WithAppName 设置应用名称，用于生成默认搜索路径（见 [DefaultPaths]）。
func WithAppName(name string) Option {
	return func(o *options) {
		o.appName = name
	}
}

// WithConfigPaths 设置配置文件搜索路径。
//
// 按顺序查找，命中首个文件即停止；文件不存在时跳过。
func WithConfigPaths(paths ...string) Option {
	return func(o *options) {
		o.configPaths = paths
	}
}

// WithConfigFile 指定唯一的配置文件，文件不存在时 [Load] 返回错误。
//
// 空字符串表示不指定，回退到默认搜索路径。
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.requiredFile = path
	}
}

// WithBaseDir 设置相对配置路径的解析基准。
func WithBaseDir(path string) Option {
	return func(o *options) {
		o.baseDir = path
	}
}

// WithEnvPrefix 启用环境变量前缀解析。
//
// 环境变量命名规则：前缀 + 大写的配置 key，"." 和 "-" 转为 "_"。
//
// 示例 (前缀为 "PROGINFO_")：
//   - PROGINFO_SEARCH_ROOT → search.root
//   - PROGINFO_SEARCH_CONFIG_FILE → search.config-file
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithoutTemplateExpansion 禁用配置文件中 $VAR / ${VAR} 的展开。
func WithoutTemplateExpansion() Option {
	return func(o *options) {
		o.noTemplateExpansion = true
	}
}

// WithLogger 设置调试日志输出，默认不输出。
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
