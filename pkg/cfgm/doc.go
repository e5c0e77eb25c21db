// Package cfgm 提供通用的配置加载功能。
//
// 支持 YAML/JSON，按默认值、配置文件、环境变量与 CLI flags 逐层覆盖。
// 配置 key 使用 json tag 统一描述，YAML 与 JSON 共享同一套 key。
//
// # 加载优先级 (从低到高)
//
//  1. 默认值 - 通过 defaultConfig 参数传入
//  2. 配置文件 - [WithConfigFile]、[WithConfigPaths] 或 [WithAppName]
//  3. 环境变量(前缀) - 通过 [WithEnvPrefix] 自动生成绑定
//  4. CLI flags - 通过 [WithCommand] 选项设置，仅用户显式指定的 flag 生效
//
// # 快速开始
//
//	type Config struct {
//	    Root   string `json:"root"   desc:"搜索根目录"`
//	    Strict bool   `json:"strict" desc:"严格模式"`
//	}
//
//	cfg, err := cfgm.LoadCmd(cmd, Config{Root: ".."}, "myapp",
//	    cfgm.WithEnvPrefix("MYAPP_"),
//	)
//
// # 配置文件路径
//
// [WithAppName] 生成的默认搜索路径见 [DefaultPaths]；
// [WithConfigFile] 指定的文件必须存在，其余路径缺失时静默跳过。
//
// # 环境变量展开
//
// 配置文件在解析前经过 templexp.ExpandEnv：$VAR 与 ${VAR} 替换为环境变量，
// 未设置的变量保持原样，"$$" 输出字面量 "$"。
// 使用 [WithoutTemplateExpansion] 可禁用。
//
// # CLI Flag 映射
//
// 仅替换 "." 为 "-"：
//   - search.root → --search-root
//   - log.level → --log-level
package cfgm
