// Package templexp 提供基于 "$" 占位符的文本替换。
//
// 只做字面量替换：不执行命令、不支持默认值或条件表达式，
// 适合把解析好的文件路径填入板级模板，或展开配置文件中的环境变量。
//
// # 语义说明
//
//  1. $name 与 ${name} 等价，name 为 ASCII 标识符，取最长匹配
//  2. "$$" 输出字面量 "$"
//  3. 其他 "$" 原样输出；[WithStrict] 下返回 [ErrInvalidPlaceholder]
//  4. 映射中缺失的占位符返回 [ErrMissingKey]；[WithKeepMissing] 下保留原文
//
// # 快速开始
//
// 填充模板：
//
//	out, err := templexp.Substitute("Config at $cfgFile", map[string]string{
//	    "cfgFile": "/repo/build/app.cfg",
//	})
//
// 展开环境变量 (未设置的变量保留原样)：
//
//	content, err := templexp.ExpandEnv(`root: "${PROJECT_ROOT}"`)
//
// 详见 [SubstituteFunc] 文档。
package templexp
