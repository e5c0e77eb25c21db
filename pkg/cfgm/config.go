package cfgm

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/lwmacct/261019-go-proginfo/pkg/templexp"
)

// DefaultPaths 返回应用配置文件的默认搜索顺序，先命中的文件生效。
//
// 优先级 (从高到低)：
//  1. ./.appname.yaml - 当前目录
//  2. ~/.appname.yaml - 用户主目录
//  3. /etc/appname/config.yaml - 系统级配置
//
// appName 为空时返回 nil。
func DefaultPaths(appName string) []string {
	if appName == "" {
		return nil
	}

	paths := []string{"." + appName + ".yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, "."+appName+".yaml"))
	}

	return append(paths, "/etc/"+appName+"/config.yaml")
}

// Load 读取配置并按优先级合并。
//
// 优先级 (从低到高)：
//  1. 默认值 - defaultConfig
//  2. 配置文件 - [WithConfigFile] / [WithConfigPaths] / [WithAppName]
//  3. 环境变量(前缀) - [WithEnvPrefix]
//  4. CLI flags - [WithCommand]
//
// 配置 key 由 json tag 定义，YAML 与 JSON 共享同一套 key。
func Load[T any](defaultConfig T, opts ...Option) (*T, error) {
	o := &options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}

	configMap := structToMap(defaultConfig)

	fileMap, err := loadFile(o)
	if err != nil {
		return nil, err
	}
	mergeMaps(configMap, fileMap)

	if o.envPrefix != "" {
		for envKey, configPath := range generateEnvBindings(o.envPrefix, collectConfigKeys(defaultConfig)) {
			if val, ok := os.LookupEnv(envKey); ok && val != "" {
				setByPath(configMap, configPath, val)
				o.logger.Debug("applied env binding", zap.String("env", envKey), zap.String("key", configPath))
			}
		}
	}

	if o.cmd != nil {
		applyCLIFlags(o.cmd, configMap, reflect.TypeOf(defaultConfig), "")
	}

	var cfg T
	if err := decodeConfigMap(configMap, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return &cfg, nil
}

// LoadCmd 是 [Load] 的便捷版本，注入 [WithCommand]，appName 非空时注入 [WithAppName]。
func LoadCmd[T any](cmd *cli.Command, defaultConfig T, appName string, opts ...Option) (*T, error) {
	base := []Option{WithCommand(cmd)}
	if appName != "" {
		base = append(base, WithAppName(appName))
	}

	return Load(defaultConfig, append(base, opts...)...)
}

// loadFile 返回首个命中的配置文件内容，没有文件时返回空 map。
func loadFile(o *options) (map[string]any, error) {
	paths := o.configPaths
	if o.requiredFile != "" {
		paths = []string{o.requiredFile}
	} else if len(paths) == 0 {
		paths = DefaultPaths(o.appName)
	}

	for _, p := range paths {
		path := p
		if o.baseDir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(o.baseDir, path)
		}

		content, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
		if err != nil {
			if o.requiredFile == "" && errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return nil, fmt.Errorf("read config file: %w", err)
		}

		if !o.noTemplateExpansion {
			expanded, expandErr := templexp.ExpandEnv(string(content))
			if expandErr != nil {
				return nil, fmt.Errorf("expand %s: %w", path, expandErr)
			}
			content = []byte(expanded)
		}

		fileMap, err := parseConfigBytes(path, content)
		if err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
		o.logger.Debug("loaded config from file", zap.String("path", path))

		return fileMap, nil
	}

	o.logger.Debug("no config file found, using defaults", zap.Strings("paths", paths))

	return map[string]any{}, nil
}

// collectConfigKeys 递归收集叶子 key 路径（如 search.config-file）。
func collectConfigKeys[T any](defaultConfig T) []string {
	var keys []string
	walkFields(reflect.TypeOf(defaultConfig), "", func(fullKey string, _ reflect.Type) {
		keys = append(keys, fullKey)
	})

	return keys
}

// walkFields 遍历结构体叶子字段，嵌套结构体按 "." 拼接 key。
func walkFields(typ reflect.Type, prefix string, visit func(fullKey string, fieldType reflect.Type)) {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return
	}

	for i := range typ.NumField() {
		field := typ.Field(i)
		key := configTagName(field)
		if key == "" {
			continue
		}

		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if isStructType(field.Type) {
			walkFields(field.Type, fullKey, visit)

			continue
		}
		visit(fullKey, field.Type)
	}
}

// generateEnvBindings 根据配置 key 生成 环境变量 → key 映射。
func generateEnvBindings(prefix string, keys []string) map[string]string {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	bindings := make(map[string]string, len(keys))
	for _, key := range keys {
		bindings[prefix+strings.ToUpper(replacer.Replace(key))] = key
	}

	return bindings
}

// applyCLIFlags 将用户显式设置的 CLI flags 写入配置 map。
//
// flag 名称由 key 中的 "." 替换为 "-" 得到：search.root → --search-root。
func applyCLIFlags(cmd *cli.Command, config map[string]any, typ reflect.Type, prefix string) {
	walkFields(typ, prefix, func(fullKey string, fieldType reflect.Type) {
		flag := strings.ReplaceAll(fullKey, ".", "-")
		if !cmd.IsSet(flag) {
			return
		}
		if val, ok := flagValue(cmd, flag, fieldType); ok {
			setByPath(config, fullKey, val)
		}
	})
}

// flagValue 按字段类型读取 flag 值，不支持的类型返回 false。
func flagValue(cmd *cli.Command, flag string, fieldType reflect.Type) (any, bool) {
	if fieldType == reflect.TypeFor[time.Duration]() {
		return cmd.Duration(flag), true
	}

	switch fieldType.Kind() {
	case reflect.String:
		return cmd.String(flag), true
	case reflect.Bool:
		return cmd.Bool(flag), true
	case reflect.Int:
		return cmd.Int(flag), true
	case reflect.Int64:
		return cmd.Int64(flag), true
	case reflect.Float64:
		return cmd.Float64(flag), true
	case reflect.Slice:
		if fieldType.Elem().Kind() == reflect.String {
			return cmd.StringSlice(flag), true
		}
	default:
	}

	return nil, false
}
