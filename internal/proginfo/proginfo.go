// Package proginfo 执行构建后信息渲染流程：
// 查找配置 → 选择板 → 解析文件路径 → 渲染模板 → 输出。
package proginfo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/lwmacct/261019-go-proginfo/internal/board"
	"github.com/lwmacct/261019-go-proginfo/internal/finder"
	"github.com/lwmacct/261019-go-proginfo/pkg/templexp"
)

// Banner 在流程开始时输出。
const Banner = "Build completed"

// ErrNoTemplateFile 表示板配置缺少 templateFile 参数。
var ErrNoTemplateFile = errors.New("board has no " + board.TemplateKey + " parameter")

// Options 渲染流程选项。
type Options struct {
	Finder     *finder.Finder
	ConfigFile string      // 配置文件名模式，默认 board.DefaultFileName
	Strict     bool        // 模板中非法 "$" 视为错误
	Out        io.Writer   // 默认 os.Stdout
	Logger     *zap.Logger // 默认不输出
}

// Runner 执行一次渲染。
type Runner struct {
	finder     *finder.Finder
	configFile string
	strict     bool
	out        io.Writer
	logger     *zap.Logger
}

// New 根据 opts 创建 Runner，未设置的字段使用默认值。
func New(opts Options) *Runner {
	r := &Runner{
		finder:     opts.Finder,
		configFile: opts.ConfigFile,
		strict:     opts.Strict,
		out:        opts.Out,
		logger:     opts.Logger,
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	if r.finder == nil {
		r.finder = finder.New(finder.DefaultRoot, finder.WithLogger(r.logger))
	}
	if r.configFile == "" {
		r.configFile = board.DefaultFileName
	}
	if r.out == nil {
		r.out = os.Stdout
	}

	return r
}

// Run 渲染 name 对应的板模板并写出结果。
//
// 横幅总是最先输出；此后任何错误都会中止流程，不产生部分模板输出。
func (r *Runner) Run(ctx context.Context, name string) error {
	if _, err := fmt.Fprintln(r.out, Banner); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	configPath, err := r.finder.Find(ctx, r.configFile, "")
	if err != nil {
		return err
	}
	r.logger.Debug("loading board config",
		zap.String("root", r.finder.Root()),
		zap.String("path", configPath),
	)

	cfg, err := board.Load(configPath)
	if err != nil {
		return err
	}

	set, err := cfg.Board(name)
	if err != nil {
		r.logger.Debug("available boards", zap.Strings("boards", cfg.Names()))

		return err
	}

	resolved, err := r.Resolve(ctx, set)
	if err != nil {
		return err
	}

	templatePath, ok := resolved[board.TemplateKey]
	if !ok {
		return fmt.Errorf("board %s: %w", name, ErrNoTemplateFile)
	}

	rendered, err := r.Render(templatePath, resolved)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(r.out, "%s\n\n", rendered); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

// Resolve 按声明顺序解析参数集中的每个文件，遇到第一个缺失文件即返回。
func (r *Runner) Resolve(ctx context.Context, set board.ParameterSet) (map[string]string, error) {
	resolved := make(map[string]string, set.Len())
	for _, p := range set.Params() {
		path, err := r.finder.Find(ctx, p.File, p.Filter)
		if err != nil {
			return nil, err
		}
		resolved[p.Name] = path
		r.logger.Debug("resolved parameter", zap.String("name", p.Name), zap.String("path", path))
	}

	return resolved, nil
}

// Render 读取模板并用 values 替换占位符。
func (r *Runner) Render(templatePath string, values map[string]string) (string, error) {
	content, err := os.ReadFile(templatePath) //nolint:gosec // path comes from the file search
	if err != nil {
		return "", fmt.Errorf("read template: %w", err)
	}

	r.logger.Debug("rendering template",
		zap.String("path", templatePath),
		zap.Strings("placeholders", templexp.Placeholders(string(content))),
	)

	var opts []templexp.Option
	if r.strict {
		opts = append(opts, templexp.WithStrict())
	}

	rendered, err := templexp.Substitute(string(content), values, opts...)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", templatePath, err)
	}

	return rendered, nil
}
