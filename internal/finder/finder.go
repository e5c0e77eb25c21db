// Package finder 在目录树中按文件名模式查找文件。
package finder

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// DefaultRoot 默认搜索根目录：工作目录的上一级，递归向下。
const DefaultRoot = ".."

// ErrNotFound 表示没有任何文件匹配。
var ErrNotFound = errors.New("file not found")

// NotFoundError 记录未能找到的文件名模式。
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return "Could not find file " + e.Name
}

// Is 使 errors.Is(err, ErrNotFound) 成立。
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Finder 在固定根目录下查找文件。
type Finder struct {
	root   string
	fsys   fs.FS
	logger *zap.Logger
}

// Option Finder 选项函数。
type Option func(*Finder)

// WithLogger 设置日志记录器，默认不输出。
func WithLogger(logger *zap.Logger) Option {
	return func(f *Finder) {
		f.logger = logger
	}
}

// New 创建以 root 为根的 Finder，root 为空时使用 [DefaultRoot]。
func New(root string, opts ...Option) *Finder {
	if strings.TrimSpace(root) == "" {
		root = DefaultRoot
	}

	f := &Finder{
		root:   root,
		fsys:   os.DirFS(root),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Root 返回搜索根目录。
func (f *Finder) Root() string {
	return f.root
}

// Find 查找 basename 匹配 pattern 的文件并返回其规范绝对路径。
//
// 搜索等价于 "<root>/**/<pattern>"，"**" 可匹配零层目录。
// filter 非空时只保留包含该子串的路径 (普通子串，不是 glob)。
// 多个文件匹配时取遍历顺序中的第一个，不做唯一性校验。
func (f *Finder) Find(ctx context.Context, pattern, filter string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	matches, err := f.glob(ctx, pattern)
	if err != nil {
		return "", err
	}

	if filter != "" {
		kept := matches[:0]
		for _, m := range matches {
			if strings.Contains(m, filter) {
				kept = append(kept, m)
			}
		}
		matches = kept
	}

	if len(matches) == 0 {
		return "", &NotFoundError{Name: pattern}
	}
	if len(matches) > 1 {
		f.logger.Warn("multiple files match, using the first",
			zap.String("pattern", pattern),
			zap.String("filter", filter),
			zap.Strings("matches", matches),
		)
	}

	resolved, err := canonical(matches[0])
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", matches[0], err)
	}
	f.logger.Debug("resolved file", zap.String("pattern", pattern), zap.String("path", resolved))

	return resolved, nil
}

// glob 返回以 root 开头的匹配路径，按目录遍历顺序排列。
//
// 与 shell 通配一致，以 "." 开头的文件和目录被跳过，
// 除非模式中对应的部分本身以 "." 开头。
func (f *Finder) glob(ctx context.Context, pattern string) ([]string, error) {
	pattern = filepath.ToSlash(pattern)
	expr := "**/" + pattern
	if !doublestar.ValidatePattern(expr) {
		return nil, fmt.Errorf("pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	parts := strings.Split(pattern, "/")
	var matches []string
	err := doublestar.GlobWalk(f.fsys, expr, func(path string, _ fs.DirEntry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if hidden(path, parts) {
			return nil
		}
		matches = append(matches, filepath.Join(f.root, filepath.FromSlash(path)))

		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		return nil, fmt.Errorf("search %s for %q: %w", f.root, pattern, err)
	}

	return matches, nil
}

// hidden 报告 path 是否经过隐藏的文件或目录。
// path 末尾的各部分与 patternParts 一一对应，其余部分由 "**" 匹配。
func hidden(path string, patternParts []string) bool {
	parts := strings.Split(path, "/")
	offset := len(parts) - len(patternParts)
	for i, part := range parts {
		if !strings.HasPrefix(part, ".") {
			continue
		}
		if j := i - offset; j < 0 || !strings.HasPrefix(patternParts[j], ".") {
			return true
		}
	}

	return false
}

func canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return filepath.EvalSymlinks(abs)
}
