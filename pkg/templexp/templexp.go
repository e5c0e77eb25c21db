package templexp

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// 错误类型
// ═══════════════════════════════════════════════════════════════════════════

var (
	// ErrMissingKey 表示占位符在映射中没有对应的值。
	ErrMissingKey = errors.New("templexp: missing key")
	// ErrInvalidPlaceholder 表示严格模式下出现了无法解析的 "$"。
	ErrInvalidPlaceholder = errors.New("templexp: invalid placeholder")
)

// MissingKeyError 记录缺失的占位符名称及其位置 (行列均从 1 开始)。
type MissingKeyError struct {
	Name   string
	Line   int
	Column int
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("templexp: no value for placeholder $%s (line %d, column %d)", e.Name, e.Line, e.Column)
}

// Is 使 errors.Is(err, ErrMissingKey) 成立。
func (e *MissingKeyError) Is(target error) bool {
	return target == ErrMissingKey
}

// InvalidPlaceholderError 记录严格模式下非法 "$" 的位置。
type InvalidPlaceholderError struct {
	Line   int
	Column int
}

func (e *InvalidPlaceholderError) Error() string {
	return fmt.Sprintf("templexp: invalid placeholder in string: line %d, column %d", e.Line, e.Column)
}

// Is 使 errors.Is(err, ErrInvalidPlaceholder) 成立。
func (e *InvalidPlaceholderError) Is(target error) bool {
	return target == ErrInvalidPlaceholder
}

// ═══════════════════════════════════════════════════════════════════════════
// 选项
// ═══════════════════════════════════════════════════════════════════════════

type options struct {
	strict      bool // 非法 "$" 报错，而不是原样输出
	keepMissing bool // 缺失的占位符原样保留，而不是报错
}

// Option 替换选项函数。
type Option func(*options)

// WithStrict 将无法识别的 "$" (如 "$1"、"${x y}"、结尾的 "$") 视为错误。
func WithStrict() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithKeepMissing 保留映射中不存在的占位符原文。
func WithKeepMissing() Option {
	return func(o *options) {
		o.keepMissing = true
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// 占位符扫描
// ═══════════════════════════════════════════════════════════════════════════

type tokenKind int

const (
	tokenInvalid tokenKind = iota
	tokenEscape
	tokenNamed
)

// token 描述从 "$" 开始的一段输入，end 指向其后第一个字节。
type token struct {
	kind tokenKind
	name string
	end  int
}

func isVarNameStart(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || ch == '_'
}

func isVarNameChar(ch byte) bool {
	return isVarNameStart(ch) || (ch >= '0' && ch <= '9')
}

// scanName 返回 text[start:] 开头标识符的长度，不是标识符时返回 0。
func scanName(text string, start int) int {
	if start >= len(text) || !isVarNameStart(text[start]) {
		return 0
	}

	i := start + 1
	for i < len(text) && isVarNameChar(text[i]) {
		i++
	}

	return i - start
}

// parseToken 解析 text[i] 处的 "$"。
func parseToken(text string, i int) token {
	if i+1 < len(text) && text[i+1] == '$' {
		return token{kind: tokenEscape, end: i + 2}
	}

	if n := scanName(text, i+1); n > 0 {
		return token{kind: tokenNamed, name: text[i+1 : i+1+n], end: i + 1 + n}
	}

	if i+1 < len(text) && text[i+1] == '{' {
		n := scanName(text, i+2)
		closing := i + 2 + n
		if n > 0 && closing < len(text) && text[closing] == '}' {
			return token{kind: tokenNamed, name: text[i+2 : closing], end: closing + 1}
		}
	}

	return token{kind: tokenInvalid, end: i + 1}
}

func position(text string, offset int) (int, int) {
	head := text[:offset]
	line := strings.Count(head, "\n") + 1
	column := offset - strings.LastIndexByte(head, '\n')

	return line, column
}

// ═══════════════════════════════════════════════════════════════════════════
// 替换
// ═══════════════════════════════════════════════════════════════════════════

// SubstituteFunc 使用 lookup 替换 text 中的占位符。
//
// 支持语法：
//   - $name / ${name} - name 为 [_A-Za-z][_A-Za-z0-9]*，取最长匹配
//   - $$ - 字面量 "$"
//
// 其他 "$" 默认原样输出；见 [WithStrict] 与 [WithKeepMissing]。
func SubstituteFunc(text string, lookup func(name string) (string, bool), opts ...Option) (string, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	var buf strings.Builder
	buf.Grow(len(text))

	for i := 0; i < len(text); {
		j := strings.IndexByte(text[i:], '$')
		if j < 0 {
			buf.WriteString(text[i:])

			break
		}
		buf.WriteString(text[i : i+j])
		i += j

		tok := parseToken(text, i)
		switch tok.kind {
		case tokenEscape:
			buf.WriteByte('$')
		case tokenNamed:
			val, ok := lookup(tok.name)
			switch {
			case ok:
				buf.WriteString(val)
			case o.keepMissing:
				buf.WriteString(text[i:tok.end])
			default:
				line, column := position(text, i)

				return "", &MissingKeyError{Name: tok.name, Line: line, Column: column}
			}
		default:
			if o.strict {
				line, column := position(text, i)

				return "", &InvalidPlaceholderError{Line: line, Column: column}
			}
			buf.WriteByte('$')
		}

		i = tok.end
	}

	return buf.String(), nil
}

// Substitute 使用 mapping 替换 text 中的占位符，语义同 [SubstituteFunc]。
func Substitute(text string, mapping map[string]string, opts ...Option) (string, error) {
	return SubstituteFunc(text, func(name string) (string, bool) {
		val, ok := mapping[name]
		return val, ok
	}, opts...)
}

// ExpandEnv 使用当前环境变量展开 text，未设置的变量保持原样。
func ExpandEnv(text string) (string, error) {
	return SubstituteFunc(text, os.LookupEnv, WithKeepMissing())
}

// Placeholders 按首次出现顺序返回 text 引用的占位符名称 (去重)。
func Placeholders(text string) []string {
	var names []string
	seen := make(map[string]struct{})

	for i := 0; i < len(text); {
		j := strings.IndexByte(text[i:], '$')
		if j < 0 {
			break
		}
		i += j

		tok := parseToken(text, i)
		if tok.kind == tokenNamed {
			if _, ok := seen[tok.name]; !ok {
				seen[tok.name] = struct{}{}
				names = append(names, tok.name)
			}
		}
		i = tok.end
	}

	return names
}
