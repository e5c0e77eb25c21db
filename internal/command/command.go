// Package command 提供 proginfo 的命令行入口与退出码约定。
package command

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/lwmacct/261019-go-proginfo/internal/board"
	"github.com/lwmacct/261019-go-proginfo/internal/config"
	"github.com/lwmacct/261019-go-proginfo/internal/finder"
)

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// Version 构建时通过 -ldflags "-X .../internal/command.Version=..." 注入。
var Version = "dev"

// Exit codes.
const (
	ExitOK      = 0
	ExitLookup  = 1 // 缺少参数、板不存在、文件找不到
	ExitFailure = 2 // 配置格式、模板替换等其他错误
)

// ErrBoardNotSupplied 表示没有提供板名参数。
var ErrBoardNotSupplied = errors.New("Board not supplied") //nolint:staticcheck // printed verbatim

// UsageError 参数数量错误。
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// Report 将 err 写到对应的输出流并返回退出码。
//
//   - 缺少板名：stdout 输出 "Board not supplied"
//   - 参数错误、板不存在、文件找不到：stdout 输出 "ERROR: <message>"
//   - 其他错误：stderr 输出完整错误链
func Report(err error, stdout, stderr io.Writer) int {
	if err == nil {
		return ExitOK
	}

	if errors.Is(err, ErrBoardNotSupplied) {
		_, _ = fmt.Fprintln(stdout, ErrBoardNotSupplied.Error())

		return ExitLookup
	}

	if msg, ok := lookupMessage(err); ok {
		_, _ = fmt.Fprintf(stdout, "ERROR: %s\n", msg)

		return ExitLookup
	}

	_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)

	return ExitFailure
}

// lookupMessage 提取可预期错误的简短消息，不带外层包装。
func lookupMessage(err error) (string, bool) {
	var (
		usage    *UsageError
		notFound *finder.NotFoundError
		unknown  *board.UnknownBoardError
	)
	switch {
	case errors.As(err, &usage):
		return usage.Error(), true
	case errors.As(err, &notFound):
		return notFound.Error(), true
	case errors.As(err, &unknown):
		return unknown.Error(), true
	default:
		return "", false
	}
}

// Runner 可运行的命令，*cli.Command 满足该接口。
type Runner interface {
	Run(ctx context.Context, args []string) error
}

// Run 执行 cmd 并返回退出码，是进程唯一的退出点。
func Run(ctx context.Context, cmd Runner, args []string, stdout, stderr io.Writer) int {
	return Report(cmd.Run(ctx, args), stdout, stderr)
}
