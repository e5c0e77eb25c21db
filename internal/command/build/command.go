// Package build 提供渲染板级模板的命令。
package build

import (
	"io"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/261019-go-proginfo/internal/command"
	"github.com/lwmacct/261019-go-proginfo/internal/config"
)

// NewCommand 创建根命令，渲染结果写往 stdout，日志写往 stderr。
func NewCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:            config.AppName,
		Usage:           "构建完成后按板名渲染模板",
		ArgsUsage:       "<board-name>",
		Version:         command.Version,
		Writer:          stdout,
		ErrWriter:       stderr,
		HideHelpCommand: true,
		Action:          action,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "proginfo 配置文件路径 (默认搜索 .proginfo.yaml 等)",
			},
			&cli.StringFlag{
				Name:    "search-root",
				Aliases: []string{"r"},
				Value:   command.Defaults.Search.Root,
				Usage:   "递归搜索的根目录",
			},
			&cli.StringFlag{
				Name:  "search-config-file",
				Value: command.Defaults.Search.ConfigFile,
				Usage: "板级配置文件名",
			},
			&cli.BoolFlag{
				Name:  "render-strict",
				Value: command.Defaults.Render.Strict,
				Usage: "模板中非法的 $ 视为错误",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: command.Defaults.Log.Level,
				Usage: "日志级别: debug, info, warn, error",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Value: command.Defaults.Log.Format,
				Usage: "日志格式: console, json",
			},
		},
	}
}
