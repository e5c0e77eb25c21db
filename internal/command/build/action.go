package build

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/lwmacct/261019-go-proginfo/internal/command"
	"github.com/lwmacct/261019-go-proginfo/internal/config"
	"github.com/lwmacct/261019-go-proginfo/internal/finder"
	"github.com/lwmacct/261019-go-proginfo/internal/logging"
	"github.com/lwmacct/261019-go-proginfo/internal/proginfo"
	"github.com/lwmacct/261019-go-proginfo/pkg/cfgm"
)

func action(ctx context.Context, cmd *cli.Command) error {
	switch n := cmd.NArg(); {
	case n == 0:
		return command.ErrBoardNotSupplied
	case n > 1:
		return &command.UsageError{Message: fmt.Sprintf("expected exactly one board name, got %d", n)}
	}

	stdout, stderr := cmd.Root().Writer, cmd.Root().ErrWriter

	// 配置加载前先用 flag 值构建临时日志，加载完成后按最终配置重建
	bootstrap, err := logging.New(cmd.String("log-level"), cmd.String("log-format"), stderr)
	if err != nil {
		return err
	}

	// 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags
	cfg, err := cfgm.LoadCmd(cmd, command.Defaults, config.AppName,
		cfgm.WithConfigFile(cmd.String("config")),
		cfgm.WithEnvPrefix(config.EnvPrefix),
		cfgm.WithLogger(bootstrap),
	)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, stderr)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Debug("settings loaded",
		zap.String("root", cfg.Search.Root),
		zap.String("configFile", cfg.Search.ConfigFile),
		zap.Bool("strict", cfg.Render.Strict),
	)

	runner := proginfo.New(proginfo.Options{
		Finder:     finder.New(cfg.Search.Root, finder.WithLogger(logger)),
		ConfigFile: cfg.Search.ConfigFile,
		Strict:     cfg.Render.Strict,
		Out:        stdout,
		Logger:     logger,
	})

	return runner.Run(ctx, cmd.Args().First())
}
