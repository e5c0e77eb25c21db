package main

import (
	"context"
	"os"

	"github.com/lwmacct/261019-go-proginfo/internal/command"
	"github.com/lwmacct/261019-go-proginfo/internal/command/build"
)

func main() {
	app := build.NewCommand(os.Stdout, os.Stderr)

	os.Exit(command.Run(context.Background(), app, os.Args, os.Stdout, os.Stderr))
}
