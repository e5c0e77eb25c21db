package command_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lwmacct/261019-go-proginfo/internal/board"
	"github.com/lwmacct/261019-go-proginfo/internal/command"
	"github.com/lwmacct/261019-go-proginfo/internal/finder"
)

func TestReport(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:     "success",
			wantCode: command.ExitOK,
		},
		{
			name:       "board not supplied",
			err:        command.ErrBoardNotSupplied,
			wantCode:   command.ExitLookup,
			wantStdout: "Board not supplied\n",
		},
		{
			name:       "usage",
			err:        &command.UsageError{Message: "expected exactly one board name, got 2"},
			wantCode:   command.ExitLookup,
			wantStdout: "ERROR: expected exactly one board name, got 2\n",
		},
		{
			name:       "file not found keeps short message",
			err:        fmt.Errorf("resolve templateFile: %w", &finder.NotFoundError{Name: "tmpl.txt"}),
			wantCode:   command.ExitLookup,
			wantStdout: "ERROR: Could not find file tmpl.txt\n",
		},
		{
			name:       "unknown board",
			err:        &board.UnknownBoardError{Name: "nope", Source: "boardconfig.yaml"},
			wantCode:   command.ExitLookup,
			wantStdout: "ERROR: Board nope not found in boardconfig.yaml\n",
		},
		{
			name:       "other errors go to stderr",
			err:        fmt.Errorf("parse boardconfig.yaml: %w", errors.New("bad indent")),
			wantCode:   command.ExitFailure,
			wantStderr: "Error: parse boardconfig.yaml: bad indent\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := command.Report(tt.err, &stdout, &stderr)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStdout, stdout.String())
			assert.Equal(t, tt.wantStderr, stderr.String())
		})
	}
}

type runnerFunc func(ctx context.Context, args []string) error

func (f runnerFunc) Run(ctx context.Context, args []string) error {
	return f(ctx, args)
}

func TestRun(t *testing.T) {
	var gotArgs []string
	cmd := runnerFunc(func(_ context.Context, args []string) error {
		gotArgs = args

		return command.ErrBoardNotSupplied
	})

	var stdout, stderr bytes.Buffer
	code := command.Run(context.Background(), cmd, []string{"proginfo"}, &stdout, &stderr)
	assert.Equal(t, command.ExitLookup, code)
	assert.Equal(t, []string{"proginfo"}, gotArgs)
	assert.Equal(t, "Board not supplied\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, finder.DefaultRoot, command.Defaults.Search.Root)
	assert.Equal(t, board.DefaultFileName, command.Defaults.Search.ConfigFile)
	assert.False(t, command.Defaults.Render.Strict)
	assert.Equal(t, "warn", command.Defaults.Log.Level)
}
