package finder

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// writeTree 在 root 下创建文件，路径使用 "/" 分隔。
func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, name := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(name), 0o644))
	}
}

func canonicalPath(t *testing.T, path string) string {
	t.Helper()
	got, err := canonical(path)
	require.NoError(t, err)

	return got
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"top.txt",
		"build/app.cfg",
		"deep/a/b/c/rom.bin",
		"hw/v1/board.v",
		"hw/v2/board.v",
	)
	f := New(root, WithLogger(zaptest.NewLogger(t)))
	ctx := context.Background()

	tests := []struct {
		name    string
		pattern string
		filter  string
		want    string
	}{
		{name: "file directly under root", pattern: "top.txt", want: "top.txt"},
		{name: "nested file", pattern: "app.cfg", want: "build/app.cfg"},
		{name: "deeply nested file", pattern: "rom.bin", want: "deep/a/b/c/rom.bin"},
		{name: "glob fragment", pattern: "*.cfg", want: "build/app.cfg"},
		{name: "pattern with directory", pattern: "c/rom.bin", want: "deep/a/b/c/rom.bin"},
		{name: "filter narrows duplicates", pattern: "board.v", filter: "v2", want: "hw/v2/board.v"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Find(ctx, tt.pattern, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, canonicalPath(t, filepath.Join(root, filepath.FromSlash(tt.want))), got)
			assert.True(t, filepath.IsAbs(got))
		})
	}
}

func TestFind_FirstMatchWithoutFilter(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "hw/v2/board.v", "hw/v1/board.v")

	got, err := New(root).Find(context.Background(), "board.v", "")
	require.NoError(t, err)
	assert.Equal(t, canonicalPath(t, filepath.Join(root, "hw", "v1", "board.v")), got)
}

func TestFind_SkipsHiddenEntries(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		".cache/app.cfg",
		".git/objects/app.cfg",
		".hidden.cfg",
		"build/app.cfg",
		"build/.local/rom.bin",
	)
	f := New(root, WithLogger(zaptest.NewLogger(t)))
	ctx := context.Background()

	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{name: "plain name ignores hidden dirs", pattern: "app.cfg", want: "build/app.cfg"},
		{name: "wildcard ignores dot files", pattern: "*.cfg", want: "build/app.cfg"},
		{name: "explicit dot file", pattern: ".hidden.cfg", want: ".hidden.cfg"},
		{name: "explicit hidden dir", pattern: ".cache/app.cfg", want: ".cache/app.cfg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Find(ctx, tt.pattern, "")
			require.NoError(t, err)
			assert.Equal(t, canonicalPath(t, filepath.Join(root, filepath.FromSlash(tt.want))), got)
		})
	}

	_, err := f.Find(ctx, "rom.bin", "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestHidden(t *testing.T) {
	assert.False(t, hidden("build/app.cfg", []string{"app.cfg"}))
	assert.True(t, hidden(".git/app.cfg", []string{"app.cfg"}))
	assert.True(t, hidden(".app.cfg", []string{"*.cfg"}))
	assert.False(t, hidden("x/.app.cfg", []string{".app.cfg"}))
	assert.True(t, hidden(".x/.app.cfg", []string{".app.cfg"}))
}

func TestFind_NotFound(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "build/app.cfg")
	f := New(root)

	_, err := f.Find(context.Background(), "missing.cfg", "")
	require.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "Could not find file missing.cfg")

	_, err = f.Find(context.Background(), "app.cfg", "nowhere")
	require.ErrorIs(t, err, ErrNotFound)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "app.cfg", notFound.Name)
}

func TestFind_BadPattern(t *testing.T) {
	_, err := New(t.TempDir()).Find(context.Background(), "[unclosed", "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFind_ResolvesSymlinks(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "real/app.cfg")
	link := filepath.Join(root, "link.cfg")
	if err := os.Symlink(filepath.Join(root, "real", "app.cfg"), link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	got, err := New(root).Find(context.Background(), "link.cfg", "")
	require.NoError(t, err)
	assert.Equal(t, canonicalPath(t, filepath.Join(root, "real", "app.cfg")), got)
}

func TestFind_DefaultRootIsParentOfWorkingDir(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "work/.keep", "sibling/out/app.cfg")
	t.Chdir(filepath.Join(root, "work"))

	f := New("")
	assert.Equal(t, DefaultRoot, f.Root())

	got, err := f.Find(context.Background(), "app.cfg", "")
	require.NoError(t, err)
	assert.Equal(t, canonicalPath(t, filepath.Join(root, "sibling", "out", "app.cfg")), got)
}

func TestFind_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(t.TempDir()).Find(ctx, "x", "")
	require.ErrorIs(t, err, context.Canceled)
}
