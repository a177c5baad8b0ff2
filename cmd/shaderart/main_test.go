package main

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soypat/shaderart/glrender"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommands(t *testing.T) {
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()

	assert.ErrorIs(t, run(ctx, log, nil), errUsage)
	assert.ErrorIs(t, run(ctx, log, []string{"explode"}), errUsage)

	out := filepath.Join(dir, "koch.png")
	err := run(ctx, log, []string{"render", "-demo", "koch", "-w", "32", "-h", "24", "-o", out})
	require.NoError(t, err)
	fp, err := os.Open(out)
	require.NoError(t, err)
	defer fp.Close()
	img, err := png.Decode(fp)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 24, img.Bounds().Dy())

	glsl := filepath.Join(dir, "scene.glsl")
	err = run(ctx, log, []string{"glsl", "-demo", "sdf3d", "-o", glsl})
	require.NoError(t, err)
	src, err := os.ReadFile(glsl)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(src), "float sdf(vec3 p)"))

	err = run(ctx, log, []string{"glsl", "-demo", "koch"})
	assert.Error(t, err)

	cfg := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[koch]\nzoom = 2.0\n"), 0o644))
	err = run(ctx, log, []string{"render", "-demo", "koch", "-config", cfg, "-o", out})
	assert.Error(t, err)

	err = run(ctx, log, []string{"stats", "-shape", "torus", "-res", "16"})
	assert.NoError(t, err)
	err = run(ctx, log, []string{"stats", "-shape", "blob"})
	assert.Error(t, err)
}

func TestRenderDebugLog(t *testing.T) {
	t.Cleanup(func() { glrender.SetLogger(nil) })
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	out := filepath.Join(t.TempDir(), "mandelbrot.png")
	err := run(context.Background(), log, []string{"render", "-demo", "mandelbrot", "-w", "16", "-h", "16", "-o", out})
	require.NoError(t, err)
	logged := buf.String()
	assert.Contains(t, logged, "rendered frame")
	assert.Contains(t, logged, "demo=mandelbrot")

	// Info level hides the per frame records.
	buf.Reset()
	log = slog.New(slog.NewTextHandler(&buf, nil))
	err = run(context.Background(), log, []string{"render", "-demo", "mandelbrot", "-w", "16", "-h", "16", "-o", out})
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "rendered frame")
}
