package di

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/traitmint/internal/config"
	"github.com/listenupapp/traitmint/internal/di/providers"
	domainerrors "github.com/listenupapp/traitmint/internal/errors"
)

func writeTrait(t *testing.T, root, category, name string, c color.NRGBA) {
	t.Helper()
	dir := filepath.Join(root, category)
	require.NoError(t, os.MkdirAll(dir, 0o755))

	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := range 8 {
		for x := range 8 {
			img.SetNRGBA(x, y, c)
		}
	}

	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func runArgs(t *testing.T, layers, output string, extra ...string) []string {
	t.Helper()
	args := []string{
		"-env-file", filepath.Join(t.TempDir(), "missing.env"),
		"-log-level", "error",
		"-layers-path", layers,
		"-output-path", output,
		"-categories", "background,hat",
		"-seed", "42",
	}
	return append(args, extra...)
}

func TestBootstrap(t *testing.T) {
	t.Run("wires a runnable generator", func(t *testing.T) {
		layers := t.TempDir()
		writeTrait(t, layers, "background", "A.png", color.NRGBA{R: 255, A: 255})
		writeTrait(t, layers, "background", "B.png", color.NRGBA{G: 255, A: 255})
		writeTrait(t, layers, "hat", "X.png", color.NRGBA{B: 255, A: 128})
		output := t.TempDir()

		injector := NewContainer(runArgs(t, layers, output, "-count", "2"))
		gen, err := Bootstrap(injector)
		require.NoError(t, err)

		cfg := do.MustInvoke[*config.Config](injector)
		assert.Equal(t, 2, cfg.Collection.Count)
		assert.Equal(t, uint64(42), cfg.Generation.Seed)

		runID := do.MustInvoke[providers.RunID](injector)
		assert.Contains(t, string(runID), "run-")

		summary, err := gen.Run(context.Background())
		require.NoError(t, err)
		assert.Len(t, summary.Items, 2)
		assert.FileExists(t, filepath.Join(output, "images", "1.png"))
		assert.FileExists(t, filepath.Join(output, "images", "2.png"))
		assert.FileExists(t, filepath.Join(output, "metadata", "1.json"))
		assert.FileExists(t, filepath.Join(output, "metadata", "2.json"))
	})

	t.Run("missing category fails before output", func(t *testing.T) {
		layers := t.TempDir()
		writeTrait(t, layers, "background", "A.png", color.NRGBA{R: 255, A: 255})
		output := filepath.Join(t.TempDir(), "out")

		_, err := Bootstrap(NewContainer(runArgs(t, layers, output)))
		require.Error(t, err)
		assert.Equal(t, domainerrors.CodeNotFound, domainerrors.CodeOf(err))
		assert.NoDirExists(t, output)
	})

	t.Run("invalid configuration", func(t *testing.T) {
		_, err := Bootstrap(NewContainer(runArgs(t, t.TempDir(), t.TempDir(), "-count", "0")))
		require.Error(t, err)
		assert.Equal(t, domainerrors.CodeValidation, domainerrors.CodeOf(err))
		assert.Equal(t, 2, domainerrors.CodeOf(err).ExitStatus())
	})
}
