package importres_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/scssimpact/internal/importres"
)

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNoop(t *testing.T) {
	defs, err := importres.Noop{}.ResolveImportedFile(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, defs)
}

func TestFilesystem(t *testing.T) {
	t.Run("underscore partial wins over plain file", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "_colors.scss", "$brand: #007bff;\n")
		writeFile(t, root, "colors.scss", "$brand: wrong;\n")

		defs, err := importres.NewFilesystem(root).ResolveImportedFile(context.Background(), "colors")
		require.NoError(t, err)
		require.Contains(t, defs, "brand")
		assert.Equal(t, "#007bff", defs["brand"].Value)
	})

	t.Run("plain file resolves", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "colors.scss", "$brand: teal;\n")

		defs, err := importres.NewFilesystem(root).ResolveImportedFile(context.Background(), "colors")
		require.NoError(t, err)
		assert.Equal(t, "teal", defs["brand"].Value)
	})

	t.Run("directory index resolves", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, filepath.Join("theme", "_index.scss"), "$gap: 8px;\n")

		defs, err := importres.NewFilesystem(root).ResolveImportedFile(context.Background(), "theme")
		require.NoError(t, err)
		assert.Contains(t, defs, "gap")
	})

	t.Run("nested target resolves", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, filepath.Join("theme", "_colors.scss"), "$brand: red;\n")

		defs, err := importres.NewFilesystem(root).ResolveImportedFile(context.Background(), "theme/colors")
		require.NoError(t, err)
		assert.Contains(t, defs, "brand")
	})

	t.Run("missing target errors", func(t *testing.T) {
		_, err := importres.NewFilesystem(t.TempDir()).ResolveImportedFile(context.Background(), "ghost")
		assert.Error(t, err)
	})

	t.Run("pattern fence rejects out-of-tree files", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, filepath.Join("vendor", "_lib.scss"), "$x: 1;\n")

		fs := importres.NewFilesystem(root, "src/**/*.scss")
		_, err := fs.ResolveImportedFile(context.Background(), "vendor/lib")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "matches no configured pattern")
	})

	t.Run("cancelled context suspends immediately", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "_colors.scss", "$brand: red;\n")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := importres.NewFilesystem(root).ResolveImportedFile(ctx, "colors")
		assert.ErrorIs(t, err, context.Canceled)
	})
}
