package fcweekly

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewestInstall(t *testing.T) {
	t.Run("selects newest date", func(t *testing.T) {
		root := t.TempDir()
		for _, date := range []string{"2024.01.01", "2024.03.15", "2023.12.31"} {
			require.NoError(t, os.Mkdir(filepath.Join(root, installName(date)), 0o755))
		}
		got, err := NewestInstall(root, installPattern)
		require.NoError(t, err)
		require.Equal(t, installName("2024.03.15"), got.Name)
		require.Equal(t, "2024.03.15", got.Version.String())
	})

	t.Run("skips unparsable names", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(root, installName("notadate")), 0o755))
		require.NoError(t, os.Mkdir(filepath.Join(root, installName("2024.01.01")), 0o755))
		got, err := NewestInstall(root, installPattern)
		require.NoError(t, err)
		require.Equal(t, installName("2024.01.01"), got.Name)
	})

	t.Run("no installs", func(t *testing.T) {
		_, err := NewestInstall(t.TempDir(), installPattern)
		require.ErrorIs(t, err, ErrExecutableNotFound)
	})
}

func TestResolveExecutable(t *testing.T) {
	t.Run("resolves inside newest install", func(t *testing.T) {
		root := t.TempDir()
		old := filepath.Join(root, installName("2024.01.01"))
		newest := filepath.Join(root, installName("2024.03.15"))
		require.NoError(t, os.MkdirAll(filepath.Join(old, "bin"), 0o755))
		require.NoError(t, os.MkdirAll(filepath.Join(newest, "bin"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(old, "bin", "FreeCAD.exe"), []byte("old"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(newest, "bin", "FreeCAD.exe"), []byte("new"), 0o755))

		got, err := ResolveExecutable(root, installPattern, "bin/FreeCAD.exe")
		require.NoError(t, err)
		require.Equal(t, filepath.Join(newest, "bin", "FreeCAD.exe"), got)
	})

	t.Run("missing executable", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(root, installName("2024.03.15")), 0o755))
		_, err := ResolveExecutable(root, installPattern, "bin/FreeCAD.exe")
		require.ErrorIs(t, err, ErrExecutableNotFound)
	})

	t.Run("executable path is a directory", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, installName("2024.03.15"), "bin", "FreeCAD.exe"), 0o755))
		_, err := ResolveExecutable(root, installPattern, "bin/FreeCAD.exe")
		require.ErrorIs(t, err, ErrExecutableNotFound)
	})
}
