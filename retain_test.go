package fcweekly

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const installPattern = "FreeCAD_weekly-*-Windows-x86_64-py311"

func installName(date string) string {
	return "FreeCAD_weekly-" + date + "-Windows-x86_64-py311"
}

func TestRetireOld(t *testing.T) {
	t.Run("removes everything but keep", func(t *testing.T) {
		root := t.TempDir()
		a := filepath.Join(root, installName("2023.12.31"))
		b := filepath.Join(root, installName("2024.01.01"))
		d := filepath.Join(root, installName("2024.03.15"))
		for _, dir := range []string{a, b, d} {
			require.NoError(t, os.Mkdir(dir, 0o755))
		}

		removed, err := RetireOld(root, d, installPattern, nil)
		require.NoError(t, err)
		require.Equal(t, 2, removed)
		require.NoDirExists(t, a)
		require.NoDirExists(t, b)
		require.DirExists(t, d)
	})

	t.Run("malformed sibling is warned and skipped", func(t *testing.T) {
		root := t.TempDir()
		bad := filepath.Join(root, installName("notadate"))
		old := filepath.Join(root, installName("2024.01.01"))
		keep := filepath.Join(root, installName("2024.03.15"))
		for _, dir := range []string{bad, old, keep} {
			require.NoError(t, os.Mkdir(dir, 0o755))
		}

		var warned []string
		removed, err := RetireOld(root, keep, installPattern, func(name string, err error) {
			require.Error(t, err)
			warned = append(warned, name)
		})
		require.NoError(t, err)
		require.Equal(t, 1, removed)
		require.Equal(t, []string{installName("notadate")}, warned)
		require.DirExists(t, bad)
		require.DirExists(t, keep)
		require.NoDirExists(t, old)
	})

	t.Run("undeletable directory is warned and skipped", func(t *testing.T) {
		requirePermissionsBind(t)
		root := t.TempDir()
		locked := filepath.Join(root, installName("2023.12.31"))
		old := filepath.Join(root, installName("2024.01.01"))
		keep := filepath.Join(root, installName("2024.03.15"))
		require.NoError(t, os.Mkdir(locked, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(locked, "held.txt"), []byte("x"), 0o644))
		require.NoError(t, os.Mkdir(old, 0o755))
		require.NoError(t, os.Mkdir(keep, 0o755))

		// a read-only directory with a child can't be emptied, so
		// RemoveAll fails on it
		require.NoError(t, os.Chmod(locked, 0o555))
		t.Cleanup(func() {
			_ = os.Chmod(locked, 0o755)
		})

		var warned []string
		removed, err := RetireOld(root, keep, installPattern, func(name string, err error) {
			require.Error(t, err)
			warned = append(warned, name)
		})
		require.NoError(t, err)
		require.Equal(t, 1, removed)
		require.Equal(t, []string{installName("2023.12.31")}, warned)
		require.DirExists(t, locked)
		require.NoDirExists(t, old)
		require.DirExists(t, keep)
	})

	t.Run("non-matching entries untouched", func(t *testing.T) {
		root := t.TempDir()
		other := filepath.Join(root, "SomethingElse-2024.01.01")
		keep := filepath.Join(root, installName("2024.03.15"))
		require.NoError(t, os.Mkdir(other, 0o755))
		require.NoError(t, os.Mkdir(keep, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, installName("2024.02.02")+".7z"), []byte("archive"), 0o600))

		removed, err := RetireOld(root, keep, installPattern, nil)
		require.NoError(t, err)
		require.Equal(t, 0, removed)
		require.DirExists(t, other)
	})

	t.Run("keep compared by cleaned path", func(t *testing.T) {
		root := t.TempDir()
		keep := filepath.Join(root, installName("2024.03.15"))
		require.NoError(t, os.Mkdir(keep, 0o755))

		removed, err := RetireOld(root, keep+string(filepath.Separator), installPattern, nil)
		require.NoError(t, err)
		require.Equal(t, 0, removed)
		require.DirExists(t, keep)
	})

	t.Run("missing root errors", func(t *testing.T) {
		_, err := RetireOld(filepath.Join(t.TempDir(), "nope"), "keep", installPattern, nil)
		require.Error(t, err)
	})
}
