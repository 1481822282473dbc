package fcweekly

import (
	"os"
	"path/filepath"
)

// RetireOld deletes every install directory under root matching pattern
// except keep. Siblings whose names don't parse as versions are reported
// through warn and skipped so one malformed directory can't block cleanup
// of the rest; the same goes for directories that fail to delete. Returns
// the number of directories removed.
func RetireOld(root, keep, pattern string, warn func(name string, err error)) (int, error) {
	if warn == nil {
		warn = func(string, error) {}
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		ok, err := filepath.Match(pattern, entry.Name())
		if err != nil {
			return removed, err
		}
		if !ok {
			continue
		}
		_, err = ParseVersion(entry.Name())
		if err != nil {
			warn(entry.Name(), err)
			continue
		}
		path := filepath.Join(root, entry.Name())
		if samePath(path, keep) {
			continue
		}
		err = os.RemoveAll(path)
		if err != nil {
			warn(entry.Name(), err)
			continue
		}
		removed++
	}
	return removed, nil
}

func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
