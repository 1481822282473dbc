package fcweekly

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// NewestArchive returns the path of the most recently modified file in dir
// whose name matches pattern. Directory entries are name-sorted and only a
// strictly newer modification time replaces the current pick, so ties are
// deterministic. Returns ErrNoArchive when dir is missing or nothing
// matches.
func NewestArchive(dir, pattern string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s does not exist", ErrNoArchive, dir)
		}
		return "", err
	}
	var newest string
	var newestMod time.Time
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ok, err := filepath.Match(pattern, entry.Name())
		if err != nil {
			return "", err
		}
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return "", err
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = entry.Name()
			newestMod = info.ModTime()
		}
	}
	if newest == "" {
		return "", fmt.Errorf("%w: nothing matching %q in %s", ErrNoArchive, pattern, dir)
	}
	return filepath.Join(dir, newest), nil
}
