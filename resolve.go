package fcweekly

import (
	"fmt"
	"os"
	"path/filepath"
)

// Install is an installed version under the install root.
type Install struct {
	Name    string
	Path    string
	Version Version
}

// Installs lists the convention-named install directories under root in
// enumeration order (os.ReadDir sorts by name). Directories matching
// pattern whose names don't parse as versions are skipped.
func Installs(root, pattern string) ([]Install, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var installs []Install
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		ok, err := filepath.Match(pattern, entry.Name())
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		version, err := ParseVersion(entry.Name())
		if err != nil {
			continue
		}
		installs = append(installs, Install{
			Name:    entry.Name(),
			Path:    filepath.Join(root, entry.Name()),
			Version: version,
		})
	}
	return installs, nil
}

// NewestInstall returns the install with the newest version date. Only a
// strictly newer date replaces the current pick, so on equal dates the
// first-enumerated directory wins.
func NewestInstall(root, pattern string) (Install, error) {
	installs, err := Installs(root, pattern)
	if err != nil {
		return Install{}, err
	}
	if len(installs) == 0 {
		return Install{}, fmt.Errorf("%w: no installed versions under %s", ErrExecutableNotFound, root)
	}
	newest := installs[0]
	for _, install := range installs[1:] {
		if install.Version.After(newest.Version) {
			newest = install
		}
	}
	return newest, nil
}

// ResolveExecutable picks the newest installed version under root and
// returns the path of its executable entry point, exeRel relative to the
// install directory.
func ResolveExecutable(root, pattern, exeRel string) (string, error) {
	newest, err := NewestInstall(root, pattern)
	if err != nil {
		return "", err
	}
	exe := filepath.Join(newest.Path, filepath.FromSlash(exeRel))
	info, err := os.Stat(exe)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrExecutableNotFound, exe)
	}
	return exe, nil
}
