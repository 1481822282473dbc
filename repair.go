package fcweekly

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const stagingPrefix = ".fcweekly-stage-"

// RepairNested flattens the self-nested layout some weekly archives
// produce, where root directly contains a directory named like root itself
// and the real payload sits one level too deep. Returns false when there is
// nothing to repair, which also makes a second run after a completed repair
// a no-op.
//
// Children are routed through a staging sibling of root so no move ever
// crosses between a directory and its own descendant. On failure the
// staging directory is removed only if it is empty; a non-empty one is left
// behind with its contents intact. A crash between the two drain phases
// likewise leaves the staging directory for manual recovery — an accepted
// limitation, there is no progress marker.
func RepairNested(root string) (repaired bool, err error) {
	nested := filepath.Join(root, filepath.Base(root))
	info, statErr := os.Stat(nested)
	if statErr != nil || !info.IsDir() {
		return false, nil
	}
	staging, err := makeStagingDir(filepath.Dir(root))
	if err != nil {
		return false, &RepairError{Dir: root, Err: err}
	}
	defer func() {
		if err != nil {
			// cleanup never deletes moved payload: Remove fails on a
			// non-empty directory and the failure is ignored
			_ = os.Remove(staging)
		}
	}()
	err = drain(nested, staging)
	if err != nil {
		return false, &RepairError{Dir: root, Err: err}
	}
	// should be empty by now, but don't assume
	err = os.RemoveAll(nested)
	if err != nil {
		return false, &RepairError{Dir: root, Err: err}
	}
	err = drain(staging, root)
	if err != nil {
		return false, &RepairError{Dir: root, Err: err}
	}
	err = os.Remove(staging)
	if err != nil {
		return false, &RepairError{Dir: root, Err: err}
	}
	return true, nil
}

// makeStagingDir creates a uniquely-named staging directory under parent.
func makeStagingDir(parent string) (string, error) {
	for {
		name := fmt.Sprintf("%s%d", stagingPrefix, time.Now().UnixNano())
		path := filepath.Join(parent, name)
		err := os.Mkdir(path, 0o755)
		if err == nil {
			return path, nil
		}
		if !os.IsExist(err) {
			return "", err
		}
	}
}

// drain moves every direct child of src into dst.
func drain(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		err = os.Rename(filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name()))
		if err != nil {
			return err
		}
	}
	return nil
}
