package reconcile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// filePerm is the mode of every file written into the destination.
const filePerm os.FileMode = 0o644

// writeFileAtomic replaces path with data using the temp-file, fsync, rename
// pattern so readers never observe a half-written template. The temp file
// lives next to path; a leftover from an interrupted pass has no matching row
// and is pruned by the next pass.
func writeFileAtomic(fsys afero.Fs, path string, data []byte) error {
	tmp, err := afero.TempFile(fsys, filepath.Dir(path), ".tmplsync-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		fsys.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		fsys.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		fsys.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := fsys.Chmod(tmpName, filePerm); err != nil {
		fsys.Remove(tmpName)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := fsys.Rename(tmpName, path); err != nil {
		fsys.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
