package store

import (
	"os"
	"path/filepath"
)

// atomicWriteFile writes b next to path and renames it into place, so readers
// never observe a partial file.
func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func ensureParentDir(path string) (string, error) {
	dir := filepath.Dir(path)
	return dir, os.MkdirAll(dir, 0o755)
}
