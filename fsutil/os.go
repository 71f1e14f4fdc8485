package fsutil

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// OS is the production FS, backed by the operating system's
// filesystem. Uniqueness of temp file names across concurrent callers
// is guaranteed by suffixing each name with a fresh UUID, the same
// technique the job-queue storage layer this driver was adapted from
// uses to key records.
type OS struct{}

// TempFile creates an empty file named "<prefix>-<uuid>" under dir and
// returns its path.
func (OS) TempFile(dir, prefix string) (string, error) {
	path := filepath.Join(dir, prefix+"-"+uuid.NewString())
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", err
	}
	return path, f.Close()
}

// Unlink removes path, treating "already gone" as success.
func (OS) Unlink(path string) error {
	err := os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// CreateDirectories creates path and any missing parents.
func (OS) CreateDirectories(path string) error {
	return os.MkdirAll(path, 0o755)
}
