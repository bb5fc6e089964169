package util

import (
	"bytes"
	"errors"
	"github.com/natefinch/atomic"
	"os"
	"path/filepath"
	"syscall"
)

// CheckFilePermissionsForExecution checks whether the given filePath owner, group and permissions
// are safe to use this file for execution by smartfan.
func CheckFilePermissionsForExecution(filePath string) (bool, error) {
	var file = filePath

	file, err := filepath.EvalSymlinks(file)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(file)
	if os.IsNotExist(err) {
		return false, errors.New("file not found")
	}
	if err != nil {
		return false, err
	}

	stat := info.Sys().(*syscall.Stat_t)
	if stat.Uid != 0 {
		return false, errors.New("owner is not root")
	}

	if stat.Gid != 0 {
		mode := info.Mode()
		groupWrite := mode & (os.FileMode(0o020))
		if groupWrite != 0 {
			return false, errors.New("group is not root but has write permission")
		}
	}

	otherWrite := info.Mode() & (os.FileMode(0o002))
	if otherWrite != 0 {
		return false, errors.New("others have write permission")
	}

	return true, nil
}

// WriteFileAtomic writes data to path by writing a temporary file in the same directory first,
// so readers never observe a partially written file.
func WriteFileAtomic(path string, data []byte) error {
	evaluatedPath, err := filepath.EvalSymlinks(path)
	if len(evaluatedPath) > 0 && err == nil {
		path = evaluatedPath
	}

	parentDir := filepath.Dir(path)
	if _, err := os.Stat(parentDir); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(parentDir, 0755); err != nil {
			return err
		}
	}

	return atomic.WriteFile(path, bytes.NewReader(data))
}
