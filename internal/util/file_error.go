package util

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
)

// FileError names only the file, never the directory it sits in.
func FileError(op, path string, err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}
	return fmt.Errorf("failed to %s %s: %w", op, filepath.Base(path), err)
}
