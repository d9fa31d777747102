/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/suparena/drivelog/errors"
)

// SaveToLocal copies r into path. The data is written to a temporary file next to path
// and renamed into place, so path either holds the complete stream or is left untouched.
// New files get mode 0644; an existing file keeps its mode.
func SaveToLocal(r io.Reader, path string) error {
	if path == "" {
		return errors.NewValidationError("path", "must not be empty")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.NewIOError("mkdir", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.part")
	if err != nil {
		return errors.NewIOError("create", path, err)
	}
	tmpName := tmp.Name()

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewIOError("chmod", path, err)
	}

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewIOError("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.NewIOError("close", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.NewIOError("rename", path, err)
	}
	return nil
}
