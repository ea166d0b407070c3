package store

import (
	"fmt"
	"os"
	"path/filepath"

	"vidgrab/internal/domain/consts"
	"vidgrab/internal/logging"
)

// renameFile commits a finished temp file. Tests swap it to force the fallback path.
var renameFile = os.Rename

// writeDoc writes data to path through a temp file in the same directory and a rename.
//
// If any step of the atomic sequence fails, the data is written directly instead.
func writeDoc(path string, data []byte) error {
	if err := writeFileAtomic(path, data); err != nil {
		logging.W("Atomic write of %q failed, writing directly: %v", path, err)
		if err := os.WriteFile(path, data, consts.PermsDocFile); err != nil {
			return fmt.Errorf("failed to write %q: %w", path, err)
		}
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, consts.PermsGenericDir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(consts.PermsDocFile); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := renameFile(tmpName, path); err != nil {
		os.Remove(tmpName)
		committed = true
		return err
	}
	committed = true
	return nil
}
