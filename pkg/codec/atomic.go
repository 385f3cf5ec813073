package codec

import (
	"os"
	"path/filepath"

	errs "github.com/matzehuels/hexhalftone/pkg/errors"
)

// WriteFileAtomic writes data to path by way of a temporary file in the same
// directory that is synced and then renamed over path. On any failure the
// temporary file is removed and path is left untouched.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	if err := errs.ValidatePath(path); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errs.Wrap(errs.ErrCodeWriteFailed, err, "create temporary file in %s", dir)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return errs.Wrap(errs.ErrCodeWriteFailed, err, "write %s", path)
	}
	if err = tmp.Sync(); err != nil {
		return errs.Wrap(errs.ErrCodeWriteFailed, err, "sync %s", path)
	}
	if err = tmp.Chmod(perm); err != nil {
		return errs.Wrap(errs.ErrCodeWriteFailed, err, "chmod %s", path)
	}
	if err = tmp.Close(); err != nil {
		return errs.Wrap(errs.ErrCodeWriteFailed, err, "close %s", path)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errs.Wrap(errs.ErrCodeWriteFailed, err, "commit %s", path)
	}
	return nil
}
