// Package session persists the device session token to a file.
package session

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/qdm12/vtoctl/internal/errors"
)

// File stores a single session token in a file, overwritten on each save.
// It does no locking, and concurrent saves race to overwrite each other.
type File struct {
	path   string
	logger Logger
}

func New(path string, logger Logger) *File {
	return &File{
		path:   path,
		logger: logger,
	}
}

func (f *File) Path() string {
	return f.path
}

// Load returns the trimmed session token from the file, or an
// error wrapping errors.ErrNotFound if the file is absent, empty or
// cannot be read. Read errors other than absence are logged.
func (f *File) Load() (token string, err error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if !stderrors.Is(err, fs.ErrNotExist) {
			f.logger.Warn("cannot read session file: " + err.Error())
		}
		return "", fmt.Errorf("%w: session file %s", errors.ErrNotFound, f.path)
	}

	token = strings.TrimSpace(string(b))
	if token == "" {
		return "", fmt.Errorf("%w: session file %s is empty", errors.ErrNotFound, f.path)
	}

	return token, nil
}

// Save overwrites the file with the token. A write failure is
// only logged.
func (f *File) Save(token string) {
	err := f.write(token)
	if err != nil {
		f.logger.Warn("cannot write session file: " + err.Error())
		return
	}
	f.logger.Info("saved session id to " + f.path)
}

func (f *File) write(token string) (err error) {
	const dirPerms = fs.FileMode(0o700)
	err = os.MkdirAll(filepath.Dir(f.path), dirPerms)
	if err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	const filePerms = fs.FileMode(0o600)
	data := []byte(strings.TrimSpace(token) + "\n")
	return os.WriteFile(f.path, data, filePerms)
}
