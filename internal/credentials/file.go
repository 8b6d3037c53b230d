// Package credentials stores and obtains the device credentials.
package credentials

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/qdm12/vtoctl/internal/errors"
	"github.com/qdm12/vtoctl/internal/models"
)

// File stores credentials in plaintext as key=value lines.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Location() string {
	return f.path
}

// Read parses the file. Blank lines, lines starting with # and
// lines without = are ignored. Keys are case insensitive.
func (f *File) Read() (credentials models.Credentials, err error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return credentials, fmt.Errorf("%w: credentials file %s", errors.ErrNotFound, f.path)
		}
		return credentials, fmt.Errorf("%w: %w", errors.ErrIO, err)
	}

	values := parseKeyValues(data)
	return models.Credentials{
		IP:       values["ip"],
		Username: values["username"],
		Password: values["password"],
	}, nil
}

func parseKeyValues(data []byte) (values map[string]string) {
	values = make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		values[key] = strings.TrimSpace(value)
	}
	return values
}

// Load returns the credentials from the file, or an error wrapping
// errors.ErrNotFound if the file does not exist or is incomplete.
func (f *File) Load() (credentials models.Credentials, err error) {
	return Load(f)
}

// Save overwrites the file, creating its parent directories if needed.
func (f *File) Save(credentials models.Credentials) (err error) {
	const dirPerms = fs.FileMode(0o700)
	err = os.MkdirAll(filepath.Dir(f.path), dirPerms)
	if err != nil {
		return fmt.Errorf("%w: creating directory: %w", errors.ErrIO, err)
	}

	data := "# Plaintext credentials for the door station\n" +
		"ip=" + credentials.IP + "\n" +
		"username=" + credentials.Username + "\n" +
		"password=" + credentials.Password + "\n"

	const filePerms = fs.FileMode(0o600)
	err = os.WriteFile(f.path, []byte(data), filePerms)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrIO, err)
	}
	return nil
}
