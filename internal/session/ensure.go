package session

import (
	"fmt"
	"strings"

	"github.com/qdm12/vtoctl/internal/errors"
)

// Ensure returns the stored session token. If there is none and
// interactive is true, it offers the user to enter one manually,
// saving it if it is not empty.
func (f *File) Ensure(interactive bool, source Source) (token string, err error) {
	token, err = f.Load()
	if err == nil {
		return token, nil
	}

	if !interactive {
		return "", fmt.Errorf("%w: %w: %s: run vtoctl login first to create it",
			errors.ErrConfig, errors.ErrNoSession, err)
	}

	f.logger.Warn("no session id found in " + f.path +
		", please run vtoctl login first to obtain one")
	yes, err := source.Confirm("Would you like to enter a session id manually now?", true)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrInput, err)
	}
	if !yes {
		return "", fmt.Errorf("%w: %w: no session id provided, run vtoctl login to create one",
			errors.ErrConfig, errors.ErrNoSession)
	}

	line, err := source.ReadLine("Enter session id: ")
	if err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrInput, err)
	}
	token = strings.TrimSpace(line)
	if token == "" {
		return "", fmt.Errorf("%w: %w: empty session id", errors.ErrInput, errors.ErrSessionIsEmpty)
	}

	f.Save(token)
	return token, nil
}
