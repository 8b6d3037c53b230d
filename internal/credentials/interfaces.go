package credentials

import "github.com/qdm12/vtoctl/internal/models"

//go:generate mockgen -destination=mock_$GOPACKAGE/$GOFILE . Storage,Source,Logger

// Storage persists credentials. File is the plaintext implementation.
type Storage interface {
	// Read returns the stored credentials, which can be incomplete,
	// or an error wrapping errors.ErrNotFound if nothing is stored.
	Read() (credentials models.Credentials, err error)
	Save(credentials models.Credentials) (err error)
	// Location describes where credentials are stored for the user.
	Location() string
}

// Source obtains credentials from the user.
type Source interface {
	Confirm(question string, defaultYes bool) (yes bool, err error)
	ReadLine(prompt string) (line string, err error)
	ReadPassword(prompt string) (password string, err error)
}

type Logger interface {
	Info(s string)
	Warn(s string)
}
