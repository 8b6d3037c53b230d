package session

//go:generate mockgen -destination=mock_$GOPACKAGE/$GOFILE . Logger,Source

type Logger interface {
	Info(s string)
	Warn(s string)
}

// Source obtains a session token from the user.
type Source interface {
	Confirm(question string, defaultYes bool) (yes bool, err error)
	ReadLine(prompt string) (line string, err error)
}
