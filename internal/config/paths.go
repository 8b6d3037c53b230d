package config

import (
	"os"
	"path/filepath"

	"github.com/qdm12/gosettings"
	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gotree"
)

type Paths struct {
	CredentialsFile *string
	SessionFile     *string
}

func (p *Paths) setDefaults() {
	directory := executableDirectory()
	p.CredentialsFile = gosettings.DefaultPointer(p.CredentialsFile,
		filepath.Join(directory, "credentials.txt"))
	p.SessionFile = gosettings.DefaultPointer(p.SessionFile,
		filepath.Join(directory, "session.txt"))
}

func executableDirectory() string {
	executable, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(executable)
}

func (p Paths) Validate() (err error) {
	return nil
}

func (p Paths) String() string {
	return p.toLinesNode().String()
}

func (p Paths) toLinesNode() *gotree.Node {
	node := gotree.New("Paths")
	node.Appendf("Credentials file: %s", *p.CredentialsFile)
	node.Appendf("Session file: %s", *p.SessionFile)
	return node
}

func (p *Paths) read(r *reader.Reader) {
	p.CredentialsFile = r.Get("CREDENTIALS_FILE", reader.ForceLowercase(false))
	p.SessionFile = r.Get("SESSION_FILE", reader.ForceLowercase(false))
}
