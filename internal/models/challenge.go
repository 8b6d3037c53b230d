package models

// Challenge is sent by the device in response to a login request
// with an empty password. Realm and Random are only valid for the
// temporary session Session.
type Challenge struct {
	Realm   string
	Random  string
	Session string
}

func (c Challenge) Complete() bool {
	return c.Realm != "" && c.Random != "" && c.Session != ""
}
