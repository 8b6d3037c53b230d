package models

// Credentials are the device address and the account used to log in.
type Credentials struct {
	IP       string
	Username string
	Password string
}

// Complete returns true if none of the fields is empty.
func (c Credentials) Complete() bool {
	return c.IP != "" && c.Username != "" && c.Password != ""
}

func (c Credentials) String() string {
	password := "[not set]"
	if c.Password != "" {
		password = "[set]"
	}
	return "[ip: " + c.IP + " | username: " + c.Username + " | password: " + password + "]"
}
