package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/qdm12/gosettings"
	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gosettings/validate"
	"github.com/qdm12/gotree"
	"github.com/qdm12/vtoctl/internal/digest"
	"github.com/qdm12/vtoctl/internal/models"
)

type Device struct {
	IP           *string
	Username     *string
	Password     *string
	Scheme       string
	ClientType   string
	HashEncoding string
	DoorChannel  *uint16
	Interactive  *bool
}

func (d *Device) setDefaults() {
	d.IP = gosettings.DefaultPointer(d.IP, "")
	d.Username = gosettings.DefaultPointer(d.Username, "")
	d.Password = gosettings.DefaultPointer(d.Password, "")
	d.Scheme = gosettings.DefaultComparable(d.Scheme, "http")
	d.ClientType = gosettings.DefaultComparable(d.ClientType, "Web3.0")
	d.HashEncoding = gosettings.DefaultComparable(d.HashEncoding, digest.Latin1)
	d.DoorChannel = gosettings.DefaultPointer(d.DoorChannel, 0)
	d.Interactive = gosettings.DefaultPointer(d.Interactive, true)
}

var ErrCredentialsPartial = errors.New("credentials are partially set")

func (d Device) Validate() (err error) {
	err = validate.IsOneOf(d.Scheme, "http", "https")
	if err != nil {
		return fmt.Errorf("scheme: %w", err)
	}

	_, err = digest.Encoding(d.HashEncoding)
	if err != nil {
		return fmt.Errorf("hash encoding: %w", err)
	}

	if *d.Username == "" && *d.Password == "" {
		return nil
	}
	keyValues := []struct{ key, value string }{
		{key: "DEVICE_IP", value: *d.IP},
		{key: "DEVICE_USERNAME", value: *d.Username},
		{key: "DEVICE_PASSWORD", value: *d.Password},
	}
	var missing []string
	for _, keyValue := range keyValues {
		if keyValue.value == "" {
			missing = append(missing, keyValue.key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s must be set as well",
			ErrCredentialsPartial, strings.Join(missing, ", "))
	}

	return nil
}

// Credentials returns the credentials set in the environment, and
// false if they are not set.
func (d Device) Credentials() (credentials models.Credentials, ok bool) {
	credentials = models.Credentials{
		IP:       *d.IP,
		Username: *d.Username,
		Password: *d.Password,
	}
	return credentials, credentials.Complete()
}

func (d Device) String() string {
	return d.toLinesNode().String()
}

func (d Device) toLinesNode() *gotree.Node {
	node := gotree.New("Device")
	if credentials, ok := d.Credentials(); ok {
		node.Appendf("Credentials: %s", credentials)
	} else {
		node.Appendf("Credentials: from file or prompt")
	}
	node.Appendf("Scheme: %s", d.Scheme)
	node.Appendf("Client type: %s", d.ClientType)
	node.Appendf("Hash encoding: %s", d.HashEncoding)
	node.Appendf("Door channel: %d", *d.DoorChannel)
	node.Appendf("Interactive: %s", gosettings.BoolToYesNo(d.Interactive))
	return node
}

func (d *Device) read(r *reader.Reader) (err error) {
	d.IP = r.Get("DEVICE_IP")
	d.Username = r.Get("DEVICE_USERNAME", reader.ForceLowercase(false))
	d.Password = r.Get("DEVICE_PASSWORD", reader.ForceLowercase(false))
	d.Scheme = r.String("DEVICE_SCHEME")
	d.ClientType = r.String("DEVICE_CLIENT_TYPE", reader.ForceLowercase(false))
	d.HashEncoding = r.String("HASH_ENCODING")

	d.DoorChannel, err = r.Uint16Ptr("DOOR_CHANNEL")
	if err != nil {
		return err
	}

	d.Interactive, err = r.BoolPtr("INTERACTIVE")
	return err
}
