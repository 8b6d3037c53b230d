// Package config reads the program settings from environment variables.
package config

import (
	"fmt"

	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gotree"
)

type Config struct {
	Client   Client
	Device   Device
	Paths    Paths
	Logger   Logger
	Shoutrrr Shoutrrr
}

type Warner interface {
	Warnf(format string, a ...interface{})
}

func (c *Config) SetDefaults() {
	c.Client.setDefaults()
	c.Device.setDefaults()
	c.Paths.setDefaults()
	c.Logger.setDefaults()
	c.Shoutrrr.setDefaults()
}

func (c Config) Validate() (err error) {
	type validator interface {
		Validate() (err error)
	}
	toValidate := map[string]validator{
		"client":   &c.Client,
		"device":   &c.Device,
		"paths":    &c.Paths,
		"logger":   &c.Logger,
		"shoutrrr": &c.Shoutrrr,
	}

	for name, v := range toValidate {
		err = v.Validate()
		if err != nil {
			return fmt.Errorf("%s settings: %w", name, err)
		}
	}

	return nil
}

func (c Config) String() string {
	return c.toLinesNode().String()
}

func (c Config) toLinesNode() *gotree.Node {
	node := gotree.New("Settings summary:")
	node.AppendNode(c.Client.toLinesNode())
	node.AppendNode(c.Device.toLinesNode())
	node.AppendNode(c.Paths.toLinesNode())
	node.AppendNode(c.Logger.toLinesNode())
	node.AppendNode(c.Shoutrrr.ToLinesNode())
	return node
}

func (c *Config) Read(reader *reader.Reader, warner Warner) (err error) {
	err = c.Client.read(reader)
	if err != nil {
		return fmt.Errorf("reading client settings: %w", err)
	}

	err = c.Device.read(reader)
	if err != nil {
		return fmt.Errorf("reading device settings: %w", err)
	}
	if c.Device.Scheme == "https" {
		warner.Warnf("DEVICE_SCHEME https requires the device certificate " +
			"to be signed by a public certificate authority")
	}

	c.Paths.read(reader)

	err = c.Logger.read(reader)
	if err != nil {
		return fmt.Errorf("reading logger settings: %w", err)
	}

	c.Shoutrrr.read(reader)

	return nil
}
