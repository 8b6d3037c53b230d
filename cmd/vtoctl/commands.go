package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/qdm12/log"
	"github.com/qdm12/vtoctl/internal/accesscontrol"
	"github.com/qdm12/vtoctl/internal/config"
	"github.com/qdm12/vtoctl/internal/credentials"
	"github.com/qdm12/vtoctl/internal/digest"
	"github.com/qdm12/vtoctl/internal/errors"
	"github.com/qdm12/vtoctl/internal/login"
	"github.com/qdm12/vtoctl/internal/prompt"
	"github.com/qdm12/vtoctl/internal/rpc"
	"github.com/qdm12/vtoctl/internal/session"
)

type Notifier interface {
	NotifyLogin(host string, loginErr error)
}

type commands struct {
	config          config.Config
	client          *http.Client
	console         *prompt.Console
	stdout          io.Writer
	credentialsFile *credentials.File
	sessionFile     *session.File
	notifier        Notifier
	logger          log.LoggerInterface
}

var (
	ErrArgumentsCount = stderrors.New("wrong number of arguments")
	ErrArgumentJSON   = stderrors.New("argument is not valid JSON")
	ErrDeviceIPEmpty  = stderrors.New("device IP is empty")
)

func (c *commands) run(ctx context.Context, command string, args []string) (err error) {
	switch command {
	case "login":
		return c.login(ctx)
	case "session":
		return c.printSession()
	case "call":
		return c.call(ctx, args)
	case "open-door":
		return c.openDoor(ctx, args)
	case "add-user":
		return c.addUser(ctx, args)
	default:
		return fmt.Errorf("%w: %w: %s", errors.ErrInput, ErrCommandUnknown, command)
	}
}

func (c *commands) login(ctx context.Context) (err error) {
	deviceCredentials, fromEnv := c.config.Device.Credentials()
	if !fromEnv {
		logger := c.logger.New(log.SetComponent("credentials"))
		deviceCredentials, err = credentials.Resolve(c.credentialsFile,
			c.console, logger, *c.config.Device.Interactive)
		if err != nil {
			return err
		}
	}

	encoding, err := digest.Encoding(c.config.Device.HashEncoding)
	if err != nil {
		return err
	}

	client := rpc.New(c.client, c.config.Device.Scheme, deviceCredentials.IP)
	handshake := login.New(client, c.sessionFile, c.logger.New(log.SetComponent("login")),
		login.Settings{
			ClientType: c.config.Device.ClientType,
			Encoding:   encoding,
		})
	token, err := handshake.Login(ctx, deviceCredentials)
	c.notifier.NotifyLogin(deviceCredentials.IP, err)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}

	c.logger.Info("logged in to " + deviceCredentials.IP)
	_, err = fmt.Fprintln(c.stdout, token)
	return err
}

func (c *commands) printSession() (err error) {
	token, err := c.sessionFile.Ensure(*c.config.Device.Interactive, c.console)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.stdout, token)
	return err
}

// call runs `call <method> [params-json] [object-json]`.
func (c *commands) call(ctx context.Context, args []string) (err error) {
	const maxArgs = 3
	if len(args) == 0 || len(args) > maxArgs {
		return fmt.Errorf("%w: %w: usage is call <method> [params-json] [object-json]",
			errors.ErrInput, ErrArgumentsCount)
	}
	method := args[0]

	var params any
	if len(args) > 1 {
		params, err = parseJSONArgument("params", args[1])
		if err != nil {
			return err
		}
	}

	var object json.RawMessage
	if len(args) > 2 { //nolint:gomnd
		object, err = parseJSONArgument("object", args[2])
		if err != nil {
			return err
		}
	}

	rpcSession, err := c.authenticated()
	if err != nil {
		return err
	}

	response, err := rpcSession.Call(ctx, method, params, object)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}
	_, err = fmt.Fprintln(c.stdout, string(encoded))
	return err
}

func parseJSONArgument(name, s string) (raw json.RawMessage, err error) {
	raw = json.RawMessage(s)
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: %w: %s %s", errors.ErrInput, ErrArgumentJSON, name, s)
	}
	return raw, nil
}

// openDoor runs `open-door [user-id]`.
func (c *commands) openDoor(ctx context.Context, args []string) (err error) {
	if len(args) > 1 {
		return fmt.Errorf("%w: %w: usage is open-door [user-id]",
			errors.ErrInput, ErrArgumentsCount)
	}
	var userID string
	if len(args) == 1 {
		userID = args[0]
	}

	rpcSession, err := c.authenticated()
	if err != nil {
		return err
	}

	channel := int(*c.config.Device.DoorChannel)
	err = accesscontrol.New(rpcSession).OpenDoor(ctx, channel, userID)
	if err != nil {
		return err
	}
	c.logger.Info("opened door on channel " + strconv.Itoa(channel))
	return nil
}

// addUser runs `add-user <user-id> <name> <room> [card-no card-name]`.
func (c *commands) addUser(ctx context.Context, args []string) (err error) {
	const userArgs, userAndCardArgs = 3, 5
	if len(args) != userArgs && len(args) != userAndCardArgs {
		return fmt.Errorf("%w: %w: usage is add-user <user-id> <name> <room> [card-no card-name]",
			errors.ErrInput, ErrArgumentsCount)
	}
	user := accesscontrol.NewUser(args[0], args[1], args[2])

	rpcSession, err := c.authenticated()
	if err != nil {
		return err
	}
	accessControl := accesscontrol.New(rpcSession)

	err = accessControl.InsertUsers(ctx, []accesscontrol.User{user})
	if err != nil {
		return err
	}
	c.logger.Info("added user " + user.UserID)

	if len(args) == userArgs {
		return nil
	}

	card := accesscontrol.NewCard(args[3], args[4], user.UserID)
	err = accessControl.InsertCards(ctx, []accesscontrol.Card{card})
	if err != nil {
		return err
	}
	c.logger.Info("added card " + card.CardNo + " to user " + user.UserID)
	return nil
}

func (c *commands) authenticated() (rpcSession *rpc.Session, err error) {
	token, err := c.sessionFile.Ensure(*c.config.Device.Interactive, c.console)
	if err != nil {
		return nil, err
	}

	host, err := c.host()
	if err != nil {
		return nil, err
	}

	client := rpc.New(c.client, c.config.Device.Scheme, host)
	return rpc.NewSession(client, token), nil
}

// host returns the device IP address from the environment, the
// credentials file or the user, in this order.
func (c *commands) host() (host string, err error) {
	if *c.config.Device.IP != "" {
		return *c.config.Device.IP, nil
	}

	stored, err := c.credentialsFile.Read()
	switch {
	case err == nil && stored.IP != "":
		return stored.IP, nil
	case err == nil, stderrors.Is(err, errors.ErrNotFound):
	default:
		c.logger.Warn("cannot read device IP from credentials: " + err.Error())
	}

	if !*c.config.Device.Interactive {
		return "", fmt.Errorf("%w: %w: device IP is not set, "+
			"set DEVICE_IP or run vtoctl login first",
			errors.ErrConfig, errors.ErrNoCredentials)
	}

	host, err = c.console.ReadLine("Device IP: ")
	if err != nil {
		return "", fmt.Errorf("%w: reading device IP: %w", errors.ErrInput, err)
	}
	host = strings.TrimSpace(host)
	if host == "" {
		return "", fmt.Errorf("%w: %w", errors.ErrInput, ErrDeviceIPEmpty)
	}
	return host, nil
}
