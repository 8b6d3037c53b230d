// Package login obtains a session token from the device with
// its two step challenge response login.
package login

import (
	"context"
	"fmt"
	"strings"

	"github.com/qdm12/vtoctl/internal/digest"
	"github.com/qdm12/vtoctl/internal/errors"
	"github.com/qdm12/vtoctl/internal/models"
	"github.com/qdm12/vtoctl/internal/rpc"
	"golang.org/x/text/encoding"
)

const (
	method           = "global.login"
	challengeID      = 4
	authenticationID = 5
)

type Settings struct {
	// ClientType is sent as the login client type, usually Web3.0.
	ClientType string
	// Encoding encodes credentials before hashing them.
	Encoding encoding.Encoding
}

// Handshake logs in once, with exactly two round trips to the device.
// It is not safe for concurrent use.
type Handshake struct {
	caller     Caller
	saver      SessionSaver
	logger     Logger
	clientType string
	encoding   encoding.Encoding
	state      State
}

func New(caller Caller, saver SessionSaver, logger Logger,
	settings Settings) *Handshake {
	return &Handshake{
		caller:     caller,
		saver:      saver,
		logger:     logger,
		clientType: settings.ClientType,
		encoding:   settings.Encoding,
	}
}

func (h *Handshake) State() State {
	return h.state
}

type loginParams struct {
	UserName      string `json:"userName"`
	Password      string `json:"password"`
	ClientType    string `json:"clientType"`
	AuthorityType string `json:"authorityType,omitempty"`
	PasswordType  string `json:"passwordType,omitempty"`
}

// Login requests a challenge, answers it with the credentials digest
// and saves the resulting session token. Nothing is saved on failure,
// and the handshake cannot be used again after it returns.
func (h *Handshake) Login(ctx context.Context, credentials models.Credentials) (
	token string, err error) {
	if h.state != StateUnauthenticated {
		return "", fmt.Errorf("%w: in state %s", errors.ErrHandshakeFinished, h.state)
	}

	if !credentials.Complete() {
		h.state = StateFailed
		return "", fmt.Errorf("%w: %w: %s", errors.ErrInput,
			errors.ErrNoCredentials, credentials)
	}

	challenge, err := h.requestChallenge(ctx, credentials.Username)
	if err != nil {
		h.state = StateFailed
		return "", fmt.Errorf("requesting challenge: %w", err)
	}
	h.state = StateChallengeIssued

	token, err = h.authenticate(ctx, credentials, challenge)
	if err != nil {
		h.state = StateFailed
		return "", fmt.Errorf("authenticating: %w", err)
	}
	h.state = StateAuthenticated

	h.saver.Save(token)
	return token, nil
}

func (h *Handshake) requestChallenge(ctx context.Context, username string) (
	challenge models.Challenge, err error) {
	request := rpc.Request{
		Method: method,
		Params: loginParams{
			UserName:   username,
			ClientType: h.clientType,
		},
		ID: challengeID,
	}

	response, err := h.caller.Call(ctx, rpc.LoginPath, request)
	if err != nil {
		return challenge, err
	}

	if !response.Succeeded() || !rpc.Truthy(response.Params) {
		return challenge, fmt.Errorf("%w: %w: result %s with params %s",
			errors.ErrProtocol, errors.ErrChallengeIncomplete,
			rpc.RawOrNull(response.Result), rpc.RawOrNull(response.Params))
	}

	challenge = models.Challenge{
		Realm:   response.Param("realm"),
		Random:  response.Param("random"),
		Session: response.ResolveSession(),
	}

	if !challenge.Complete() {
		return models.Challenge{}, fmt.Errorf("%w: %w: missing %s",
			errors.ErrProtocol, errors.ErrChallengeIncomplete, missingFields(challenge))
	}

	h.logger.Debug("received challenge with realm " + challenge.Realm +
		" and random " + challenge.Random)
	return challenge, nil
}

func (h *Handshake) authenticate(ctx context.Context, credentials models.Credentials,
	challenge models.Challenge) (token string, err error) {
	passwordDigest, err := digest.Derive(credentials.Username, credentials.Password,
		challenge.Realm, challenge.Random, h.encoding)
	if err != nil {
		return "", fmt.Errorf("computing digest: %w", err)
	}

	request := rpc.Request{
		Method: method,
		Params: loginParams{
			UserName:      credentials.Username,
			Password:      passwordDigest,
			ClientType:    h.clientType,
			AuthorityType: "Default",
			PasswordType:  "Default",
		},
		ID:      authenticationID,
		Session: rpc.SessionID(challenge.Session),
	}

	response, err := h.caller.Call(ctx, rpc.LoginPath, request)
	if err != nil {
		return "", err
	}

	if !response.Succeeded() {
		return "", fmt.Errorf("%w: %w: %s", errors.ErrProtocol,
			errors.ErrLoginRejected, rpc.RawOrNull(response.Error))
	}

	token = response.ResolveSession()
	if token == "" {
		return "", fmt.Errorf("%w: %w", errors.ErrProtocol, errors.ErrSessionIsEmpty)
	}

	return token, nil
}

func missingFields(challenge models.Challenge) string {
	var missing []string
	if challenge.Realm == "" {
		missing = append(missing, "realm")
	}
	if challenge.Random == "" {
		missing = append(missing, "random")
	}
	if challenge.Session == "" {
		missing = append(missing, "session")
	}
	return strings.Join(missing, ", ")
}
