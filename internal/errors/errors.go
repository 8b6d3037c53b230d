package errors

import "errors"

// Error kinds, wrapped by the more specific errors below at their use site
// so callers can classify failures with errors.Is.
var (
	ErrConfig   = errors.New("configuration error")
	ErrInput    = errors.New("input error")
	ErrIO       = errors.New("I/O error")
	ErrNetwork  = errors.New("network error")
	ErrProtocol = errors.New("protocol error")
)

var (
	ErrBadHTTPStatus       = errors.New("bad HTTP status")
	ErrBadRequest          = errors.New("bad request sent")
	ErrChallengeIncomplete = errors.New("challenge is incomplete")
	ErrEncodeCredentials   = errors.New("cannot encode credentials")
	ErrEncodingUnknown     = errors.New("encoding is unknown")
	ErrHandshakeFinished   = errors.New("handshake already finished")
	ErrLoginRejected       = errors.New("login rejected by device")
	ErrNoCredentials       = errors.New("no credentials available")
	ErrNoSession           = errors.New("no session available")
	ErrNotFound            = errors.New("not found")
	ErrRequestEncode       = errors.New("cannot encode request")
	ErrSessionIsEmpty      = errors.New("session is empty")
	ErrUnmarshalResponse   = errors.New("cannot unmarshal response")
	ErrUnsuccessfulCall    = errors.New("unsuccessful call")
)
