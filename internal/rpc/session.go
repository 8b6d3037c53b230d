package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/qdm12/vtoctl/internal/errors"
)

// Session calls methods on the device with a session token obtained
// by logging in. It is not safe for concurrent use.
type Session struct {
	client *Client
	token  string
	nextID int
}

func NewSession(client *Client, token string) *Session {
	return &Session{
		client: client,
		token:  token,
		nextID: 1,
	}
}

// Call calls the method with its params and optional object id, and
// returns an error if the device result is not truthy.
func (s *Session) Call(ctx context.Context, method string, params any,
	object json.RawMessage) (response Response, err error) {
	response, err = s.Query(ctx, method, params, object)
	if err != nil {
		return response, err
	}

	if !response.Succeeded() {
		return response, unsuccessful(method, response)
	}
	return response, nil
}

// Query is like Call but only fails if the device reports an error,
// so falsy results such as 0 are returned as is.
func (s *Session) Query(ctx context.Context, method string, params any,
	object json.RawMessage) (response Response, err error) {
	request := Request{
		Method:  method,
		Params:  params,
		ID:      s.nextID,
		Session: SessionID(s.token),
		Object:  object,
	}
	s.nextID++

	response, err = s.client.Call(ctx, CallPath, request)
	if err != nil {
		return response, fmt.Errorf("calling %s: %w", method, err)
	}

	if Truthy(response.Error) {
		return response, unsuccessful(method, response)
	}
	return response, nil
}

func unsuccessful(method string, response Response) error {
	return fmt.Errorf("%w: %w: %s returned result %s with error %s",
		errors.ErrProtocol, errors.ErrUnsuccessfulCall, method,
		RawOrNull(response.Result), RawOrNull(response.Error))
}
