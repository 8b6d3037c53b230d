package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/qdm12/vtoctl/internal/errors"
)

const (
	// LoginPath is the endpoint for the login handshake.
	LoginPath = "/RPC2_Login"
	// CallPath is the endpoint for calls carrying a session.
	CallPath = "/RPC2"
)

// Client posts JSON requests to a single device.
type Client struct {
	httpClient *http.Client
	baseURL    url.URL
}

// New creates a client for the device at host, which can be an
// IP address or a host name with an optional port.
func New(httpClient *http.Client, scheme, host string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL: url.URL{
			Scheme: scheme,
			Host:   host,
		},
	}
}

// URL returns the full URL for the endpoint path.
func (c *Client) URL(path string) string {
	u := c.baseURL
	u.Path = path
	return u.String()
}

// Call posts the JSON encoded request to the endpoint path and decodes
// the JSON response. It does not check the response result.
func (c *Client) Call(ctx context.Context, path string, request Request) (
	response Response, err error) {
	buffer := bytes.NewBuffer(nil)
	encoder := json.NewEncoder(buffer)
	err = encoder.Encode(request)
	if err != nil {
		return response, fmt.Errorf("%w: %w", errors.ErrRequestEncode, err)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(path), buffer)
	if err != nil {
		return response, fmt.Errorf("%w: %w", errors.ErrBadRequest, err)
	}
	httpRequest.Header.Set("Content-Type", "application/json")

	httpResponse, err := c.httpClient.Do(httpRequest)
	if err != nil {
		return response, fmt.Errorf("%w: %w", errors.ErrNetwork, err)
	}

	if httpResponse.StatusCode < http.StatusOK ||
		httpResponse.StatusCode >= http.StatusMultipleChoices {
		_ = httpResponse.Body.Close()
		return response, fmt.Errorf("%w: %w: %d %s", errors.ErrNetwork,
			errors.ErrBadHTTPStatus, httpResponse.StatusCode,
			http.StatusText(httpResponse.StatusCode))
	}

	decoder := json.NewDecoder(httpResponse.Body)
	err = decoder.Decode(&response)
	if err != nil {
		_ = httpResponse.Body.Close()
		return response, fmt.Errorf("%w: %w: %w",
			errors.ErrProtocol, errors.ErrUnmarshalResponse, err)
	}

	err = httpResponse.Body.Close()
	if err != nil {
		return response, fmt.Errorf("%w: closing response body: %w", errors.ErrNetwork, err)
	}

	return response, nil
}
