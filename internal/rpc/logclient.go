package rpc

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"strings"
)

//go:generate mockgen -destination=mock_$GOPACKAGE/$GOFILE . DebugLogger

type DebugLogger interface {
	Debug(s string)
}

// NewLoggingClient returns a copy of client logging every exchange with
// the device on a single line, with JSON bodies compacted.
func NewLoggingClient(client *http.Client, logger DebugLogger) (newClient *http.Client) {
	copied := *client
	transport := client.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	copied.Transport = &loggingTransport{
		next:   transport,
		logger: logger,
	}
	return &copied
}

type loggingTransport struct {
	next   http.RoundTripper
	logger DebugLogger
}

func (l *loggingTransport) RoundTrip(request *http.Request) (
	response *http.Response, err error) {
	var body string
	if request.Body != nil && request.Body != http.NoBody {
		request.Body, body = drainBody(request.Body)
	}
	l.logger.Debug(exchangeLine(request.Method+" "+request.URL.String(),
		request.Header, body))

	response, err = l.next.RoundTrip(request)
	if err != nil {
		return nil, err
	}

	body = ""
	if response.Body != nil {
		response.Body, body = drainBody(response.Body)
	}
	l.logger.Debug(exchangeLine(response.Status, response.Header, body))
	return response, nil
}

func exchangeLine(start string, header http.Header, body string) string {
	parts := []string{start}
	if len(header) > 0 {
		parts = append(parts, "headers: "+headerToString(header))
	}
	if body != "" {
		parts = append(parts, "body: "+body)
	}
	return strings.Join(parts, " | ")
}

func headerToString(header http.Header) (s string) {
	keys := make([]string, 0, len(header))
	for key := range header {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fields := make([]string, len(keys))
	for i, key := range keys {
		fields[i] = key + ": " + strings.Join(header[key], ",")
	}
	return strings.Join(fields, "; ")
}

// drainBody reads the body fully and returns a replacement reader
// together with a single line rendition of its content.
func drainBody(body io.ReadCloser) (replacement io.ReadCloser, line string) {
	data, err := io.ReadAll(body)
	_ = body.Close()
	replacement = io.NopCloser(bytes.NewReader(data))
	if err != nil {
		return replacement, "error reading body: " + err.Error()
	}

	compacted := bytes.NewBuffer(nil)
	if json.Compact(compacted, data) == nil {
		return replacement, compacted.String()
	}
	return replacement, strings.Join(strings.Fields(string(data)), " ")
}
