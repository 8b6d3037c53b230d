// Package rpctest provides HTTP servers emulating the device
// RPC endpoints for tests.
package rpctest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

const (
	loginPath = "/RPC2_Login"
	callPath  = "/RPC2"
)

// Reply is a scripted reply to a single request.
type Reply struct {
	// Path is the expected request path.
	Path string
	// Status defaults to 200.
	Status int
	Body   string
}

// Received is a request received by a server.
type Received struct {
	Path string
	Body map[string]any
}

// Scripted answers requests with replies in order, and fails
// the test on unexpected or missing requests.
type Scripted struct {
	t        *testing.T
	server   *httptest.Server
	mutex    sync.Mutex
	replies  []Reply
	received []Received
}

// NewScripted starts a server replying with replies in order. It is
// closed and checked for unconsumed replies at the end of the test.
func NewScripted(t *testing.T, replies ...Reply) *Scripted {
	t.Helper()

	s := &Scripted{
		t:       t,
		replies: replies,
	}

	router := chi.NewRouter()
	router.Post(loginPath, s.handle)
	router.Post(callPath, s.handle)
	s.server = httptest.NewServer(router)

	t.Cleanup(func() {
		s.server.Close()
		s.mutex.Lock()
		defer s.mutex.Unlock()
		if len(s.replies) > 0 {
			t.Errorf("%d scripted replies were not consumed", len(s.replies))
		}
	})

	return s
}

// Host returns the host:port of the server.
func (s *Scripted) Host() string {
	return s.server.Listener.Addr().String()
}

func (s *Scripted) Client() *http.Client {
	return s.server.Client()
}

// Received returns the requests received so far.
func (s *Scripted) Received() []Received {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	received := make([]Received, len(s.received))
	copy(received, s.received)
	return received
}

func (s *Scripted) handle(w http.ResponseWriter, r *http.Request) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	body := decodeBody(s.t, r.Body)
	s.received = append(s.received, Received{Path: r.URL.Path, Body: body})

	if len(s.replies) == 0 {
		s.t.Errorf("unexpected request to %s: %v", r.URL.Path, body)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	reply := s.replies[0]
	s.replies = s.replies[1:]

	if reply.Path != "" && reply.Path != r.URL.Path {
		s.t.Errorf("expected request to %s but got request to %s", reply.Path, r.URL.Path)
	}

	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, reply.Body)
}

func decodeBody(t *testing.T, body io.Reader) (decoded map[string]any) {
	t.Helper()
	err := json.NewDecoder(body).Decode(&decoded)
	if err != nil {
		t.Errorf("decoding request body: %s", err)
	}
	return decoded
}
