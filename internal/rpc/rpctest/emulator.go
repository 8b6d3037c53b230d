package rpctest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/qdm12/vtoctl/internal/digest"
	"golang.org/x/text/encoding/charmap"
)

// Emulator implements the device login handshake and accepts any
// method call carrying the session it issued.
type Emulator struct {
	Username    string
	Password    string
	Realm       string
	Random      string
	TempSession string
	Session     string
	// ObjectID is returned as result of factory instance methods.
	ObjectID int

	t      *testing.T
	server *httptest.Server
	mutex  sync.Mutex
	calls  []Received
}

// Start starts the emulator server, closed at the end of the test.
func (e *Emulator) Start(t *testing.T) {
	t.Helper()
	e.t = t

	router := chi.NewRouter()
	router.Post(loginPath, e.handleLogin)
	router.Post(callPath, e.handleCall)
	e.server = httptest.NewServer(router)
	t.Cleanup(e.server.Close)
}

func (e *Emulator) Host() string {
	return e.server.Listener.Addr().String()
}

func (e *Emulator) Client() *http.Client {
	return e.server.Client()
}

// Calls returns the method calls received on the call endpoint.
func (e *Emulator) Calls() []Received {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	calls := make([]Received, len(e.calls))
	copy(calls, e.calls)
	return calls
}

func (e *Emulator) handleLogin(w http.ResponseWriter, r *http.Request) {
	body := decodeBody(e.t, r.Body)
	params, _ := body["params"].(map[string]any)
	password, _ := params["password"].(string)
	userName, _ := params["userName"].(string)

	if password == "" {
		e.write(w, map[string]any{
			"id":     body["id"],
			"result": true,
			"params": map[string]any{
				"realm":      e.Realm,
				"random":     e.Random,
				"encryption": "Default",
			},
			"session": e.TempSession,
		})
		return
	}

	expected, err := digest.Derive(e.Username, e.Password, e.Realm, e.Random, charmap.ISO8859_1)
	if err != nil {
		e.t.Errorf("computing expected digest: %s", err)
	}

	if userName != e.Username || password != expected || body["session"] != e.TempSession {
		e.write(w, map[string]any{
			"id":     body["id"],
			"result": false,
			"error":  map[string]any{"code": 268632079, "message": "Login failed"},
			"params": map[string]any{"realm": e.Realm, "random": e.Random},
		})
		return
	}

	e.write(w, map[string]any{
		"id":      body["id"],
		"result":  true,
		"params":  map[string]any{"keepAliveInterval": 60},
		"session": e.Session,
	})
}

func (e *Emulator) handleCall(w http.ResponseWriter, r *http.Request) {
	body := decodeBody(e.t, r.Body)

	e.mutex.Lock()
	e.calls = append(e.calls, Received{Path: r.URL.Path, Body: body})
	e.mutex.Unlock()

	if body["session"] != e.Session {
		e.write(w, map[string]any{
			"id":     body["id"],
			"result": false,
			"error":  map[string]any{"code": 287637505, "message": "Invalid session in request data!"},
		})
		return
	}

	var result any = true
	if method, _ := body["method"].(string); method == "accessControl.factory.instance" {
		result = e.ObjectID
	}

	e.write(w, map[string]any{
		"id":      body["id"],
		"result":  result,
		"session": e.Session,
	})
}

func (e *Emulator) write(w http.ResponseWriter, response map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		e.t.Errorf("encoding response: %s", err)
	}
}
