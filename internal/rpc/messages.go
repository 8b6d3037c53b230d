package rpc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Request is the body of every call to the device.
type Request struct {
	Method  string          `json:"method"`
	Params  any             `json:"params"`
	ID      int             `json:"id"`
	Session SessionID       `json:"session,omitempty"`
	Object  json.RawMessage `json:"object,omitempty"`
}

// Response is the body of every reply from the device. Result, Params
// and Error are left raw since their content depends on the method.
// The id echoed by the device is ignored.
type Response struct {
	Result  json.RawMessage `json:"result"`
	Params  json.RawMessage `json:"params"`
	Session SessionID       `json:"session"`
	Error   json.RawMessage `json:"error"`
}

// Succeeded returns true if the result field is truthy.
func (r Response) Succeeded() bool {
	return Truthy(r.Result)
}

// RawOrNull returns the raw JSON value, or null if it is absent.
func RawOrNull(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "null"
	}
	return string(raw)
}

// SessionID is a session identifier which some firmwares send as a
// JSON number instead of a JSON string.
type SessionID string

func (s *SessionID) UnmarshalJSON(b []byte) (err error) {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*s = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var value string
		err = json.Unmarshal(b, &value)
		if err != nil {
			return err
		}
		*s = SessionID(value)
		return nil
	default:
		var number json.Number
		err = json.Unmarshal(b, &number)
		if err != nil {
			return fmt.Errorf("session is neither a string nor a number: %w", err)
		}
		*s = SessionID(number.String())
		return nil
	}
}

// Truthy returns false for an absent value and for the JSON values
// false, null, 0, "", [] and {}, and true otherwise.
func Truthy(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}

	switch raw[0] {
	case 'n', 'f':
		return false
	case 't':
		return true
	case '"':
		return len(raw) > len(`""`)
	case '[', '{':
		var value any
		err := json.Unmarshal(raw, &value)
		if err != nil {
			return false
		}
		switch typed := value.(type) {
		case []any:
			return len(typed) > 0
		case map[string]any:
			return len(typed) > 0
		}
		return false
	default:
		number, err := strconv.ParseFloat(string(raw), 64)
		return err == nil && number != 0
	}
}

// Param returns the string value of the field key in the params object,
// or the empty string if it is absent or not a string or number.
func (r Response) Param(key string) string {
	var params map[string]json.RawMessage
	err := json.Unmarshal(r.Params, &params)
	if err != nil {
		return ""
	}

	var value SessionID
	err = json.Unmarshal(params[key], &value)
	if err != nil {
		return ""
	}
	return string(value)
}

// ResolveSession returns the session id from the top level session
// field, falling back to the session field of the params object.
func (r Response) ResolveSession() string {
	if r.Session != "" {
		return string(r.Session)
	}
	return r.Param("session")
}
