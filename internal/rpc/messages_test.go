package rpc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Truthy(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		raw    string
		truthy bool
	}{
		"absent":           {},
		"spaces only":      {raw: "  "},
		"null":             {raw: "null"},
		"false":            {raw: "false"},
		"true":             {raw: "true", truthy: true},
		"padded true":      {raw: " true\n", truthy: true},
		"zero":             {raw: "0"},
		"zero float":       {raw: "0.0"},
		"object id":        {raw: "21571504", truthy: true},
		"negative":         {raw: "-1", truthy: true},
		"empty string":     {raw: `""`},
		"string":           {raw: `"x"`, truthy: true},
		"empty array":      {raw: "[]"},
		"array":            {raw: "[0]", truthy: true},
		"empty object":     {raw: "{ }"},
		"object":           {raw: `{"a":1}`, truthy: true},
		"malformed object": {raw: "{"},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			truthy := Truthy(json.RawMessage(testCase.raw))

			assert.Equal(t, testCase.truthy, truthy)
		})
	}
}

func Test_Response_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		body       string
		session    string
		succeeded  bool
		realm      string
		errMessage string
	}{
		"challenge": {
			body:      `{"result":true,"params":{"realm":"Login1","random":"123456"},"session":"abc"}`,
			session:   "abc",
			succeeded: true,
			realm:     "Login1",
		},
		"numeric session": {
			body:      `{"result":true,"session":1234567}`,
			session:   "1234567",
			succeeded: true,
		},
		"session in params": {
			body:      `{"result":true,"params":{"session":"nested"}}`,
			session:   "nested",
			succeeded: true,
		},
		"top level session first": {
			body:      `{"result":true,"params":{"session":"nested"},"session":"top"}`,
			session:   "top",
			succeeded: true,
		},
		"null session": {
			body: `{"result":false,"session":null,"error":{"code":268632079}}`,
		},
		"session as object": {
			body:       `{"result":true,"session":{}}`,
			errMessage: "session is neither a string nor a number",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var response Response
			err := json.Unmarshal([]byte(testCase.body), &response)

			if testCase.errMessage != "" {
				require.ErrorContains(t, err, testCase.errMessage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.session, response.ResolveSession())
			assert.Equal(t, testCase.succeeded, response.Succeeded())
			assert.Equal(t, testCase.realm, response.Param("realm"))
		})
	}
}

func Test_Request_MarshalJSON(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		request Request
		json    string
	}{
		"without session": {
			request: Request{
				Method: "global.login",
				Params: map[string]string{"userName": "admin"},
				ID:     4,
			},
			json: `{"method":"global.login","params":{"userName":"admin"},"id":4}`,
		},
		"with session and object": {
			request: Request{
				Method:  "accessControl.openDoor",
				Params:  map[string]any{"Type": "Remote"},
				ID:      2,
				Session: "abc",
				Object:  json.RawMessage(`21571504`),
			},
			json: `{"method":"accessControl.openDoor","params":{"Type":"Remote"},"id":2,` +
				`"session":"abc","object":21571504}`,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			b, err := json.Marshal(testCase.request)

			require.NoError(t, err)
			assert.JSONEq(t, testCase.json, string(b))
		})
	}
}
