package login

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/qdm12/vtoctl/internal/errors"
	"github.com/qdm12/vtoctl/internal/login/mock_login"
	"github.com/qdm12/vtoctl/internal/models"
	"github.com/qdm12/vtoctl/internal/rpc"
	"github.com/qdm12/vtoctl/internal/rpc/rpctest"
	"github.com/qdm12/vtoctl/internal/session"
	"github.com/qdm12/vtoctl/internal/session/mock_session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func Test_Handshake_Login(t *testing.T) {
	t.Parallel()

	credentials := models.Credentials{
		IP:       "192.168.1.108",
		Username: "admin",
		Password: "pass",
	}

	challengeRequest := map[string]any{
		"method": "global.login",
		"params": map[string]any{
			"userName":   "admin",
			"password":   "",
			"clientType": "Web3.0",
		},
		"id": float64(4),
	}
	authenticationRequest := map[string]any{
		"method": "global.login",
		"params": map[string]any{
			"userName":      "admin",
			"password":      "5595A2CF84EBEEFE16CC5E1C595DF93A",
			"clientType":    "Web3.0",
			"authorityType": "Default",
			"passwordType":  "Default",
		},
		"id":      float64(5),
		"session": "temp",
	}

	testCases := map[string]struct {
		credentials models.Credentials
		replies     []rpctest.Reply
		received    []map[string]any
		token       string
		state       State
		errWrap     error
		errMessage  string
	}{
		"incomplete credentials": {
			credentials: models.Credentials{IP: "192.168.1.108", Username: "admin"},
			state:       StateFailed,
			errWrap:     errors.ErrNoCredentials,
			errMessage: "input error: no credentials available: " +
				"[ip: 192.168.1.108 | username: admin | password: [not set]]",
		},
		"session at top level": {
			credentials: credentials,
			replies: []rpctest.Reply{
				{Path: rpc.LoginPath, Body: `{"id":4,"result":true,` +
					`"params":{"realm":"Login1","random":"123456"},"session":"temp"}`},
				{Path: rpc.LoginPath, Body: `{"id":5,"result":true,"params":null,"session":"final"}`},
			},
			received: []map[string]any{challengeRequest, authenticationRequest},
			token:    "final",
			state:    StateAuthenticated,
		},
		"session in params": {
			credentials: credentials,
			replies: []rpctest.Reply{
				{Path: rpc.LoginPath, Body: `{"id":4,"result":true,` +
					`"params":{"realm":"Login1","random":"123456","session":"temp"}}`},
				{Path: rpc.LoginPath, Body: `{"id":5,"result":true,"params":{"session":"final"}}`},
			},
			received: []map[string]any{challengeRequest, authenticationRequest},
			token:    "final",
			state:    StateAuthenticated,
		},
		"numeric session": {
			credentials: credentials,
			replies: []rpctest.Reply{
				{Path: rpc.LoginPath, Body: `{"id":4,"result":true,` +
					`"params":{"realm":"Login1","random":"123456"},"session":"temp"}`},
				{Path: rpc.LoginPath, Body: `{"id":5,"result":true,"session":1234567}`},
			},
			received: []map[string]any{challengeRequest, authenticationRequest},
			token:    "1234567",
			state:    StateAuthenticated,
		},
		"challenge missing realm": {
			credentials: credentials,
			replies: []rpctest.Reply{
				{Path: rpc.LoginPath, Body: `{"id":4,"result":true,` +
					`"params":{"random":"123456"},"session":"temp"}`},
			},
			received:   []map[string]any{challengeRequest},
			state:      StateFailed,
			errWrap:    errors.ErrChallengeIncomplete,
			errMessage: "requesting challenge: protocol error: challenge is incomplete: missing realm",
		},
		"challenge missing everything": {
			credentials: credentials,
			replies: []rpctest.Reply{
				{Path: rpc.LoginPath, Body: `{"id":4,"result":true,"params":{"encryption":"Default"}}`},
			},
			received: []map[string]any{challengeRequest},
			state:    StateFailed,
			errWrap:  errors.ErrChallengeIncomplete,
			errMessage: "requesting challenge: protocol error: challenge is incomplete: " +
				"missing realm, random, session",
		},
		"challenge without params": {
			credentials: credentials,
			replies: []rpctest.Reply{
				{Path: rpc.LoginPath, Body: `{"id":4,"result":false}`},
			},
			received: []map[string]any{challengeRequest},
			state:    StateFailed,
			errWrap:  errors.ErrProtocol,
			errMessage: "requesting challenge: protocol error: challenge is incomplete: " +
				"result false with params null",
		},
		"challenge bad status": {
			credentials: credentials,
			replies: []rpctest.Reply{
				{Path: rpc.LoginPath, Status: 500},
			},
			received:   []map[string]any{challengeRequest},
			state:      StateFailed,
			errWrap:    errors.ErrNetwork,
			errMessage: "requesting challenge: network error: bad HTTP status: 500 Internal Server Error",
		},
		"challenge not JSON": {
			credentials: credentials,
			replies: []rpctest.Reply{
				{Path: rpc.LoginPath, Body: "<html>Web Service</html>"},
			},
			received: []map[string]any{challengeRequest},
			state:    StateFailed,
			errWrap:  errors.ErrProtocol,
			errMessage: "requesting challenge: protocol error: cannot unmarshal response: " +
				"invalid character '<' looking for beginning of value",
		},
		"login rejected": {
			credentials: credentials,
			replies: []rpctest.Reply{
				{Path: rpc.LoginPath, Body: `{"id":4,"result":true,` +
					`"params":{"realm":"Login1","random":"123456"},"session":"temp"}`},
				{Path: rpc.LoginPath, Body: `{"result":false,"error":{"code":268632079}}`},
			},
			received:   []map[string]any{challengeRequest, authenticationRequest},
			state:      StateFailed,
			errWrap:    errors.ErrLoginRejected,
			errMessage: `authenticating: protocol error: login rejected by device: {"code":268632079}`,
		},
		"login without session": {
			credentials: credentials,
			replies: []rpctest.Reply{
				{Path: rpc.LoginPath, Body: `{"id":4,"result":true,` +
					`"params":{"realm":"Login1","random":"123456"},"session":"temp"}`},
				{Path: rpc.LoginPath, Body: `{"id":5,"result":true,"params":{"keepAliveInterval":60}}`},
			},
			received:   []map[string]any{challengeRequest, authenticationRequest},
			state:      StateFailed,
			errWrap:    errors.ErrSessionIsEmpty,
			errMessage: "authenticating: protocol error: session is empty",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)

			device := rpctest.NewScripted(t, testCase.replies...)
			client := rpc.New(device.Client(), "http", device.Host())

			saver := mock_login.NewMockSessionSaver(ctrl)
			if testCase.errWrap == nil {
				saver.EXPECT().Save(testCase.token)
			}
			logger := mock_login.NewMockLogger(ctrl)
			logger.EXPECT().Debug(gomock.Any()).AnyTimes()

			handshake := New(client, saver, logger, Settings{
				ClientType: "Web3.0",
				Encoding:   charmap.ISO8859_1,
			})

			token, err := handshake.Login(context.Background(), testCase.credentials)

			assert.ErrorIs(t, err, testCase.errWrap)
			if testCase.errWrap != nil {
				assert.EqualError(t, err, testCase.errMessage)
			}
			assert.Equal(t, testCase.token, token)
			assert.Equal(t, testCase.state, handshake.State())

			received := device.Received()
			require.Len(t, received, len(testCase.received))
			for i, expected := range testCase.received {
				assert.Equal(t, rpc.LoginPath, received[i].Path)
				assert.Equal(t, expected, received[i].Body)
			}
		})
	}
}

func Test_Handshake_Login_singleUse(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	caller := mock_login.NewMockCaller(ctrl)
	caller.EXPECT().
		Call(gomock.Any(), rpc.LoginPath, gomock.Any()).
		Return(rpc.Response{}, errors.ErrNetwork)
	saver := mock_login.NewMockSessionSaver(ctrl)
	logger := mock_login.NewMockLogger(ctrl)

	handshake := New(caller, saver, logger, Settings{
		ClientType: "Web3.0",
		Encoding:   charmap.ISO8859_1,
	})
	credentials := models.Credentials{IP: "10.0.0.2", Username: "admin", Password: "pass"}

	_, err := handshake.Login(context.Background(), credentials)
	require.ErrorIs(t, err, errors.ErrNetwork)

	_, err = handshake.Login(context.Background(), credentials)
	assert.ErrorIs(t, err, errors.ErrHandshakeFinished)
	assert.EqualError(t, err, "handshake already finished: in state failed")
}

func Test_Handshake_Login_emulator(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	device := &rpctest.Emulator{
		Username:    "admin",
		Password:    "pässword",
		Realm:       "Login to 4M0123",
		Random:      "987654321",
		TempSession: "temp-1",
		Session:     "final-1",
	}
	device.Start(t)
	client := rpc.New(device.Client(), "http", device.Host())

	path := filepath.Join(t.TempDir(), "session.txt")
	sessionLogger := mock_session.NewMockLogger(ctrl)
	sessionLogger.EXPECT().Info("saved session id to " + path)
	sessionFile := session.New(path, sessionLogger)

	logger := mock_login.NewMockLogger(ctrl)
	logger.EXPECT().Debug("received challenge with realm Login to 4M0123 and random 987654321")

	handshake := New(client, sessionFile, logger, Settings{
		ClientType: "Web3.0",
		Encoding:   charmap.ISO8859_1,
	})

	token, err := handshake.Login(context.Background(), models.Credentials{
		IP:       device.Host(),
		Username: "admin",
		Password: "pässword",
	})

	require.NoError(t, err)
	assert.Equal(t, "final-1", token)
	assert.Equal(t, StateAuthenticated, handshake.State())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "final-1\n", string(data))
}

func Test_Handshake_Login_rejectedKeepsSession(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	device := &rpctest.Emulator{
		Username:    "admin",
		Password:    "secret",
		Realm:       "Login1",
		Random:      "123456",
		TempSession: "temp-2",
		Session:     "final-2",
	}
	device.Start(t)
	client := rpc.New(device.Client(), "http", device.Host())

	path := filepath.Join(t.TempDir(), "session.txt")
	const previous = "previous-session\n"
	err := os.WriteFile(path, []byte(previous), 0o600)
	require.NoError(t, err)
	sessionFile := session.New(path, mock_session.NewMockLogger(ctrl))

	logger := mock_login.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any())

	handshake := New(client, sessionFile, logger, Settings{
		ClientType: "Web3.0",
		Encoding:   charmap.ISO8859_1,
	})

	token, err := handshake.Login(context.Background(), models.Credentials{
		IP:       device.Host(),
		Username: "admin",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, errors.ErrLoginRejected)
	assert.Empty(t, token)
	assert.Equal(t, StateFailed, handshake.State())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, previous, string(data))
}

func Test_State_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unauthenticated", StateUnauthenticated.String())
	assert.Equal(t, "challenge issued", StateChallengeIssued.String())
	assert.Equal(t, "authenticated", StateAuthenticated.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Panics(t, func() { _ = State(99).String() })
}
