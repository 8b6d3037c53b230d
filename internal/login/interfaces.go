package login

import (
	"context"

	"github.com/qdm12/vtoctl/internal/rpc"
)

//go:generate mockgen -destination=mock_$GOPACKAGE/$GOFILE . Caller,SessionSaver,Logger

type Caller interface {
	Call(ctx context.Context, path string, request rpc.Request) (response rpc.Response, err error)
}

type SessionSaver interface {
	Save(token string)
}

type Logger interface {
	Debug(s string)
}
