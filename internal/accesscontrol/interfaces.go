package accesscontrol

import (
	"context"
	"encoding/json"

	"github.com/qdm12/vtoctl/internal/rpc"
)

//go:generate mockgen -destination=mock_$GOPACKAGE/$GOFILE . Caller

type Caller interface {
	Call(ctx context.Context, method string, params any,
		object json.RawMessage) (response rpc.Response, err error)
	Query(ctx context.Context, method string, params any,
		object json.RawMessage) (response rpc.Response, err error)
}
