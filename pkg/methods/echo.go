package methods

import (
	"context"
	"encoding/json"

	"github.com/theapemachine/worker-go/pkg/errors"
)

// Echo returns the message param unchanged, or the empty string when it
// is missing or not a string.
func Echo(ctx context.Context, raw json.RawMessage) (any, *errors.RpcError) {
	var params EchoParams

	decode(raw, &params)

	return params.Message, nil
}
