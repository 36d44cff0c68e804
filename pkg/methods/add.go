package methods

import (
	"context"
	"encoding/json"

	"github.com/theapemachine/worker-go/pkg/errors"
)

// Add returns a + b, treating missing or non-integer fields as zero.
func Add(ctx context.Context, raw json.RawMessage) (any, *errors.RpcError) {
	var params PairParams

	decode(raw, &params)

	return params.A + params.B, nil
}
