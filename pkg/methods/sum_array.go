package methods

import (
	"context"
	"encoding/json"

	"github.com/theapemachine/worker-go/pkg/errors"
)

// SumArray sums the integer elements of the numbers array. Elements that
// are not integers are skipped; a missing or non-array value sums to zero.
func SumArray(ctx context.Context, raw json.RawMessage) (any, *errors.RpcError) {
	var params ArrayParams

	decode(raw, &params)

	var sum int64

	for _, elem := range params.Numbers {
		var n int64

		if err := json.Unmarshal(elem, &n); err != nil {
			continue
		}

		sum += n
	}

	return sum, nil
}
