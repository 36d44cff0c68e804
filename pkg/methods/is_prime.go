package methods

import (
	"context"
	"encoding/json"
	"math"

	"github.com/theapemachine/worker-go/pkg/errors"
)

// IsPrime reports whether n is prime, by trial division over the odd
// candidates up to the square root.
func IsPrime(ctx context.Context, raw json.RawMessage) (any, *errors.RpcError) {
	var params CountParams

	decode(raw, &params)

	return isPrime(params.N), nil
}

func isPrime(n uint64) bool {
	if n < 2 {
		return false
	}

	if n == 2 {
		return true
	}

	if n%2 == 0 {
		return false
	}

	sqrt := uint64(math.Sqrt(float64(n)))

	for i := uint64(3); i <= sqrt; i += 2 {
		if n%i == 0 {
			return false
		}
	}

	return true
}
