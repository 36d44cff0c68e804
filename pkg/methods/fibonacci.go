package methods

import (
	"context"
	"encoding/json"

	"github.com/theapemachine/worker-go/pkg/errors"
)

// Fibonacci computes the nth Fibonacci number by naive recursion, with
// fib(0)=0 and fib(1)=1. No memoization: the exponential cost makes it a
// useful demonstration workload.
func Fibonacci(ctx context.Context, raw json.RawMessage) (any, *errors.RpcError) {
	var params CountParams

	decode(raw, &params)

	return fib(params.N), nil
}

func fib(n uint64) uint64 {
	if n < 2 {
		return n
	}

	return fib(n-1) + fib(n-2)
}
