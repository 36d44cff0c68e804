package methods

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/theapemachine/worker-go/pkg/errors"
)

// HandlerFunc processes the raw params field and returns a result or a
// *errors.RpcError. The built-in handlers are total: they always produce
// a result, substituting defaults for anything malformed.
type HandlerFunc func(ctx context.Context, params json.RawMessage) (any, *errors.RpcError)

// Registry is the fixed method table. It is built once at startup and
// never mutated afterwards, so lookups need no locking.
type Registry struct {
	handlers map[string]HandlerFunc
}

func NewRegistry() *Registry {
	return &Registry{
		handlers: map[string]HandlerFunc{
			"add":       Add,
			"multiply":  Multiply,
			"fibonacci": Fibonacci,
			"is_prime":  IsPrime,
			"sum_array": SumArray,
			"echo":      Echo,
		},
	}
}

func (registry *Registry) Lookup(method string) (HandlerFunc, bool) {
	handler, ok := registry.handlers[method]
	return handler, ok
}

// Methods returns the registered method names in sorted order.
func (registry *Registry) Methods() []string {
	names := make([]string, 0, len(registry.handlers))

	for name := range registry.handlers {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}
