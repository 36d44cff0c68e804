package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/theapemachine/worker-go/pkg/errors"
	"github.com/theapemachine/worker-go/pkg/jsonrpc"
	"github.com/theapemachine/worker-go/pkg/methods"
	"github.com/theapemachine/worker-go/pkg/metrics"
)

const (
	// MethodLog names the outbound side-channel notification every
	// human-readable message travels on.
	MethodLog = "log"

	// MethodShutdown names the inbound notification that stops the worker.
	MethodShutdown = "shutdown"
)

// ErrShutdown signals that a shutdown notification was handled and no
// further input should be read.
var ErrShutdown = fmt.Errorf("shutdown requested")

// LogParams is the payload of every outbound log notification.
type LogParams struct {
	Message string `json:"message"`
}

/*
Dispatcher turns one decoded input line into the outbound lines it
produces. Requests go through the method registry and are answered on
their id; notifications never get a reply, only log side-effects.
*/
type Dispatcher struct {
	registry *methods.Registry
	metrics  *metrics.TurnMetrics
}

type DispatcherOption func(*Dispatcher)

func NewDispatcher(options ...DispatcherOption) *Dispatcher {
	dispatcher := &Dispatcher{
		registry: methods.NewRegistry(),
		metrics:  metrics.NewTurnMetrics(),
	}

	for _, option := range options {
		option(dispatcher)
	}

	return dispatcher
}

// Metrics exposes the turn counters the dispatcher maintains.
func (dispatcher *Dispatcher) Metrics() *metrics.TurnMetrics {
	return dispatcher.metrics
}

/*
Dispatch handles a single input line and returns the protocol lines it
produced, in emission order. It returns ErrShutdown once a shutdown
notification has been handled; every other outcome, including parse
errors and unknown methods, keeps the loop running.
*/
func (dispatcher *Dispatcher) Dispatch(ctx context.Context, line []byte) ([][]byte, error) {
	req, err := jsonrpc.DecodeRequest(line)

	if err != nil {
		// No valid id means no recipient for an error response, so the
		// parse error only goes out on the log channel.
		dispatcher.metrics.RecordParseError()
		return logLines(fmt.Sprintf("Parse error: %s", err)), nil
	}

	if req.IsNotification() {
		dispatcher.metrics.RecordNotification()
		return dispatcher.notification(req)
	}

	return dispatcher.request(ctx, req), nil
}

func (dispatcher *Dispatcher) notification(req *jsonrpc.Request) ([][]byte, error) {
	if req.Method == MethodShutdown {
		return logLines("Shutting down..."), ErrShutdown
	}

	return logLines(fmt.Sprintf("Unknown notification: %s", req.Method)), nil
}

func (dispatcher *Dispatcher) request(ctx context.Context, req *jsonrpc.Request) [][]byte {
	handler, ok := dispatcher.registry.Lookup(req.Method)

	if !ok {
		dispatcher.metrics.RecordRequest(false, 0)

		return errorLines(req, errors.ErrMethodNotFound.WithMessagef(
			"Method not found: %s", req.Method,
		))
	}

	start := time.Now()
	result, rpcErr := handler(ctx, req.Params)
	dispatcher.metrics.RecordRequest(true, time.Since(start))

	if rpcErr != nil {
		return errorLines(req, rpcErr)
	}

	line, err := jsonrpc.EncodeResponse(req.ID, result)

	if err != nil {
		return nil
	}

	// The response goes out first, the processed log trails it.
	return append([][]byte{line}, logLines(fmt.Sprintf("Processed %s", req.Method))...)
}

// logLines wraps a message in a log notification line. A line that fails
// to encode is silently dropped.
func logLines(message string) [][]byte {
	line, err := jsonrpc.EncodeNotification(MethodLog, LogParams{Message: message})

	if err != nil {
		return nil
	}

	return [][]byte{line}
}

// errorLines builds the error-response line for a request. No processed
// log follows an error.
func errorLines(req *jsonrpc.Request, rpcErr *errors.RpcError) [][]byte {
	line, err := jsonrpc.EncodeErrorResponse(req.ID, rpcErr)

	if err != nil {
		return nil
	}

	return [][]byte{line}
}

func WithRegistry(registry *methods.Registry) DispatcherOption {
	return func(dispatcher *Dispatcher) {
		dispatcher.registry = registry
	}
}

func WithMetrics(turnMetrics *metrics.TurnMetrics) DispatcherOption {
	return func(dispatcher *Dispatcher) {
		dispatcher.metrics = turnMetrics
	}
}
