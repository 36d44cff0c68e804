package jsonrpc

import (
	"encoding/json"
	"fmt"

	"github.com/theapemachine/worker-go/pkg/errors"
)

// DecodeRequest parses one line as a JSON-RPC message. Invalid JSON or an
// absent method field yields an error describing the problem; the inbound
// jsonrpc version field is never checked. An empty method name is a valid
// name that simply never matches the method table, so it passes through.
func DecodeRequest(line []byte) (*Request, error) {
	var wire struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      json.RawMessage `json:"id"`
		Method  *string         `json:"method"`
		Params  json.RawMessage `json:"params"`
	}

	if err := json.Unmarshal(line, &wire); err != nil {
		return nil, err
	}

	if wire.Method == nil {
		return nil, fmt.Errorf("missing method")
	}

	return &Request{
		JSONRPC: wire.JSONRPC,
		ID:      wire.ID,
		Method:  *wire.Method,
		Params:  wire.Params,
	}, nil
}

// EncodeResponse builds the success-response line for the given id. The
// result is serialized first so callers can hand in any Go value.
func EncodeResponse(id json.RawMessage, result any) ([]byte, error) {
	var (
		raw []byte
		err error
	)

	if raw, err = json.Marshal(result); err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}

	return json.Marshal(Response{
		JSONRPC: Version,
		ID:      ensureID(id),
		Result:  raw,
	})
}

// EncodeErrorResponse builds the error-response line for the given id.
func EncodeErrorResponse(id json.RawMessage, rpcErr *errors.RpcError) ([]byte, error) {
	return json.Marshal(Response{
		JSONRPC: Version,
		ID:      ensureID(id),
		Error:   rpcErr,
	})
}

// EncodeNotification builds a notification line. Nil params leave the
// params field out entirely.
func EncodeNotification(method string, params any) ([]byte, error) {
	var (
		raw []byte
		err error
	)

	if params != nil {
		if raw, err = json.Marshal(params); err != nil {
			return nil, fmt.Errorf("marshal params: %w", err)
		}
	}

	return json.Marshal(Notification{
		JSONRPC: Version,
		Method:  method,
		Params:  raw,
	})
}

// ensureID substitutes the null id for an absent one; a response never
// goes out without an id field.
func ensureID(id json.RawMessage) json.RawMessage {
	if len(id) == 0 {
		return nullID
	}

	return id
}
