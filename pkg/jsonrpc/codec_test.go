package jsonrpc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/theapemachine/worker-go/pkg/errors"
)

func TestDecodeRequest(t *testing.T) {
	req, err := DecodeRequest([]byte(`{"jsonrpc":"2.0","id":1,"method":"add","params":{"a":2,"b":3}}`))
	assert.NoError(t, err)
	assert.Equal(t, "2.0", req.JSONRPC)
	assert.Equal(t, "add", req.Method)
	assert.Equal(t, json.RawMessage(`1`), req.ID)
	assert.Equal(t, json.RawMessage(`{"a":2,"b":3}`), req.Params)
	assert.False(t, req.IsNotification())
}

func TestDecodeRequest_NotificationForms(t *testing.T) {
	// Absent id
	req, err := DecodeRequest([]byte(`{"jsonrpc":"2.0","method":"shutdown"}`))
	assert.NoError(t, err)
	assert.True(t, req.IsNotification())

	// Explicit null id counts as absent
	req, err = DecodeRequest([]byte(`{"jsonrpc":"2.0","id":null,"method":"shutdown"}`))
	assert.NoError(t, err)
	assert.True(t, req.IsNotification())

	// String id expects a reply
	req, err = DecodeRequest([]byte(`{"jsonrpc":"2.0","id":"abc","method":"echo"}`))
	assert.NoError(t, err)
	assert.False(t, req.IsNotification())
}

func TestDecodeRequest_Errors(t *testing.T) {
	// Not JSON at all
	req, err := DecodeRequest([]byte(`not json`))
	assert.Error(t, err)
	assert.Nil(t, req)

	// Valid JSON, wrong shape
	req, err = DecodeRequest([]byte(`[1,2,3]`))
	assert.Error(t, err)
	assert.Nil(t, req)

	// Object without a method
	req, err = DecodeRequest([]byte(`{"jsonrpc":"2.0","id":1}`))
	assert.Error(t, err)
	assert.Nil(t, req)
	assert.Contains(t, err.Error(), "missing method")

	// A null method is as absent as no method at all
	req, err = DecodeRequest([]byte(`{"jsonrpc":"2.0","id":1,"method":null}`))
	assert.Error(t, err)
	assert.Nil(t, req)
	assert.Contains(t, err.Error(), "missing method")
}

func TestDecodeRequest_EmptyMethodName(t *testing.T) {
	// An empty name is present, so the message decodes and dispatches
	// like any request; it will just never match the method table.
	req, err := DecodeRequest([]byte(`{"jsonrpc":"2.0","id":1,"method":""}`))
	assert.NoError(t, err)
	assert.Equal(t, "", req.Method)
	assert.False(t, req.IsNotification())

	// Without an id it classifies as a notification
	req, err = DecodeRequest([]byte(`{"jsonrpc":"2.0","method":""}`))
	assert.NoError(t, err)
	assert.True(t, req.IsNotification())
}

func TestDecodeRequest_VersionLeniency(t *testing.T) {
	// Missing version field
	req, err := DecodeRequest([]byte(`{"id":1,"method":"add"}`))
	assert.NoError(t, err)
	assert.Equal(t, "add", req.Method)

	// Unexpected version string
	req, err = DecodeRequest([]byte(`{"jsonrpc":"1.0","id":1,"method":"add"}`))
	assert.NoError(t, err)
	assert.Equal(t, "1.0", req.JSONRPC)
}

func TestEncodeResponse(t *testing.T) {
	line, err := EncodeResponse(json.RawMessage(`42`), int64(7))
	assert.NoError(t, err)
	assert.Equal(t, `{"jsonrpc":"2.0","id":42,"result":7}`, string(line))
	assert.NotContains(t, string(line), "\n")

	// Large results keep full integer precision
	line, err = EncodeResponse(json.RawMessage(`2`), int64(2880067194370816120))
	assert.NoError(t, err)
	assert.Equal(t, `{"jsonrpc":"2.0","id":2,"result":2880067194370816120}`, string(line))
}

func TestEncodeResponse_RoundTrip(t *testing.T) {
	line, err := EncodeResponse(json.RawMessage(`42`), 7)
	assert.NoError(t, err)

	var resp Response
	assert.NoError(t, json.Unmarshal(line, &resp))
	assert.Equal(t, Version, resp.JSONRPC)
	assert.Equal(t, json.RawMessage(`42`), resp.ID)
	assert.Equal(t, json.RawMessage(`7`), resp.Result)
	assert.Nil(t, resp.Error)
}

func TestEncodeResponse_NilID(t *testing.T) {
	line, err := EncodeResponse(nil, "ok")
	assert.NoError(t, err)
	assert.Equal(t, `{"jsonrpc":"2.0","id":null,"result":"ok"}`, string(line))
}

func TestEncodeResponse_IDFidelity(t *testing.T) {
	// Ids echo back byte for byte, whatever their JSON type
	for _, id := range []string{`1`, `"abc"`, `2.5`, `90071992547409911234`} {
		req, err := DecodeRequest([]byte(`{"jsonrpc":"2.0","id":` + id + `,"method":"echo"}`))
		assert.NoError(t, err)

		line, err := EncodeResponse(req.ID, "")
		assert.NoError(t, err)
		assert.Contains(t, string(line), `"id":`+id)
	}
}

func TestEncodeErrorResponse(t *testing.T) {
	rpcErr := errors.ErrMethodNotFound.WithMessagef("Method not found: %s", "frobnicate")

	line, err := EncodeErrorResponse(json.RawMessage(`"req-1"`), rpcErr)
	assert.NoError(t, err)
	assert.Equal(t, `{"jsonrpc":"2.0","id":"req-1","error":{"code":-32601,"message":"Method not found: frobnicate"}}`, string(line))

	// Every entry of the reserved table encodes the same way; a nil id
	// goes out as null
	line, err = EncodeErrorResponse(nil, errors.ErrParseError)
	assert.NoError(t, err)
	assert.Equal(t, `{"jsonrpc":"2.0","id":null,"error":{"code":-32700,"message":"Parse error"}}`, string(line))
}

func TestEncodeNotification(t *testing.T) {
	line, err := EncodeNotification("log", map[string]string{"message": "Go worker started"})
	assert.NoError(t, err)
	assert.Equal(t, `{"jsonrpc":"2.0","method":"log","params":{"message":"Go worker started"}}`, string(line))
}

func TestEncodeNotification_NilParams(t *testing.T) {
	line, err := EncodeNotification("shutdown", nil)
	assert.NoError(t, err)
	assert.Equal(t, `{"jsonrpc":"2.0","method":"shutdown"}`, string(line))
}
