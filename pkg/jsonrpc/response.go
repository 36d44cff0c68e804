package jsonrpc

import (
	"encoding/json"

	"github.com/theapemachine/worker-go/pkg/errors"
)

// Response carries either a result or an error, never both.  ID has no
// omitempty tag on purpose: a response must always echo an id, null when
// the originating id could not be determined.
type Response struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      json.RawMessage  `json:"id"`
	Result  json.RawMessage  `json:"result,omitempty"`
	Error   *errors.RpcError `json:"error,omitempty"`
}
