package jsonrpc

import (
	"bytes"
	"encoding/json"
)

// nullID is the literal JSON null token an inbound id may carry.
var nullID = json.RawMessage("null")

type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"` // accepts string | number | null
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// IsNotification reports whether the request carries no usable id and
// therefore expects no reply.  An explicit null id counts as absent.
func (req *Request) IsNotification() bool {
	return len(req.ID) == 0 || bytes.Equal(req.ID, nullID)
}
