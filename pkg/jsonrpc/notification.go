package jsonrpc

import "encoding/json"

// Notification is a fire-and-forget message.  It never carries an id and
// no reply is ever sent for it.
type Notification struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}
