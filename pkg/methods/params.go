package methods

import "encoding/json"

// PairParams carries the two integer operands of the arithmetic methods.
type PairParams struct {
	A int64 `json:"a"`
	B int64 `json:"b"`
}

// CountParams carries a single non-negative integer. Negative or
// fractional input fails the field decode and leaves N zero.
type CountParams struct {
	N uint64 `json:"n"`
}

// ArrayParams carries the numbers array for sum_array. Elements stay raw
// so each one can be accepted or skipped on its own.
type ArrayParams struct {
	Numbers []json.RawMessage `json:"numbers"`
}

// EchoParams carries the echo message.
type EchoParams struct {
	Message string `json:"message"`
}

// decode fills params from raw on a best-effort basis: a field that does
// not parse keeps its zero value while sibling fields still decode, so
// malformed input degrades to defaults instead of erroring.
func decode(raw json.RawMessage, params any) {
	_ = json.Unmarshal(raw, params)
}
