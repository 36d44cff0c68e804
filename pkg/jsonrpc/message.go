// Package jsonrpc implements the line-delimited JSON-RPC 2.0 wire format
// spoken between a worker process and its parent orchestrator.  Every
// message travels as a single JSON document on its own line; requests and
// notifications flow in on stdin, responses and notifications flow out on
// stdout.
package jsonrpc

// Version is the protocol version stamped on every outbound message.
// Inbound messages are not checked against it.
const Version = "2.0"
