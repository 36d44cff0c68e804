// Package client implements the parent-process side of the worker
// protocol: spawning a worker, calling its methods over the pipe pair,
// and shutting it down.
package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/theapemachine/worker-go/pkg/errors"
	"github.com/theapemachine/worker-go/pkg/jsonrpc"
	"github.com/theapemachine/worker-go/pkg/worker"
)

/*
Client talks to a worker over a line-delimited stream pair, correlating
responses by id. Log notifications that arrive between a request and
its response are handed to OnLog when set, so callers never lose the
worker's side channel.
*/
type Client struct {
	// OnLog receives the message of every log notification the client
	// reads while waiting on the stream.
	OnLog func(message string)

	writer io.Writer
	reader *bufio.Reader
	cmd    *exec.Cmd
}

func New(reader io.Reader, writer io.Writer) *Client {
	return &Client{
		writer: writer,
		reader: bufio.NewReader(reader),
	}
}

/*
Spawn starts a worker binary and wires its pipes into a client. The
worker's stderr passes through to this process so its diagnostics stay
visible next to our own.
*/
func Spawn(ctx context.Context, path string, args ...string) (*Client, error) {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()

	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}

	stdout, err := cmd.StdoutPipe()

	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}

	if err = cmd.Start(); err != nil {
		return nil, fmt.Errorf("start worker: %w", err)
	}

	log.Debug("worker spawned", "path", path, "pid", cmd.Process.Pid)

	client := New(stdout, stdin)
	client.cmd = cmd

	return client, nil
}

/*
Call sends a request and blocks until the response carrying the same id
arrives. A JSON-RPC error response comes back as a *errors.RpcError;
when result is non-nil the response result is decoded into it.
*/
func (client *Client) Call(ctx context.Context, method string, params any, result any) error {
	id, err := json.Marshal(uuid.NewString())

	if err != nil {
		return err
	}

	payload := jsonrpc.Request{
		JSONRPC: jsonrpc.Version,
		ID:      id,
		Method:  method,
	}

	if params != nil {
		if payload.Params, err = json.Marshal(params); err != nil {
			return fmt.Errorf("marshal params: %w", err)
		}
	}

	line, err := json.Marshal(payload)

	if err != nil {
		return err
	}

	if err = client.writeLine(line); err != nil {
		return err
	}

	return client.await(ctx, method, id, result)
}

/*
Notify sends a fire-and-forget notification; nothing is awaited.
*/
func (client *Client) Notify(method string, params any) error {
	line, err := jsonrpc.EncodeNotification(method, params)

	if err != nil {
		return err
	}

	return client.writeLine(line)
}

/*
Shutdown asks the worker to stop and drains the stream until it closes,
delivering any trailing logs. A worker spawned by this process is also
reaped; its exit error is returned, nil for the clean exit the shutdown
contract promises.
*/
func (client *Client) Shutdown() error {
	if err := client.Notify(worker.MethodShutdown, nil); err != nil {
		return err
	}

	for {
		line, readErr := client.readLine()

		if len(line) > 0 {
			var message struct {
				Method string          `json:"method"`
				Params json.RawMessage `json:"params"`
			}

			if err := json.Unmarshal(line, &message); err == nil {
				client.deliver(message.Method, message.Params)
			}
		}

		if readErr != nil {
			break
		}
	}

	if client.cmd == nil {
		return nil
	}

	return client.cmd.Wait()
}

// await reads lines until the response for id shows up, handing every
// notification on the way to deliver.
func (client *Client) await(ctx context.Context, method string, id json.RawMessage, result any) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, readErr := client.readLine()

		if len(line) == 0 {
			if readErr == io.EOF {
				return fmt.Errorf("stream ended before response to %s", method)
			}

			if readErr != nil {
				return readErr
			}

			continue
		}

		var message struct {
			ID     json.RawMessage  `json:"id"`
			Method string           `json:"method"`
			Params json.RawMessage  `json:"params"`
			Result json.RawMessage  `json:"result"`
			Error  *errors.RpcError `json:"error"`
		}

		if err := json.Unmarshal(line, &message); err != nil {
			return fmt.Errorf("malformed line from worker: %w", err)
		}

		if message.Method != "" {
			client.deliver(message.Method, message.Params)
			continue
		}

		if !bytes.Equal(message.ID, id) {
			return fmt.Errorf("response id %s does not match request id %s", message.ID, id)
		}

		if message.Error != nil {
			return message.Error
		}

		if result == nil {
			return nil
		}

		return json.Unmarshal(message.Result, result)
	}
}

// readLine reads one response line of any length, stripping the ending.
func (client *Client) readLine() ([]byte, error) {
	line, err := client.reader.ReadBytes('\n')

	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))

	return line, err
}

func (client *Client) deliver(method string, raw json.RawMessage) {
	if method != worker.MethodLog || client.OnLog == nil {
		return
	}

	var params worker.LogParams

	if err := json.Unmarshal(raw, &params); err != nil {
		return
	}

	client.OnLog(params.Message)
}

func (client *Client) writeLine(line []byte) error {
	if _, err := client.writer.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write line: %w", err)
	}

	return nil
}
