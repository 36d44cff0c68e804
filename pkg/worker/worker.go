// Package worker implements the stdio protocol loop of the process.
package worker

import (
	"bufio"
	"bytes"
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// StartupMessage is logged on the wire before any input is read, so the
// parent knows the worker came up.
const StartupMessage = "Go worker started"

/*
Worker owns the input and output streams. It reads one line at a time,
hands it to the dispatcher, and writes every produced line back out,
flushed, before the next blocking read.
*/
type Worker struct {
	reader     io.Reader
	writer     io.Writer
	dispatcher *Dispatcher
}

type WorkerOption func(*Worker)

func New(reader io.Reader, writer io.Writer, options ...WorkerOption) *Worker {
	worker := &Worker{
		reader:     reader,
		writer:     writer,
		dispatcher: NewDispatcher(),
	}

	for _, option := range options {
		option(worker)
	}

	return worker
}

/*
Run announces the worker on the output stream, then processes input
lines until the stream ends or a shutdown notification arrives. Both
count as ordinary termination and return nil. A failing input stream is
treated the same way, minus the protocol goodbye.
*/
func (worker *Worker) Run(ctx context.Context) error {
	out := bufio.NewWriter(worker.writer)
	in := bufio.NewReader(worker.reader)

	log.Debug("worker ready", "methods", worker.dispatcher.registry.Methods())

	defer func() {
		log.Info("worker finished", "metrics", worker.dispatcher.metrics.GetMetrics())
	}()

	if err := emit(out, logLines(StartupMessage)); err != nil {
		return err
	}

	for {
		line, readErr := readLine(in)

		// A complete line, even an empty one, goes to the dispatcher; so
		// does an unterminated final fragment.
		if readErr == nil || len(line) > 0 {
			lines, err := worker.dispatcher.Dispatch(ctx, line)

			if writeErr := emit(out, lines); writeErr != nil {
				return writeErr
			}

			if err == ErrShutdown {
				log.Debug("shutdown notification received")
				return nil
			}
		}

		if readErr != nil {
			if readErr != io.EOF {
				log.Warn("input stream failed", "error", readErr)
			}

			return nil
		}
	}
}

// readLine reads one newline-terminated line, stripping the line ending.
// Lines are usually tiny, but a sum_array request can legitimately run to
// many megabytes, so reads are unbounded. At end of input the error comes
// back alongside whatever fragment remains.
func readLine(in *bufio.Reader) ([]byte, error) {
	line, err := in.ReadBytes('\n')

	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))

	return line, err
}

// emit writes each line followed by a newline, flushing per message so
// the parent never waits on a buffered reply.
func emit(out *bufio.Writer, lines [][]byte) error {
	for _, line := range lines {
		if _, err := out.Write(append(line, '\n')); err != nil {
			return err
		}

		if err := out.Flush(); err != nil {
			return err
		}
	}

	return nil
}

func WithDispatcher(dispatcher *Dispatcher) WorkerOption {
	return func(worker *Worker) {
		worker.dispatcher = dispatcher
	}
}
