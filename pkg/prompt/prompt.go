// Package prompt blocks the dispatch flow until an operator acknowledges.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

// Acknowledger suspends the caller until an external acknowledgment arrives.
type Acknowledger interface {
	Acknowledge(ctx context.Context, message string) error
}

// LineReader prints a message and waits for one line of input. The line's
// content is ignored. EOF counts as an acknowledgment.
//
// A LineReader must not be used again once an Acknowledge call has returned
// because its context was done; the pending read is still outstanding.
type LineReader struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

var _ Acknowledger = (*LineReader)(nil)

// NewLineReader returns a LineReader reading from in and writing prompts to out.
func NewLineReader(in io.Reader, out io.Writer) *LineReader {
	return &LineReader{in: bufio.NewReader(in), out: out}
}

func (l *LineReader) Acknowledge(ctx context.Context, message string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if message != "" {
		if _, err := fmt.Fprint(l.out, message); err != nil {
			return err
		}
	}

	done := make(chan error, 1)
	go func() {
		_, err := l.in.ReadString('\n')
		if errors.Is(err, io.EOF) {
			err = nil
		}
		done <- err
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Auto acknowledges immediately. It backs unattended runs.
type Auto struct{}

var _ Acknowledger = Auto{}

func (Auto) Acknowledge(ctx context.Context, _ string) error {
	return ctx.Err()
}
