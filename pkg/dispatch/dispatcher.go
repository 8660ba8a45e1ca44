// Package dispatch runs nc invocations against the configured endpoint and
// captures every response into its own r<id>.html artifact.
//
// Invocations are either run one at a time, blocking until the child exits
// (RunSingle), or launched all at once and then waited on (RunBatch). Execute
// drives a whole plan: the sequential groups, then the concurrent batch.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/xid"
	"go.uber.org/zap"

	"github.com/rc-tools/ncharness/pkg/config"
	"github.com/rc-tools/ncharness/pkg/logging"
	"github.com/rc-tools/ncharness/pkg/prompt"
)

type Dispatcher struct {
	echo   config.Endpoint
	nc     config.Endpoint
	dir    string
	binary string

	runID    string
	ack      prompt.Acknowledger
	reporter *Reporter
	stderr   io.Writer
	log      *zap.SugaredLogger
}

type Option func(*Dispatcher)

// WithAcknowledger sets what RunSingle blocks on when asked to pause.
// Defaults to a line reader on stdin.
func WithAcknowledger(a prompt.Acknowledger) Option {
	return func(d *Dispatcher) { d.ack = a }
}

// WithReporter sets the console reporter. Defaults to stdout.
func WithReporter(r *Reporter) Option {
	return func(d *Dispatcher) { d.reporter = r }
}

// WithStderr sets where the children's stderr goes. Defaults to os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(d *Dispatcher) { d.stderr = w }
}

// New returns a Dispatcher bound to the endpoints and output settings in cfg.
// The config is copied; later changes to cfg are not observed.
func New(cfg *config.EnvConfig, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		echo:   cfg.Echo,
		nc:     cfg.NC,
		dir:    cfg.Output.Dir,
		binary: cfg.Output.Binary,
		runID:  xid.New().String(),
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.ack == nil {
		d.ack = prompt.NewLineReader(os.Stdin, os.Stdout)
	}
	if d.reporter == nil {
		d.reporter = NewReporter(os.Stdout, logging.IsTerminal())
	}
	d.log = logging.S().With("run_id", d.runID)
	return d
}

// RunID identifies this dispatcher in logs and summaries.
func (d *Dispatcher) RunID() string {
	return d.runID
}

// RunSingle runs the invocation for id and blocks until the child exits. If
// waitAfter is set, it then blocks until the operator acknowledges.
//
// The child's exit code is recorded in the result but never turned into an
// error. Failing to create the output file or to start the child is.
func (d *Dispatcher) RunSingle(ctx context.Context, id int, waitAfter bool) (*Result, error) {
	h, err := d.launch(ctx, id)
	if err != nil {
		d.reporter.Errored(id, err)
		return nil, err
	}

	res, err := h.wait()
	if err != nil {
		d.reporter.Errored(id, err)
		return res, err
	}
	d.reporter.Finished(res)

	if err := ctx.Err(); err != nil {
		return res, err
	}

	if waitAfter {
		msg := fmt.Sprintf("Press Enter to continue after script %d...", id)
		if err := d.ack.Acknowledge(ctx, msg); err != nil {
			return res, fmt.Errorf("waiting for acknowledgment after id %d: %w", id, err)
		}
	}
	return res, nil
}

// launch truncates the output file for id and starts the child writing into
// it, without waiting.
func (d *Dispatcher) launch(ctx context.Context, id int) (*Handle, error) {
	var (
		stdin, argv = d.Command(id)
		path        = d.OutputPath(id)
	)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file for id %d: %w", id, err)
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Stdout = f
	cmd.Stderr = d.stderr

	d.log.Debugw("starting invocation", "id", id, "argv", argv, "output", path)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to start %s for id %d: %w", argv[0], id, err)
	}
	d.reporter.Started(id, path)

	return &Handle{
		ID:    id,
		Path:  path,
		cmd:   cmd,
		file:  f,
		start: start,
	}, nil
}

// wait blocks until the child exits and releases the output file. A non-zero
// exit status is not an error.
func (h *Handle) wait() (*Result, error) {
	err := h.cmd.Wait()

	res := &Result{
		ID:       h.ID,
		Path:     h.Path,
		ExitCode: h.cmd.ProcessState.ExitCode(),
		Started:  h.start,
		Elapsed:  time.Since(h.start),
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		err = nil
	}
	if err != nil {
		err = fmt.Errorf("failed while waiting on id %d: %w", h.ID, err)
	}

	if fi, serr := h.file.Stat(); serr == nil {
		res.Bytes = fi.Size()
	}
	if cerr := h.file.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("failed to close output file for id %d: %w", h.ID, cerr)
	}
	return res, err
}
