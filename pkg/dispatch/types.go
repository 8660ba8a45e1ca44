package dispatch

import (
	"os"
	"os/exec"
	"time"
)

// Result is the outcome of one invocation.
type Result struct {
	ID   int
	Path string

	// ExitCode of the child. It is recorded for reporting, never acted upon.
	ExitCode int

	// Bytes captured into the output file.
	Bytes int64

	Started time.Time
	Elapsed time.Duration
}

// OK reports whether the child exited with status zero.
func (r *Result) OK() bool {
	return r.ExitCode == 0
}

// Summary collects the results of an Execute call, in invocation order.
type Summary struct {
	RunID   string
	Results []*Result
	Elapsed time.Duration
}

// NonZero returns the number of invocations whose child exited non-zero.
func (s *Summary) NonZero() (n int) {
	for _, r := range s.Results {
		if !r.OK() {
			n++
		}
	}
	return n
}

// Handle is an in-flight invocation. It owns the child process and its
// output file until wait returns.
type Handle struct {
	ID   int
	Path string

	cmd   *exec.Cmd
	file  *os.File
	start time.Time
}
