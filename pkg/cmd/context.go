package cmd

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rc-tools/ncharness/pkg/logging"
)

var (
	processContext     context.Context
	processContextOnce sync.Once
)

// ProcessContext returns a context that is cancelled on the first interrupt.
// Cancelling it kills every in-flight nc child. A second interrupt, or a
// shutdown that takes longer than ten seconds, terminates the process.
func ProcessContext() context.Context {
	processContextOnce.Do(func() {
		var cancel context.CancelFunc
		processContext, cancel = context.WithCancel(context.Background())

		notify := make(chan os.Signal, 2)
		signal.Notify(notify, os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			defer signal.Stop(notify)

			sig := <-notify
			logging.S().Warnw("interrupted; killing running scripts", "signal", sig.String())
			cancel()

			select {
			case <-time.After(10 * time.Second):
				logging.S().Error("timed out on shutdown, terminating")
			case <-notify:
				logging.S().Error("received another interrupt before graceful shutdown, terminating")
			}
			os.Exit(-1)
		}()
	})
	return processContext
}
