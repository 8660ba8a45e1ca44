package dispatch

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

type completion struct {
	idx int
	res *Result
	err error
}

// RunBatch launches one child per id, in the order given, without waiting on
// any of them; then it waits until every launched child has exited.
//
// results[i] belongs to ids[i], and is nil if that launch failed. A failed
// launch does not stop the remaining ones. Every launch error and the first
// wait error are returned together once everything has exited; later wait
// errors are only reported.
func (d *Dispatcher) RunBatch(ctx context.Context, ids []int) ([]*Result, error) {
	var (
		merr    *multierror.Error
		handles = make([]*Handle, len(ids))
		running int
	)

	for i, id := range ids {
		h, err := d.launch(ctx, id)
		if err != nil {
			d.reporter.Errored(id, err)
			merr = multierror.Append(merr, err)
			continue
		}
		handles[i] = h
		running++
	}

	d.log.Infow("batch launched", "ids", ids, "running", running)

	var (
		results = make([]*Result, len(ids))
		done    = make(chan completion, running)
		eg      errgroup.Group
	)

	for i, h := range handles {
		if h == nil {
			continue
		}
		i, h := i, h
		eg.Go(func() error {
			res, err := h.wait()
			done <- completion{i, res, err}
			return err
		})
	}

	// completions are reported as they arrive; results keep launch order.
	for n := 0; n < running; n++ {
		c := <-done
		results[c.idx] = c.res
		if c.err != nil {
			d.reporter.Errored(ids[c.idx], c.err)
			continue
		}
		d.reporter.Finished(c.res)
	}
	if err := eg.Wait(); err != nil {
		merr = multierror.Append(merr, err)
	}

	if err := ctx.Err(); err != nil {
		merr = multierror.Append(merr, err)
	}
	return results, merr.ErrorOrNil()
}
