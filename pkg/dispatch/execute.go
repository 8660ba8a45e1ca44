package dispatch

import (
	"context"
	"time"

	"github.com/rc-tools/ncharness/pkg/config"
)

// Execute runs every group of the plan in order, each group's ids repeated
// Repeat times through RunSingle, and then the plan's batch through RunBatch.
// It stops at the first error.
func (d *Dispatcher) Execute(ctx context.Context, plan config.Plan) (*Summary, error) {
	var (
		start = time.Now()
		sum   = &Summary{RunID: d.runID}
	)
	defer func() {
		sum.Elapsed = time.Since(start)
	}()

	for _, g := range plan.Groups {
		d.reporter.GroupStarted(g.IDs)
		d.log.Infow("starting script group", "ids", g.IDs, "repeat", g.Repeat, "wait", g.Wait)

		for n := 0; n < g.Repeat; n++ {
			for _, id := range g.IDs {
				res, err := d.RunSingle(ctx, id, g.Wait)
				if res != nil {
					sum.Results = append(sum.Results, res)
				}
				if err != nil {
					return sum, err
				}
			}
		}

		d.reporter.GroupDone(g.IDs)
	}

	if len(plan.Batch) == 0 {
		return sum, nil
	}

	d.reporter.GroupStarted(plan.Batch)
	results, err := d.RunBatch(ctx, plan.Batch)
	for _, res := range results {
		if res != nil {
			sum.Results = append(sum.Results, res)
		}
	}
	if err != nil {
		return sum, err
	}
	d.reporter.GroupDone(plan.Batch)
	return sum, nil
}
