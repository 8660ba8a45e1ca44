package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/rc-tools/ncharness/pkg/config"
	"github.com/rc-tools/ncharness/pkg/dispatch"
)

func newPlanCommand() *cli.Command {
	return &cli.Command{
		Name:   "plan",
		Usage:  "print the resolved plan and the invocations it would make, without running anything",
		Action: planCommand,
		Flags:  planFlags(),
	}
}

func planCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	// the dispatcher only renders commands here; nothing is launched.
	d := dispatch.New(cfg, dispatch.WithReporter(dispatch.NewReporter(c.App.Writer, false)))

	w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "echo\t%s\n", cfg.Echo.Addr())
	fmt.Fprintf(w, "nc\t%s\n", cfg.NC.Addr())
	fmt.Fprintf(w, "output\t%s\n", cfg.Output.Dir)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "STAGE\tIDS\tREPEAT\tWAIT")
	for i, g := range cfg.Plan.Groups {
		fmt.Fprintf(w, "group %d\t%v\t%d\t%t\n", i+1, g.IDs, g.Repeat, g.Wait)
	}
	if len(cfg.Plan.Batch) > 0 {
		fmt.Fprintf(w, "batch\t%v\t1\tfalse\n", cfg.Plan.Batch)
	}
	fmt.Fprintln(w)

	for _, id := range uniqueIDs(cfg.Plan.Groups, cfg.Plan.Batch) {
		stdin, argv := d.Command(id)
		fmt.Fprintf(w, "%d\t%q | %s > %s\n", id, stdin, strings.Join(argv, " "), d.OutputPath(id))
	}
	return w.Flush()
}

// uniqueIDs lists every id the plan touches, in first-use order.
func uniqueIDs(groups []config.Group, batch []int) []int {
	var (
		seen = make(map[int]struct{})
		res  []int
	)
	add := func(id int) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			res = append(res, id)
		}
	}
	for _, g := range groups {
		for _, id := range g.IDs {
			add(id)
		}
	}
	for _, id := range batch {
		add(id)
	}
	return res
}
