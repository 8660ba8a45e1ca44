package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/rc-tools/ncharness/pkg/logging"
)

// NewRunCommand builds the `run` command. Its flags and action double as the
// app's defaults when no subcommand is given.
func NewRunCommand() *cli.Command {
	return &cli.Command{
		Name:   "run",
		Usage:  "run every script group sequentially, then the batch concurrently",
		Action: runCommand,
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "unattended",
				Usage: "do not pause for the operator, even in groups flagged wait",
			},
		}, planFlags()...),
	}
}

func runCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	d, reporter, err := setupDispatcher(c, cfg)
	if err != nil {
		return err
	}

	logging.S().Infow("executing plan", "run_id", d.RunID(), "groups", len(cfg.Plan.Groups), "batch", cfg.Plan.Batch)

	sum, err := d.Execute(ProcessContext(), cfg.Plan)
	reporter.Summary(sum)
	return err
}
