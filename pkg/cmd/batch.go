package cmd

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/rc-tools/ncharness/pkg/conv"
)

func newBatchCommand() *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Aliases:   []string{"b"},
		Usage:     "run scripts concurrently and wait for all of them; defaults to the configured batch",
		ArgsUsage: "[ids...]",
		Action:    batchCommand,
	}
}

func batchCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	ids := cfg.Plan.Batch
	if c.NArg() > 0 {
		if ids, err = conv.ParseIDs(c.Args().Slice()...); err != nil {
			return err
		}
	}
	if len(ids) == 0 {
		return errors.New("no script ids to run")
	}

	d, _, err := setupDispatcher(c, cfg)
	if err != nil {
		return err
	}

	_, err = d.RunBatch(ProcessContext(), ids)
	return err
}
