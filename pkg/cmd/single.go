package cmd

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/rc-tools/ncharness/pkg/conv"
)

func newSingleCommand() *cli.Command {
	return &cli.Command{
		Name:      "single",
		Aliases:   []string{"s"},
		Usage:     "run one script and wait for it to exit",
		ArgsUsage: "<id>",
		Action:    singleCommand,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "wait",
				Aliases: []string{"w"},
				Usage:   "pause for the operator once the script is done",
			},
		},
	}
}

func singleCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("expected exactly one script id")
	}
	ids, err := conv.ParseIDs(c.Args().First())
	if err != nil {
		return err
	}
	if len(ids) != 1 {
		return fmt.Errorf("expected exactly one script id; got %v", ids)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	d, _, err := setupDispatcher(c, cfg)
	if err != nil {
		return err
	}

	_, err = d.RunSingle(ProcessContext(), ids[0], c.Bool("wait"))
	return err
}
