package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/rc-tools/ncharness/pkg/version"
)

func newVersionCommand() *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "print version numbers",
		Action: versionCommand,
	}
}

func versionCommand(c *cli.Context) error {
	fmt.Fprintln(c.App.Writer, "ncharness")
	commit := version.Commit()
	if commit == "" {
		fmt.Fprintln(c.App.Writer, "Git commit: dirty")
		return nil
	}
	if len(commit) > 8 {
		commit = commit[:8]
	}
	fmt.Fprintln(c.App.Writer, "Git commit:", commit)
	return nil
}
