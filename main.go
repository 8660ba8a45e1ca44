package main

import (
	"fmt"
	"os"

	"github.com/rc-tools/ncharness/pkg/cmd"
	"github.com/rc-tools/ncharness/pkg/logging"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"
)

func main() {
	app := cli.NewApp()
	app.Name = "ncharness"
	app.Usage = "pipe test requests through nc and capture every response"
	app.Description = "ncharness sends '<echo host> <echo port> <id>' to a remote test server " +
		"through nc, and writes each response to r<id>.html. Script groups run " +
		"sequentially, optionally pausing for the operator; the final batch runs concurrently."
	run := cmd.NewRunCommand()
	app.Commands = cmd.RootCommands()
	app.Flags = append(cmd.RootFlags(), run.Flags...)
	// Without a subcommand, run the plan.
	app.Action = run.Action
	// Disable the built-in -v flag (version), to avoid collisions with the
	// verbosity flags.
	app.HideVersion = true
	app.Before = func(c *cli.Context) error {
		configureLogging(c)
		return nil
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func configureLogging(c *cli.Context) {
	if logging.IsTerminal() {
		logging.ConsoleMode()
	}

	// The LOG_LEVEL environment variable takes precedence.
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		var l zapcore.Level
		if err := l.UnmarshalText([]byte(level)); err != nil {
			panic(err)
		}
		logging.SetLevel(l)
		return
	}

	// Apply verbosity flags.
	switch {
	case c.Bool("v"):
		logging.SetLevel(zapcore.DebugLevel)
	case c.Bool("vv"):
		logging.SetLevel(zapcore.DebugLevel)
	default:
		// Do nothing; level remains at default (INFO).
	}
}
