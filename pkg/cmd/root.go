package cmd

import "github.com/urfave/cli/v2"

// RootCommands builds all subcommands of the ncharness CLI. urfave/cli keeps
// parsed values on the flag structs, so every app gets its own copy.
func RootCommands() cli.Commands {
	return cli.Commands{
		NewRunCommand(),
		newSingleCommand(),
		newBatchCommand(),
		newPlanCommand(),
		newVersionCommand(),
	}
}

// RootFlags builds the global flags of the ncharness CLI.
func RootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "v",
			Usage: "verbose output (equivalent to DEBUG log level)",
		},
		&cli.BoolFlag{
			Name:  "vv",
			Usage: "super verbose output (equivalent to DEBUG log level for now, it may accommodate TRACE in the future)",
		},
		&cli.GenericFlag{
			Name:  "color",
			Usage: "colorize console output: " + colorModes.String(),
			Value: NewEnumValue(colorAuto, colorModes...),
		},
		&cli.StringFlag{
			Name:  "echo-host",
			Usage: "host announced in the request line (overrides ncharness.toml)",
		},
		&cli.IntFlag{
			Name:  "echo-port",
			Usage: "port announced in the request line (overrides ncharness.toml)",
		},
		&cli.StringFlag{
			Name:  "nc-host",
			Usage: "host nc connects to (overrides ncharness.toml)",
		},
		&cli.IntFlag{
			Name:  "nc-port",
			Usage: "port nc connects to (overrides ncharness.toml)",
		},
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "write r<id>.html artifacts to `DIR` (overrides ncharness.toml)",
		},
		&cli.StringFlag{
			Name:  "nc-binary",
			Usage: "netcat executable to invoke (overrides ncharness.toml)",
		},
	}
}

// planFlags override the plan in ncharness.toml.
func planFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "group",
			Aliases: []string{"g"},
			Usage:   "script group as IDS[:REPEAT[:wait]], e.g. 1,2,3,4:3 or 11:1:wait; repeatable",
		},
		&cli.StringSliceFlag{
			Name:    "batch",
			Aliases: []string{"b"},
			Usage:   "ids run concurrently after the groups, e.g. 21-24",
		},
	}
}
