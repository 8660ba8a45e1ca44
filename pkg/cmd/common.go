package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/rc-tools/ncharness/pkg/config"
	"github.com/rc-tools/ncharness/pkg/conv"
	"github.com/rc-tools/ncharness/pkg/dispatch"
	"github.com/rc-tools/ncharness/pkg/logging"
	"github.com/rc-tools/ncharness/pkg/prompt"
)

// loadConfig loads the environment configuration and applies the command
// line overrides on top of it, then validates the result.
func loadConfig(c *cli.Context) (*config.EnvConfig, error) {
	cfg := &config.EnvConfig{}
	if err := cfg.Load(); err != nil {
		return nil, err
	}

	for name, dst := range map[string]*string{
		"echo-host": &cfg.Echo.Host,
		"nc-host":   &cfg.NC.Host,
		"out":       &cfg.Output.Dir,
		"nc-binary": &cfg.Output.Binary,
	} {
		if c.IsSet(name) {
			*dst = c.String(name)
		}
	}
	for name, dst := range map[string]*int{
		"echo-port": &cfg.Echo.Port,
		"nc-port":   &cfg.NC.Port,
	} {
		if c.IsSet(name) {
			*dst = c.Int(name)
		}
	}

	if c.IsSet("group") {
		groups, err := conv.ParseGroups(c.StringSlice("group"))
		if err != nil {
			return nil, err
		}
		cfg.Plan.Groups = groups
	}
	if c.IsSet("batch") {
		ids, err := conv.ParseIDs(c.StringSlice("batch")...)
		if err != nil {
			return nil, fmt.Errorf("failed while parsing batch: %w", err)
		}
		cfg.Plan.Batch = ids
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setupDispatcher prepares the output directory and builds a dispatcher
// reporting to the app's writer.
func setupDispatcher(c *cli.Context, cfg *config.EnvConfig) (*dispatch.Dispatcher, *dispatch.Reporter, error) {
	if err := cfg.EnsureOutputDir(); err != nil {
		return nil, nil, fmt.Errorf("failed to prepare output dir: %w", err)
	}

	reporter := dispatch.NewReporter(c.App.Writer, useColor(c))

	var ack prompt.Acknowledger = prompt.NewLineReader(os.Stdin, c.App.Writer)
	if c.Bool("unattended") {
		ack = prompt.Auto{}
	}

	d := dispatch.New(cfg,
		dispatch.WithReporter(reporter),
		dispatch.WithAcknowledger(ack),
		dispatch.WithStderr(c.App.ErrWriter),
	)
	logging.S().Debugw("dispatcher ready",
		"run_id", d.RunID(),
		"echo", cfg.Echo.Addr(),
		"nc", cfg.NC.Addr(),
		"output", cfg.Output.Dir,
	)
	return d, reporter, nil
}

func useColor(c *cli.Context) bool {
	v, ok := c.Generic("color").(*EnumValue)
	if !ok {
		return logging.IsTerminal()
	}
	switch v.String() {
	case colorAlways:
		return true
	case colorNever:
		return false
	default:
		return logging.IsTerminal()
	}
}
