package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/imdario/mergo"

	"github.com/rc-tools/ncharness/pkg/logging"
)

const (
	EnvHomeDir   = "NCHARNESS_HOME"
	EnvEchoHost  = "NCHARNESS_ECHO_HOST"
	EnvEchoPort  = "NCHARNESS_ECHO_PORT"
	EnvNCHost    = "NCHARNESS_NC_HOST"
	EnvNCPort    = "NCHARNESS_NC_PORT"
	EnvOutputDir = "NCHARNESS_OUTPUT_DIR"
	EnvNCBinary  = "NCHARNESS_NC_BINARY"

	ConfigFileName = "ncharness.toml"
)

var envValidator = validator.New()

// Defaults returns the fallback configuration: the endpoints of the RC
// project test server, no sequential groups, and scripts 21 to 24 run
// concurrently.
func Defaults() EnvConfig {
	return EnvConfig{
		Echo: Endpoint{Host: "193.136.128.108", Port: 58016},
		NC:   Endpoint{Host: "tejo.tecnico.ulisboa.pt", Port: 59000},
		Output: OutputConfig{
			Dir:    ".",
			Binary: "nc",
		},
		Plan: Plan{
			Batch: []int{21, 22, 23, 24},
		},
	}
}

// Load populates the config from ncharness.toml (if present), then overlays
// environment variables, then fills whatever is still unset from Defaults.
func (e *EnvConfig) Load() error {
	// calculate home directory; use env var, or fall back to the working
	// directory otherwise.
	home, ok := os.LookupEnv(EnvHomeDir)
	if !ok {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to obtain working dir: %w", err)
		}
		home = wd
	}
	e.home = home

	// parse the ncharness.toml file, if it exists.
	f := filepath.Join(home, ConfigFileName)
	if _, err := os.Stat(f); err == nil {
		if _, err = toml.DecodeFile(f, e); err != nil {
			return fmt.Errorf("found %s at %s, but failed to parse: %w", ConfigFileName, f, err)
		}
		logging.S().Debugf("%s loaded from: %s", ConfigFileName, f)
	} else {
		logging.S().Debugf("no %s found at %s; running with defaults", ConfigFileName, f)
	}

	if err := e.applyEnv(); err != nil {
		return err
	}

	// apply fallbacks.
	if err := mergo.Merge(e, Defaults()); err != nil {
		return fmt.Errorf("failed to apply defaults: %w", err)
	}
	for i := range e.Plan.Groups {
		if e.Plan.Groups[i].Repeat == 0 {
			e.Plan.Groups[i].Repeat = 1
		}
	}
	return nil
}

func (e *EnvConfig) applyEnv() error {
	for name, dst := range map[string]*string{
		EnvEchoHost:  &e.Echo.Host,
		EnvNCHost:    &e.NC.Host,
		EnvOutputDir: &e.Output.Dir,
		EnvNCBinary:  &e.Output.Binary,
	} {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			*dst = v
		}
	}
	for name, dst := range map[string]*int{
		EnvEchoPort: &e.Echo.Port,
		EnvNCPort:   &e.NC.Port,
	} {
		v, ok := os.LookupEnv(name)
		if !ok || v == "" {
			continue
		}
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", name, err)
		}
		*dst = p
	}
	return nil
}

// Validate performs structural validation of the config.
func (e *EnvConfig) Validate() error {
	return envValidator.Struct(e)
}

// EnsureOutputDir checks whether the output directory exists, and if not it
// attempts to create it.
func (e *EnvConfig) EnsureOutputDir() error {
	return ensureDir(e.Output.Dir)
}

// ensureDir checks whether the specified path is a directory, and if not it
// attempts to create it.
func ensureDir(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		// We need to create the directory.
		return os.MkdirAll(path, os.ModePerm)
	}

	if !fi.IsDir() {
		return fmt.Errorf("path %s exists, and it is not a directory", path)
	}
	return nil
}
