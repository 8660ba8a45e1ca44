package config

import (
	"fmt"
	"net"
	"strconv"
)

// EnvConfig contains the harness configuration. It is populated by
// coalescing values from these sources, in descending order of precedence:
//
//  1. command line flags (applied by the caller after Load).
//  2. environment variables.
//  3. ncharness.toml.
//  4. default fallbacks.
type EnvConfig struct {
	home string

	// Echo is the endpoint announced in the request line piped into nc.
	Echo Endpoint `toml:"echo"`

	// NC is the endpoint nc connects to.
	NC Endpoint `toml:"nc"`

	Output OutputConfig `toml:"output"`
	Plan   Plan         `toml:"plan"`
}

// Home returns the directory ncharness.toml was looked up in.
func (e EnvConfig) Home() string {
	return e.home
}

type Endpoint struct {
	Host string `toml:"host" validate:"required,hostname_rfc1123|ip"`
	Port int    `toml:"port" validate:"min=1,max=65535"`
}

// Addr returns the endpoint in host:port form.
func (ep Endpoint) Addr() string {
	return net.JoinHostPort(ep.Host, strconv.Itoa(ep.Port))
}

func (ep Endpoint) String() string {
	return fmt.Sprintf("%s %d", ep.Host, ep.Port)
}

type OutputConfig struct {
	// Dir is where r<id>.html artifacts are written.
	Dir string `toml:"dir" validate:"required"`

	// Binary is the netcat executable.
	Binary string `toml:"binary" validate:"required"`
}

// Plan is the static list of sequential groups, followed by the batch of
// identifiers that are dispatched concurrently.
type Plan struct {
	Groups []Group `toml:"groups" validate:"dive"`
	Batch  []int   `toml:"batch" validate:"dive,gte=0"`
}

// Group is an ordered sequence of identifiers, run Repeat times, optionally
// pausing for the operator after each run.
type Group struct {
	IDs    []int `toml:"ids" validate:"required,min=1,dive,gte=0"`
	Repeat int   `toml:"repeat" validate:"gte=1"`
	Wait   bool  `toml:"wait"`
}
