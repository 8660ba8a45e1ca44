package dispatch

import (
	"fmt"
	"path/filepath"
	"strconv"
)

// Command returns the request line written to the child's stdin, and the
// argument list the child is started with. The line is what
// `echo '<echo host> <echo port> <id>'` would emit.
func (d *Dispatcher) Command(id int) (stdin string, argv []string) {
	stdin = fmt.Sprintf("%s %d %d\n", d.echo.Host, d.echo.Port, id)
	argv = []string{d.binary, d.nc.Host, strconv.Itoa(d.nc.Port)}
	return stdin, argv
}

// OutputName returns the artifact file name for an identifier.
func OutputName(id int) string {
	return "r" + strconv.Itoa(id) + ".html"
}

// OutputPath returns where the artifact for an identifier is written.
func (d *Dispatcher) OutputPath(id int) string {
	return filepath.Join(d.dir, OutputName(id))
}
