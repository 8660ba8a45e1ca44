package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/rc-tools/ncharness/pkg/cmd"
	"github.com/rc-tools/ncharness/pkg/config"
)

const fakeNC = `#!/bin/sh
cat
`

// runApp runs the CLI with args against an empty home directory, returning
// what it wrote to stdout.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvHomeDir, t.TempDir())

	var out bytes.Buffer
	app := cli.NewApp()
	app.Name = "ncharness"
	app.Commands = cmd.RootCommands()
	app.Flags = cmd.RootFlags()
	app.HideVersion = true
	app.Writer = &out
	app.ErrWriter = &out

	err := app.Run(append([]string{"ncharness"}, args...))
	return out.String(), err
}

func fakeBinary(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake nc is a shell script")
	}
	path := filepath.Join(t.TempDir(), "nc")
	require.NoError(t, os.WriteFile(path, []byte(fakeNC), 0755))
	return path
}

func TestPlanPrintsInvocations(t *testing.T) {
	out, err := runApp(t, "plan", "--group", "1,2:2", "--group", "10:1:wait", "--batch", "21-22")
	require.NoError(t, err)

	require.Contains(t, out, "group 1  [1 2]")
	require.Contains(t, out, "group 2  [10]")
	require.Contains(t, out, "batch    [21 22]")
	require.Contains(t, out, `"193.136.128.108 58016 21\n" | nc tejo.tecnico.ulisboa.pt 59000 > r21.html`)
	require.Contains(t, out, `"193.136.128.108 58016 10\n" | nc tejo.tecnico.ulisboa.pt 59000 > r10.html`)
}

func TestPlanHonoursEndpointFlags(t *testing.T) {
	out, err := runApp(t, "--nc-host", "localhost", "--nc-port", "58000", "--echo-port", "1234", "plan")
	require.NoError(t, err)
	require.Contains(t, out, `"193.136.128.108 1234 24\n" | nc localhost 58000 > r24.html`)
}

func TestPlanRejectsInvalidConfig(t *testing.T) {
	_, err := runApp(t, "--nc-port", "0", "plan")
	require.Error(t, err)

	_, err = runApp(t, "plan", "--group", "1:0")
	require.Error(t, err)
}

func TestFlagsDoNotCarryOverBetweenRuns(t *testing.T) {
	_, err := runApp(t, "--color", "always", "plan", "--group", "1:0")
	require.Error(t, err)

	out, err := runApp(t, "plan", "--group", "5")
	require.NoError(t, err)
	require.Contains(t, out, "group 1  [5]")
	require.NotContains(t, out, "group 2")

	out, err = runApp(t, "plan")
	require.NoError(t, err)
	require.NotContains(t, out, "group 1")
	require.Contains(t, out, "batch  [21 22 23 24]")
}

func TestRunEndToEnd(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "results")

	out, err := runApp(t,
		"--color", "never",
		"--nc-binary", fakeBinary(t),
		"--out", outDir,
		"run",
		"--group", "1,2:2",
		"--batch", "21-23",
	)
	require.NoError(t, err)
	require.Contains(t, out, "Starting script group: [1 2]")
	require.Contains(t, out, "Script group [21 22 23] done")
	require.Contains(t, out, "7 invocations")

	for _, id := range []string{"1", "2", "21", "22", "23"} {
		b, err := os.ReadFile(filepath.Join(outDir, "r"+id+".html"))
		require.NoError(t, err)
		require.Equal(t, "193.136.128.108 58016 "+id+"\n", string(b))
	}
}

func TestRunUnattendedSkipsPauses(t *testing.T) {
	outDir := t.TempDir()

	_, err := runApp(t,
		"--nc-binary", fakeBinary(t),
		"--out", outDir,
		"run",
		"--unattended",
		"--group", "11:2:wait",
		"--batch", "",
	)
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(outDir, "r11.html"))
}

func TestSingle(t *testing.T) {
	outDir := t.TempDir()

	_, err := runApp(t, "--nc-binary", fakeBinary(t), "--out", outDir, "single", "5")
	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(outDir, "r5.html"))
	require.NoError(t, err)
	require.Equal(t, "193.136.128.108 58016 5\n", string(b))

	_, err = runApp(t, "single")
	require.Error(t, err)

	_, err = runApp(t, "single", "1-3")
	require.Error(t, err)
}

func TestBatch(t *testing.T) {
	outDir := t.TempDir()

	_, err := runApp(t, "--nc-binary", fakeBinary(t), "--out", outDir, "batch", "31,32", "33")
	require.NoError(t, err)
	for _, f := range []string{"r31.html", "r32.html", "r33.html"} {
		require.FileExists(t, filepath.Join(outDir, f))
	}
}

func TestVersion(t *testing.T) {
	out, err := runApp(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "ncharness")
	require.Contains(t, out, "Git commit:")
}
