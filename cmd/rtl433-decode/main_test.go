package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestDecodeArgument(t *testing.T) {
	out, _, err := execute(t, "", "{48}3c93f0933227")
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	require.Equal(t, "AVX1B4S-CarRemote", rec["model"])
	require.Equal(t, float64(0x3C93F), rec["id"])
	require.Equal(t, float64(0x0933227), rec["code"])
	require.Contains(t, rec, "time")
}

func TestDecodeStdin(t *testing.T) {
	stdin := "# capture\n{48}3c93f0933227\n\n{48}000000000000\n{37}1234abcdaa\nnot-hex\n"
	out, errOut, err := execute(t, stdin)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], `"model":"AVX1B4S-CarRemote"`)
	require.Contains(t, lines[1], `"model":"Audiovox-CarRemote"`)
	require.Contains(t, errOut, "failed to decode rows")
}

func TestDeviceFilterFlag(t *testing.T) {
	out, _, err := execute(t, "", "--devices", "Audiovox car remote", "{48}3c93f0933227")
	require.NoError(t, err)
	require.Empty(t, out)

	_, _, err = execute(t, "", "--devices", "nope", "{48}3c93f0933227")
	require.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rtl433.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: log\nlogging:\n  level: warn\n"), 0o600))

	out, _, err := execute(t, "", "--config", path, "{48}3c93f0933227")
	require.NoError(t, err)
	require.Contains(t, out, "msg=decoded")
	require.Contains(t, out, "model=AVX1B4S-CarRemote")

	_, _, err = execute(t, "", "--format", "xml", "{48}3c93f0933227")
	require.Error(t, err)
}

func TestDevicesCommand(t *testing.T) {
	out, _, err := execute(t, "", "devices")
	require.NoError(t, err)
	var infos []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 4)
	require.Equal(t, "Astrostart 2000 Car Remote", infos[0]["name"])
	require.Equal(t, "OOK_PPM", infos[0]["modulation"])
	require.Equal(t, "Audiovox AVX1B4S car key", infos[1]["name"])
	require.Equal(t, "OOK_MC_ZEROBIT", infos[1]["modulation"])
	require.Equal(t, "Audiovox PRO-OE3B Car Remote (-f 303M)", infos[3]["name"])
}

func executeApp(t *testing.T, a *app, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout bytes.Buffer
	cmd := newRootCmdFor(a)
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return stdout.String(), err
}

func TestUnknownDeviceFailsBeforeReading(t *testing.T) {
	out, err := executeApp(t, &app{log: logrus.New()}, "{48}3c93f0933227\n{48}3c93f0933227\n", "--devices", "Audiovox car remot")
	require.ErrorContains(t, err, "Audiovox car remot")
	require.Empty(t, out)

	path := filepath.Join(t.TempDir(), "rtl433.yaml")
	require.NoError(t, os.WriteFile(path, []byte("devices:\n  - nope\n"), 0o600))
	_, err = executeApp(t, &app{log: logrus.New()}, "{48}3c93f0933227\n", "--config", path)
	require.Error(t, err)
}

func TestMetricsServerOnlyForDecoding(t *testing.T) {
	a := &app{log: logrus.New()}
	_, err := executeApp(t, a, "", "--metrics-addr", "127.0.0.1:0", "devices")
	require.NoError(t, err)
	require.Nil(t, a.server)

	a = &app{log: logrus.New()}
	out, err := executeApp(t, a, "", "--metrics-addr", "127.0.0.1:0", "{48}3c93f0933227")
	require.NoError(t, err)
	require.NotNil(t, a.server)
	require.Contains(t, out, "AVX1B4S-CarRemote")
	require.Equal(t, 1.0, testutil.ToFloat64(a.metrics.Events.WithLabelValues("Audiovox AVX1B4S car key")))
}
