package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lekkimworld/smartme-protobuf-parser/internal/testutil"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDecodeHexArgument(t *testing.T) {
	out, err := execute(t, "", testutil.LoadHex(t, "smartme/two_devices.hex"))
	require.NoError(t, err)
	require.JSONEq(t, testutil.LoadRawJSON(t, "smartme/two_devices.json"), out)
}

func TestDecodeFileYAML(t *testing.T) {
	raw, err := hex.DecodeString(testutil.LoadHex(t, "smartme/two_devices.hex"))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "payload.bin")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	out, err := execute(t, "", "--file", path, "--format", "yaml")
	require.NoError(t, err)
	require.Contains(t, out, "device_id: 89abcdef-4567-0123-1032-547698badcfe")
	require.Contains(t, out, "kind: ActivePowerTotal_ImportExport")
}

func TestDecodeStdinFile(t *testing.T) {
	out, err := execute(t, "", "--file", "-")
	require.NoError(t, err)
	require.Equal(t, "[]\n", out)
}

func TestInteractive(t *testing.T) {
	input := "\n" + testutil.LoadHex(t, "smartme/two_devices.hex") + "\nnot-hex\n"
	out, err := execute(t, input, "--adjust-epoch")
	require.NoError(t, err)
	require.Contains(t, out, `"timestamp": "2016-05-28T02:40:00Z"`)
}

func TestMalformedPayloadFails(t *testing.T) {
	_, err := execute(t, "", "FFFF")
	require.Error(t, err)

	_, err = execute(t, "", "--format", "xml", "00")
	require.Error(t, err)
}
