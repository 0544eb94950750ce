package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI in an isolated working directory with no config file
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	t.Chdir(t.TempDir())
	t.Setenv("GEOFILEMAKER_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	configFlag, logLevelFlag, devLogFlag = "", "", false

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

const sampleDocument = `{
  "countries": {"DENMARK": ["DK1", "DK2"]},
  "regions": {"DK1": ["DK1_A"], "DK2": []},
  "areas": {"DK1_A": []}
}`

func TestGenerateFromStdin(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, sampleDocument, "generate", "--in", "-", "--out", dir, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, ".inc files successfully generated to "+dir)

	data, err := os.ReadFile(filepath.Join(dir, "CCCRRR.inc"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "DENMARK . DK1\nDENMARK . DK2")

	data, err = os.ReadFile(filepath.Join(dir, "RRRAAA.inc"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "DK1 . DK1_A")
}

func TestGenerateFromYAMLFileWithPrefix(t *testing.T) {
	src := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(src, []byte("countries: {DENMARK: []}\nregions: {}\nareas: {}\n"), 0644))
	dir := t.TempDir()

	_, err := run(t, "", "generate", "-i", src, "-o", dir, "--prefix", "base_")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "base_CCC.inc"))
	assert.NoError(t, err)
}

func TestGenerateMissingOutputDir(t *testing.T) {
	_, err := run(t, sampleDocument, "generate", "--in", "-", "--out", filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestGenerateRequiresInput(t *testing.T) {
	_, err := run(t, "", "generate")
	assert.Error(t, err)
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geofilemaker.yaml")

	out, err := run(t, "", "config", "init", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	_, err = run(t, "", "config", "init", "--path", path)
	assert.ErrorContains(t, err, "already exists")

	out, err = run(t, "", "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.Contains(t, out, "Server: :3000")
	assert.Contains(t, out, "search order:")
	assert.Contains(t, out, "2. geofilemaker.yaml")
}

func TestHistoryEmpty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("database:\n  path: "+db+"\n"), 0644))

	out, err := run(t, "", "--config", cfgFile, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "no generations recorded")
}
