package repl

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("sputter", pflag.ContinueOnError)
	RegisterFlags(flags)
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, DefaultPrompt, cfg.Prompt)
	assert.Equal(t, DefaultQuit, cfg.Quit)
	assert.Equal(t, FormatDebug, cfg.Format)
	assert.True(t, cfg.ShowParsed)
	assert.Equal(t, "", cfg.History)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigFlags(t *testing.T) {
	cfg, err := LoadConfig(newFlags(t, "--format", "json", "--show-parsed=false", "--quit", "exit"))
	require.NoError(t, err)

	assert.Equal(t, FormatJSON, cfg.Format)
	assert.False(t, cfg.ShowParsed)
	assert.Equal(t, "exit", cfg.Quit)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("SPUTTER_FORMAT", "sexpr")
	t.Setenv("SPUTTER_LOG_LEVEL", "debug")

	cfg, err := LoadConfig(newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, FormatSexpr, cfg.Format)
	assert.Equal(t, "debug", cfg.LogLevel)

	// flags win over the environment
	cfg, err = LoadConfig(newFlags(t, "--format", "json"))
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, cfg.Format)
}

func TestLoadConfigFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sputter.yaml")
	require.NoError(t, ioutil.WriteFile(file, []byte("prompt: \"sp> \"\nformat: sexpr\nhistory: /tmp/sputter_history\n"), 0644))

	cfg, err := LoadConfig(newFlags(t, "--config", file))
	require.NoError(t, err)
	assert.Equal(t, "sp> ", cfg.Prompt)
	assert.Equal(t, FormatSexpr, cfg.Format)
	assert.Equal(t, "/tmp/sputter_history", cfg.History)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(newFlags(t, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}

func TestLoadConfigInvalid(t *testing.T) {
	_, err := LoadConfig(newFlags(t, "--format", "xml"))
	assert.EqualError(t, err, `unknown format "xml"`)

	_, err = LoadConfig(newFlags(t, "--quit", " "))
	assert.Error(t, err)
}

func TestLoadConfigNilFlags(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}
