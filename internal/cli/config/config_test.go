package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "auto", cfg.Output)
	assert.False(t, cfg.Silent)
	assert.False(t, cfg.Matrix)
	assert.NotEmpty(t, cfg.HistoryFile)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	path := filepath.Join(dir, "echelon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: markdown\nsilent: true\n"), 0o644))

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.Output)
	assert.True(t, cfg.Silent)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadConfig_FileDiscovery(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "echelon.yml"), []byte("matrix: true\n"), 0o644))
	t.Chdir(dir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.True(t, cfg.Matrix)
	assert.Equal(t, "echelon.yml", GetConfigFileUsed())
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	path := filepath.Join(dir, "echelon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: markdown\n"), 0o644))
	t.Setenv("ECHELON_OUTPUT", "json")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())
	t.Setenv("ECHELON_OUTPUT", "json")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "auto", "")
	flags.Bool("silent", false, "")
	require.NoError(t, flags.Parse([]string{"--output", "text"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Output)
	assert.False(t, cfg.Silent, "unchanged flags must not override")
}

func TestLoadConfig_InvalidOutput(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())
	t.Setenv("ECHELON_OUTPUT", "xml")

	_, err := LoadConfig("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output mode")
}
