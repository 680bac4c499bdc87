package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".ss_config")

	config, err := NewConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, defaultWorkspace, config.WorkspacePath)
	assert.FileExists(t, filepath.Join(dir, configFileName))

	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("WorkspacePath: ws\nOutputFormat: json\n"), 0o644))
	config, err = NewConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "ws", config.WorkspacePath)
	assert.Equal(t, "json", config.OutputFormat)
}

func TestNewConfigPathIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := NewConfig(path)
	assert.ErrorIs(t, err, errConfigPathIsFile)
}

func TestOutputFormatFor(t *testing.T) {
	config := &Config{OutputFormat: "table"}

	t.Setenv(EnvOutputFormat, "")
	assert.Equal(t, "table", config.OutputFormatFor(""))
	assert.Equal(t, "json", config.OutputFormatFor("json"))

	t.Setenv(EnvOutputFormat, "yaml")
	assert.Equal(t, "yaml", config.OutputFormatFor(""))

	var nilConfig *Config
	t.Setenv(EnvOutputFormat, "")
	assert.Equal(t, "", nilConfig.OutputFormatFor(""))
}

func TestEnvSource(t *testing.T) {
	source := NewEnvSource()
	assert.Equal(t, "env", source.Name())

	require.NoError(t, source.Set("SS_TEST_KEY", "value"))
	t.Cleanup(func() { os.Unsetenv("SS_TEST_KEY") })

	value, err := source.Get("SS_TEST_KEY")
	require.NoError(t, err)
	assert.Equal(t, "value", value)

	_, err = source.Get("SS_TEST_MISSING_KEY")
	assert.ErrorIs(t, err, ErrConfigNotFound)
}
