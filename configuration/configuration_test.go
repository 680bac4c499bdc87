package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configurationText = `
abspath_key=/tmp/bar
relpath_key=foo
encr_key=uTxllKRD2S+IH92oi30luwu0JIqp7kKA

[group1]
g_key=baz

[group2]
g2_key=bang
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ss_config_test")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	home, err := homedir.Dir()
	require.NoError(t, err)

	configuration, err := Load(
		WithConfigFile(writeConfig(t, configurationText)),
		WithPasswordsKey("encryption_key"),
	)
	require.NoError(t, err)

	value, err := configuration.Get("abspath_key")
	require.NoError(t, err)
	path, err := value.FullPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/bar", path)

	value, err = configuration.Get("relpath_key")
	require.NoError(t, err)
	path, err = value.FullPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "foo"), path)

	value, err = configuration.Get("encr_key")
	require.NoError(t, err)
	decrypted, err := value.Decrypted()
	require.NoError(t, err)
	assert.Equal(t, "encrypted_value", decrypted)

	group, err := configuration.Group("group1")
	require.NoError(t, err)
	value, err = group.Get("g_key")
	require.NoError(t, err)
	assert.Equal(t, "baz", value.String())

	group, err = configuration.Group("group2")
	require.NoError(t, err)
	value, err = group.Get("g2_key")
	require.NoError(t, err)
	path, err = value.FullPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "bang"), path)

	assert.Equal(t, []string{"abspath_key", "encr_key", "relpath_key"}, configuration.Keys())
	assert.Equal(t, []string{"group1", "group2"}, configuration.Groups())
}

func TestLoadNotFound(t *testing.T) {
	configuration, err := Load(WithConfigFile(writeConfig(t, configurationText)))
	require.NoError(t, err)

	_, err = configuration.Get("missing")
	assert.EqualError(t, err, `Key/group "missing" not found!`)

	_, err = configuration.Group("group3")
	assert.EqualError(t, err, `Key/group "group3" not found!`)

	group, err := configuration.Group("group1")
	require.NoError(t, err)
	_, err = group.Get("abspath_key")
	assert.Error(t, err)
}

func TestLoadRequired(t *testing.T) {
	path := writeConfig(t, configurationText)

	_, err := Load(WithConfigFile(path), WithRequired("abspath_key", "relpath_key"))
	assert.NoError(t, err)

	_, err = Load(WithConfigFile(path), WithRequired("abspath_key", "a", "g_key", "group1"))
	assert.EqualError(t, err, "Missing required configuration key(s): a, g_key, group1")
}

func TestLoadCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".script")

	configuration, err := Load(WithConfigFile(path))
	require.NoError(t, err)
	assert.Empty(t, configuration.Keys())
	assert.FileExists(t, path)
}
