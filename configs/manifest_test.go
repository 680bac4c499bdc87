package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplescripting/simplescripting/argv"
)

const yamlManifest = `
name: deploy
commands:
  - name: service
    long_help: Deploys a service.
    options:
      - flags: ["-r", "--region NAME", "target region"]
        values: [eu-west, us-east]
      - flags: ["-n", "--dry-run"]
      - flags: ["--parallel BOOL"]
        type: bool
      - flags: ["--tags TAGS"]
        type: list
    arguments:
      - name: service
        values: [web, worker]
      - name: "[*extra]"
  - name: status
    arguments:
      - name: "[service]"
        values: [db]
`

const tomlManifest = `
name = "flat"

[[options]]
flags = ["-a"]

[[options]]
flags = ["-e", "--e-switch VALUE"]
values = ["one", "two"]

[[arguments]]
name = "mandatory"

[[arguments]]
name = "[optional]"
`

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadManifestYAML(t *testing.T) {
	manifest, err := LoadManifest(writeManifest(t, "deploy.yaml", yamlManifest))
	require.NoError(t, err)
	assert.Equal(t, "deploy", manifest.Name)

	def, err := manifest.Definition()
	require.NoError(t, err)
	require.NoError(t, def.Validate())

	outcome, err := argv.Decode(def, []string{"service", "-n", "--region", "eu-west", "--parallel", "true", "--tags", "a,b", "web", "x", "y"})
	require.NoError(t, err)
	assert.Equal(t, "service", outcome.Result.Command)
	want := argv.Values{
		"dry_run":  true,
		"region":   "eu-west",
		"parallel": true,
		"tags":     []string{"a", "b"},
		"service":  "web",
		"extra":    []string{"x", "y"},
	}
	if diff := cmp.Diff(want, outcome.Result.Values); diff != "" {
		t.Errorf("decoded values mismatch (-want +got):\n%s", diff)
	}

	outcome, err = argv.Decode(def, []string{"service", "-h"})
	require.NoError(t, err)
	require.True(t, outcome.IsHelp())
	assert.Equal(t, "Deploys a service.", outcome.Help.LongHelp)

	provider := manifest.Provider()
	candidates, err := provider.Candidates("service", "w", "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"web", "worker"}, candidates)

	candidates, err = provider.Candidates("region", "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"eu-west", "us-east"}, candidates)

	candidates, err = provider.Candidates("service", "d", "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"db"}, candidates)
}

func TestLoadManifestTOML(t *testing.T) {
	manifest, err := LoadManifest(writeManifest(t, "flat.toml", tomlManifest))
	require.NoError(t, err)
	assert.Equal(t, "flat", manifest.Name)

	def, err := manifest.Definition()
	require.NoError(t, err)

	outcome, err := argv.Decode(def, []string{"-a", "-ev_swt", "m_arg", "o_arg"})
	require.NoError(t, err)
	assert.Equal(t, argv.Values{
		"a":         true,
		"e_switch":  "v_swt",
		"mandatory": "m_arg",
		"optional":  "o_arg",
	}, outcome.Result.Values)

	candidates, err := manifest.Provider().Candidates("e_switch", "t", "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"two"}, candidates)
}

func TestManifestErrors(t *testing.T) {
	t.Run("name from file", func(t *testing.T) {
		manifest, err := LoadManifest(writeManifest(t, "script.yml", "arguments:\n  - name: x\n"))
		require.NoError(t, err)
		assert.Equal(t, "script", manifest.Name)
	})

	t.Run("mixed node", func(t *testing.T) {
		manifest, err := LoadManifest(writeManifest(t, "m.yaml", "arguments:\n  - name: x\ncommands:\n  - name: a\n"))
		require.NoError(t, err)
		_, err = manifest.Definition()
		assert.Error(t, err)
	})

	t.Run("unknown type", func(t *testing.T) {
		manifest, err := LoadManifest(writeManifest(t, "m.yaml", "options:\n  - flags: [\"--x V\"]\n    type: int\n"))
		require.NoError(t, err)
		_, err = manifest.Definition()
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}
