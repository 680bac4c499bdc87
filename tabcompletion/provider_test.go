package tabcompletion

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplescripting/simplescripting/argv"
)

type scriptCompletions struct{}

func (scriptCompletions) ESwitch(prefix, suffix string, _ argv.Values) []string {
	return []string{"e:" + prefix + "|" + suffix}
}

func (scriptCompletions) Mandatory(_, _ string, others argv.Values) []string {
	return others.Keys()
}

func (scriptCompletions) Wrong(prefix string) []string {
	return nil
}

func TestMethodProvider(t *testing.T) {
	provider := MethodProvider(scriptCompletions{})

	candidates, err := provider.Candidates("e_switch", "a", "b", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"e:a|b"}, candidates)

	candidates, err = provider.Candidates("mandatory", "", "", argv.Values{"z": true, "a": "x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "z"}, candidates)

	_, err = provider.Candidates("optional", "", "", nil)
	assert.True(t, errors.Is(err, ErrNoProvider))

	_, err = provider.Candidates("wrong", "", "", nil)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoProvider))
}

func TestMethodName(t *testing.T) {
	assert.Equal(t, "ESwitch", methodName("e_switch"))
	assert.Equal(t, "Arg1", methodName("arg1"))
	assert.Equal(t, "DryRun", methodName("dry-run"))
}

func TestProviderFuncs(t *testing.T) {
	provider := ProviderFuncs{
		"arg1": func(prefix, _ string, _ argv.Values) []string {
			return []string{prefix + "1", prefix + "2"}
		},
	}
	candidates, err := provider.Candidates("arg1", "x", "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"x1", "x2"}, candidates)

	_, err = provider.Candidates("arg2", "", "", nil)
	assert.True(t, errors.Is(err, ErrNoProvider))
}

func TestStaticProvider(t *testing.T) {
	provider := StaticProvider{"format": {"json", "yaml", "table"}}

	candidates, err := provider.Candidates("format", "j", "unused", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"json"}, candidates)

	candidates, err = provider.Candidates("missing", "", "", nil)
	require.NoError(t, err)
	assert.Nil(t, candidates)
}
