package tabcompletion

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplescripting/simplescripting/argv"
)

const executable = "/path/to/executable "

type call struct {
	key    string
	prefix string
	suffix string
	others argv.Values
}

// recordingProvider filters fixed lists by prefix+suffix and records its calls.
type recordingProvider struct {
	values map[string][]string
	calls  []call
}

func (p *recordingProvider) Candidates(key, prefix, suffix string, others argv.Values) ([]string, error) {
	p.calls = append(p.calls, call{key: key, prefix: prefix, suffix: suffix, others: others})
	var result []string
	for _, v := range p.values[key] {
		if strings.HasPrefix(v, prefix+suffix) {
			result = append(result, v)
		}
	}
	return result, nil
}

func newRecordingProvider() *recordingProvider {
	return &recordingProvider{values: map[string][]string{
		"opt1": {"opt1v1", "_opt1v2"},
		"arg1": {"arg1v1", "arg1v2", "_arg1v3", " _argv1spc"},
		"arg2": {"arg2v1", "arg2v2", "--arg2v3"},
	}}
}

func switchesDefinition() argv.Definition {
	return argv.Leaf(
		argv.Opt("-o", "--opt1 ARG"),
		argv.Opt("-O", "--opt2"),
		argv.Arg("arg1"),
		argv.Arg("arg2"),
	)
}

// complete resolves symbolic, a line where `<tab>` marks the cursor.
func complete(t *testing.T, tc *TabCompletion, symbolic string) []string {
	t.Helper()
	line := executable + symbolic
	point := strings.Index(line, "<tab>")
	require.GreaterOrEqual(t, point, 0)
	line = strings.Replace(line, "<tab>", "", 1)

	candidates, err := tc.Candidates(line, point)
	require.NoError(t, err)
	return candidates
}

func TestCandidates(t *testing.T) {
	all := newRecordingProvider().values

	cases := []struct {
		line     string
		expected []string
	}{
		{"<tab>", all["arg1"]},
		{"a<tab>", []string{"arg1v1", "arg1v2"}},
		{"--opt2 <tab>", all["arg1"]},
		{"-- <tab>", all["arg1"]},
		{"a <tab>", all["arg2"]},
		{"a -- --<tab>", []string{"--arg2v3"}},
		{"-- --aaa <tab>", all["arg2"]},
		{"--<tab>", []string{"--opt1", "--opt2"}},
		{"--<tab> a", []string{"--opt1", "--opt2"}},
		{"--<tab> -- a", []string{"--opt1", "--opt2"}},
		{"--<tab> --xyz", []string{"--opt1", "--opt2"}},
		{"--opt1 <tab> a", all["opt1"]},
		{"--opt1 o<tab> a", []string{"opt1v1"}},
		{"-o<tab>", all["opt1"]},
		{"-o <tab>", all["opt1"]},
		{"-o -O <tab>", all["arg1"]},
		{"-O <tab>", all["arg1"]},
		{"arg1<tab>v", []string{"arg1v1", "arg1v2"}},
		{"--o<tab>p", []string{"--opt1", "--opt2"}},
		{"--o<tab>x", []string{"--opt1", "--opt2"}},
		{"--help a<tab>", []string{"arg1v1", "arg1v2"}},
		{`\ <tab>`, []string{" _argv1spc"}},
	}
	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			completion := New(switchesDefinition(), newRecordingProvider())
			assert.Equal(t, tc.expected, complete(t, completion, tc.line))
		})
	}

	empty := []string{
		"arg1<tab>x",
		"a b <tab>",
		"-O<tab>",
		"-x <tab>",
		`"unterminated <tab>`,
	}
	for _, line := range empty {
		t.Run(line, func(t *testing.T) {
			completion := New(switchesDefinition(), newRecordingProvider())
			assert.Empty(t, complete(t, completion, line))
		})
	}
}

func TestCandidatesProviderArguments(t *testing.T) {
	provider := newRecordingProvider()
	completion := New(switchesDefinition(), provider)

	complete(t, completion, "a <tab>")
	require.Len(t, provider.calls, 1)
	assert.Equal(t, call{key: "arg2", others: argv.Values{"arg1": "a"}}, provider.calls[0])

	complete(t, completion, "-O --opt1 x ab<tab>cd")
	require.Len(t, provider.calls, 2)
	assert.Equal(t, call{
		key:    "arg1",
		prefix: "ab",
		suffix: "cd",
		others: argv.Values{"opt1": "x", "opt2": true},
	}, provider.calls[1])
}

func TestCandidatesCursor(t *testing.T) {
	provider := newRecordingProvider()
	completion := New(switchesDefinition(), provider)

	t.Run("clamped past the end", func(t *testing.T) {
		candidates, err := completion.Candidates(executable+"a", 1000)
		require.NoError(t, err)
		assert.Equal(t, []string{"arg1v1", "arg1v2"}, candidates)
	})

	t.Run("inside the executable", func(t *testing.T) {
		candidates, err := completion.Candidates(executable+"a", 3)
		require.NoError(t, err)
		assert.Empty(t, candidates)
	})

	t.Run("marker collision", func(t *testing.T) {
		line := executable + "<tab0> "
		candidates, err := completion.Candidates(line, len(line))
		require.NoError(t, err)
		assert.Equal(t, newRecordingProvider().values["arg2"], candidates)
		assert.Equal(t, "<tab0>", provider.calls[len(provider.calls)-1].others.String("arg1"))
	})
}

func TestCandidatesVarargs(t *testing.T) {
	provider := newRecordingProvider()
	completion := New(argv.Leaf(argv.Arg("arg1"), argv.Arg("*files")), provider)

	complete(t, completion, "x f1 f<tab> f3")
	require.Len(t, provider.calls, 1)
	assert.Equal(t, call{
		key:    "files",
		prefix: "f",
		others: argv.Values{"arg1": "x", "files": []string{"f1", "f3"}},
	}, provider.calls[0])
}

func TestCandidatesCommands(t *testing.T) {
	def := argv.Commands(
		argv.Cmd("deploy", argv.Commands(
			argv.Cmd("service", argv.Leaf(argv.Opt("--region NAME"), argv.Opt("--dry-run"), argv.Arg("name"))),
			argv.Cmd("database", argv.Leaf()),
		)),
		argv.Cmd("destroy", argv.Leaf(argv.Arg("target"))),
		argv.Cmd("status", argv.Leaf()),
	)
	completion := New(def, StaticProvider{
		"name":   {"web", "worker"},
		"region": {"eu-west", "us-east"},
		"target": {"all"},
	})

	cases := []struct {
		line     string
		expected []string
	}{
		{"<tab>", []string{"deploy", "destroy", "status"}},
		{"de<tab>", []string{"deploy", "destroy"}},
		{"deploy <tab>", []string{"service", "database"}},
		{"deploy service --<tab>", []string{"--region", "--dry-run"}},
		{"deploy service --region e<tab>", []string{"eu-west"}},
		{"deploy service w<tab>", []string{"web", "worker"}},
		{"destroy <tab>", []string{"all"}},
	}
	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			assert.Equal(t, tc.expected, complete(t, completion, tc.line))
		})
	}

	t.Run("unknown command", func(t *testing.T) {
		assert.Empty(t, complete(t, completion, "pizza <tab>"))
	})

	t.Run("help in command position", func(t *testing.T) {
		assert.Empty(t, complete(t, completion, "--help <tab>"))
	})
}

func TestCandidatesErrors(t *testing.T) {
	t.Run("definition error", func(t *testing.T) {
		completion := New(argv.Leaf(argv.Arg("a"), argv.Arg("a")), nil)
		_, err := completion.Candidates(executable, len(executable))
		assert.True(t, argv.IsDefinitionError(err))
	})

	t.Run("missing provider", func(t *testing.T) {
		completion := New(switchesDefinition(), ProviderFuncs{})
		_, err := completion.Candidates(executable, len(executable))
		assert.True(t, errors.Is(err, ErrNoProvider))
	})

	t.Run("marker not bound", func(t *testing.T) {
		line := executable + "a "
		cl, err := newCommandline(line, len(line))
		require.NoError(t, err)

		completion := New(switchesDefinition(), ProviderFuncs{})
		_, err = completion.completeValue(cl, argv.Values{"arg1": "a", "opt2": true, "arg2": []string{"b"}})
		require.Error(t, err)
		assert.True(t, errors.HasAssertionFailure(err))
		assert.False(t, argv.IsUserError(err))
		assert.False(t, errors.Is(err, errParsing))
	})
}

func TestComplete(t *testing.T) {
	var buf bytes.Buffer
	completion := New(switchesDefinition(), newRecordingProvider(), WithOutput(&buf))

	require.NoError(t, completion.Complete(executable+"a", len(executable)+1))
	assert.Equal(t, "arg1v1\narg1v2", buf.String())
}

type mapEnv map[string]string

func (m mapEnv) Get(key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", errors.New("not found")
	}
	return v, nil
}

func TestCompleteFromEnv(t *testing.T) {
	var buf bytes.Buffer
	completion := New(switchesDefinition(), newRecordingProvider(), WithOutput(&buf))

	err := completion.CompleteFromEnv(mapEnv{EnvCompLine: executable + "--opt1 o", EnvCompPoint: "28"})
	require.NoError(t, err)
	assert.Equal(t, "opt1v1", buf.String())

	buf.Reset()
	err = completion.CompleteFromEnv(mapEnv{EnvCompLine: executable + "--"})
	require.NoError(t, err)
	assert.Equal(t, "--opt1\n--opt2", buf.String())

	err = completion.CompleteFromEnv(mapEnv{EnvCompLine: executable, EnvCompPoint: "x"})
	assert.Error(t, err)

	err = completion.CompleteFromEnv(mapEnv{})
	assert.Error(t, err)
}
