package framework

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplescripting/simplescripting/argv"
)

// makeCmd creates a cobra command with flags for testing.
func makeCmd(use, short string, flags func(*pflag.FlagSet)) *cobra.Command {
	cmd := &cobra.Command{Use: use, Short: short, Run: func(*cobra.Command, []string) {}}
	if flags != nil {
		flags(cmd.Flags())
	}
	return cmd
}

func testTree() *cobra.Command {
	root := &cobra.Command{Use: "root"}
	get := &cobra.Command{Use: "get", Short: "get things"}
	get.AddCommand(
		makeCmd("item [id]", "get an item", func(fs *pflag.FlagSet) {
			fs.StringP("format", "f", "", "output format")
			_ = fs.SetAnnotation("format", "values", []string{"json", "table"})
			fs.BoolP("verbose", "v", false, "verbose output")
			fs.BoolP("hidden-help", "h", false, "takes the help shorthand")
			fs.String("secret", "", "")
			_ = fs.MarkHidden("secret")
		}),
	)
	hidden := makeCmd("internal", "", nil)
	hidden.Hidden = true
	root.AddCommand(get, hidden, makeCmd("ping", "ping", func(fs *pflag.FlagSet) {
		fs.String("target", "", "target dir")
		_ = fs.SetAnnotation("target", "valuesSuggester", []string{SuggesterDirs})
		_ = fs.SetAnnotation("target", "values", []string{"localhost"})
	}))
	return root
}

func TestCommandGrammarDefinition(t *testing.T) {
	g := NewCommandGrammar(testTree())
	require.NoError(t, g.Definition.Validate())

	interior, ok := g.Definition.(*argv.InteriorNode)
	require.True(t, ok)
	assert.Equal(t, []string{"get", "ping"}, interior.Names())

	outcome, err := argv.Decode(g.Definition, []string{"get", "item", "-v", "-f", "json", "42", "43"})
	require.NoError(t, err)
	assert.Equal(t, "get.item", outcome.Result.Command)
	assert.Equal(t, argv.Values{
		"format":  "json",
		"verbose": true,
		"args":    []string{"42", "43"},
	}, outcome.Result.Values)

	_, err = argv.Decode(g.Definition, []string{"get", "item", "--secret", "x"})
	assert.True(t, argv.IsInvalidOption(err))

	_, err = argv.Decode(g.Definition, []string{"internal"})
	assert.True(t, argv.IsInvalidCommand(err))

	assert.Equal(t, "get things", g.Description("get"))
	assert.Equal(t, "output format", g.Description("--format"))
	assert.Empty(t, g.Description("--unknown"))
}

func TestCommandGrammarCandidates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "logs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "log.txt"), nil, 0o644))

	g := NewCommandGrammar(testTree())

	candidates, err := g.Candidates("format", "t", "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"table"}, candidates)

	candidates, err = g.Candidates("target", filepath.Join(dir, "lo"), "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "logs") + "/"}, candidates)

	candidates, err = g.Candidates("target", "local", "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"localhost"}, candidates)

	candidates, err = g.Candidates("args", "", "", nil)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestValueSuggesterRegistry(t *testing.T) {
	RegisterValueSuggester("colors", ValueSuggestFunc(func(partial string) []string {
		return []string{partial + "red"}
	}))
	t.Cleanup(func() { UnregisterValueSuggester("colors") })

	s, ok := GetValueSuggester("colors")
	require.True(t, ok)
	assert.Equal(t, []string{"dark-red"}, s.Suggest("dark-"))

	_, ok = GetValueSuggester("missing")
	assert.False(t, ok)
}
