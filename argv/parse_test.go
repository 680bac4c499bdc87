package argv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	commands := Commands(
		Cmd("command1", Leaf(Arg("arg1"))),
		Cmd("command2", Leaf(Arg("arg2"))),
	)

	t.Run("success", func(t *testing.T) {
		var buf bytes.Buffer
		result, err := Parse(commands, WithArguments("command2", "v"), WithOutput(&buf))
		require.NoError(t, err)
		assert.Equal(t, &Result{Command: "command2", Values: Values{"arg2": "v"}}, result)
		assert.Empty(t, buf.String())
	})

	t.Run("printed failure", func(t *testing.T) {
		var buf bytes.Buffer
		result, err := Parse(commands, WithArguments("pizza"), WithOutput(&buf))
		assert.NoError(t, err)
		assert.Nil(t, result)
		assert.Equal(t, "Command error!: Invalid command: pizza\nValid commands:\n  command1\n  command2\n", buf.String())
	})

	t.Run("raised failure", func(t *testing.T) {
		var buf bytes.Buffer
		result, err := Parse(commands, WithArguments("command1"), WithOutput(&buf), WithRaiseErrors(true))
		assert.Nil(t, result)
		assert.EqualError(t, err, "Missing mandatory argument(s)")
		assert.Empty(t, buf.String())
	})

	t.Run("definition errors are always returned", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := Parse(Leaf(Arg("a"), Arg("a")), WithArguments(), WithOutput(&buf))
		assert.True(t, IsDefinitionError(err))
		assert.Empty(t, buf.String())
	})

	t.Run("help", func(t *testing.T) {
		var buf bytes.Buffer
		def := Leaf(
			Opt("-a"),
			Opt("-e", "--e-switch VALUE", "e switch"),
			Opt("--very-long-option-name PLACEHOLDER", "wrapped"),
			Arg("mandatory"),
			Arg("[optional]"),
			Arg("[*rest]"),
		)
		result, err := Parse(def,
			WithArguments("--help"),
			WithOutput(&buf),
			WithProgram("prog"),
			WithLongHelp("Some long help."),
		)
		require.NoError(t, err)
		assert.Nil(t, result)

		pad := func(left string) string {
			return "    " + left + strings.Repeat(" ", 32-len(left)) + " "
		}
		expected := "Usage: prog [options] <mandatory> [<optional>] [<rest>...]\n" +
			"    -a\n" +
			pad("-e, --e-switch VALUE") + "e switch\n" +
			"        --very-long-option-name PLACEHOLDER\n" +
			"    " + strings.Repeat(" ", 33) + "wrapped\n" +
			pad("-h, --help") + "Help\n" +
			"\nSome long help.\n"
		assert.Equal(t, expected, buf.String())
	})
}
