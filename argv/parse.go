package argv

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

var errorHeader = color.New(color.FgRed, color.Bold)

// Parse decodes the invocation arguments against def.
//
// Help requests are rendered to the output and yield a nil result. User failures are printed
// as `Command error!: <message>` and also yield a nil result, unless WithRaiseErrors is set, in
// which case they are returned. Definition errors are always returned.
func Parse(def Definition, opts ...Option) (*Result, error) {
	o := newOptions(opts)

	outcome, err := decodeWith(def, o.arguments, o)
	switch {
	case err != nil && (o.raiseErrors || !IsUserError(err)):
		return nil, err
	case err != nil:
		writeFailure(o.output, err)
		return nil, nil
	case outcome.IsHelp():
		fmt.Fprint(o.output, outcome.Help.Render())
		return nil, nil
	}
	return outcome.Result, nil
}

func writeFailure(w io.Writer, err error) {
	header := "Command error!:"
	if w == os.Stdout {
		header = errorHeader.Sprint(header)
	}
	fmt.Fprintf(w, "%s %s\n", header, err.Error())

	var invalid *InvalidCommandError
	if errors.As(err, &invalid) && len(invalid.ValidCommands) > 0 {
		fmt.Fprintln(w, "Valid commands:")
		for _, name := range invalid.ValidCommands {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
}
