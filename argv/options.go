package argv

import (
	"io"
	"os"
	"path/filepath"
)

type options struct {
	arguments    []string
	argumentsSet bool
	longHelp     string
	autoHelp     bool
	raiseErrors  bool
	rawValues    bool
	output       io.Writer
	program      string
}

// Option configures Decode and Parse.
type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{
		autoHelp: true,
		output:   os.Stdout,
	}
	if len(os.Args) > 0 {
		o.program = filepath.Base(os.Args[0])
	}
	for _, opt := range opts {
		opt(o)
	}
	if !o.argumentsSet && len(os.Args) > 1 {
		o.arguments = os.Args[1:]
	}
	return o
}

// WithArguments sets the tokens to decode, os.Args[1:] by default.
func WithArguments(args ...string) Option {
	return func(o *options) {
		o.arguments = args
		o.argumentsSet = true
	}
}

// WithLongHelp sets the long help printed after the option summary. A leaf's own long help
// takes precedence.
func WithLongHelp(text string) Option {
	return func(o *options) {
		o.longHelp = text
	}
}

// WithAutoHelp controls `-h/--help`: when enabled (default) it short-circuits decoding into a
// help request, otherwise it is bound as the boolean key `help`.
func WithAutoHelp(enabled bool) Option {
	return func(o *options) {
		o.autoHelp = enabled
	}
}

// WithRaiseErrors makes Parse return failures instead of printing them.
func WithRaiseErrors(enabled bool) Option {
	return func(o *options) {
		o.raiseErrors = enabled
	}
}

// WithOutput sets the sink Parse writes help and failures to, os.Stdout by default.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// WithProgram sets the program name shown in usage lines.
func WithProgram(name string) Option {
	return func(o *options) {
		o.program = name
	}
}

// WithRawValues disables option converters; every value is bound as the raw string.
func WithRawValues(enabled bool) Option {
	return func(o *options) {
		o.rawValues = enabled
	}
}
