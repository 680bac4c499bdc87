package tabcompletion

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/simplescripting/simplescripting/argv"
)

const (
	// EnvCompLine and EnvCompPoint are set by bash for `complete -C` hooks.
	EnvCompLine  = "COMP_LINE"
	EnvCompPoint = "COMP_POINT"
)

// EnvSource reads the completion environment.
type EnvSource interface {
	Get(key string) (string, error)
}

// TabCompletion resolves the candidates that can follow the cursor in a partially typed
// command line of a definition.
type TabCompletion struct {
	definition argv.Definition
	provider   Provider
	output     io.Writer
	logger     *zap.Logger
}

// Option configures a TabCompletion.
type Option func(*TabCompletion)

// WithOutput sets the sink Complete writes to, os.Stdout by default.
func WithOutput(w io.Writer) Option {
	return func(tc *TabCompletion) {
		tc.output = w
	}
}

// WithLogger sets the logger used to trace discarded lines.
func WithLogger(logger *zap.Logger) Option {
	return func(tc *TabCompletion) {
		tc.logger = logger
	}
}

// New returns a resolver for def, asking provider for value candidates.
func New(def argv.Definition, provider Provider, opts ...Option) *TabCompletion {
	if def == nil {
		def = argv.Leaf()
	}
	tc := &TabCompletion{
		definition: def,
		provider:   provider,
		output:     os.Stdout,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(tc)
	}
	if tc.provider == nil {
		tc.provider = ProviderFuncs{}
	}
	return tc
}

// Complete writes the candidates for line with the cursor at point, newline separated.
func (tc *TabCompletion) Complete(line string, point int) error {
	candidates, err := tc.Candidates(line, point)
	if err != nil {
		return err
	}
	_, err = io.WriteString(tc.output, strings.Join(candidates, "\n"))
	return err
}

// CompleteFromEnv completes the line described by COMP_LINE and COMP_POINT.
func (tc *TabCompletion) CompleteFromEnv(env EnvSource) error {
	line, err := env.Get(EnvCompLine)
	if err != nil {
		return errors.Wrapf(err, "read %s", EnvCompLine)
	}
	point := len(line)
	if raw, err := env.Get(EnvCompPoint); err == nil {
		point, err = strconv.Atoi(raw)
		if err != nil {
			return errors.Wrapf(err, "invalid %s %q", EnvCompPoint, raw)
		}
	}
	return tc.Complete(line, point)
}

// Candidates returns the completions for line with the cursor at byte offset point. The first
// word of line is the executable. Lines that cannot be decoded yield no candidates.
func (tc *TabCompletion) Candidates(line string, point int) ([]string, error) {
	if err := tc.definition.Validate(); err != nil {
		return nil, err
	}

	candidates, err := tc.candidates(line, point)
	switch {
	case errors.Is(err, errParsing) || argv.IsUserError(err):
		tc.logger.Debug("discarding completion", zap.String("line", line), zap.Int("point", point), zap.Error(err))
		return []string{}, nil
	case err != nil:
		return nil, err
	}
	return candidates, nil
}

func (tc *TabCompletion) candidates(line string, point int) ([]string, error) {
	cl, err := newCommandline(line, point)
	if err != nil {
		return nil, err
	}

	leaf, names, err := tc.walk(cl)
	if err != nil {
		return nil, err
	}
	if names != nil {
		prefix, _ := cl.split(cl.markedWord())
		return filterPrefix(names, prefix), nil
	}

	if cl.completingOption() {
		prefix, _ := cl.split(cl.markedWord())
		return filterPrefix(leaf.LongOptions(), prefix), nil
	}

	outcome, err := argv.Decode(tc.definition.Relaxed(), cl.words,
		argv.WithAutoHelp(false),
		argv.WithRawValues(true),
	)
	if err != nil {
		return nil, err
	}
	return tc.completeValue(cl, outcome.Result.Values)
}

// walk follows the command words up to the leaf holding the marked word. When the marked word
// is itself in command position, the names of that level are returned instead.
func (tc *TabCompletion) walk(cl *commandline) (*argv.LeafNode, []string, error) {
	node := tc.definition
	for i := 0; ; i++ {
		switch n := node.(type) {
		case *argv.LeafNode:
			return n, nil, nil
		case *argv.InteriorNode:
			if i == cl.markedPosition {
				return nil, n.Names(), nil
			}
			child, ok := n.Lookup(cl.words[i])
			if !ok {
				return nil, nil, errors.Mark(errors.Newf("unknown command %q", cl.words[i]), errParsing)
			}
			node = child
		default:
			return nil, nil, errors.AssertionFailedf("unexpected definition %T", node)
		}
	}
}

func (tc *TabCompletion) completeValue(cl *commandline, values argv.Values) ([]string, error) {
	// the marker is unique in the line, so at most one bound value holds it and the walk order
	// does not change the result
	for _, key := range values.Keys() {
		switch value := values[key].(type) {
		case string:
			if !strings.Contains(value, cl.marker) {
				continue
			}
			prefix, suffix := cl.split(value)
			return tc.provider.Candidates(key, prefix, suffix, values.Without(key))
		case []string:
			marked, idx, found := lo.FindIndexOf(value, func(v string) bool {
				return strings.Contains(v, cl.marker)
			})
			if !found {
				continue
			}
			prefix, suffix := cl.split(marked)
			others := values.Without(key)
			others[key] = append(append([]string{}, value[:idx]...), value[idx+1:]...)
			return tc.provider.Candidates(key, prefix, suffix, others)
		}
	}
	return nil, errors.AssertionFailedf("no bound value contains the cursor marker in %v", cl.words)
}

func filterPrefix(values []string, prefix string) []string {
	return lo.Filter(values, func(v string, _ int) bool {
		return strings.HasPrefix(v, prefix)
	})
}
