package argv

import (
	"sort"

	"github.com/samber/lo"
)

// Values maps bound keys to string, bool, []string or converted values.
type Values map[string]any

// Has reports whether key is bound.
func (v Values) Has(key string) bool {
	_, ok := v[key]
	return ok
}

// String returns the string bound to key, or "".
func (v Values) String(key string) string {
	s, _ := v[key].(string)
	return s
}

// Bool returns the boolean bound to key, or false.
func (v Values) Bool(key string) bool {
	b, _ := v[key].(bool)
	return b
}

// Strings returns the sequence bound to key, or nil.
func (v Values) Strings(key string) []string {
	s, _ := v[key].([]string)
	return s
}

// Keys returns the bound keys sorted.
func (v Values) Keys() []string {
	keys := lo.Keys(v)
	sort.Strings(keys)
	return keys
}

// Without returns a copy of the values without key.
func (v Values) Without(key string) Values {
	result := make(Values, len(v))
	for k, value := range v {
		if k != key {
			result[k] = value
		}
	}
	return result
}

// Result is a successful decoding. Command is the dot-joined command path, empty when a
// flat definition was decoded.
type Result struct {
	Command string
	Values  Values
}

// OutcomeKind tags an Outcome.
type OutcomeKind int

const (
	OutcomeOK OutcomeKind = iota + 1
	OutcomeHelp
)

// Outcome is either a decoded Result or a help request.
type Outcome struct {
	Kind   OutcomeKind
	Result *Result
	Help   *HelpRequest
}

func okOutcome(result *Result) Outcome {
	return Outcome{Kind: OutcomeOK, Result: result}
}

func helpOutcome(help *HelpRequest) Outcome {
	return Outcome{Kind: OutcomeHelp, Help: help}
}

// IsHelp reports whether help was requested.
func (o Outcome) IsHelp() bool {
	return o.Kind == OutcomeHelp
}
