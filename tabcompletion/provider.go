package tabcompletion

import (
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"github.com/simplescripting/simplescripting/argv"
)

// ErrNoProvider is returned when no candidates source exists for a bound key.
var ErrNoProvider = errors.New("no completion provider")

// Provider produces the candidates of the value bound to key. prefix and suffix are the parts
// of the value before and after the cursor; others holds the remaining bound values.
type Provider interface {
	Candidates(key, prefix, suffix string, others argv.Values) ([]string, error)
}

// ProviderFunc completes the values of one key.
type ProviderFunc func(prefix, suffix string, others argv.Values) []string

// ProviderFuncs maps keys to their completion functions.
type ProviderFuncs map[string]ProviderFunc

// Candidates implements Provider.
func (p ProviderFuncs) Candidates(key, prefix, suffix string, others argv.Values) ([]string, error) {
	fn, ok := p[key]
	if !ok {
		return nil, errors.Wrapf(ErrNoProvider, "key %q", key)
	}
	return fn(prefix, suffix, others), nil
}

var providerFuncType = reflect.TypeOf(ProviderFunc(nil))

type methodProvider struct {
	target reflect.Value
}

// MethodProvider dispatches to the methods of target, one per key: the key `e_switch` is
// completed by `ESwitch(prefix, suffix string, others argv.Values) []string`.
func MethodProvider(target any) Provider {
	return &methodProvider{target: reflect.ValueOf(target)}
}

func (p *methodProvider) Candidates(key, prefix, suffix string, others argv.Values) ([]string, error) {
	name := methodName(key)
	method := p.target.MethodByName(name)
	if !method.IsValid() {
		return nil, errors.Wrapf(ErrNoProvider, "key %q (method %s)", key, name)
	}
	fn, ok := method.Interface().(func(string, string, argv.Values) []string)
	if !ok {
		return nil, errors.Newf("method %s has type %s, expected %s", name, method.Type(), providerFuncType)
	}
	return fn(prefix, suffix, others), nil
}

func methodName(key string) string {
	parts := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-'
	})
	return strings.Join(lo.Map(parts, func(part string, _ int) string {
		return strings.ToUpper(part[:1]) + part[1:]
	}), "")
}

// StaticProvider completes keys from fixed value lists, keeping the values that start with the
// typed prefix. Keys without a list have no candidates.
type StaticProvider map[string][]string

// Candidates implements Provider.
func (p StaticProvider) Candidates(key, prefix, _ string, _ argv.Values) ([]string, error) {
	values, ok := p[key]
	if !ok {
		return nil, nil
	}
	return lo.Filter(values, func(v string, _ int) bool {
		return strings.HasPrefix(v, prefix)
	}), nil
}
