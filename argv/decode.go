package argv

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

// decodeContext is the request-scoped state threaded through recursive decoding.
type decodeContext struct {
	program   string
	autoHelp  bool
	rawValues bool
	longHelp  string
}

// Decode binds args to def. It never writes output: help requests are returned as an
// OutcomeHelp outcome, failures as errors.
func Decode(def Definition, args []string, opts ...Option) (Outcome, error) {
	o := newOptions(opts)
	return decodeWith(def, args, o)
}

func decodeWith(def Definition, args []string, o *options) (Outcome, error) {
	if def == nil {
		def = Leaf()
	}
	if err := def.Validate(); err != nil {
		return Outcome{}, err
	}
	ctx := &decodeContext{
		program:   o.program,
		autoHelp:  o.autoHelp,
		rawValues: o.rawValues,
		longHelp:  o.longHelp,
	}
	return ctx.decode(def, args, nil)
}

func (c *decodeContext) decode(def Definition, args []string, stack []string) (Outcome, error) {
	switch node := def.(type) {
	case *LeafNode:
		return c.decodeLeaf(node, args, stack)
	case *InteriorNode:
		return c.decodeCommand(node, args, stack)
	default:
		return Outcome{}, newDefinitionError(fmt.Sprintf("unsupported definition %T", def))
	}
}

func (c *decodeContext) decodeLeaf(leaf *LeafNode, args []string, stack []string) (Outcome, error) {
	if leaf.LongHelp != "" {
		scoped := *c
		scoped.longHelp = leaf.LongHelp
		c = &scoped
	}

	set := newOptionSet(leaf.Options)
	values := Values{}
	var positionals []string
	terminated := false

	for i := 0; i < len(args); i++ {
		token := args[i]
		switch {
		case terminated || !isOptionToken(token):
			positionals = append(positionals, token)
			continue
		case token == optionsTerminator:
			terminated = true
			continue
		}

		var next *string
		if i+1 < len(args) {
			next = &args[i+1]
		}
		bindings, consumed, err := set.match(token, next)
		if err != nil {
			return Outcome{}, err
		}
		if consumed {
			i++
		}

		for _, b := range bindings {
			if b.spec.Key() == helpKey && c.autoHelp {
				return helpOutcome(c.leafHelp(leaf, stack)), nil
			}
			value, err := c.bindValue(b)
			if err != nil {
				return Outcome{}, err
			}
			values[b.spec.Key()] = value
		}
	}

	if err := bindPositionals(leaf.Positionals, positionals, values); err != nil {
		return Outcome{}, err
	}

	return okOutcome(&Result{
		Command: strings.Join(stack, "."),
		Values:  values,
	}), nil
}

func (c *decodeContext) bindValue(b binding) (any, error) {
	if !b.hasValue {
		return true, nil
	}
	if b.spec.Converter == nil || c.rawValues {
		return b.value, nil
	}
	value, err := b.spec.Converter.Convert(b.value)
	if err != nil {
		return nil, &InvalidValueError{Option: b.flag, Value: b.value, Cause: err}
	}
	return value, nil
}

func (c *decodeContext) leafHelp(leaf *LeafNode, stack []string) *HelpRequest {
	return &HelpRequest{
		Program:      c.program,
		CommandPath:  append([]string(nil), stack...),
		Options:      leaf.Options,
		Positionals:  leaf.Positionals,
		OptionsUsage: renderOptions(leaf.Options),
		LongHelp:     c.longHelp,
	}
}

// bindPositionals zips tokens with the declared positionals, left to right. A trailing
// variadic positional receives the remainder.
func bindPositionals(specs []PositionalSpec, tokens []string, values Values) error {
	fixed := specs
	var variadic *PositionalSpec
	if n := len(specs); n > 0 && specs[n-1].Variadic {
		variadic = &specs[n-1]
		fixed = specs[:n-1]
	}

	mandatory := len(lo.Filter(fixed, func(p PositionalSpec, _ int) bool {
		return p.Mandatory
	}))
	if len(tokens) < mandatory {
		return &ArgumentError{Message: msgMissingArguments}
	}
	if variadic == nil && len(tokens) > len(fixed) {
		return &ArgumentError{Message: msgTooManyArguments}
	}

	bound := min(len(tokens), len(fixed))
	for i := 0; i < bound; i++ {
		values[fixed[i].Key()] = tokens[i]
	}

	if variadic != nil {
		rest := append([]string{}, tokens[bound:]...)
		if variadic.Mandatory && len(rest) == 0 {
			return &ArgumentError{Message: msgMissingArguments}
		}
		values[variadic.Key()] = rest
	}
	return nil
}

func isOptionToken(token string) bool {
	return strings.HasPrefix(token, shortPrefix) && token != shortPrefix
}

type binding struct {
	spec     *OptionSpec
	flag     string
	value    string
	hasValue bool
}

// optionSet indexes the options of a leaf, including the synthetic help switch.
type optionSet struct {
	short map[string]*OptionSpec
	long  map[string]*OptionSpec
}

func newOptionSet(specs []OptionSpec) *optionSet {
	set := &optionSet{
		short: make(map[string]*OptionSpec),
		long:  make(map[string]*OptionSpec),
	}
	for i := range specs {
		set.add(&specs[i])
	}
	set.add(&helpOption)
	return set
}

func (s *optionSet) add(spec *OptionSpec) {
	if spec.Short != "" {
		s.short[spec.Short] = spec
	}
	if spec.Long != "" {
		s.long[spec.Long] = spec
	}
}

// match resolves one option token. next is the following token, if any; consumed reports
// whether it was taken as the option value.
func (s *optionSet) match(token string, next *string) (bindings []binding, consumed bool, err error) {
	if strings.HasPrefix(token, longPrefix) {
		return s.matchLong(token, next)
	}
	return s.matchShort(token, next)
}

func (s *optionSet) matchLong(token string, next *string) ([]binding, bool, error) {
	name, inline, hasInline := strings.Cut(token, "=")
	spec, ok := s.long[name]
	if !ok {
		return nil, false, &InvalidOptionError{Option: token}
	}

	if !spec.TakesValue() {
		if hasInline {
			return nil, false, &ArgumentError{Message: "Needless argument: " + token}
		}
		return []binding{{spec: spec, flag: name}}, false, nil
	}
	if hasInline {
		return []binding{{spec: spec, flag: name, value: inline, hasValue: true}}, false, nil
	}
	return takeValue(spec, name, next)
}

func (s *optionSet) matchShort(token string, next *string) ([]binding, bool, error) {
	var bindings []binding
	cluster := token[len(shortPrefix):]

	for j, r := range cluster {
		flag := shortPrefix + string(r)
		spec, ok := s.short[flag]
		if !ok {
			return nil, false, &InvalidOptionError{Option: shortPrefix + cluster[j:]}
		}
		if !spec.TakesValue() {
			bindings = append(bindings, binding{spec: spec, flag: flag})
			continue
		}
		if rest := cluster[j+utf8.RuneLen(r):]; rest != "" {
			return append(bindings, binding{spec: spec, flag: flag, value: rest, hasValue: true}), false, nil
		}
		taken, consumed, err := takeValue(spec, flag, next)
		if err != nil {
			return nil, false, err
		}
		return append(bindings, taken...), consumed, nil
	}
	return bindings, false, nil
}

// takeValue binds the token following the option. A required value is taken even when it
// starts with a dash; an optional one is not.
func takeValue(spec *OptionSpec, flag string, next *string) ([]binding, bool, error) {
	switch {
	case next != nil && (!spec.ValueOptional() || !isOptionToken(*next)):
		return []binding{{spec: spec, flag: flag, value: *next, hasValue: true}}, true, nil
	case spec.ValueOptional():
		return []binding{{spec: spec, flag: flag}}, false, nil
	default:
		return nil, false, &ArgumentError{Message: "Missing argument: " + flag}
	}
}

var helpOption = OptionSpec{Short: helpShort, Long: helpLong, Description: "Help"}
