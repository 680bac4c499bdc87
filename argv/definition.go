package argv

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

const (
	longPrefix        = "--"
	shortPrefix       = "-"
	optionsTerminator = "--"

	helpKey   = "help"
	helpShort = "-h"
	helpLong  = "--help"

	// placeholder characters recognized as multi-value delimiters, e.g. `--tags A,B`.
	delimiters = ",:;|"
)

// Definition is a decodable grammar, either a *LeafNode or an *InteriorNode.
type Definition interface {
	// Validate reports author mistakes as *DefinitionError.
	Validate() error
	// Relaxed returns a deep copy where every positional argument is optional.
	Relaxed() Definition

	isDefinition()
}

// Entry is an element of a leaf definition.
type Entry interface {
	addTo(leaf *LeafNode)
}

// OptionSpec describes a switch, with an optional value placeholder.
type OptionSpec struct {
	Short       string
	Long        string
	Placeholder string
	Description string
	Converter   Converter

	err error
}

// Opt builds an option from its declarative form:
//
//	Opt("-a")
//	Opt("-b", "description")
//	Opt("-c", "--c-switch")
//	Opt("-e", "--e-switch VALUE", "description")
//	Opt("--long-only [VALUE]")
func Opt(flags ...string) OptionSpec {
	var spec OptionSpec
	if len(flags) == 0 {
		spec.err = errors.New("empty option definition")
		return spec
	}

	for i, flag := range flags {
		switch {
		case i == 0 && strings.HasPrefix(flag, longPrefix):
			spec.Long, spec.Placeholder = splitPlaceholder(flag)
		case i == 0 && strings.HasPrefix(flag, shortPrefix):
			spec.Short, spec.Placeholder = splitPlaceholder(flag)
		case i == 0:
			spec.err = errors.Newf("option %q must start with %q", flag, shortPrefix)
			return spec
		case i == 1 && spec.Long == "" && strings.HasPrefix(flag, longPrefix):
			long, placeholder := splitPlaceholder(flag)
			spec.Long = long
			if placeholder != "" {
				spec.Placeholder = placeholder
			}
		case spec.Description == "":
			spec.Description = flag
		default:
			spec.err = errors.Newf("unexpected element %q in option %v", flag, flags)
			return spec
		}
	}

	if delimiter := spec.delimiter(); delimiter != "" {
		spec.Converter = Split(delimiter)
	}
	return spec
}

// As attaches a value converter to the option.
func (o OptionSpec) As(converter Converter) OptionSpec {
	o.Converter = converter
	return o
}

// Key returns the binding key: the long form without dashes (inner dashes become
// underscores), otherwise the short form without its dash.
func (o OptionSpec) Key() string {
	if o.Long != "" {
		return strings.ReplaceAll(strings.TrimPrefix(o.Long, longPrefix), "-", "_")
	}
	return strings.TrimPrefix(o.Short, shortPrefix)
}

// TakesValue reports whether the option declares a value placeholder.
func (o OptionSpec) TakesValue() bool {
	return o.Placeholder != ""
}

// ValueOptional reports whether the placeholder is bracketed, e.g. `[VALUE]`.
func (o OptionSpec) ValueOptional() bool {
	return strings.HasPrefix(o.Placeholder, "[") && strings.HasSuffix(o.Placeholder, "]")
}

func (o OptionSpec) delimiter() string {
	placeholder := strings.Trim(o.Placeholder, "[]")
	if idx := strings.IndexAny(placeholder, delimiters); idx >= 0 {
		return placeholder[idx : idx+1]
	}
	return ""
}

func (o OptionSpec) flags() []string {
	return lo.Filter([]string{o.Short, o.Long}, func(flag string, _ int) bool {
		return flag != ""
	})
}

// usage returns the left column of the option summary.
func (o OptionSpec) usage() string {
	var left string
	switch {
	case o.Short != "" && o.Long != "":
		left = o.Short + ", " + o.Long
	case o.Long != "":
		left = "    " + o.Long
	default:
		left = o.Short
	}
	if o.Placeholder != "" {
		left += " " + o.Placeholder
	}
	return left
}

func (o OptionSpec) validate() error {
	if o.err != nil {
		return o.err
	}
	if o.Short == "" && o.Long == "" {
		return errors.New("option without flags")
	}
	if o.Short != "" {
		name := strings.TrimPrefix(o.Short, shortPrefix)
		if utf8.RuneCountInString(name) != 1 || name == shortPrefix {
			return errors.Newf("short option %q must be a dash followed by one character", o.Short)
		}
	}
	if o.Long != "" && len(o.Long) <= len(longPrefix) {
		return errors.Newf("long option %q has no name", o.Long)
	}
	return nil
}

func (o OptionSpec) addTo(leaf *LeafNode) {
	leaf.Options = append(leaf.Options, o)
}

func splitPlaceholder(flag string) (string, string) {
	if idx := strings.IndexAny(flag, " ="); idx >= 0 {
		return flag[:idx], strings.TrimSpace(flag[idx+1:])
	}
	return flag, ""
}

// PositionalSpec describes a positional argument.
type PositionalSpec struct {
	Name      string
	Mandatory bool
	Variadic  bool

	err error
}

// Arg parses a positional argument: `name` is mandatory, `[name]` optional, and a leading
// `*` (also inside brackets, `[*name]`) makes it variadic.
func Arg(definition string) PositionalSpec {
	spec := PositionalSpec{Mandatory: true}
	name := definition

	if strings.HasPrefix(name, "[") {
		if !strings.HasSuffix(name, "]") {
			spec.err = errors.Newf("unbalanced brackets in argument %q", definition)
			return spec
		}
		name = name[1 : len(name)-1]
		spec.Mandatory = false
	}
	if strings.HasPrefix(name, "*") {
		name = name[1:]
		spec.Variadic = true
	}
	if name == "" || strings.ContainsAny(name, "[]* \t") || strings.HasPrefix(name, shortPrefix) {
		spec.err = errors.Newf("invalid argument definition %q", definition)
		return spec
	}

	spec.Name = name
	return spec
}

// Key returns the binding key of the argument.
func (p PositionalSpec) Key() string {
	return p.Name
}

func (p PositionalSpec) usage() string {
	name := "<" + p.Name + ">"
	if p.Variadic {
		name += "..."
	}
	if !p.Mandatory {
		return "[" + name + "]"
	}
	return name
}

func (p PositionalSpec) addTo(leaf *LeafNode) {
	leaf.Positionals = append(leaf.Positionals, p)
}

type longHelp string

func (h longHelp) addTo(leaf *LeafNode) {
	leaf.LongHelp = string(h)
}

// LongHelp embeds a long help text into a leaf; it is printed after the option summary.
func LongHelp(text string) Entry {
	return longHelp(text)
}

// LeafNode is a command-tree node holding options and positional arguments.
type LeafNode struct {
	Options     []OptionSpec
	Positionals []PositionalSpec
	LongHelp    string
}

// Leaf builds a leaf definition from options, arguments and an optional long help.
func Leaf(entries ...Entry) *LeafNode {
	leaf := &LeafNode{}
	for _, entry := range entries {
		entry.addTo(leaf)
	}
	return leaf
}

func (l *LeafNode) isDefinition() {}

// Validate implements Definition.
func (l *LeafNode) Validate() error {
	keys := map[string]struct{}{helpKey: {}}
	flags := map[string]struct{}{helpShort: {}, helpLong: {}}

	for _, opt := range l.Options {
		if err := opt.validate(); err != nil {
			return newDefinitionError(err.Error())
		}
		if _, dup := keys[opt.Key()]; dup {
			return newDefinitionError(fmt.Sprintf("duplicate key %q", opt.Key()))
		}
		keys[opt.Key()] = struct{}{}
		for _, flag := range opt.flags() {
			if _, dup := flags[flag]; dup {
				return newDefinitionError(fmt.Sprintf("duplicate option %q", flag))
			}
			flags[flag] = struct{}{}
		}
	}

	for i, arg := range l.Positionals {
		if arg.err != nil {
			return newDefinitionError(arg.err.Error())
		}
		if _, dup := keys[arg.Key()]; dup {
			return newDefinitionError(fmt.Sprintf("duplicate key %q", arg.Key()))
		}
		keys[arg.Key()] = struct{}{}
		if arg.Variadic && i != len(l.Positionals)-1 {
			return newDefinitionError(fmt.Sprintf("variadic argument %q must be the last one", arg.Name))
		}
	}
	return nil
}

// Relaxed implements Definition.
func (l *LeafNode) Relaxed() Definition {
	relaxed := &LeafNode{
		Options:     append([]OptionSpec(nil), l.Options...),
		Positionals: make([]PositionalSpec, len(l.Positionals)),
		LongHelp:    l.LongHelp,
	}
	for i, arg := range l.Positionals {
		arg.Mandatory = false
		relaxed.Positionals[i] = arg
	}
	return relaxed
}

// LongOptions returns the declared long flags, in declaration order.
func (l *LeafNode) LongOptions() []string {
	return lo.FilterMap(l.Options, func(opt OptionSpec, _ int) (string, bool) {
		return opt.Long, opt.Long != ""
	})
}

// Command is a named entry of an interior node.
type Command struct {
	Name string
	Node Definition
}

// Cmd names a sub-definition.
func Cmd(name string, node Definition) Command {
	return Command{Name: name, Node: node}
}

// InteriorNode maps command names to further nodes, preserving declaration order.
type InteriorNode struct {
	Commands []Command
}

// Commands builds an interior node.
func Commands(commands ...Command) *InteriorNode {
	return &InteriorNode{Commands: commands}
}

func (n *InteriorNode) isDefinition() {}

// Lookup finds a command by exact name.
func (n *InteriorNode) Lookup(name string) (Definition, bool) {
	command, ok := lo.Find(n.Commands, func(c Command) bool {
		return c.Name == name
	})
	return command.Node, ok
}

// Names returns the command names of this level.
func (n *InteriorNode) Names() []string {
	return lo.Map(n.Commands, func(c Command, _ int) string {
		return c.Name
	})
}

// Validate implements Definition.
func (n *InteriorNode) Validate() error {
	if len(n.Commands) == 0 {
		return newDefinitionError("command node without commands")
	}
	seen := make(map[string]struct{}, len(n.Commands))
	for _, command := range n.Commands {
		if command.Name == "" || strings.HasPrefix(command.Name, shortPrefix) {
			return newDefinitionError(fmt.Sprintf("invalid command name %q", command.Name))
		}
		if _, dup := seen[command.Name]; dup {
			return newDefinitionError(fmt.Sprintf("duplicate command %q", command.Name))
		}
		seen[command.Name] = struct{}{}
		if command.Node == nil {
			return newDefinitionError(fmt.Sprintf("command %q has no definition", command.Name))
		}
		if err := command.Node.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Relaxed implements Definition.
func (n *InteriorNode) Relaxed() Definition {
	return &InteriorNode{
		Commands: lo.Map(n.Commands, func(c Command, _ int) Command {
			if c.Node != nil {
				c.Node = c.Node.Relaxed()
			}
			return c
		}),
	}
}
