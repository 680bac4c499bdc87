package framework

import (
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/simplescripting/simplescripting/argv"
)

// argsKey binds the free positional arguments of every generated leaf.
const argsKey = "args"

// CommandGrammar is the argv view of a cobra command tree. It drives tab completion
// of the interactive shells.
type CommandGrammar struct {
	Definition argv.Definition

	descriptions map[string]string
	flags        map[string][]*pflag.Flag
}

// NewCommandGrammar converts the visible sub commands of root. Commands with children become
// command nodes, the others leaves with their flags and a free `[*args]` list.
func NewCommandGrammar(root *cobra.Command) *CommandGrammar {
	g := &CommandGrammar{
		descriptions: make(map[string]string),
		flags:        make(map[string][]*pflag.Flag),
	}
	g.Definition = g.node(root)
	return g
}

func (g *CommandGrammar) node(cmd *cobra.Command) argv.Definition {
	children := lo.Filter(cmd.Commands(), func(sub *cobra.Command, _ int) bool {
		return sub.IsAvailableCommand() && sub.Name() != "help" && sub.Name() != "completion"
	})
	if len(children) > 0 {
		return argv.Commands(lo.Map(children, func(sub *cobra.Command, _ int) argv.Command {
			g.descriptions[sub.Name()] = sub.Short
			return argv.Cmd(sub.Name(), g.node(sub))
		})...)
	}

	var entries []argv.Entry
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden || flag.Name == "help" || flag.Name == argsKey {
			return
		}
		spec := flagOption(flag)
		g.flags[spec.Key()] = append(g.flags[spec.Key()], flag)
		g.descriptions[spec.Long] = flag.Usage
		entries = append(entries, spec)
	})
	entries = append(entries, argv.Arg("[*"+argsKey+"]"))
	if cmd.Long != "" {
		entries = append(entries, argv.LongHelp(cmd.Long))
	}
	return argv.Leaf(entries...)
}

func flagOption(flag *pflag.Flag) argv.OptionSpec {
	long := "--" + flag.Name
	if flag.Value.Type() != "bool" {
		long += " VALUE"
	}
	if flag.Shorthand == "" || flag.Shorthand == "h" {
		return argv.Opt(long, flag.Usage)
	}
	return argv.Opt("-"+flag.Shorthand, long, flag.Usage)
}

// Description returns the short help of a command name or a `--flag` candidate.
func (g *CommandGrammar) Description(candidate string) string {
	return g.descriptions[candidate]
}

// Candidates implements tabcompletion.Provider with the `values` and `valuesSuggester`
// annotations of the flags bound to key.
func (g *CommandGrammar) Candidates(key, prefix, _ string, _ argv.Values) ([]string, error) {
	var candidates []string
	for _, flag := range g.flags[key] {
		if values, ok := flag.Annotations[annotationValues]; ok {
			candidates = append(candidates, lo.Filter(values, func(v string, _ int) bool {
				return strings.HasPrefix(v, prefix)
			})...)
		}
		if names, ok := flag.Annotations[annotationSuggester]; ok && len(names) > 0 {
			if s, ok := GetValueSuggester(names[0]); ok {
				candidates = append(candidates, s.Suggest(prefix)...)
			}
		}
	}
	return lo.Uniq(candidates), nil
}
