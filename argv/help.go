package argv

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
)

const (
	helpIndent      = "    "
	helpColumnWidth = 32
)

// HelpRequest is the context of a help outcome. For command levels Commands holds the names
// of the current level only.
type HelpRequest struct {
	Program      string
	CommandPath  []string
	Options      []OptionSpec
	Positionals  []PositionalSpec
	OptionsUsage string
	LongHelp     string
	Commands     []string
}

// IsCommandLevel reports whether help was requested in command position.
func (h *HelpRequest) IsCommandLevel() bool {
	return len(h.Commands) > 0
}

// Usage returns the usage line, e.g. `Usage: prog cmd [options] <a> [<b>]`.
func (h *HelpRequest) Usage() string {
	parts := lo.Filter(append([]string{h.Program}, h.CommandPath...), func(s string, _ int) bool {
		return s != ""
	})
	parts = append(parts, "[options]")
	for _, p := range h.Positionals {
		parts = append(parts, p.usage())
	}
	return "Usage: " + strings.Join(parts, " ")
}

// Render formats the help text.
func (h *HelpRequest) Render() string {
	var sb strings.Builder
	if h.IsCommandLevel() {
		sb.WriteString("Valid commands:\n\n  ")
		sb.WriteString(strings.Join(h.Commands, ", "))
		sb.WriteString("\n")
	} else {
		sb.WriteString(h.Usage())
		sb.WriteString("\n")
		usage := h.OptionsUsage
		if usage == "" {
			usage = renderOptions(h.Options)
		}
		sb.WriteString(usage)
		sb.WriteString("\n")
	}
	if h.LongHelp != "" {
		sb.WriteString("\n")
		sb.WriteString(h.LongHelp)
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderOptions returns one summary row per option, the synthetic help switch last.
func renderOptions(options []OptionSpec) string {
	rows := make([]string, 0, len(options)+1)
	for _, opt := range append(append([]OptionSpec(nil), options...), helpOption) {
		rows = append(rows, optionRow(opt))
	}
	return strings.Join(rows, "\n")
}

func optionRow(opt OptionSpec) string {
	left := opt.usage()
	switch {
	case opt.Description == "":
		return helpIndent + left
	case len(left) > helpColumnWidth:
		return helpIndent + left + "\n" + helpIndent + strings.Repeat(" ", helpColumnWidth+1) + opt.Description
	default:
		return helpIndent + text.Pad(left, helpColumnWidth, ' ') + " " + opt.Description
	}
}
