package states

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/simplescripting/simplescripting/argv"
	"github.com/simplescripting/simplescripting/framework"
)

// DecodeResult prints a decoded command line.
type DecodeResult struct {
	Result *argv.Result
}

func (rs *DecodeResult) Entities() any {
	return rs.Result
}

func (rs *DecodeResult) PrintAs(format framework.Format) string {
	values := rs.Result.Values
	switch format {
	case framework.FormatJSON:
		return framework.MarshalJSON(rs.entity())
	case framework.FormatYAML:
		return framework.MarshalYAML(rs.entity())
	case framework.FormatTable:
		rows := lo.Map(values.Keys(), func(key string, _ int) []string {
			return []string{key, formatValue(values[key])}
		})
		return framework.RenderTable([]string{"Key", "Value"}, rows)
	case framework.FormatLine:
		pairs := lo.Map(values.Keys(), func(key string, _ int) string {
			return fmt.Sprintf("%s=%s", key, formatValue(values[key]))
		})
		if rs.Result.Command != "" {
			pairs = append([]string{rs.Result.Command}, pairs...)
		}
		return strings.Join(pairs, " ")
	default:
		sb := &strings.Builder{}
		if rs.Result.Command != "" {
			fmt.Fprintf(sb, "Command: %s\n", rs.Result.Command)
		}
		for _, key := range values.Keys() {
			fmt.Fprintf(sb, "%s: %s\n", key, formatValue(values[key]))
		}
		return strings.TrimSuffix(sb.String(), "\n")
	}
}

type decodeEntity struct {
	Command string         `json:"command,omitempty" yaml:"command,omitempty"`
	Values  map[string]any `json:"values" yaml:"values"`
}

func (rs *DecodeResult) entity() decodeEntity {
	return decodeEntity{Command: rs.Result.Command, Values: rs.Result.Values}
}

func formatValue(value any) string {
	switch v := value.(type) {
	case []string:
		return "[" + strings.Join(v, ", ") + "]"
	default:
		return fmt.Sprint(v)
	}
}

// CandidatesResult lists completion candidates.
type CandidatesResult struct {
	framework.ListResultSet[string]
}

func (rs *CandidatesResult) PrintAs(format framework.Format) string {
	switch format {
	case framework.FormatJSON:
		return framework.MarshalJSON(rs.Data)
	case framework.FormatYAML:
		return framework.MarshalYAML(rs.Data)
	case framework.FormatTable:
		return framework.RenderTable([]string{"Candidate"}, lo.Map(rs.Data, func(c string, _ int) []string {
			return []string{c}
		}))
	case framework.FormatLine:
		return strings.Join(rs.Data, " ")
	default:
		return strings.Join(rs.Data, "\n")
	}
}

// ConfigEntry is a configuration key with its group, empty for top level keys.
type ConfigEntry struct {
	Group string `json:"group,omitempty" yaml:"group,omitempty"`
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

func (e ConfigEntry) path() string {
	if e.Group == "" {
		return e.Key
	}
	return e.Group + "." + e.Key
}

// ConfigResult lists configuration entries.
type ConfigResult struct {
	framework.ListResultSet[ConfigEntry]
}

func (rs *ConfigResult) PrintAs(format framework.Format) string {
	switch format {
	case framework.FormatJSON:
		return framework.MarshalJSON(rs.Data)
	case framework.FormatYAML:
		return framework.MarshalYAML(rs.Data)
	case framework.FormatTable:
		return framework.RenderTable([]string{"Group", "Key", "Value"}, lo.Map(rs.Data, func(e ConfigEntry, _ int) []string {
			return []string{e.Group, e.Key, e.Value}
		}))
	case framework.FormatLine:
		return strings.Join(lo.Map(rs.Data, func(e ConfigEntry, _ int) string {
			return e.path() + "=" + e.Value
		}), " ")
	default:
		return strings.Join(lo.Map(rs.Data, func(e ConfigEntry, _ int) string {
			return fmt.Sprintf("%s: %s", e.path(), e.Value)
		}), "\n")
	}
}

// ValueResult prints a single value, as produced by encrypt and decrypt.
type ValueResult struct {
	Value string `json:"value" yaml:"value"`
}

func (rs *ValueResult) Entities() any {
	return rs.Value
}

func (rs *ValueResult) PrintAs(format framework.Format) string {
	switch format {
	case framework.FormatJSON:
		return framework.MarshalJSON(rs)
	case framework.FormatYAML:
		return framework.MarshalYAML(rs)
	default:
		return rs.Value
	}
}
