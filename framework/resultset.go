package framework

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

type Format int32

const (
	FormatDefault Format = iota + 1
	FormatPlain
	FormatJSON
	FormatYAML
	FormatTable
	FormatLine
)

var name2Format = map[string]Format{
	"default": FormatDefault,
	"plain":   FormatPlain,
	"json":    FormatJSON,
	"yaml":    FormatYAML,
	"table":   FormatTable,
	"line":    FormatLine,
}

// FormatNames lists the accepted format names, sorted.
func FormatNames() []string {
	names := lo.Keys(name2Format)
	sort.Strings(names)
	return names
}

// ResultSet is the interface for command result set.
type ResultSet interface {
	PrintAs(Format) string
	Entities() any
}

// PresetResultSet implements Stringer and "memorize" output format.
type PresetResultSet struct {
	ResultSet
	format Format
}

func (rs *PresetResultSet) String() string {
	if rs.format < FormatDefault {
		return rs.PrintAs(FormatDefault)
	}
	return rs.PrintAs(rs.format)
}

func NewPresetResultSet(rs ResultSet, format Format) *PresetResultSet {
	return &PresetResultSet{
		ResultSet: rs,
		format:    format,
	}
}

// NameFormat name to format mapping tool function.
func NameFormat(name string) Format {
	f, ok := name2Format[name]
	if !ok {
		return FormatDefault
	}
	return f
}

type ListResultSet[T any] struct {
	Data []T
}

func (rs *ListResultSet[T]) Entities() any {
	return rs.Data
}

func (rs *ListResultSet[T]) SetData(data []T) {
	rs.Data = data
}

func NewListResult[LRS any, P interface {
	*LRS
	SetData([]E)
}, E any](data []E) *LRS {
	var t LRS
	var p P = &t
	p.SetData(data)
	return &t
}

// MarshalJSON is a helper function for JSON serialization.
// It returns a pretty-printed JSON string of the given value.
func MarshalJSON(v any) string {
	bs, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(bs)
}

// MarshalYAML is the yaml counterpart of MarshalJSON.
func MarshalYAML(v any) string {
	bs, err := yaml.Marshal(v)
	if err != nil {
		return err.Error()
	}
	return strings.TrimSuffix(string(bs), "\n")
}

// RenderTable renders rows with a header line.
func RenderTable(header []string, rows [][]string) string {
	sb := &strings.Builder{}
	t := table.NewWriter()
	t.SetOutputMirror(sb)
	t.AppendHeader(toRow(header))
	for _, row := range rows {
		t.AppendRow(toRow(row))
	}
	t.Render()
	return strings.TrimSuffix(sb.String(), "\n")
}

func toRow(cells []string) table.Row {
	return lo.Map(cells, func(cell string, _ int) any { return cell })
}
