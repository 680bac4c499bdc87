package argv

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Converter turns the raw value of an option into its bound value.
type Converter interface {
	Convert(raw string) (any, error)
}

// ConverterFunc adapts a function to Converter.
type ConverterFunc func(raw string) (any, error)

// Convert implements Converter.
func (f ConverterFunc) Convert(raw string) (any, error) { return f(raw) }

// Bool accepts exactly "true" and "false".
var Bool Converter = ConverterFunc(func(raw string) (any, error) {
	switch raw {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return nil, errors.Newf("%q is not a boolean", raw)
})

type splitConverter struct {
	delimiter string
}

// Split binds the value as an ordered []string, split on delimiter.
func Split(delimiter string) Converter {
	return splitConverter{delimiter: delimiter}
}

func (c splitConverter) Convert(raw string) (any, error) {
	return strings.Split(raw, c.delimiter), nil
}
