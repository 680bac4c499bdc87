package tabcompletion

import (
	"fmt"
	"math"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/shlex"
	"github.com/samber/lo"
)

const optionsTerminator = "--"

// errParsing marks a command line that cannot be completed; it never reaches callers.
var errParsing = errors.New("unable to parse command line")

// commandline is a raw line with a marker spliced in at the cursor position.
type commandline struct {
	marker             string
	words              []string
	markedPosition     int
	terminatorPosition int
}

// newCommandline splices a unique marker into line at point, shell-splits the result and drops
// the executable name.
func newCommandline(line string, point int) (*commandline, error) {
	point = max(0, min(point, len(line)))
	marker := pickMarker(line)

	words, err := shlex.Split(line[:point] + marker + line[point:])
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "split command line"), errParsing)
	}
	if len(words) == 0 {
		return nil, errParsing
	}
	words = words[1:]

	_, marked, found := lo.FindIndexOf(words, func(w string) bool {
		return strings.Contains(w, marker)
	})
	if !found {
		return nil, errors.Mark(errors.New("cursor is not on an argument"), errParsing)
	}

	terminator := lo.IndexOf(words, optionsTerminator)
	if terminator < 0 {
		terminator = math.MaxInt
	}

	return &commandline{
		marker:             marker,
		words:              words,
		markedPosition:     marked,
		terminatorPosition: terminator,
	}, nil
}

func pickMarker(line string) string {
	for i := 0; ; i++ {
		marker := fmt.Sprintf("<tab%d>", i)
		if !strings.Contains(line, marker) {
			return marker
		}
	}
}

func (c *commandline) markedWord() string {
	return c.words[c.markedPosition]
}

// split returns the parts of value before and after the marker.
func (c *commandline) split(value string) (prefix, suffix string) {
	prefix, suffix, _ = strings.Cut(value, c.marker)
	return prefix, suffix
}

// completingOption reports whether the cursor is on a long option name.
func (c *commandline) completingOption() bool {
	return strings.HasPrefix(c.markedWord(), "--") && c.markedPosition < c.terminatorPosition
}
