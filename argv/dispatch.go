package argv

import (
	"strings"
)

// decodeCommand pops the command name off args and recurses into the matching node. The
// stack is copied on every level so sibling calls never alias.
func (c *decodeContext) decodeCommand(node *InteriorNode, args []string, stack []string) (Outcome, error) {
	if len(args) == 0 {
		return Outcome{}, &InvalidCommandError{Message: msgMissingCommand, ValidCommands: node.Names()}
	}

	name, rest := args[0], args[1:]
	if name == helpShort || name == helpLong {
		if c.autoHelp {
			return helpOutcome(&HelpRequest{
				Program:     c.program,
				CommandPath: append([]string(nil), stack...),
				LongHelp:    c.longHelp,
				Commands:    node.Names(),
			}), nil
		}
		return okOutcome(&Result{
			Command: strings.Join(stack, "."),
			Values:  Values{helpKey: true},
		}), nil
	}

	child, ok := node.Lookup(name)
	if !ok {
		return Outcome{}, &InvalidCommandError{
			Message:       "Invalid command: " + name,
			ValidCommands: node.Names(),
		}
	}

	next := make([]string, len(stack), len(stack)+1)
	copy(next, stack)
	next = append(next, name)
	return c.decode(child, rest, next)
}
