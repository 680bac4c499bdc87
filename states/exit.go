package states

import "github.com/simplescripting/simplescripting/framework"

// exitState simple exit state.
type exitState struct {
	*framework.CmdState
}

// SetupCommands setups the command.
// also called after each command run to reset flag values.
func (s *exitState) SetupCommands() {}

// IsEnding returns true for exit State
func (s *exitState) IsEnding() bool { return true }
