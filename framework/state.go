package framework

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/google/shlex"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simplescripting/simplescripting/common"
	"github.com/simplescripting/simplescripting/tabcompletion"
)

// shellProgram stands for the executable word completion lines start with.
const shellProgram = "simplescripting"

// State is the interface for application state.
type State interface {
	Ctx() (context.Context, context.CancelFunc)
	Label() string
	Process(cmd string) (State, error)
	Close()
	SetNext(state State)
	NextState() State
	Suggestions(input string) map[string]string
	SetupCommands()
	IsEnding() bool
}

// SetupFunc function type for setup commands.
type SetupFunc func()

// CmdState wraps cobra command as State interface.
type CmdState struct {
	parent    *CmdState
	label     string
	RootCmd   *cobra.Command
	nextState State
	signal    <-chan os.Signal
	logger    *zap.Logger
	// owner is the state embedding this CmdState, returned by Process
	owner State

	SetupFn func()
}

// NewCmdState returns a CmdState with provided label.
func NewCmdState(label string) *CmdState {
	return &CmdState{
		label:  label,
		logger: zap.NewNop(),
	}
}

// SetLabel updates label value.
func (s *CmdState) SetLabel(label string) {
	s.label = label
}

// SetLogger replaces the state logger, nil means no logging.
func (s *CmdState) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s.logger = logger
}

// Logger returns the state logger.
func (s *CmdState) Logger() *zap.Logger {
	if s.logger == nil {
		return zap.NewNop()
	}
	return s.logger
}

// Spawn returns a child state connected to the root state as parent.
func (s *CmdState) Spawn(label string) *CmdState {
	p := s
	for p.parent != nil {
		p = p.parent
	}
	return &CmdState{
		parent: p,
		label:  label,
		logger: s.Logger(),
	}
}

// Parent returns the root state of a spawned state.
func (s *CmdState) Parent() *CmdState {
	return s.parent
}

// GetCmd returns a fresh root command for SetupCommands().
func (s *CmdState) GetCmd() *cobra.Command {
	return &cobra.Command{
		Use:           shellProgram,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
}

// UpdateState merges the function commands of state into cmd and makes it the root.
func (s *CmdState) UpdateState(cmd *cobra.Command, state State, fn SetupFunc) {
	s.MergeFunctionCommands(cmd, state)
	s.RootCmd = cmd
	s.SetupFn = fn
	s.owner = state
}

// self returns the state registered by UpdateState, or s itself.
func (s *CmdState) self() State {
	if s.owner != nil {
		return s.owner
	}
	return s
}

// Ctx returns context which bind to sigint handler.
func (s *CmdState) Ctx() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		defer cancel()
		select {
		case <-s.signal:
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

// SetupCommands perform command setup & reset.
func (s *CmdState) SetupCommands() {
	if s.SetupFn != nil {
		s.SetupFn()
	}
}

// MergeFunctionCommands parses all member methods for provided state and add it into cmd.
func (s *CmdState) MergeFunctionCommands(cmd *cobra.Command, state State) {
	items := parseFunctionCommands(state)
	for _, item := range items {
		target := cmd
		for _, kw := range item.kws {
			node, _, err := target.Find([]string{kw})
			if err != nil || node == nil || node == target {
				newNode := &cobra.Command{Use: kw}
				target.AddCommand(newNode)
				node = newNode
			}
			target = node
		}
		target.AddCommand(item.cmd)
	}
}

// Label returns the display label for current cli.
func (s *CmdState) Label() string {
	return s.label
}

// Suggestions completes the last word of input against the command tree.
func (s *CmdState) Suggestions(input string) map[string]string {
	result := make(map[string]string)
	if s.RootCmd == nil {
		return result
	}

	grammar := NewCommandGrammar(s.RootCmd)
	line := shellProgram + " " + input
	tc := tabcompletion.New(grammar.Definition, grammar, tabcompletion.WithLogger(s.Logger()))
	candidates, err := tc.Candidates(line, len(line))
	if err != nil {
		s.Logger().Debug("suggestion failed", zap.String("input", input), zap.Error(err))
		return result
	}
	for _, candidate := range candidates {
		result[candidate] = grammar.Description(candidate)
	}
	return result
}

// Process is the main entry for processing command.
// The returned state is the owner registered by UpdateState unless a next state was set.
func (s *CmdState) Process(cmd string) (State, error) {
	current := s.self()
	args, err := shlex.Split(cmd)
	if err != nil {
		return current, errors.Wrap(err, "failed to split command")
	}
	if len(args) == 0 {
		return current, nil
	}
	s.Logger().Debug("process command", zap.Strings("args", args))

	signal.Reset(syscall.SIGINT)
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT)
	s.signal = c

	s.RootCmd.SetArgs(args)
	err = s.RootCmd.Execute()
	s.RootCmd.SetArgs(nil)
	signal.Reset(syscall.SIGINT)

	if errors.Is(err, common.ExitErr) {
		return s.nextState, common.ExitErr
	}
	if err != nil {
		return current, err
	}
	if s.nextState != nil {
		nextState := s.nextState
		s.nextState = nil
		return nextState, nil
	}

	return current, nil
}

// SetNext simple method to set next state.
func (s *CmdState) SetNext(state State) {
	s.nextState = state
}

func (s *CmdState) NextState() State {
	return s.nextState
}

// Close empty method to implement State.
func (s *CmdState) Close() {}

// Check state is ending state.
func (s *CmdState) IsEnding() bool { return false }
