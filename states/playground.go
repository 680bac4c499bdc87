package states

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/shlex"
	"go.uber.org/zap"

	"github.com/simplescripting/simplescripting/argv"
	"github.com/simplescripting/simplescripting/framework"
	"github.com/simplescripting/simplescripting/tabcompletion"
)

// playgroundState decodes every input line with the grammar of a manifest, and completes
// input with its values. `exit` goes back to the application state.
type playgroundState struct {
	*framework.CmdState
	parent     *ApplicationState
	manifest   *loadedManifest
	completion *tabcompletion.TabCompletion
	format     framework.Format
}

func newPlaygroundState(app *ApplicationState, manifest *loadedManifest, format framework.Format) *playgroundState {
	return &playgroundState{
		CmdState: app.Spawn(fmt.Sprintf("Playground(%s)", manifest.Name)),
		parent:   app,
		manifest: manifest,
		completion: tabcompletion.New(manifest.definition, manifest.Provider(),
			tabcompletion.WithLogger(app.Logger())),
		format: format,
	}
}

// SetupCommands is a no-op, the playground has no cobra commands.
func (s *playgroundState) SetupCommands() {}

func (s *playgroundState) Process(cmd string) (framework.State, error) {
	cmd = strings.TrimSpace(cmd)
	switch cmd {
	case "":
		return s, nil
	case "exit", "quit":
		s.parent.SetupCommands()
		return s.parent, nil
	}

	args, err := shlex.Split(cmd)
	if err != nil {
		return s, errors.Wrap(err, "failed to split command")
	}
	s.Logger().Debug("playground decode", zap.Strings("args", args))

	result, err := argv.Parse(s.manifest.definition,
		argv.WithArguments(args...),
		argv.WithProgram(s.manifest.Name),
		argv.WithOutput(s.parent.output()),
	)
	if err != nil {
		return s, err
	}
	if result != nil {
		fmt.Fprintln(s.parent.output(), framework.NewPresetResultSet(&DecodeResult{Result: result}, s.format).String())
	}
	return s, nil
}

func (s *playgroundState) Suggestions(input string) map[string]string {
	line := s.manifest.Name + " " + input
	candidates, err := s.completion.Candidates(line, len(line))
	if err != nil {
		s.Logger().Debug("playground completion failed", zap.String("input", input), zap.Error(err))
		return map[string]string{}
	}
	result := make(map[string]string, len(candidates))
	for _, candidate := range candidates {
		result[candidate] = ""
	}
	return result
}
