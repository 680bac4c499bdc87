package states

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/simplescripting/simplescripting/common"
	"github.com/simplescripting/simplescripting/configs"
	"github.com/simplescripting/simplescripting/framework"
)

// ApplicationState is the root state of the shell, it owns the function commands.
type ApplicationState struct {
	*framework.CmdState

	// config stores configuration items
	config *configs.Config
	// out overrides os.Stdout when set
	out io.Writer
}

func (app *ApplicationState) output() io.Writer {
	if app.out != nil {
		return app.out
	}
	return os.Stdout
}

// SetupCommands implements framework.State.
// initialize or reset command after execution.
func (app *ApplicationState) SetupCommands() {
	cmd := app.GetCmd()
	if app.out != nil {
		cmd.SetOut(app.out)
	}
	app.UpdateState(cmd, app, app.SetupCommands)
}

// manifestPath falls back to the configured manifest.
func (app *ApplicationState) manifestPath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if app.config != nil && app.config.Manifest != "" {
		return app.config.Manifest, nil
	}
	return "", common.ErrNoManifest
}

func (app *ApplicationState) outputFormat(explicit string) framework.Format {
	return framework.NameFormat(app.config.OutputFormatFor(explicit))
}

type versionParam struct {
	framework.ParamBase `use:"version" desc:"print version"`
}

func (app *ApplicationState) VersionCommand(ctx context.Context, _ *versionParam) {
	fmt.Fprintln(app.output(), "SimpleScripting Version", common.Version)
}

type exitParam struct {
	framework.ParamBase `use:"exit" desc:"Close this CLI tool"`
}

// ExitCommand moves to the ending state.
func (app *ApplicationState) ExitCommand(ctx context.Context, _ *exitParam) {
	app.SetNext(&exitState{CmdState: app.Spawn("Exit")})
}

type debugParam struct {
	framework.ParamBase `use:"debug commands" desc:"debug current command tree"`
}

func (app *ApplicationState) DebugCommand(ctx context.Context, p *debugParam) {
	for _, cmd := range app.RootCmd.Commands() {
		app.printCommands(cmd, 0)
	}
}

func (app *ApplicationState) printCommands(cmd *cobra.Command, level int) {
	for i := 0; i < level; i++ {
		fmt.Fprint(app.output(), "\t")
	}
	fmt.Fprintln(app.output(), cmd.Use)
	for _, subCmd := range cmd.Commands() {
		app.printCommands(subCmd, level+1)
	}
}
