package bapps

import (
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/simplescripting/simplescripting/common"
	"github.com/simplescripting/simplescripting/framework"
)

// olcApp runs a comma separated list of commands and exits.
type olcApp struct {
	script string
	logger *zap.Logger
}

type olcCmd struct {
	cmd   string
	muted bool
}

func NewOlcApp(script string, opts ...AppOption) BApp {
	return &olcApp{
		script: script,
		logger: newAppOption(opts).logger,
	}
}

func (a *olcApp) Run(start framework.State) {
	state := start
	for _, cmd := range a.parseScripts(a.script) {
		next, err := a.process(state, cmd)
		if errors.Is(err, common.ExitErr) {
			return
		}
		if err != nil {
			fmt.Println(err.Error())
			return
		}
		if next == nil || next.IsEnding() {
			return
		}
		next.SetupCommands()
		state = next
	}
}

func (a *olcApp) process(state framework.State, cmd olcCmd) (framework.State, error) {
	a.logger.Debug("olc command", zap.String("cmd", cmd.cmd), zap.Bool("muted", cmd.muted))
	if cmd.muted {
		stdout := os.Stdout
		// set to /dev/null to discard not wanted output
		devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		if err == nil {
			os.Stdout = devNull
			defer func() {
				os.Stdout = stdout
				devNull.Close()
			}()
		}
	}
	return state.Process(cmd.cmd)
}

func (a *olcApp) parseScripts(script string) []olcCmd {
	parts := lo.Filter(strings.Split(script, ","), func(raw string, _ int) bool {
		return strings.TrimSpace(raw) != ""
	})
	return lo.Map(parts, func(raw string, _ int) olcCmd {
		cmd := strings.TrimSpace(raw)
		// mute cmd using #[command]
		muted := strings.HasPrefix(cmd, "#")
		return olcCmd{
			muted: muted,
			cmd:   strings.TrimPrefix(cmd, "#"),
		}
	})
}
