package bapps

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/manifoldco/promptui"
	"go.uber.org/zap"

	"github.com/simplescripting/simplescripting/common"
	"github.com/simplescripting/simplescripting/framework"
)

// simpleApp wraps promptui as BApp.
type simpleApp struct {
	logger *zap.Logger
}

func NewSimpleApp(opts ...AppOption) BApp {
	return &simpleApp{logger: newAppOption(opts).logger}
}

// Run starts the shell with promptui. (disable suggestion and history)
func (a *simpleApp) Run(start framework.State) {
	state := start
	for {
		p := promptui.Prompt{
			Label: state.Label(),
		}

		line, err := p.Run()
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return
		}
		if err != nil {
			a.logger.Debug("prompt failed", zap.Error(err))
			continue
		}

		next, err := state.Process(line)
		if errors.Is(err, common.ExitErr) {
			return
		}
		if err != nil {
			fmt.Println(err.Error())
		}
		if next == nil {
			continue
		}
		if next.IsEnding() {
			fmt.Println("Bye!")
			return
		}
		next.SetupCommands()
		state = next
	}
}
