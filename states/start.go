package states

import (
	"go.uber.org/zap"

	"github.com/simplescripting/simplescripting/configs"
	"github.com/simplescripting/simplescripting/framework"
)

// Start returns the first state of the shell.
func Start(config *configs.Config, logger *zap.Logger) framework.State {
	if config == nil {
		config = &configs.Config{}
	}
	app := &ApplicationState{
		CmdState: framework.NewCmdState("SimpleScripting"),
		config:   config,
	}
	app.SetLogger(logger)
	app.SetupCommands()
	return app
}
