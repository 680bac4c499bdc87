package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/simplescripting/simplescripting/bapps"
	"github.com/simplescripting/simplescripting/common"
	"github.com/simplescripting/simplescripting/configs"
	"github.com/simplescripting/simplescripting/logutil"
	"github.com/simplescripting/simplescripting/states"
)

var (
	oneLineCommand = pflag.String("olc", "", "one line command execution mode")
	simple         = pflag.Bool("simple", false, "use simple ui without suggestion and history")
	printVersion   = pflag.Bool("version", false, "print version")
	debugLog       = pflag.String("debug-log", "ss_debug.log", "debug log file, empty to disable logging")
	completeHook   = pflag.String("complete", "", "answer a bash `complete -C` hook for the given manifest")
)

func main() {
	pflag.Parse()

	if *printVersion {
		fmt.Println("SimpleScripting Version", common.Version)
		return
	}

	config, err := configs.NewConfig(".ss_config")
	if err != nil && *completeHook == "" {
		// run by default, just printing warning.
		fmt.Println("[WARN] load config file failed, running in default setting", err.Error())
	}

	// completion output is consumed by the shell, keep the log off stdout
	if *completeHook != "" {
		if err := states.CompleteFromEnv(config, *completeHook, os.Stdout, zap.NewNop()); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		return
	}

	logger, err := logutil.New(*debugLog, true)
	if err != nil {
		fmt.Println("[WARN] debug log disabled:", err.Error())
		logger = zap.NewNop()
	}
	defer logger.Sync()

	var app bapps.BApp
	switch {
	case *simple:
		app = bapps.NewSimpleApp(bapps.WithLogger(logger))
	case len(*oneLineCommand) > 0:
		app = bapps.NewOlcApp(*oneLineCommand, bapps.WithLogger(logger))
	default:
		// go-prompt leaves the terminal in raw mode on some exits
		defer bapps.RestoreTerminal()
		app = bapps.NewPromptApp(config, bapps.WithLogger(logger))
	}

	start := states.Start(config, logger)
	app.Run(start)
}
