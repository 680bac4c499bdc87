package bapps

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/c-bata/go-prompt"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/simplescripting/simplescripting/common"
	"github.com/simplescripting/simplescripting/configs"
	"github.com/simplescripting/simplescripting/framework"
	"github.com/simplescripting/simplescripting/history"
)

// PromptApp wraps go-prompt as application.
type PromptApp struct {
	exited          bool
	currentState    framework.State
	sugguestHistory bool
	historyHelper   *history.Helper
	logger          *zap.Logger
	prompt          *prompt.Prompt
	config          *configs.Config
}

func NewPromptApp(config *configs.Config, opts ...AppOption) BApp {
	opt := newAppOption(opts)

	// use workspace path to open&store history log
	hh := history.NewHistoryHelper(config.WorkspacePath, opt.logger)
	pa := &PromptApp{
		historyHelper: hh,
		config:        config,
		logger:        opt.logger,
	}

	historyItems := hh.List("")
	sort.Slice(historyItems, func(i, j int) bool {
		return historyItems[i].Ts < historyItems[j].Ts
	})

	p := prompt.New(pa.promptExecute, pa.completeInput,
		prompt.OptionTitle("SimpleScripting"),
		prompt.OptionHistory(lo.Map(historyItems, func(hi history.Item, _ int) string { return hi.Cmd })),
		prompt.OptionLivePrefix(pa.livePrefix),
		prompt.OptionPrefixTextColor(prompt.Yellow),
		prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
		prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
		prompt.OptionSuggestionBGColor(prompt.DarkGray),
		// checked after each execution, the ending state was reached
		prompt.OptionSetExitCheckerOnInput(func(_ string, breakline bool) bool {
			return breakline && pa.exited
		}),
		prompt.OptionAddKeyBind(prompt.KeyBind{
			Key: prompt.ControlR,
			Fn: func(buffer *prompt.Buffer) {
				pa.sugguestHistory = !pa.sugguestHistory
			},
		}),
		prompt.OptionParser(newInputParser()),
	)
	pa.prompt = p
	return pa
}

func (a *PromptApp) Run(start framework.State) {
	a.currentState = start
	a.prompt.Run()
	a.historyHelper.Close()
}

// promptExecute runs one line against the current state, through $PAGER when set.
func (a *PromptApp) promptExecute(in string) {
	in = strings.TrimSpace(in)

	restore := a.pipeToPager(os.Getenv("PAGER"))
	nextState, err := a.currentState.Process(in)
	restore()

	a.historyHelper.AddLog(in)
	a.sugguestHistory = false

	if err != nil && !errors.Is(err, common.ExitErr) {
		a.logger.Debug("command failed", zap.String("input", in), zap.Error(err))
		fmt.Println(err.Error())
	}
	if nextState == nil {
		return
	}

	nextState.SetupCommands()
	a.currentState = nextState

	if a.currentState.IsEnding() {
		fmt.Println("Bye!")
		a.exited = true
	}
}

// pipeToPager points os.Stdout to the stdin of pager until the returned func is called.
func (a *PromptApp) pipeToPager(pager string) func() {
	if pager == "" {
		return func() {}
	}
	var args []string
	if pager == "less" {
		// no paging for one screen, keep the screen on start
		args = append(args, "-F", "--no-init")
	}
	// #nosec pager comes from the user environment
	cmd := exec.Command(pager, args...)

	r, w, err := os.Pipe()
	if err != nil {
		a.logger.Warn("failed to create pager pipe", zap.Error(err))
		return func() {}
	}

	stdout := os.Stdout
	cmd.Stdin = r
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		fmt.Printf("[WARN] cannot use $PAGER(%s), output goes to stdout\n", pager)
		r.Close()
		w.Close()
		return func() {}
	}
	os.Stdout = w

	done := make(chan struct{})
	go func() {
		// pager may quit before the command is done
		cmd.Wait()
		a.logger.Debug("pager exited", zap.Stringer("state", cmd.ProcessState))
		if devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0); err == nil {
			os.Stdout = devNull
		}
		r.Close()
		close(done)
	}()

	return func() {
		w.Close()
		<-done
		os.Stdout = stdout
	}
}

// completeInput auto-complete logic entry.
func (a *PromptApp) completeInput(d prompt.Document) []prompt.Suggest {
	input := d.CurrentLineBeforeCursor()
	if a.sugguestHistory {
		return a.historySuggestions(input)
	}
	if input == "" {
		return nil
	}
	r := a.currentState.Suggestions(input)
	s := make([]prompt.Suggest, 0, len(r))
	for usage, short := range r {
		s = append(s, prompt.Suggest{
			Text:        usage,
			Description: short,
		})
	}
	sort.Slice(s, func(i, j int) bool {
		return s[i].Text < s[j].Text
	})
	return s
}

// historySuggestions returns suggestion from command history.
func (a *PromptApp) historySuggestions(input string) []prompt.Suggest {
	items := a.historyHelper.List(input)
	sort.Slice(items, func(i, j int) bool {
		return items[i].Ts > items[j].Ts
	})

	lastIdx := strings.LastIndex(input, " ") + 1
	return lo.Map(items, func(item history.Item, _ int) prompt.Suggest {
		t := time.Unix(item.Ts, 0)
		return prompt.Suggest{
			Text:        item.Cmd[lastIdx:],
			Description: t.Format("2006-01-02 15:04:05"),
		}
	})
}

// livePrefix implements dynamic change prefix.
func (a *PromptApp) livePrefix() (string, bool) {
	if a.exited {
		return "", false
	}
	return fmt.Sprintf("%s > ", a.currentState.Label()), true
}

// inputParser restores the terminal mode on TearDown, go-prompt leaves it raw.
type inputParser struct {
	*prompt.PosixParser
}

func newInputParser() *inputParser {
	return &inputParser{
		PosixParser: prompt.NewStandardInputParser(),
	}
}

// TearDown should be called after stopping input
func (t *inputParser) TearDown() error {
	err := t.PosixParser.TearDown()
	RestoreTerminal()
	return err
}

// RestoreTerminal turns raw mode off.
func RestoreTerminal() {
	rawModeOff := exec.Command("/bin/stty", "-raw", "echo")
	rawModeOff.Stdin = os.Stdin
	_ = rawModeOff.Run()
}
