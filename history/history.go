package history

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const historyFile = ".ss_history"

// Item is one executed shell line.
type Item struct {
	Cmd string
	Ts  int64
}

// Helper keeps the shell lines of past sessions and appends the new ones to the workspace.
type Helper struct {
	items  []Item
	file   *os.File
	logger *zap.Logger
}

// NewHistoryHelper loads the history kept under workspace. Failing to open the file only
// disables persistence.
func NewHistoryHelper(workspace string, logger *zap.Logger) *Helper {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Helper{logger: logger}

	path := filepath.Join(workspace, historyFile)
	items, err := readItems(path)
	if err != nil {
		logger.Warn("history not loaded", zap.String("path", path), zap.Error(err))
	}
	h.items = items

	if h.file, err = openAppend(workspace, path); err != nil {
		logger.Warn("history not persisted", zap.String("path", path), zap.Error(err))
	}
	return h
}

func readItems(path string) ([]Item, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "open history")
	}
	defer f.Close()

	var items []Item
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var item Item
		// lines from older or broken writes are dropped
		if json.Unmarshal(scanner.Bytes(), &item) == nil {
			items = append(items, item)
		}
	}
	return items, errors.Wrap(scanner.Err(), "read history")
}

func openAppend(workspace, path string) (*os.File, error) {
	if workspace != "" {
		if err := os.MkdirAll(workspace, os.ModePerm); err != nil {
			return nil, errors.Wrap(err, "create workspace")
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	return f, errors.Wrap(err, "open history")
}

// AddLog records a non blank line.
func (h *Helper) AddLog(cmd string) {
	if strings.TrimSpace(cmd) == "" {
		return
	}
	item := Item{Cmd: cmd, Ts: time.Now().Unix()}
	h.items = append(h.items, item)
	if h.file == nil {
		return
	}
	bs, err := json.Marshal(item)
	if err == nil {
		_, err = h.file.Write(append(bs, '\n'))
	}
	if err != nil {
		h.logger.Warn("failed to write history", zap.String("cmd", cmd), zap.Error(err))
	}
}

// List returns the recorded lines starting with prefix, oldest first.
func (h *Helper) List(prefix string) []Item {
	return lo.Filter(h.items, func(item Item, _ int) bool {
		return strings.HasPrefix(item.Cmd, prefix)
	})
}

func (h *Helper) Close() {
	if h.file != nil {
		h.file.Close()
		h.file = nil
	}
}
