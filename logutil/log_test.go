package logutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	t.Run("empty_path", func(t *testing.T) {
		logger, err := New("", true)
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zap.ErrorLevel))
	})

	for _, debug := range []bool{true, false} {
		path := filepath.Join(t.TempDir(), "ss_debug.log")
		logger, err := New(path, debug)
		require.NoError(t, err)

		logger.Debug("debug line", zap.String("cmd", "decode"))
		logger.Info("info line")
		_ = logger.Sync()

		bs, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(bs), "info line")
		if debug {
			assert.Contains(t, string(bs), `"cmd":"decode"`)
		} else {
			assert.NotContains(t, string(bs), "debug line")
		}
	}

	t.Run("bad_path", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "missing", "x.log"), false)
		assert.Error(t, err)
	})
}
