package tabcompletion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCandidates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "abc.yaml"), nil, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bcd.yaml"), nil, 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "adir"), 0o755))

	t.Run("prefix", func(t *testing.T) {
		assert.Equal(t, []string{dir + "/abc.yaml", dir + "/adir/"}, FileCandidates(dir+"/a", false))
	})

	t.Run("directory listing", func(t *testing.T) {
		assert.Equal(t, []string{dir + "/abc.yaml", dir + "/adir/", dir + "/bcd.yaml"}, FileCandidates(dir+"/", false))
	})

	t.Run("directories only", func(t *testing.T) {
		candidates, err := NewFileProvider(true).Candidates("path", dir+"/", "", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{dir + "/adir/"}, candidates)
	})

	t.Run("missing directory", func(t *testing.T) {
		assert.Empty(t, FileCandidates(filepath.Join(dir, "nope", "x"), false))
	})
}
