package tabcompletion

import (
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/samber/lo"

	"github.com/simplescripting/simplescripting/argv"
)

// FileProvider completes paths from the file system. When dirsOnly is set only directories
// are listed.
type FileProvider struct {
	dirsOnly bool
}

// NewFileProvider returns a provider listing files, or only directories.
func NewFileProvider(dirsOnly bool) *FileProvider {
	return &FileProvider{dirsOnly: dirsOnly}
}

// Candidates implements Provider; key, suffix and others are ignored.
func (p *FileProvider) Candidates(_, prefix, _ string, _ argv.Values) ([]string, error) {
	return FileCandidates(prefix, p.dirsOnly), nil
}

// FileCandidates lists the entries of the directory part of prefix whose name starts with its
// base part. A leading `~` is expanded.
func FileCandidates(prefix string, dirsOnly bool) []string {
	target := prefix
	if strings.HasPrefix(target, "~") {
		expanded, err := homedir.Expand(target)
		if err != nil {
			return []string{}
		}
		target = expanded
	}

	var dir, part string
	switch {
	case target == "":
		dir = "."
	case strings.HasSuffix(target, "/"):
		dir = target
	default:
		dir = path.Dir(target)
		part = path.Base(target)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return []string{}
	}

	return lo.FilterMap(entries, func(entry fs.DirEntry, _ int) (string, bool) {
		if !strings.HasPrefix(entry.Name(), part) || (dirsOnly && !entry.IsDir()) {
			return "", false
		}
		name := entry.Name()
		switch {
		case dir == "." && strings.HasPrefix(target, "./"):
			name = "./" + name
		case dir != ".":
			name = path.Join(dir, name)
		}
		if entry.IsDir() {
			name += "/"
		}
		return name, true
	})
}
