package configs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/simplescripting/simplescripting/argv"
	"github.com/simplescripting/simplescripting/tabcompletion"
)

// Manifest declares the grammar of a script in YAML or TOML, together with the static values
// offered by tab completion.
//
//	name: deploy
//	commands:
//	  - name: service
//	    options:
//	      - flags: ["-r", "--region NAME", "target region"]
//	        values: [eu-west, us-east]
//	    arguments:
//	      - name: "[*services]"
type Manifest struct {
	Name         string `yaml:"name" toml:"name"`
	NodeManifest `yaml:",inline"`
}

// NodeManifest is either a leaf (options and arguments) or a list of commands.
type NodeManifest struct {
	LongHelp  string             `yaml:"long_help,omitempty" toml:"long_help"`
	Options   []OptionManifest   `yaml:"options,omitempty" toml:"options"`
	Arguments []ArgumentManifest `yaml:"arguments,omitempty" toml:"arguments"`
	Commands  []CommandManifest  `yaml:"commands,omitempty" toml:"commands"`
}

// CommandManifest names a nested node.
type CommandManifest struct {
	Name         string `yaml:"name" toml:"name"`
	NodeManifest `yaml:",inline"`
}

// OptionManifest is an option entry; Flags follows argv.Opt.
type OptionManifest struct {
	Flags  []string `yaml:"flags" toml:"flags"`
	Type   string   `yaml:"type,omitempty" toml:"type"`
	Values []string `yaml:"values,omitempty" toml:"values"`
	// Files completes the value from the file system
	Files bool `yaml:"files,omitempty" toml:"files"`
}

// ArgumentManifest is a positional entry; Name follows argv.Arg.
type ArgumentManifest struct {
	Name   string   `yaml:"name" toml:"name"`
	Values []string `yaml:"values,omitempty" toml:"values"`
	Files  bool     `yaml:"files,omitempty" toml:"files"`
}

const (
	typeBool = "bool"
	typeList = "list"
)

// LoadManifest reads a manifest, as TOML for `.toml` files and as YAML otherwise.
func LoadManifest(path string) (*Manifest, error) {
	manifest := &Manifest{}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.DecodeFile(path, manifest); err != nil {
			return nil, errors.Wrapf(err, "failed to parse manifest %s", path)
		}
	} else {
		bs, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read manifest")
		}
		if err := yaml.Unmarshal(bs, manifest); err != nil {
			return nil, errors.Wrapf(err, "failed to parse manifest %s", path)
		}
	}
	if manifest.Name == "" {
		manifest.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return manifest, nil
}

// Definition builds the argv grammar of the manifest.
func (m *NodeManifest) Definition() (argv.Definition, error) {
	if len(m.Commands) > 0 {
		if len(m.Options) > 0 || len(m.Arguments) > 0 {
			return nil, errors.New("manifest node declares both commands and options/arguments")
		}
		commands := make([]argv.Command, 0, len(m.Commands))
		for _, command := range m.Commands {
			node, err := command.Definition()
			if err != nil {
				return nil, errors.Wrapf(err, "command %s", command.Name)
			}
			commands = append(commands, argv.Cmd(command.Name, node))
		}
		return argv.Commands(commands...), nil
	}

	entries := make([]argv.Entry, 0, len(m.Options)+len(m.Arguments)+1)
	for _, option := range m.Options {
		spec, err := option.spec()
		if err != nil {
			return nil, err
		}
		entries = append(entries, spec)
	}
	for _, argument := range m.Arguments {
		entries = append(entries, argv.Arg(argument.Name))
	}
	if m.LongHelp != "" {
		entries = append(entries, argv.LongHelp(m.LongHelp))
	}
	return argv.Leaf(entries...), nil
}

func (o OptionManifest) spec() (argv.OptionSpec, error) {
	spec := argv.Opt(o.Flags...)
	switch o.Type {
	case "":
	case typeBool:
		spec = spec.As(argv.Bool)
	case typeList:
		spec = spec.As(argv.Split(","))
	default:
		return spec, errors.Newf("unknown option type %q in %v", o.Type, o.Flags)
	}
	return spec, nil
}

// Provider returns the completion provider backed by the declared values. Keys shared by
// several commands offer the union of their values.
func (m *NodeManifest) Provider() tabcompletion.Provider {
	p := &manifestProvider{
		values: make(map[string][]string),
		files:  make(map[string]bool),
	}
	p.collect(m)
	return p
}

type manifestProvider struct {
	values map[string][]string
	files  map[string]bool
}

func (p *manifestProvider) collect(m *NodeManifest) {
	for _, option := range m.Options {
		p.add(argv.Opt(option.Flags...).Key(), option.Values, option.Files)
	}
	for _, argument := range m.Arguments {
		p.add(argv.Arg(argument.Name).Key(), argument.Values, argument.Files)
	}
	for i := range m.Commands {
		p.collect(&m.Commands[i].NodeManifest)
	}
}

func (p *manifestProvider) add(key string, values []string, files bool) {
	if key == "" {
		return
	}
	p.values[key] = lo.Uniq(append(p.values[key], values...))
	p.files[key] = p.files[key] || files
}

func (p *manifestProvider) Candidates(key, prefix, suffix string, others argv.Values) ([]string, error) {
	candidates, err := tabcompletion.StaticProvider(p.values).Candidates(key, prefix, suffix, others)
	if err != nil {
		return nil, err
	}
	if p.files[key] {
		candidates = append(candidates, tabcompletion.FileCandidates(prefix, false)...)
	}
	return candidates, nil
}
