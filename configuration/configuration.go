// Package configuration loads the INI-like configuration file of a script: top-level
// `key=value` entries plus `[group]` sections.
package configuration

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mitchellh/go-homedir"
	"github.com/samber/lo"
	"gopkg.in/ini.v1"
)

// Group holds the values of a section.
type Group struct {
	values map[string]Value
}

// Get returns the value of key.
func (g *Group) Get(key string) (Value, error) {
	value, ok := g.values[key]
	if !ok {
		return Value{}, notFound(key)
	}
	return value, nil
}

// Keys returns the keys of the group, sorted.
func (g *Group) Keys() []string {
	keys := lo.Keys(g.values)
	sort.Strings(keys)
	return keys
}

// Configuration is a loaded configuration file.
type Configuration struct {
	top    *Group
	groups map[string]*Group
}

// Get returns the top-level value of key.
func (c *Configuration) Get(key string) (Value, error) {
	return c.top.Get(key)
}

// Keys returns the top-level keys, sorted.
func (c *Configuration) Keys() []string {
	return c.top.Keys()
}

// Group returns the section named name.
func (c *Configuration) Group(name string) (*Group, error) {
	group, ok := c.groups[name]
	if !ok {
		return nil, notFound(name)
	}
	return group, nil
}

// Groups returns the section names, sorted.
func (c *Configuration) Groups() []string {
	names := lo.Keys(c.groups)
	sort.Strings(names)
	return names
}

func notFound(name string) error {
	return errors.Newf("Key/group %q not found!", name)
}

type options struct {
	configFile   string
	passwordsKey string
	required     []string
}

// Option configures Load.
type Option func(*options)

// WithConfigFile sets the file to load; it defaults to `~/.<program name>`.
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.configFile = path
	}
}

// WithPasswordsKey sets the key used by Value.Encrypted and Value.Decrypted.
func WithPasswordsKey(key string) Option {
	return func(o *options) {
		o.passwordsKey = key
	}
}

// WithRequired lists top-level keys that must be present. Group names are not keys.
func WithRequired(keys ...string) Option {
	return func(o *options) {
		o.required = keys
	}
}

// DefaultConfigFile returns `~/.<program basename without extension>`.
func DefaultConfigFile() (string, error) {
	base := filepath.Base(os.Args[0])
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return homedir.Expand("~/." + base)
}

// Load reads the configuration file, creating it empty when missing.
func Load(opts ...Option) (*Configuration, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.configFile == "" {
		path, err := DefaultConfigFile()
		if err != nil {
			return nil, err
		}
		o.configFile = path
	}

	if err := createEmptyFile(o.configFile); err != nil {
		return nil, err
	}

	file, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, o.configFile)
	if err != nil {
		return nil, errors.Wrapf(err, "parse configuration file %s", o.configFile)
	}

	configuration := &Configuration{
		top:    &Group{values: make(map[string]Value)},
		groups: make(map[string]*Group),
	}
	for _, section := range file.Sections() {
		group := configuration.top
		if section.Name() != ini.DefaultSection {
			group = &Group{values: make(map[string]Value)}
			configuration.groups[section.Name()] = group
		}
		for _, key := range section.Keys() {
			group.values[key.Name()] = NewValue(key.Value(), o.passwordsKey)
		}
	}

	missing := lo.Filter(o.required, func(key string, _ int) bool {
		_, ok := configuration.top.values[key]
		return !ok
	})
	if len(missing) > 0 {
		return nil, errors.Newf("Missing required configuration key(s): %s", strings.Join(missing, ", "))
	}
	return configuration, nil
}

func createEmptyFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create configuration file %s", path)
	}
	return file.Close()
}
