package configs

import (
	"os"
	"path"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

const (
	configFileName   = `simplescripting.yaml`
	defaultWorkspace = `ss_workspace`
)

var (
	errConfigPathNotExist = errors.New("config path not exist")
	errConfigPathIsFile   = errors.New("config path is file")
)

// Config stores simplescripting config items.
type Config struct {
	// configuration folder path
	// default $PWD/.ss_config
	ConfigPath string `yaml:"-"`
	// workspace path holding history, default $PWD/ss_workspace
	WorkspacePath string `yaml:"WorkspacePath"`
	// OutputFormat is the default result format, see framework.NameFormat
	OutputFormat string `yaml:"OutputFormat,omitempty"`
	// Manifest is loaded by the playground when no --manifest is given
	Manifest string `yaml:"Manifest,omitempty"`
}

func (c *Config) load() error {
	err := c.checkConfigPath()
	if err != nil {
		return err
	}

	bs, err := os.ReadFile(c.getConfigPath())
	if err != nil {
		return err
	}

	return yaml.Unmarshal(bs, c)
}

func (c *Config) getConfigPath() string {
	return path.Join(c.ConfigPath, configFileName)
}

// checkConfigPath exists and is a directory.
func (c *Config) checkConfigPath() error {
	info, err := os.Stat(c.ConfigPath)
	if err != nil {
		// not exist, return specified type to handle
		if os.IsNotExist(err) {
			return errConfigPathNotExist
		}
		return err
	}
	if !info.IsDir() {
		return errors.Wrapf(errConfigPathIsFile, "%s is not a directory", c.ConfigPath)
	}

	return nil
}

func (c *Config) createDefault() error {
	err := os.MkdirAll(c.ConfigPath, os.ModePerm)
	if err != nil {
		return err
	}

	// setup default value
	c.WorkspacePath = defaultWorkspace

	bs, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	return os.WriteFile(c.getConfigPath(), bs, 0o644)
}

// NewConfig loads the config stored under configPath, creating the default one on first run.
func NewConfig(configPath string) (*Config, error) {
	config := &Config{
		ConfigPath:    configPath,
		WorkspacePath: defaultWorkspace,
	}
	err := config.load()
	// config path not exist, may first time to run
	if errors.Is(err, errConfigPathNotExist) {
		return config, config.createDefault()
	}

	return config, err
}
