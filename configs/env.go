package configs

import (
	"os"

	"github.com/cockroachdb/errors"
)

var _ ConfigSource = (*envConfigSource)(nil)

type envConfigSource struct{}

// NewEnvSource returns the process environment as a ConfigSource.
func NewEnvSource() ConfigSource {
	return &envConfigSource{}
}

func (e *envConfigSource) Name() string {
	return "env"
}

func (e *envConfigSource) Get(key string) (string, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", errors.Wrapf(ErrConfigNotFound, "env %s", key)
	}
	return value, nil
}

func (e *envConfigSource) Set(key, value string) error {
	return os.Setenv(key, value)
}
