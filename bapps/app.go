package bapps

import (
	"go.uber.org/zap"

	"github.com/simplescripting/simplescripting/framework"
)

// BApp interface for simplescripting shells.
type BApp interface {
	Run(framework.State)
}

// AppOption application setup option function.
type AppOption func(*appOption)

type appOption struct {
	logger *zap.Logger
}

func newAppOption(opts []AppOption) *appOption {
	opt := &appOption{logger: zap.NewNop()}
	for _, o := range opts {
		o(opt)
	}
	return opt
}

// WithLogger returns AppOption to setup application logger.
func WithLogger(logger *zap.Logger) AppOption {
	return func(opt *appOption) {
		if logger != nil {
			opt.logger = logger
		}
	}
}
