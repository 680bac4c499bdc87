package common

import "github.com/cockroachdb/errors"

// ExitErr is the error indicates user needs to exit application.
var ExitErr = exitErr{}

// exitErr internal err type for comparing.
type exitErr struct{}

// Error implements error.
func (e exitErr) Error() string {
	return "exited"
}

// ErrNoManifest is returned by grammar commands run without a manifest.
var ErrNoManifest = errors.New("no manifest provided, use --manifest or set Manifest in the config file")
