package client

import (
	"go.uber.org/zap"
)

// FailureHandler receives every failure leaving a public Client operation
// and returns the error handed to the caller. Handlers may terminate the
// process instead of returning.
type FailureHandler func(err error) error

// Propagate hands failures back to the caller unchanged. It is the default.
func Propagate(err error) error {
	return err
}

// Terminate logs the failure and exits with status 1. It belongs in the
// composition root, not in library code paths.
func Terminate(logger *zap.SugaredLogger, exit func(code int)) FailureHandler {
	return func(err error) error {
		logger.Errorf("Error: %s", err)
		_ = logger.Sync()
		exit(1)
		return err
	}
}
