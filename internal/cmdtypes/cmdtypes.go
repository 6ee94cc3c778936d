// Package cmdtypes provides shared types for the cmd package. It is separate
// from internal/cmd so that command helpers can depend on it without cycles.
package cmdtypes

import (
	oerrors "github.com/extforge/cli/internal/errors"
)

// GlobalConfig holds CLI-wide flag values resolved during PersistentPreRunE.
// It is created once by the root command and passed explicitly into every
// sub-command constructor.
type GlobalConfig struct {
	// ConfigFile is the raw --config value.
	ConfigFile string

	// Verbose enables debug logging and detailed output.
	Verbose bool

	// Timestamps is the raw --timestamps value.
	Timestamps bool
}

// Exit codes, aliased from internal/errors.
const (
	ExitSuccess          = oerrors.ExitSuccess
	ExitGeneralError     = oerrors.ExitGeneralError
	ExitValidationError  = oerrors.ExitValidationError
	ExitPermissionDenied = oerrors.ExitPermissionDenied
	ExitNotFound         = oerrors.ExitNotFound
)

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError

// ExitErrorFrom wraps err with the exit code derived from its chain. printed
// marks errors already reported to the user.
func ExitErrorFrom(err error, printed bool) *ExitError {
	e := oerrors.NewExitError(err)
	e.Printed = printed
	return e
}
