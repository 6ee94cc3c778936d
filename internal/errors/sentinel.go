package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates the settings file failed schema validation.
	ErrValidation = errors.New("validation error")

	// ErrParse indicates malformed input data, such as a locale bundle.
	ErrParse = errors.New("parse error")

	// ErrPermission indicates insufficient filesystem permissions.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound indicates a project, settings file, or directory was not found.
	ErrNotFound = errors.New("not found")
)
