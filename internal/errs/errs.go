// Package errs defines the error taxonomy shared by every generation stage.
// All of them are fatal to a run; callers wrap them with %w and test with errors.Is.
package errs

import "errors"

var (
	// ErrMissingInput reports an absent asset root, manifest target or ignore list.
	ErrMissingInput = errors.New("missing input")
	// ErrMalformedInput reports unparsable JSON, a bad file list or an identifier collision.
	ErrMalformedInput = errors.New("malformed input")
	// ErrIO reports a failure reading assets or writing archives and generated files.
	ErrIO = errors.New("i/o failure")
)
