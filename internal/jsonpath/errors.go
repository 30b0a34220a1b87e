package jsonpath

import "errors"

var (
	// ErrSyntax indicates a malformed pattern when strict paths are enabled.
	ErrSyntax = errors.New("jsonpath: syntax error")

	// ErrMalformed indicates the JSON input could not be parsed.
	ErrMalformed = errors.New("jsonpath: malformed JSON structure")

	// ErrInvalidHandler indicates a nil handler was registered.
	ErrInvalidHandler = errors.New("jsonpath: handler is not callable")

	// ErrParseInProgress indicates the engine was modified or reused from
	// inside a handler while a parse was running.
	ErrParseInProgress = errors.New("jsonpath: parse in progress")
)
