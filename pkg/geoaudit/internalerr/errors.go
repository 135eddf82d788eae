package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyDocument     = errors.New("document has no text content")
	ErrUnknownPlatform   = errors.New("unknown platform")
	ErrUnknownSchemaType = errors.New("unknown schema type")
)
