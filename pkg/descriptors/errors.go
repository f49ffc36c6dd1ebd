package descriptors

import "errors"

var (
	ErrInvalidDescriptor = errors.New("invalid descriptor")
	// ErrUnknownDescriptor is returned for class-specific blocks with a subtype
	// this package does not parse.
	ErrUnknownDescriptor = errors.New("unknown descriptor subtype")
)
