package yoloconv

import "errors"

// Error kinds. Errors returned by this package wrap one of these, test with errors.Is.
var (
	// ErrConfig reports a malformed or unreadable dataset configuration file.
	ErrConfig = errors.New("invalid dataset config")
	// ErrValidation reports a label map that fails its invariants.
	ErrValidation = errors.New("invalid label map")
	// ErrParse reports a malformed label file line.
	ErrParse = errors.New("malformed label")
	// ErrLookup reports an image id, image name or class index without metadata.
	ErrLookup = errors.New("missing metadata")
)
