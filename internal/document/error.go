package document

import "errors"

// Error definitions for the document package.
var (
	ErrUnsupportedType = errors.New("unsupported document type")
	ErrEmpty           = errors.New("document is empty")
	ErrInvalidEncoding = errors.New("document is not valid UTF-8")
	ErrUnreadable      = errors.New("document could not be read")
)
