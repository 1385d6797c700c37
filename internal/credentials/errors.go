package credentials

import "errors"

var (
	// Validation errors.
	ErrInvalidUsername  = errors.New("invalid username")
	ErrMissingSeparator = errors.New("missing '+' separator")
	ErrEmptyHash        = errors.New("empty password hash")

	// ErrUnsupportedKind is returned when an operation is asked to handle a
	// credential kind it does not understand.
	ErrUnsupportedKind = errors.New("unsupported credential kind")

	// ErrCredentialIO wraps file system failures of LoadFromFile / SaveToFile.
	ErrCredentialIO = errors.New("credential file i/o")
)
