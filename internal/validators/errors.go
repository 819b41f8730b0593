package validators

import "errors"

var (
	// ErrUnsupportedType is returned for values that are not structs or
	// pointers to structs.
	ErrUnsupportedType = errors.New("unsupported type for validation")

	// ErrValidationFailed wraps every rule violation found in a request.
	ErrValidationFailed = errors.New("validation failed")
)
