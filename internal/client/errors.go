package client

import "errors"

// ErrUsage is returned for an unknown command or wrong arguments. The
// caller is expected to print [Usage].
var ErrUsage = errors.New("wrong usage")
