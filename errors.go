package flip

import "errors"

// ErrInvalid is wrapped by every error caused by invalid input: a share
// percentage outside [0, 100], an oversold lot, an unknown item.
var ErrInvalid = errors.New("invalid input")
