package core

import "errors"

// ErrInvalidParameter reports a construction parameter outside its valid
// domain. Sample processing never returns it.
var ErrInvalidParameter = errors.New("invalid parameter")
