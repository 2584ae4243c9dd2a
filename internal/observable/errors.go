package observable

import "errors"

// ErrIndexOutOfRange indicates that a list mutator received an invalid position
var ErrIndexOutOfRange = errors.New("index out of range")
