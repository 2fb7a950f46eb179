package agent

import "errors"

// ErrInvalidParams is returned by tools for malformed or missing parameters.
var ErrInvalidParams = errors.New("invalid parameters")
