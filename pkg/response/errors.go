package response

import "errors"

var (
	errUnauthorized = errors.New("Unauthorized")
	errForbidden    = errors.New("Forbidden")
)
