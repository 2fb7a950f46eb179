package scope

import "errors"

var (
	ErrSecretRequired = errors.New("jwt secret is required")
	ErrInvalidToken   = errors.New("token is not valid")
	ErrMissingUser    = errors.New("token has no user id")
	ErrNoToken        = errors.New("no token provided")
)
