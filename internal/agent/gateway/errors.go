package gateway

import "errors"

var (
	// ErrGatewayUnavailable means no model provider is configured. Retrying cannot help.
	ErrGatewayUnavailable = errors.New("model gateway unavailable")
	// ErrGatewayCallFailure covers network, timeout and provider errors of a single call.
	ErrGatewayCallFailure = errors.New("model gateway call failed")
)
