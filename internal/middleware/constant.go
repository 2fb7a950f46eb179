package middleware

const (
	HeaderRequestID     = "X-Request-ID"
	HeaderAuthorization = "Authorization"

	scopeKey = "scope"
)
