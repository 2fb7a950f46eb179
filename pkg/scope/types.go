package scope

import "github.com/golang-jwt/jwt/v5"

// User is the identity carried by a token.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
}

// Claims is the JWT payload: {"user":{"id":...,"username":...}, "exp":...}.
type Claims struct {
	User User `json:"user"`
	jwt.RegisteredClaims
}
