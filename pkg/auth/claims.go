package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	// Owner is the buyer account the workspace and order history belong to.
	Owner string
	JTI   string
}

// AccessTokenClaims represents the typed JWT issued to clients. The owner travels as sub.
type AccessTokenClaims struct {
	jwt.RegisteredClaims
}

// Owner returns the buyer the token was minted for.
func (c *AccessTokenClaims) Owner() string {
	if c == nil {
		return ""
	}
	return c.Subject
}
