package auth

import "github.com/golang-jwt/jwt/v5"

// Claims is the only supported token claims shape for this service.
// Subject is the user's email; Role and Name are copied from the stored
// identity at issuance and never re-fetched per request (stateless session).
type Claims struct {
	jwt.RegisteredClaims

	Name string `json:"name"`
	Role string `json:"role"`
}
