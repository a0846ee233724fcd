package auth

import (
	"errors"
	"time"

	"pathific-platform/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// Manager issues and verifies signed session tokens (HS256). The secret and
// issuer are fixed at construction; the Manager is immutable and safe for
// concurrent use.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewManager(cfg config.AuthConfig) (*Manager, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 60 * time.Minute
	}

	return &Manager{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.JWTIssuer,
		ttl:    ttl,
	}, nil
}

// TTL reports the configured token lifetime.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue signs a token binding the user's email (subject), display name and
// role. iat/exp are derived from now; the claims are immutable once signed.
func (m *Manager) Issue(now time.Time, email, name, role string) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Name: name,
		Role: role,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Verify checks the token signature and expiry and returns the embedded
// claims. Failures map to exactly one of ErrMalformedToken,
// ErrInvalidSignature or ErrTokenExpired.
//
// The signature is verified before any decoded claim is inspected; a forged
// payload is rejected as ErrInvalidSignature without its fields ever being
// trusted. Expiry is checked against the caller-supplied now, so verification
// is deterministic in tests.
func (m *Manager) Verify(tokenString string, now time.Time) (Claims, error) {
	var claims Claims

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		// Time-based validation happens below with the injected clock.
		jwt.WithoutClaimsValidation(),
	)

	_, err := parser.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSignature
		default:
			return Claims{}, ErrMalformedToken
		}
	}

	if m.issuer != "" && claims.Issuer != m.issuer {
		return Claims{}, ErrMalformedToken
	}
	if claims.Subject == "" {
		return Claims{}, ErrMalformedToken
	}
	if claims.ExpiresAt == nil {
		return Claims{}, ErrMalformedToken
	}
	if !now.Before(claims.ExpiresAt.Time) {
		return Claims{}, ErrTokenExpired
	}

	return claims, nil
}
