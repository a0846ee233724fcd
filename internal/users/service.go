package users

import (
	"context"
	"errors"
	"time"

	"pathific-platform/internal/auth"
	"pathific-platform/internal/password"
	"pathific-platform/internal/rbac"

	"github.com/google/uuid"
)

// Validation and credential errors. Handlers map these to the wire-level
// messages; the service never leaks whether a login failure was an unknown
// email or a wrong password (ErrInvalidCredentials covers both).
var (
	ErrMissingFields      = errors.New("users: missing required fields")
	ErrPasswordMismatch   = errors.New("users: passwords do not match")
	ErrEmailTaken         = errors.New("users: email already registered")
	ErrMissingCredentials = errors.New("users: missing credentials")
	ErrInvalidCredentials = errors.New("users: invalid credentials")
)

// Service orchestrates registration and login: input validation, uniqueness,
// password hashing/verification and token issuance. It is stateless; the
// repository is the only shared mutable resource.
type Service struct {
	repo   Repository
	hasher password.Hasher
	tokens *auth.Manager

	// clock is injectable for deterministic tests.
	clock func() time.Time
}

func NewService(repo Repository, hasher password.Hasher, tokens *auth.Manager) *Service {
	return &Service{repo: repo, hasher: hasher, tokens: tokens, clock: time.Now}
}

type RegisterRequest struct {
	ExternalID      string
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	City            string
	Level           string
	Role            string
}

// Register validates the request, persists a new identity and returns a
// signed session token. All validation happens before the store write;
// no rejection path leaves a user behind.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (string, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return "", ErrMissingFields
	}
	// An absent confirmation defaults to the password itself.
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		return "", ErrPasswordMismatch
	}

	email := NormalizeEmail(req.Email)
	if _, exists, err := s.repo.FindByEmail(ctx, email); err != nil {
		return "", err
	} else if exists {
		return "", ErrEmailTaken
	}

	role := req.Role
	if role == "" {
		role = rbac.RoleUser
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return "", err
	}

	now := s.clock().UTC()
	u := User{
		ID:           uuid.NewString(),
		ExternalID:   req.ExternalID,
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		City:         req.City,
		Level:        req.Level,
		Role:         role,
		CreatedAt:    now,
	}
	if err := s.repo.Insert(ctx, u); err != nil {
		// A concurrent registration can win between the lookup and the
		// insert; the store's uniqueness constraint reports it and the
		// outcome is the same as the pre-insert check.
		if errors.Is(err, ErrDuplicateEmail) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	return s.tokens.Issue(now, u.Email, u.Name, u.Role)
}

// Login verifies credentials and returns a signed session token. An unknown
// email and a wrong password are deliberately indistinguishable.
func (s *Service) Login(ctx context.Context, email, plaintext string) (string, error) {
	if email == "" || plaintext == "" {
		return "", ErrMissingCredentials
	}

	u, found, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrInvalidCredentials
	}
	if !s.hasher.Verify(plaintext, u.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(s.clock().UTC(), u.Email, u.Name, u.Role)
}
