package users

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrDuplicateEmail is returned by Insert when the email is already taken.
// The store enforces uniqueness so the check-then-insert sequence in
// registration stays safe under concurrent requests.
var ErrDuplicateEmail = errors.New("users: duplicate email")

// Repository abstracts the credential store.
//
// Email lookup is case-insensitive; implementations must enforce a
// case-insensitive uniqueness constraint on email.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (User, bool, error)
	Insert(ctx context.Context, u User) error
}

// NormalizeEmail is the canonical email form used for lookup and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// MemoryRepo is a simple in-memory credential store for tests and early
// development. Uniqueness is enforced under the same lock as the insert.
type MemoryRepo struct {
	mu    sync.Mutex
	users map[string]User // key: normalized email
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{users: map[string]User{}}
}

func (r *MemoryRepo) FindByEmail(ctx context.Context, email string) (User, bool, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[NormalizeEmail(email)]
	return u, ok, nil
}

func (r *MemoryRepo) Insert(ctx context.Context, u User) error {
	_ = ctx
	key := NormalizeEmail(u.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[key]; exists {
		return ErrDuplicateEmail
	}
	r.users[key] = u
	return nil
}

// Count reports the number of stored users. Test helper.
func (r *MemoryRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}
