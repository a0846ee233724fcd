package password

import (
	"golang.org/x/crypto/bcrypt"
)

// Hasher is the one-way credential transform used by registration and login.
// Implementations must embed a per-call random salt so equal inputs produce
// distinct digests, and must treat a malformed stored digest as a plain
// verification failure rather than an error.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// BcryptHasher hashes passwords with bcrypt. The cost parameter is the
// tunable work factor; higher costs slow offline brute force.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a bcrypt hasher. A cost outside the valid bcrypt
// range falls back to the library default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Verify recomputes the digest using the salt embedded in the stored value.
// bcrypt's comparison is constant time; any parse failure of the stored
// digest reports false.
func (h *BcryptHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
