package content

import (
	"context"
	"errors"
	"sync"
)

var ErrInvalidArgument = errors.New("content: invalid argument")

// Repository abstracts content storage. Reads power the public explore
// surface; CreateCourt is admin-only at the route layer.
type Repository interface {
	ListCourts(ctx context.Context) ([]Court, error)
	WeeklyWinner(ctx context.Context) (WeeklyWinner, bool, error)
	ListBadges(ctx context.Context) ([]Badge, error)
	ListLearnItems(ctx context.Context) ([]LearnItem, error)
	CreateCourt(ctx context.Context, c Court) error
}

// MemoryRepo is a simple in-memory content repository for tests and early
// development.
type MemoryRepo struct {
	mu sync.Mutex

	Courts []Court
	Winner *WeeklyWinner
	Badges []Badge
	Learn  []LearnItem
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) ListCourts(ctx context.Context) ([]Court, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Court, len(r.Courts))
	copy(out, r.Courts)
	return out, nil
}

func (r *MemoryRepo) WeeklyWinner(ctx context.Context) (WeeklyWinner, bool, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Winner == nil {
		return WeeklyWinner{}, false, nil
	}
	return *r.Winner, true, nil
}

func (r *MemoryRepo) ListBadges(ctx context.Context) ([]Badge, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Badge, len(r.Badges))
	copy(out, r.Badges)
	return out, nil
}

func (r *MemoryRepo) ListLearnItems(ctx context.Context) ([]LearnItem, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]LearnItem, len(r.Learn))
	copy(out, r.Learn)
	return out, nil
}

func (r *MemoryRepo) CreateCourt(ctx context.Context, c Court) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Courts = append(r.Courts, c)
	return nil
}
