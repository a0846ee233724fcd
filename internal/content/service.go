package content

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	cacheKeyCourts = "content:courts"
	cacheKeyWinner = "content:winner"
)

// Service serves the public content surface with a read-through cache in
// front of the repository. The cache is optional; with a nil Cache every
// read goes straight to the repo.
type Service struct {
	repo  Repository
	cache Cache

	cacheTTL time.Duration
	clock    func() time.Time
}

func NewService(repo Repository, cache Cache, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &Service{repo: repo, cache: cache, cacheTTL: cacheTTL, clock: time.Now}
}

func (s *Service) ListCourts(ctx context.Context) ([]Court, error) {
	if s.cache != nil {
		if b, ok := s.cache.Get(ctx, cacheKeyCourts); ok {
			var out []Court
			if err := json.Unmarshal(b, &out); err == nil {
				return out, nil
			}
			// Unreadable cache entries are dropped, not trusted.
			s.cache.Del(ctx, cacheKeyCourts)
		}
	}

	out, err := s.repo.ListCourts(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if b, err := json.Marshal(out); err == nil {
			s.cache.Set(ctx, cacheKeyCourts, b, s.cacheTTL)
		}
	}
	return out, nil
}

func (s *Service) WeeklyWinner(ctx context.Context) (WeeklyWinner, bool, error) {
	if s.cache != nil {
		if b, ok := s.cache.Get(ctx, cacheKeyWinner); ok {
			var out WeeklyWinner
			if err := json.Unmarshal(b, &out); err == nil {
				return out, true, nil
			}
			s.cache.Del(ctx, cacheKeyWinner)
		}
	}

	out, found, err := s.repo.WeeklyWinner(ctx)
	if err != nil || !found {
		return WeeklyWinner{}, found, err
	}
	if s.cache != nil {
		if b, err := json.Marshal(out); err == nil {
			s.cache.Set(ctx, cacheKeyWinner, b, s.cacheTTL)
		}
	}
	return out, true, nil
}

func (s *Service) ListBadges(ctx context.Context) ([]Badge, error) {
	return s.repo.ListBadges(ctx)
}

func (s *Service) ListLearnItems(ctx context.Context) ([]LearnItem, error) {
	return s.repo.ListLearnItems(ctx)
}

type CreateCourtRequest struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Summary  string `json:"summary"`
	Category string `json:"category"`
}

// CreateCourt persists a new court and invalidates the cached listing.
func (s *Service) CreateCourt(ctx context.Context, req CreateCourtRequest) (Court, error) {
	if req.Name == "" || req.Slug == "" {
		return Court{}, ErrInvalidArgument
	}

	c := Court{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Slug:      req.Slug,
		Summary:   req.Summary,
		Category:  req.Category,
		CreatedAt: s.clock().UTC(),
	}
	if err := s.repo.CreateCourt(ctx, c); err != nil {
		return Court{}, err
	}
	if s.cache != nil {
		s.cache.Del(ctx, cacheKeyCourts)
	}
	return c, nil
}
