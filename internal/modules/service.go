package modules

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidArgument = errors.New("modules: invalid argument")

// Service provides ordered-module CRUD and completion tracking for a court.
type Service struct {
	repo Repository

	// clock is injectable for deterministic tests.
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

func (s *Service) ListByCourt(ctx context.Context, courtID string) ([]Module, error) {
	if courtID == "" {
		return nil, ErrInvalidArgument
	}
	return s.repo.ListByCourt(ctx, courtID)
}

type CreateModuleRequest struct {
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	OrderIndex int    `json:"order_index"`
}

func (s *Service) Create(ctx context.Context, courtID string, req CreateModuleRequest) (Module, error) {
	if courtID == "" || req.Title == "" || req.OrderIndex < 0 {
		return Module{}, ErrInvalidArgument
	}

	m := Module{
		ID:         uuid.NewString(),
		CourtID:    courtID,
		Title:      req.Title,
		Summary:    req.Summary,
		OrderIndex: req.OrderIndex,
		CreatedAt:  s.clock().UTC(),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return Module{}, err
	}
	return m, nil
}

// Update applies a partial update: only the provided fields change.
func (s *Service) Update(ctx context.Context, id string, req UpdateModuleRequest) (Module, error) {
	if id == "" {
		return Module{}, ErrInvalidArgument
	}

	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return Module{}, err
	}
	if req.Title != nil {
		m.Title = *req.Title
	}
	if req.Summary != nil {
		m.Summary = *req.Summary
	}
	if req.OrderIndex != nil {
		m.OrderIndex = *req.OrderIndex
	}
	if m.Title == "" || m.OrderIndex < 0 {
		return Module{}, ErrInvalidArgument
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return Module{}, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidArgument
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListItems(ctx context.Context, moduleID string) ([]ModuleItem, error) {
	if moduleID == "" {
		return nil, ErrInvalidArgument
	}
	return s.repo.ListItems(ctx, moduleID)
}

type CreateItemRequest struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Position int    `json:"position"`
}

// CreateItem adds material to an existing module; creating against an
// unknown module is a not-found, not a silent orphan row.
func (s *Service) CreateItem(ctx context.Context, moduleID string, req CreateItemRequest) (ModuleItem, error) {
	if moduleID == "" || req.Title == "" || req.URL == "" || req.Position < 0 {
		return ModuleItem{}, ErrInvalidArgument
	}
	if _, err := s.repo.Get(ctx, moduleID); err != nil {
		return ModuleItem{}, err
	}

	it := ModuleItem{
		ID:       uuid.NewString(),
		ModuleID: moduleID,
		Title:    req.Title,
		URL:      req.URL,
		Position: req.Position,
	}
	if err := s.repo.CreateItem(ctx, it); err != nil {
		return ModuleItem{}, err
	}
	return it, nil
}

// UpdateItem applies a partial update: only the provided fields change.
func (s *Service) UpdateItem(ctx context.Context, id string, req UpdateItemRequest) (ModuleItem, error) {
	if id == "" {
		return ModuleItem{}, ErrInvalidArgument
	}

	it, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return ModuleItem{}, err
	}
	if req.Title != nil {
		it.Title = *req.Title
	}
	if req.URL != nil {
		it.URL = *req.URL
	}
	if req.Position != nil {
		it.Position = *req.Position
	}
	if it.Title == "" || it.URL == "" || it.Position < 0 {
		return ModuleItem{}, ErrInvalidArgument
	}
	if err := s.repo.UpdateItem(ctx, it); err != nil {
		return ModuleItem{}, err
	}
	return it, nil
}

func (s *Service) DeleteItem(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidArgument
	}
	return s.repo.DeleteItem(ctx, id)
}

// Complete records that the user finished a module. Re-completing is a
// no-op, not an error.
func (s *Service) Complete(ctx context.Context, userEmail, moduleID string) error {
	if userEmail == "" || moduleID == "" {
		return ErrInvalidArgument
	}
	if _, err := s.repo.Get(ctx, moduleID); err != nil {
		return err
	}
	return s.repo.MarkComplete(ctx, Completion{
		UserEmail:   userEmail,
		ModuleID:    moduleID,
		CompletedAt: s.clock().UTC(),
	})
}
