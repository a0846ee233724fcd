package modules

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var (
	ErrNotFound      = errors.New("modules: not found")
	ErrOrderTaken    = errors.New("modules: order index already taken")
	ErrPositionTaken = errors.New("modules: item position already taken")
)

// Repository abstracts module, item and completion storage. Implementations
// must enforce the (court_id, order_index) and (module_id, position)
// uniqueness constraints so concurrent creates cannot produce two entries at
// the same slot.
type Repository interface {
	ListByCourt(ctx context.Context, courtID string) ([]Module, error)
	Get(ctx context.Context, id string) (Module, error)
	Create(ctx context.Context, m Module) error
	Update(ctx context.Context, m Module) error
	Delete(ctx context.Context, id string) error

	ListItems(ctx context.Context, moduleID string) ([]ModuleItem, error)
	GetItem(ctx context.Context, id string) (ModuleItem, error)
	CreateItem(ctx context.Context, it ModuleItem) error
	UpdateItem(ctx context.Context, it ModuleItem) error
	DeleteItem(ctx context.Context, id string) error

	// MarkComplete is idempotent: recording the same (user, module) twice
	// keeps the first row.
	MarkComplete(ctx context.Context, c Completion) error
}

// MemoryRepo is a simple in-memory module store for tests and early
// development.
type MemoryRepo struct {
	mu sync.Mutex

	modules     map[string]Module     // key: module id
	items       map[string]ModuleItem // key: item id
	completions map[string]Completion // key: user|module
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		modules:     map[string]Module{},
		items:       map[string]ModuleItem{},
		completions: map[string]Completion{},
	}
}

func (r *MemoryRepo) ListByCourt(ctx context.Context, courtID string) ([]Module, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Module, 0)
	for _, m := range r.modules {
		if m.CourtID == courtID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (Module, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.modules[id]
	if !ok {
		return Module{}, ErrNotFound
	}
	return m, nil
}

func (r *MemoryRepo) Create(ctx context.Context, m Module) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.orderTakenLocked(m.CourtID, m.OrderIndex, m.ID) {
		return ErrOrderTaken
	}
	r.modules[m.ID] = m
	return nil
}

func (r *MemoryRepo) Update(ctx context.Context, m Module) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.modules[m.ID]; !ok {
		return ErrNotFound
	}
	if r.orderTakenLocked(m.CourtID, m.OrderIndex, m.ID) {
		return ErrOrderTaken
	}
	r.modules[m.ID] = m
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.modules[id]; !ok {
		return ErrNotFound
	}
	delete(r.modules, id)
	return nil
}

func (r *MemoryRepo) ListItems(ctx context.Context, moduleID string) ([]ModuleItem, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ModuleItem, 0)
	for _, it := range r.items {
		if it.ModuleID == moduleID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *MemoryRepo) GetItem(ctx context.Context, id string) (ModuleItem, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return ModuleItem{}, ErrNotFound
	}
	return it, nil
}

func (r *MemoryRepo) CreateItem(ctx context.Context, it ModuleItem) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.positionTakenLocked(it.ModuleID, it.Position, it.ID) {
		return ErrPositionTaken
	}
	r.items[it.ID] = it
	return nil
}

func (r *MemoryRepo) UpdateItem(ctx context.Context, it ModuleItem) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[it.ID]; !ok {
		return ErrNotFound
	}
	if r.positionTakenLocked(it.ModuleID, it.Position, it.ID) {
		return ErrPositionTaken
	}
	r.items[it.ID] = it
	return nil
}

func (r *MemoryRepo) DeleteItem(ctx context.Context, id string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *MemoryRepo) MarkComplete(ctx context.Context, c Completion) error {
	_ = ctx
	key := c.UserEmail + "|" + c.ModuleID
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.completions[key]; exists {
		return nil
	}
	r.completions[key] = c
	return nil
}

// CompletionCount reports stored completions. Test helper.
func (r *MemoryRepo) CompletionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.completions)
}

func (r *MemoryRepo) orderTakenLocked(courtID string, orderIndex int, excludeID string) bool {
	for _, other := range r.modules {
		if other.ID != excludeID && other.CourtID == courtID && other.OrderIndex == orderIndex {
			return true
		}
	}
	return false
}

func (r *MemoryRepo) positionTakenLocked(moduleID string, position int, excludeID string) bool {
	for _, other := range r.items {
		if other.ID != excludeID && other.ModuleID == moduleID && other.Position == position {
			return true
		}
	}
	return false
}
