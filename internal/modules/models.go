package modules

import "time"

// Module is an ordered learning unit inside a court. OrderIndex is unique
// per court; listings are always returned in ascending order.
type Module struct {
	ID         string    `json:"id"`
	CourtID    string    `json:"court_id"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary,omitempty"`
	OrderIndex int       `json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
}

// ModuleItem is a single piece of material inside a module: a titled link at
// a position. Position is unique per module; listings are returned in
// ascending order.
type ModuleItem struct {
	ID       string `json:"id"`
	ModuleID string `json:"module_id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Position int    `json:"position"`
}

// Completion records that a user finished a module. At most one row per
// (user, module); repeat completions are no-ops.
type Completion struct {
	UserEmail   string    `json:"user_email"`
	ModuleID    string    `json:"module_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// UpdateModuleRequest carries a partial update; nil fields are left as-is.
type UpdateModuleRequest struct {
	Title      *string `json:"title"`
	Summary    *string `json:"summary"`
	OrderIndex *int    `json:"order_index"`
}

// UpdateItemRequest carries a partial item update; nil fields are left as-is.
type UpdateItemRequest struct {
	Title    *string `json:"title"`
	URL      *string `json:"url"`
	Position *int    `json:"position"`
}
