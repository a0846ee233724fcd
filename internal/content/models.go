package content

import "time"

// Court is a curated learning space. The public explore surface lists these.
type Court struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Summary   string    `json:"summary"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// WeeklyWinner is the spotlighted court for the current week.
type WeeklyWinner struct {
	CourtID   string `json:"court_id"`
	Name      string `json:"name"`
	WeekStart string `json:"week_start"`
	WeekEnd   string `json:"week_end"`
	Reason    string `json:"reason"`
}

type Badge struct {
	Code        string `json:"code"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// LearnItem backs the public learn-more page.
type LearnItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	MediaType   string `json:"mediaType"`
	MediaURL    string `json:"mediaUrl"`
}
