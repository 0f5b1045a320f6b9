package models

import "time"

// Deal is a single card on the pipeline board
type Deal struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Title       string     `json:"title"`
	Value       *int64     `json:"value"`
	Stage       Stage      `json:"stage"`
	Position    int        `json:"position"`
	ContactID   *string    `json:"contact_id"`
	ContactName string     `json:"contact_name,omitempty"`
	Description string     `json:"description,omitempty"`
	CloseDate   *time.Time `json:"close_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// PositionUpdate is one row of a board reorder batch
type PositionUpdate struct {
	ID       string `json:"id"`
	Stage    Stage  `json:"stage"`
	Position int    `json:"position"`
}

// DateLayout is the wire and storage format of deal close dates
const DateLayout = "2006-01-02"

// GetID returns the deal id
func (d *Deal) GetID() string { return d.ID }
