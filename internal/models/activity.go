package models

import "time"

// ActivityType is the kind of interaction recorded against a contact
type ActivityType string

const (
	ActivityNote  ActivityType = "note"
	ActivityCall  ActivityType = "call"
	ActivityEmail ActivityType = "email"
)

// Valid reports whether t is a known activity type
func (t ActivityType) Valid() bool {
	return t == ActivityNote || t == ActivityCall || t == ActivityEmail
}

// Activity is an append-only log entry on a contact
type Activity struct {
	ID        string       `json:"id"`
	OwnerID   string       `json:"owner_id"`
	ContactID string       `json:"contact_id"`
	Type      ActivityType `json:"type"`
	Body      string       `json:"body"`
	CreatedAt time.Time    `json:"created_at"`
}

// Dashboard holds the headline numbers for a user's pipeline
type Dashboard struct {
	TotalContacts int           `json:"total_contacts"`
	TotalDeals    int           `json:"total_deals"`
	OpenDeals     int           `json:"open_deals"`
	PipelineValue int64         `json:"pipeline_value"`
	DealsByStage  map[Stage]int `json:"deals_by_stage"`
}

// GetID returns the activity id
func (a *Activity) GetID() string { return a.ID }
