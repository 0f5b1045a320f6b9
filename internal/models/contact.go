package models

import "time"

// ContactType distinguishes people we place from companies that hire
type ContactType string

const (
	ContactCandidate ContactType = "candidate"
	ContactClient    ContactType = "client"
)

// Valid reports whether t is a known contact type
func (t ContactType) Valid() bool {
	return t == ContactCandidate || t == ContactClient
}

// Availability values for candidates
const (
	AvailabilityActivelyLooking = "actively_looking"
	AvailabilityOpen            = "open"
	AvailabilityNotLooking      = "not_looking"
)

// Remote preference values for candidates
const (
	RemoteRemote   = "remote"
	RemoteHybrid   = "hybrid"
	RemoteOnsite   = "onsite"
	RemoteFlexible = "flexible"
)

// Contact is a candidate or a client. Candidate and client attributes share
// one row; the ones that do not apply to the contact's type stay empty.
type Contact struct {
	ID          string      `json:"id"`
	OwnerID     string      `json:"owner_id"`
	Name        string      `json:"name"`
	Type        ContactType `json:"type"`
	Email       string      `json:"email,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	Company     string      `json:"company,omitempty"`
	Location    string      `json:"location,omitempty"`
	LinkedInURL string      `json:"linkedin_url,omitempty"`

	// Candidate profile
	CurrentTitle       string   `json:"current_title,omitempty"`
	YearsExperience    *int     `json:"years_experience,omitempty"`
	Skills             []string `json:"skills,omitempty"`
	SalaryExpectation  *int64   `json:"salary_expectation,omitempty"`
	RemotePreference   string   `json:"remote_preference,omitempty"`
	AvailabilityStatus string   `json:"availability_status,omitempty"`
	ContractLength     string   `json:"contract_length,omitempty"`
	AvailabilityWindow string   `json:"availability_window,omitempty"`

	// Client needs
	DesiredSpecialty      string `json:"desired_specialty,omitempty"`
	SalaryBudgetMin       *int64 `json:"salary_budget_min,omitempty"`
	SalaryBudgetMax       *int64 `json:"salary_budget_max,omitempty"`
	DesiredContractLength string `json:"desired_contract_length,omitempty"`
	DesiredAvailability   string `json:"desired_availability,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsCandidate reports whether the contact is a candidate
func (c *Contact) IsCandidate() bool {
	return c.Type == ContactCandidate
}

// ContactFilter narrows a contact listing
type ContactFilter struct {
	Type      ContactType // empty means all types
	Search    string      // substring of name, email or company
	Specialty string      // skills must contain this value
	Page      int         // 1-based
	PageSize  int
}

// ContactPage is one page of a contact listing
type ContactPage struct {
	Contacts   []*Contact `json:"contacts"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	TotalPages int        `json:"total_pages"`
}

// MatchCriteria describes what a client is looking for
type MatchCriteria struct {
	Specialty string
	BudgetMin *int64
	BudgetMax *int64
	Limit     int
}

// GetID returns the contact id
func (c *Contact) GetID() string { return c.ID }
