package database

import (
	"context"
	"database/sql"

	"github.com/thenoetrevino/rolodex/internal/models"
)

// DataStore defines the unified interface for all data operations needed by
// the services. Every call is scoped to the owning user.
type DataStore interface {
	// Deals
	CreateDeal(ctx context.Context, d *models.Deal) error
	GetDeal(ctx context.Context, ownerID, id string) (*models.Deal, error)
	ListDeals(ctx context.Context, ownerID, search string) ([]*models.Deal, error)
	ListDealsByContact(ctx context.Context, ownerID, contactID string) ([]*models.Deal, error)
	UpdateDeal(ctx context.Context, d *models.Deal) error
	DeleteDeal(ctx context.Context, ownerID, id string) error
	UpdateDealPosition(ctx context.Context, ownerID string, u models.PositionUpdate) error
	UpdateDealPositionsTx(ctx context.Context, ownerID string, updates []models.PositionUpdate) error
	CountDealsInStage(ctx context.Context, ownerID string, stage models.Stage) (int, error)
	DealStats(ctx context.Context, ownerID string) (map[models.Stage]int, map[models.Stage]int64, error)

	// Contacts
	CreateContact(ctx context.Context, c *models.Contact) error
	GetContact(ctx context.Context, ownerID, id string) (*models.Contact, error)
	UpdateContact(ctx context.Context, c *models.Contact) error
	DeleteContact(ctx context.Context, ownerID, id string) error
	ListContacts(ctx context.Context, ownerID string, f models.ContactFilter) ([]*models.Contact, int, error)
	MatchCandidates(ctx context.Context, ownerID string, m models.MatchCriteria) ([]*models.Contact, error)
	CountContacts(ctx context.Context, ownerID string) (int, error)

	// Activities
	CreateActivity(ctx context.Context, a *models.Activity) error
	ListActivities(ctx context.Context, ownerID, contactID string) ([]*models.Activity, error)
	DeleteActivity(ctx context.Context, ownerID, id, contactID string) error
}

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*DealRepo
	*ContactRepo
	*ActivityRepo
}

var _ DataStore = (*Repository)(nil)

// NewRepository creates a new Repository wrapping the given connection
func NewRepository(db *sql.DB, dialect Dialect) *Repository {
	base := store{db: db, dialect: dialect}
	return &Repository{
		DealRepo:     &DealRepo{store: base},
		ContactRepo:  &ContactRepo{store: base},
		ActivityRepo: &ActivityRepo{store: base},
	}
}
