package activity

import (
	"context"
	"fmt"
	"strings"

	"github.com/thenoetrevino/rolodex/internal/auth"
	"github.com/thenoetrevino/rolodex/internal/cache"
	"github.com/thenoetrevino/rolodex/internal/database"
	"github.com/thenoetrevino/rolodex/internal/models"
	"github.com/thenoetrevino/rolodex/internal/types"
)

// Service defines the activity log operations
type Service interface {
	ListByContact(ctx context.Context, s *auth.Session, contactID string) ([]*models.Activity, error)
	CreateActivity(ctx context.Context, s *auth.Session, req CreateActivityRequest) (*models.Activity, error)
	DeleteActivity(ctx context.Context, s *auth.Session, id, contactID string) error
}

// CreateActivityRequest encapsulates data for logging an activity
type CreateActivityRequest struct {
	ContactID string
	Type      models.ActivityType // empty means note
	Body      string
}

// service implements Service interface
type service struct {
	repo  database.DataStore
	views cache.Invalidator
}

// NewService creates a new activity service
func NewService(repo database.DataStore, views cache.Invalidator) Service {
	return &service{
		repo:  repo,
		views: views,
	}
}

// ListByContact retrieves a contact's activity log, newest first
func (s *service) ListByContact(ctx context.Context, sess *auth.Session, contactID string) ([]*models.Activity, error) {
	ownerID, err := auth.Require(sess)
	if err != nil {
		return nil, err
	}
	contactID = strings.TrimSpace(contactID)
	if contactID == "" {
		return nil, ErrInvalidContactID
	}
	return s.repo.ListActivities(ctx, ownerID, contactID)
}

// CreateActivity appends an entry to a contact's log. The contact must
// belong to the caller.
func (s *service) CreateActivity(ctx context.Context, sess *auth.Session, req CreateActivityRequest) (*models.Activity, error) {
	ownerID, err := auth.Require(sess)
	if err != nil {
		return nil, err
	}

	a := &models.Activity{
		ID:        types.NewID(),
		OwnerID:   ownerID,
		ContactID: strings.TrimSpace(req.ContactID),
		Type:      req.Type,
		Body:      strings.TrimSpace(req.Body),
	}
	if a.Type == "" {
		a.Type = models.ActivityNote
	}
	if a.ContactID == "" {
		return nil, ErrInvalidContactID
	}
	if !a.Type.Valid() {
		return nil, ErrInvalidType
	}
	if a.Body == "" {
		return nil, ErrEmptyBody
	}

	if _, err := s.repo.GetContact(ctx, ownerID, a.ContactID); err != nil {
		return nil, err
	}
	if err := s.repo.CreateActivity(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	s.views.Invalidate(ctx, ownerID, cache.ContactView(a.ContactID))
	return a, nil
}

// DeleteActivity removes an entry from a contact's log
func (s *service) DeleteActivity(ctx context.Context, sess *auth.Session, id, contactID string) error {
	ownerID, err := auth.Require(sess)
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	contactID = strings.TrimSpace(contactID)
	if id == "" {
		return ErrInvalidActivityID
	}
	if contactID == "" {
		return ErrInvalidContactID
	}

	if err := s.repo.DeleteActivity(ctx, ownerID, id, contactID); err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}

	s.views.Invalidate(ctx, ownerID, cache.ContactView(contactID))
	return nil
}
