package deal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/thenoetrevino/rolodex/internal/auth"
	"github.com/thenoetrevino/rolodex/internal/cache"
	"github.com/thenoetrevino/rolodex/internal/database"
	"github.com/thenoetrevino/rolodex/internal/models"
	"github.com/thenoetrevino/rolodex/internal/types"
)

var tracer = otel.Tracer("github.com/thenoetrevino/rolodex/internal/services/deal")

// Service defines all deal-related business operations
type Service interface {
	// Read operations
	ListDeals(ctx context.Context, s *auth.Session, search string) ([]*models.Deal, error)
	Board(ctx context.Context, s *auth.Session) ([]*models.Deal, error)
	ListByContact(ctx context.Context, s *auth.Session, contactID string) ([]*models.Deal, error)
	GetDeal(ctx context.Context, s *auth.Session, id string) (*models.Deal, error)

	// Write operations
	CreateDeal(ctx context.Context, s *auth.Session, req CreateDealRequest) (*models.Deal, error)
	UpdateDeal(ctx context.Context, s *auth.Session, req UpdateDealRequest) (*models.Deal, error)
	DeleteDeal(ctx context.Context, s *auth.Session, id string) error

	// SyncPositions persists the stage and position of each deal in a board
	// reorder batch
	SyncPositions(ctx context.Context, s *auth.Session, updates []models.PositionUpdate) error
}

// CreateDealRequest encapsulates data for creating a deal
type CreateDealRequest struct {
	Title       string
	Value       *int64
	Stage       models.Stage // empty means Lead
	ContactID   *string
	Description string
	CloseDate   *time.Time
}

// UpdateDealRequest encapsulates data for updating a deal. Nil fields are
// left unchanged.
type UpdateDealRequest struct {
	ID             string
	Title          *string
	Value          *int64
	ClearValue     bool
	Stage          *models.Stage
	ContactID      *string // empty string unlinks the contact
	Description    *string
	CloseDate      *time.Time
	ClearCloseDate bool
}

// Options tunes the deal service
type Options struct {
	// AtomicSync runs each position batch in a single transaction
	AtomicSync bool
}

// service implements Service interface
type service struct {
	repo  database.DataStore
	views cache.ViewCache
	opts  Options
}

// NewService creates a new deal service
func NewService(repo database.DataStore, views cache.ViewCache, opts Options) Service {
	return &service{
		repo:  repo,
		views: views,
		opts:  opts,
	}
}

// ListDeals retrieves the caller's deals in board order
func (s *service) ListDeals(ctx context.Context, sess *auth.Session, search string) ([]*models.Deal, error) {
	ownerID, err := auth.Require(sess)
	if err != nil {
		return nil, err
	}
	return s.repo.ListDeals(ctx, ownerID, search)
}

// Board retrieves every deal of the caller through the cached board view
func (s *service) Board(ctx context.Context, sess *auth.Session) ([]*models.Deal, error) {
	ownerID, err := auth.Require(sess)
	if err != nil {
		return nil, err
	}
	return cache.Load(ctx, s.views, ownerID, cache.ViewDeals, func(ctx context.Context) ([]*models.Deal, error) {
		return s.repo.ListDeals(ctx, ownerID, "")
	})
}

// ListByContact retrieves the deals linked to a contact, newest first
func (s *service) ListByContact(ctx context.Context, sess *auth.Session, contactID string) ([]*models.Deal, error) {
	ownerID, err := auth.Require(sess)
	if err != nil {
		return nil, err
	}
	contactID = strings.TrimSpace(contactID)
	if contactID == "" {
		return nil, ErrInvalidContactID
	}
	return s.repo.ListDealsByContact(ctx, ownerID, contactID)
}

// GetDeal retrieves a single deal
func (s *service) GetDeal(ctx context.Context, sess *auth.Session, id string) (*models.Deal, error) {
	ownerID, err := auth.Require(sess)
	if err != nil {
		return nil, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidDealID
	}
	return s.repo.GetDeal(ctx, ownerID, id)
}

// CreateDeal creates a new deal at the end of its stage
func (s *service) CreateDeal(ctx context.Context, sess *auth.Session, req CreateDealRequest) (*models.Deal, error) {
	ownerID, err := auth.Require(sess)
	if err != nil {
		return nil, err
	}

	d := &models.Deal{
		ID:          types.NewID(),
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(req.Title),
		Value:       req.Value,
		Stage:       req.Stage,
		ContactID:   normalizeContact(req.ContactID),
		Description: strings.TrimSpace(req.Description),
		CloseDate:   req.CloseDate,
	}
	if d.Stage == "" {
		d.Stage = models.StageLead
	}
	if err := s.validate(ctx, d); err != nil {
		return nil, err
	}

	if err := s.repo.CreateDeal(ctx, d); err != nil {
		slog.Error("failed to create deal", "owner", ownerID, "error", err)
		return nil, fmt.Errorf("failed to create deal: %w", err)
	}

	s.invalidate(ctx, ownerID, d.ContactID)
	return d, nil
}

// UpdateDeal applies the provided fields to an existing deal. A stage change
// moves the deal to the end of the new stage.
func (s *service) UpdateDeal(ctx context.Context, sess *auth.Session, req UpdateDealRequest) (*models.Deal, error) {
	ownerID, err := auth.Require(sess)
	if err != nil {
		return nil, err
	}
	req.ID = strings.TrimSpace(req.ID)
	if req.ID == "" {
		return nil, ErrInvalidDealID
	}

	d, err := s.repo.GetDeal(ctx, ownerID, req.ID)
	if err != nil {
		return nil, err
	}
	previousContact := d.ContactID

	if req.Title != nil {
		d.Title = strings.TrimSpace(*req.Title)
	}
	if req.ClearValue {
		d.Value = nil
	} else if req.Value != nil {
		d.Value = req.Value
	}
	if req.Stage != nil {
		d.Stage = *req.Stage
	}
	if req.ContactID != nil {
		d.ContactID = normalizeContact(req.ContactID)
	}
	if req.Description != nil {
		d.Description = strings.TrimSpace(*req.Description)
	}
	if req.ClearCloseDate {
		d.CloseDate = nil
	} else if req.CloseDate != nil {
		d.CloseDate = req.CloseDate
	}

	if err := s.validate(ctx, d); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateDeal(ctx, d); err != nil {
		return nil, fmt.Errorf("failed to update deal: %w", err)
	}

	s.invalidate(ctx, ownerID, previousContact, d.ContactID)
	return d, nil
}

// DeleteDeal removes a deal
func (s *service) DeleteDeal(ctx context.Context, sess *auth.Session, id string) error {
	ownerID, err := auth.Require(sess)
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidDealID
	}

	d, err := s.repo.GetDeal(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteDeal(ctx, ownerID, id); err != nil {
		return fmt.Errorf("failed to delete deal: %w", err)
	}

	s.invalidate(ctx, ownerID, d.ContactID)
	return nil
}

// SyncPositions validates the whole batch before writing anything. Rows are
// then written in order, one statement each; the first failure stops the
// batch and earlier rows stay written. With AtomicSync the batch is a single
// transaction instead.
func (s *service) SyncPositions(ctx context.Context, sess *auth.Session, updates []models.PositionUpdate) error {
	ownerID, err := auth.Require(sess)
	if err != nil {
		return err
	}

	ctx, span := tracer.Start(ctx, "deal.SyncPositions", trace.WithAttributes(
		attribute.Int("deals.batch_size", len(updates)),
		attribute.Bool("deals.atomic", s.opts.AtomicSync),
	))
	defer span.End()

	updates, err = validatePositions(updates)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	err = s.writePositions(ctx, ownerID, updates)

	// A failed non-atomic batch may still have written rows, so the views are
	// stale either way
	s.views.Invalidate(ctx, ownerID, cache.ViewDeals, cache.ViewDashboard)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Error("position sync failed", "owner", ownerID, "batch_size", len(updates), "error", err)
		return err
	}
	return nil
}

func (s *service) writePositions(ctx context.Context, ownerID string, updates []models.PositionUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	if s.opts.AtomicSync {
		if err := s.repo.UpdateDealPositionsTx(ctx, ownerID, updates); err != nil {
			return fmt.Errorf("failed to sync positions: %w", err)
		}
		return nil
	}
	for i, u := range updates {
		if err := s.repo.UpdateDealPosition(ctx, ownerID, u); err != nil {
			return fmt.Errorf("failed to sync position %d of %d: %w", i+1, len(updates), err)
		}
	}
	return nil
}

// validatePositions checks every row of a batch before any is written and
// returns a trimmed copy
func validatePositions(updates []models.PositionUpdate) ([]models.PositionUpdate, error) {
	clean := make([]models.PositionUpdate, len(updates))
	for i, u := range updates {
		u.ID = strings.TrimSpace(u.ID)
		if u.ID == "" {
			return nil, ErrInvalidDealID
		}
		if !u.Stage.Valid() {
			return nil, ErrInvalidStage
		}
		if u.Position < 0 {
			return nil, ErrInvalidPosition
		}
		clean[i] = u
	}
	return clean, nil
}

func (s *service) validate(ctx context.Context, d *models.Deal) error {
	if d.Title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(d.Title) > models.MaxTitleLength {
		return ErrTitleTooLong
	}
	if !d.Stage.Valid() {
		return ErrInvalidStage
	}
	if d.Value != nil && *d.Value < 0 {
		return ErrNegativeValue
	}
	if d.ContactID != nil {
		if _, err := s.repo.GetContact(ctx, d.OwnerID, *d.ContactID); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return ErrContactNotFound
			}
			return fmt.Errorf("failed to check contact: %w", err)
		}
	}
	return nil
}

// invalidate marks the board, the dashboard and the detail views of any
// linked contacts stale
func (s *service) invalidate(ctx context.Context, ownerID string, contacts ...*string) {
	views := []string{cache.ViewDeals, cache.ViewDashboard}
	for _, id := range contacts {
		if id != nil {
			views = append(views, cache.ContactView(*id))
		}
	}
	s.views.Invalidate(ctx, ownerID, views...)
}

func normalizeContact(id *string) *string {
	if id == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*id)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
