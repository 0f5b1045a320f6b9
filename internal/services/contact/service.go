package contact

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/thenoetrevino/rolodex/internal/auth"
	"github.com/thenoetrevino/rolodex/internal/cache"
	"github.com/thenoetrevino/rolodex/internal/database"
	"github.com/thenoetrevino/rolodex/internal/models"
	"github.com/thenoetrevino/rolodex/internal/types"
)

var tracer = otel.Tracer("github.com/thenoetrevino/rolodex/internal/services/contact")

// Service defines all contact-related business operations
type Service interface {
	// Read operations
	GetContact(ctx context.Context, s *auth.Session, id string) (*models.Contact, error)
	ListContacts(ctx context.Context, s *auth.Session, filter models.ContactFilter) (*models.ContactPage, error)

	// Write operations
	CreateContact(ctx context.Context, s *auth.Session, in Input) (*models.Contact, error)
	UpdateContact(ctx context.Context, s *auth.Session, id string, in Input) (*models.Contact, error)
	DeleteContact(ctx context.Context, s *auth.Session, id string) error

	// Matching
	MatchCandidates(ctx context.Context, s *auth.Session, clientID string) ([]*models.Contact, error)
	Match(ctx context.Context, s *auth.Session, req MatchRequest) ([]*models.Contact, error)
}

// Input carries every editable contact field. Updates replace the stored
// values with these.
type Input struct {
	Name        string
	Type        models.ContactType // empty means candidate
	Email       string
	Phone       string
	Company     string
	Location    string
	LinkedInURL string

	CurrentTitle       string
	YearsExperience    *int
	Skills             []string
	SalaryExpectation  *int64
	RemotePreference   string
	AvailabilityStatus string
	ContractLength     string
	AvailabilityWindow string

	DesiredSpecialty      string
	SalaryBudgetMin       *int64
	SalaryBudgetMax       *int64
	DesiredContractLength string
	DesiredAvailability   string
}

// InputFrom returns the editable fields of an existing contact, for callers
// that change only some of them
func InputFrom(c *models.Contact) Input {
	return Input{
		Name:                  c.Name,
		Type:                  c.Type,
		Email:                 c.Email,
		Phone:                 c.Phone,
		Company:               c.Company,
		Location:              c.Location,
		LinkedInURL:           c.LinkedInURL,
		CurrentTitle:          c.CurrentTitle,
		YearsExperience:       c.YearsExperience,
		Skills:                append([]string(nil), c.Skills...),
		SalaryExpectation:     c.SalaryExpectation,
		RemotePreference:      c.RemotePreference,
		AvailabilityStatus:    c.AvailabilityStatus,
		ContractLength:        c.ContractLength,
		AvailabilityWindow:    c.AvailabilityWindow,
		DesiredSpecialty:      c.DesiredSpecialty,
		SalaryBudgetMin:       c.SalaryBudgetMin,
		SalaryBudgetMax:       c.SalaryBudgetMax,
		DesiredContractLength: c.DesiredContractLength,
		DesiredAvailability:   c.DesiredAvailability,
	}
}

// MatchRequest is a free-form candidate search
type MatchRequest struct {
	Specialty string
	BudgetMin *int64
	BudgetMax *int64
	Limit     int
}

// service implements Service interface
type service struct {
	repo  database.DataStore
	views cache.Invalidator
}

// NewService creates a new contact service
func NewService(repo database.DataStore, views cache.Invalidator) Service {
	return &service{
		repo:  repo,
		views: views,
	}
}

// GetContact retrieves a single contact with its skills
func (s *service) GetContact(ctx context.Context, sess *auth.Session, id string) (*models.Contact, error) {
	ownerID, err := auth.Require(sess)
	if err != nil {
		return nil, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidContactID
	}
	return s.repo.GetContact(ctx, ownerID, id)
}

// ListContacts retrieves one page of contacts matching the filter
func (s *service) ListContacts(ctx context.Context, sess *auth.Session, filter models.ContactFilter) (*models.ContactPage, error) {
	ownerID, err := auth.Require(sess)
	if err != nil {
		return nil, err
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, ErrInvalidType
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Page < 0 {
		return nil, ErrInvalidPage
	}
	if filter.Page > models.MaxPage {
		return nil, ErrPageTooLarge
	}
	if filter.PageSize <= 0 {
		filter.PageSize = models.DefaultPageSize
	}

	contacts, total, err := s.repo.ListContacts(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	return &models.ContactPage{
		Contacts:   contacts,
		Total:      total,
		Page:       filter.Page,
		TotalPages: (total + filter.PageSize - 1) / filter.PageSize,
	}, nil
}

// CreateContact creates a new contact with validation
func (s *service) CreateContact(ctx context.Context, sess *auth.Session, in Input) (*models.Contact, error) {
	ownerID, err := auth.Require(sess)
	if err != nil {
		return nil, err
	}

	c, err := build(in)
	if err != nil {
		return nil, err
	}
	c.ID = types.NewID()
	c.OwnerID = ownerID

	if err := s.repo.CreateContact(ctx, c); err != nil {
		slog.Error("failed to create contact", "owner", ownerID, "error", err)
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	s.invalidate(ctx, ownerID, c.ID)
	return c, nil
}

// UpdateContact replaces the editable fields of an existing contact
func (s *service) UpdateContact(ctx context.Context, sess *auth.Session, id string, in Input) (*models.Contact, error) {
	ownerID, err := auth.Require(sess)
	if err != nil {
		return nil, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidContactID
	}

	existing, err := s.repo.GetContact(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	c, err := build(in)
	if err != nil {
		return nil, err
	}
	c.ID = existing.ID
	c.OwnerID = ownerID
	c.CreatedAt = existing.CreatedAt

	if err := s.repo.UpdateContact(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	// The contact name shows on deal cards
	s.invalidate(ctx, ownerID, c.ID, cache.ViewDeals)
	return c, nil
}

// DeleteContact removes a contact and its activities and unlinks its deals
func (s *service) DeleteContact(ctx context.Context, sess *auth.Session, id string) error {
	ownerID, err := auth.Require(sess)
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidContactID
	}

	if err := s.repo.DeleteContact(ctx, ownerID, id); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	s.invalidate(ctx, ownerID, id, cache.ViewDeals)
	return nil
}

// MatchCandidates suggests candidates for a client from the client's
// desired specialty and salary budget. A client without a desired specialty
// has no matches.
func (s *service) MatchCandidates(ctx context.Context, sess *auth.Session, clientID string) ([]*models.Contact, error) {
	ownerID, err := auth.Require(sess)
	if err != nil {
		return nil, err
	}
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, ErrInvalidContactID
	}

	client, err := s.repo.GetContact(ctx, ownerID, clientID)
	if err != nil {
		return nil, err
	}

	return s.match(ctx, ownerID, models.MatchCriteria{
		Specialty: client.DesiredSpecialty,
		BudgetMin: client.SalaryBudgetMin,
		BudgetMax: client.SalaryBudgetMax,
	})
}

// Match runs a free-form candidate search
func (s *service) Match(ctx context.Context, sess *auth.Session, req MatchRequest) ([]*models.Contact, error) {
	ownerID, err := auth.Require(sess)
	if err != nil {
		return nil, err
	}
	if (req.BudgetMin != nil && *req.BudgetMin < 0) || (req.BudgetMax != nil && *req.BudgetMax < 0) {
		return nil, ErrNegativeNumber
	}
	if req.BudgetMin != nil && req.BudgetMax != nil && *req.BudgetMin > *req.BudgetMax {
		return nil, ErrBudgetRange
	}

	return s.match(ctx, ownerID, models.MatchCriteria{
		Specialty: req.Specialty,
		BudgetMin: req.BudgetMin,
		BudgetMax: req.BudgetMax,
		Limit:     req.Limit,
	})
}

func (s *service) match(ctx context.Context, ownerID string, criteria models.MatchCriteria) ([]*models.Contact, error) {
	criteria.Specialty = strings.TrimSpace(criteria.Specialty)
	if criteria.Specialty == "" {
		return []*models.Contact{}, nil
	}
	if criteria.Limit <= 0 || criteria.Limit > models.DefaultMatchLimit {
		criteria.Limit = models.DefaultMatchLimit
	}

	ctx, span := tracer.Start(ctx, "contact.MatchCandidates", trace.WithAttributes(
		attribute.String("match.specialty", criteria.Specialty),
	))
	defer span.End()

	candidates, err := s.repo.MatchCandidates(ctx, ownerID, criteria)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to match candidates: %w", err)
	}
	span.SetAttributes(attribute.Int("match.results", len(candidates)))
	return candidates, nil
}

func (s *service) invalidate(ctx context.Context, ownerID, id string, extra ...string) {
	views := append([]string{
		cache.ViewContacts,
		cache.ContactView(id),
		cache.ViewCandidates,
		cache.ViewClients,
		cache.ViewDashboard,
	}, extra...)
	s.views.Invalidate(ctx, ownerID, views...)
}

// build validates and normalizes input into a contact row
func build(in Input) (*models.Contact, error) {
	c := &models.Contact{
		Name:                  strings.TrimSpace(in.Name),
		Type:                  in.Type,
		Email:                 strings.TrimSpace(in.Email),
		Phone:                 strings.TrimSpace(in.Phone),
		Company:               strings.TrimSpace(in.Company),
		Location:              strings.TrimSpace(in.Location),
		LinkedInURL:           strings.TrimSpace(in.LinkedInURL),
		CurrentTitle:          strings.TrimSpace(in.CurrentTitle),
		YearsExperience:       in.YearsExperience,
		Skills:                normalizeSkills(in.Skills),
		SalaryExpectation:     in.SalaryExpectation,
		RemotePreference:      strings.TrimSpace(in.RemotePreference),
		AvailabilityStatus:    strings.TrimSpace(in.AvailabilityStatus),
		ContractLength:        strings.TrimSpace(in.ContractLength),
		AvailabilityWindow:    strings.TrimSpace(in.AvailabilityWindow),
		DesiredSpecialty:      strings.TrimSpace(in.DesiredSpecialty),
		SalaryBudgetMin:       in.SalaryBudgetMin,
		SalaryBudgetMax:       in.SalaryBudgetMax,
		DesiredContractLength: strings.TrimSpace(in.DesiredContractLength),
		DesiredAvailability:   strings.TrimSpace(in.DesiredAvailability),
	}
	if c.Type == "" {
		c.Type = models.ContactCandidate
	}

	if c.Name == "" {
		return nil, ErrEmptyName
	}
	if utf8.RuneCountInString(c.Name) > models.MaxTitleLength {
		return nil, ErrNameTooLong
	}
	if !c.Type.Valid() {
		return nil, ErrInvalidType
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return nil, ErrInvalidEmail
	}
	if c.YearsExperience != nil && *c.YearsExperience < 0 {
		return nil, ErrNegativeNumber
	}
	for _, v := range []*int64{c.SalaryExpectation, c.SalaryBudgetMin, c.SalaryBudgetMax} {
		if v != nil && *v < 0 {
			return nil, ErrNegativeNumber
		}
	}
	if c.SalaryBudgetMin != nil && c.SalaryBudgetMax != nil && *c.SalaryBudgetMin > *c.SalaryBudgetMax {
		return nil, ErrBudgetRange
	}
	switch c.RemotePreference {
	case "", models.RemoteRemote, models.RemoteHybrid, models.RemoteOnsite, models.RemoteFlexible:
	default:
		return nil, ErrInvalidRemote
	}
	switch c.AvailabilityStatus {
	case "", models.AvailabilityActivelyLooking, models.AvailabilityOpen, models.AvailabilityNotLooking:
	default:
		return nil, ErrInvalidAvailability
	}

	return c, nil
}

// normalizeSkills trims entries and drops blanks and repeats, keeping order
func normalizeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" || seen[skill] {
			continue
		}
		seen[skill] = true
		out = append(out, skill)
	}
	return out
}
