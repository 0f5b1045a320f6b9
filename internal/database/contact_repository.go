package database

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"

	"github.com/thenoetrevino/rolodex/internal/models"
)

// ContactRepo handles all contact-related database operations
type ContactRepo struct {
	store
}

const contactColumns = `id, owner_id, name, type, email, phone, company, location, linkedin_url,
	current_title, years_experience, salary_expectation, remote_preference, availability_status,
	contract_length, availability_window, desired_specialty, salary_budget_min, salary_budget_max,
	desired_contract_length, desired_availability, created_at, updated_at`

// ============================================================================
// Contact Operations
// ============================================================================

// CreateContact inserts a contact together with its skills
func (r *ContactRepo) CreateContact(ctx context.Context, c *models.Contact) error {
	ts := now()
	c.CreatedAt = ts
	c.UpdatedAt = ts

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, r.q(`INSERT INTO contacts (`+contactColumns+`)
			VALUES (`+placeholders(23)+`)`),
			c.ID, c.OwnerID, c.Name, string(c.Type), c.Email, c.Phone, c.Company, c.Location, c.LinkedInURL,
			c.CurrentTitle, intPtrArg(c.YearsExperience), int64PtrArg(c.SalaryExpectation),
			c.RemotePreference, c.AvailabilityStatus, c.ContractLength, c.AvailabilityWindow,
			c.DesiredSpecialty, int64PtrArg(c.SalaryBudgetMin), int64PtrArg(c.SalaryBudgetMax),
			c.DesiredContractLength, c.DesiredAvailability, c.CreatedAt, c.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert contact: %w", err)
		}
		return r.writeSkills(ctx, tx, c.ID, c.Skills)
	})
}

// GetContact retrieves a single contact owned by ownerID, skills included
func (r *ContactRepo) GetContact(ctx context.Context, ownerID, id string) (*models.Contact, error) {
	row := r.db.QueryRowContext(ctx,
		r.q(`SELECT `+contactColumns+` FROM contacts WHERE owner_id = ? AND id = ?`),
		ownerID, id,
	)
	c, err := scanContact(row)
	if err != nil {
		return nil, notFound(err, "contact", id)
	}
	if err := r.loadSkills(ctx, []*models.Contact{c}); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateContact overwrites every editable field of c and replaces its skills
func (r *ContactRepo) UpdateContact(ctx context.Context, c *models.Contact) error {
	c.UpdatedAt = now()

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, r.q(`UPDATE contacts SET
			name = ?, type = ?, email = ?, phone = ?, company = ?, location = ?, linkedin_url = ?,
			current_title = ?, years_experience = ?, salary_expectation = ?, remote_preference = ?,
			availability_status = ?, contract_length = ?, availability_window = ?,
			desired_specialty = ?, salary_budget_min = ?, salary_budget_max = ?,
			desired_contract_length = ?, desired_availability = ?, updated_at = ?
			WHERE owner_id = ? AND id = ?`),
			c.Name, string(c.Type), c.Email, c.Phone, c.Company, c.Location, c.LinkedInURL,
			c.CurrentTitle, intPtrArg(c.YearsExperience), int64PtrArg(c.SalaryExpectation), c.RemotePreference,
			c.AvailabilityStatus, c.ContractLength, c.AvailabilityWindow,
			c.DesiredSpecialty, int64PtrArg(c.SalaryBudgetMin), int64PtrArg(c.SalaryBudgetMax),
			c.DesiredContractLength, c.DesiredAvailability, c.UpdatedAt,
			c.OwnerID, c.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update contact: %w", err)
		}
		if err := requireAffected(res, "contact", c.ID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, r.q(`DELETE FROM contact_skills WHERE contact_id = ?`), c.ID); err != nil {
			return fmt.Errorf("failed to clear skills: %w", err)
		}
		return r.writeSkills(ctx, tx, c.ID, c.Skills)
	})
}

// DeleteContact removes a contact and its activities and unlinks its deals.
// The foreign keys say the same, but the explicit statements keep the
// behavior when a connection runs without foreign key enforcement.
func (r *ContactRepo) DeleteContact(ctx context.Context, ownerID, id string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx,
			r.q(`SELECT 1 FROM contacts WHERE owner_id = ? AND id = ?`), ownerID, id,
		).Scan(&exists)
		if err != nil {
			return notFound(err, "contact", id)
		}

		steps := []struct {
			what  string
			query string
		}{
			{"activities", `DELETE FROM activities WHERE owner_id = ? AND contact_id = ?`},
			{"deals", `UPDATE deals SET contact_id = NULL WHERE owner_id = ? AND contact_id = ?`},
		}
		for _, step := range steps {
			if _, err := tx.ExecContext(ctx, r.q(step.query), ownerID, id); err != nil {
				return fmt.Errorf("failed to detach %s: %w", step.what, err)
			}
		}

		if _, err := tx.ExecContext(ctx, r.q(`DELETE FROM contact_skills WHERE contact_id = ?`), id); err != nil {
			return fmt.Errorf("failed to delete skills: %w", err)
		}
		res, err := tx.ExecContext(ctx, r.q(`DELETE FROM contacts WHERE owner_id = ? AND id = ?`), ownerID, id)
		if err != nil {
			return fmt.Errorf("failed to delete contact: %w", err)
		}
		return requireAffected(res, "contact", id)
	})
}

// ListContacts returns one page of the owner's contacts plus the total
// number of rows matching the filter. Typed listings sort by name, the
// unfiltered listing shows newest first.
func (r *ContactRepo) ListContacts(ctx context.Context, ownerID string, f models.ContactFilter) ([]*models.Contact, int, error) {
	where := []string{"owner_id = ?"}
	args := []any{ownerID}

	if f.Type != "" {
		where = append(where, "type = ?")
		args = append(args, string(f.Type))
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		where = append(where, `(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\' OR LOWER(company) LIKE ? ESCAPE '\')`)
		p := likePattern(search)
		args = append(args, p, p, p)
	}
	if specialty := strings.TrimSpace(f.Specialty); specialty != "" {
		where = append(where, hasSkill)
		args = append(args, specialty)
	}
	clause := " WHERE " + strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx, r.q(`SELECT COUNT(*) FROM contacts`+clause), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	order := " ORDER BY created_at DESC, id"
	if f.Type != "" {
		order = " ORDER BY name, id"
	}

	pageSize := f.PageSize
	if pageSize <= 0 {
		pageSize = models.DefaultPageSize
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	if page-1 > math.MaxInt/pageSize {
		// No offset that large can hold rows
		return []*models.Contact{}, total, nil
	}

	query := `SELECT ` + contactColumns + ` FROM contacts` + clause + order + ` LIMIT ? OFFSET ?`
	contacts, err := r.queryContacts(ctx, query, append(args, pageSize, (page-1)*pageSize)...)
	if err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

// MatchCandidates returns candidates that list the specialty among their
// skills, are not marked as not looking, and whose salary expectation falls
// inside the optional inclusive budget. Cheapest first, then by name.
func (r *ContactRepo) MatchCandidates(ctx context.Context, ownerID string, m models.MatchCriteria) ([]*models.Contact, error) {
	limit := m.Limit
	if limit <= 0 {
		limit = models.DefaultMatchLimit
	}
	var floor int64
	if m.BudgetMin != nil {
		floor = *m.BudgetMin
	}

	query := `SELECT ` + contactColumns + ` FROM contacts
		WHERE owner_id = ? AND type = ? AND ` + hasSkill + `
		AND availability_status <> ?
		AND salary_expectation IS NOT NULL AND salary_expectation >= ?`
	args := []any{ownerID, string(models.ContactCandidate), m.Specialty, models.AvailabilityNotLooking, floor}
	if m.BudgetMax != nil {
		query += ` AND salary_expectation <= ?`
		args = append(args, *m.BudgetMax)
	}
	query += ` ORDER BY salary_expectation, name, id LIMIT ?`
	args = append(args, limit)

	return r.queryContacts(ctx, query, args...)
}

// CountContacts returns how many contacts the owner has
func (r *ContactRepo) CountContacts(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, r.q(`SELECT COUNT(*) FROM contacts WHERE owner_id = ?`), ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count contacts: %w", err)
	}
	return count, nil
}

// hasSkill is the skills containment predicate, bound to one skill argument
const hasSkill = `EXISTS (SELECT 1 FROM contact_skills s WHERE s.contact_id = contacts.id AND s.skill = ?)`

func (r *ContactRepo) writeSkills(ctx context.Context, tx *sql.Tx, contactID string, skills []string) error {
	for i, skill := range skills {
		_, err := tx.ExecContext(ctx,
			r.q(`INSERT INTO contact_skills (contact_id, skill, ordinal) VALUES (?, ?, ?)`),
			contactID, skill, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert skill %q: %w", skill, err)
		}
	}
	return nil
}

// loadSkills fills in Skills for every contact with a single query
func (r *ContactRepo) loadSkills(ctx context.Context, contacts []*models.Contact) error {
	if len(contacts) == 0 {
		return nil
	}

	byID := make(map[string]*models.Contact, len(contacts))
	args := make([]any, 0, len(contacts))
	for _, c := range contacts {
		byID[c.ID] = c
		args = append(args, c.ID)
	}

	rows, err := r.db.QueryContext(ctx,
		r.q(`SELECT contact_id, skill FROM contact_skills WHERE contact_id IN (`+placeholders(len(args))+`)
		ORDER BY contact_id, ordinal`),
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to query skills: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var contactID, skill string
		if err := rows.Scan(&contactID, &skill); err != nil {
			return fmt.Errorf("failed to scan skill: %w", err)
		}
		if c, ok := byID[contactID]; ok {
			c.Skills = append(c.Skills, skill)
		}
	}
	return rows.Err()
}

func (r *ContactRepo) queryContacts(ctx context.Context, query string, args ...any) ([]*models.Contact, error) {
	rows, err := r.db.QueryContext(ctx, r.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}

	contacts := make([]*models.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	// The skills query needs the connection, so the rows must be closed first
	if err := rows.Close(); err != nil {
		return nil, err
	}

	if err := r.loadSkills(ctx, contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

func scanContact(s scanner) (*models.Contact, error) {
	var (
		c         models.Contact
		kind      string
		years     sql.NullInt64
		salary    sql.NullInt64
		budgetMin sql.NullInt64
		budgetMax sql.NullInt64
	)
	err := s.Scan(&c.ID, &c.OwnerID, &c.Name, &kind, &c.Email, &c.Phone, &c.Company, &c.Location, &c.LinkedInURL,
		&c.CurrentTitle, &years, &salary, &c.RemotePreference, &c.AvailabilityStatus,
		&c.ContractLength, &c.AvailabilityWindow, &c.DesiredSpecialty, &budgetMin, &budgetMax,
		&c.DesiredContractLength, &c.DesiredAvailability, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Type = models.ContactType(kind)
	c.YearsExperience = nullInt64ToIntPtr(years)
	c.SalaryExpectation = nullInt64ToPtr(salary)
	c.SalaryBudgetMin = nullInt64ToPtr(budgetMin)
	c.SalaryBudgetMax = nullInt64ToPtr(budgetMax)
	return &c, nil
}
