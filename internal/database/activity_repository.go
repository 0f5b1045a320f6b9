package database

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/rolodex/internal/models"
)

// ActivityRepo handles the per-contact activity log
type ActivityRepo struct {
	store
}

// CreateActivity appends an entry to a contact's log
func (r *ActivityRepo) CreateActivity(ctx context.Context, a *models.Activity) error {
	a.CreatedAt = now()
	_, err := r.db.ExecContext(ctx,
		r.q(`INSERT INTO activities (id, owner_id, contact_id, type, body, created_at) VALUES (?, ?, ?, ?, ?, ?)`),
		a.ID, a.OwnerID, a.ContactID, string(a.Type), a.Body, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

// ListActivities returns a contact's log, newest first
func (r *ActivityRepo) ListActivities(ctx context.Context, ownerID, contactID string) ([]*models.Activity, error) {
	rows, err := r.db.QueryContext(ctx,
		r.q(`SELECT id, owner_id, contact_id, type, body, created_at FROM activities
		WHERE owner_id = ? AND contact_id = ? ORDER BY created_at DESC, id DESC`),
		ownerID, contactID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	activities := make([]*models.Activity, 0)
	for rows.Next() {
		var a models.Activity
		var kind string
		if err := rows.Scan(&a.ID, &a.OwnerID, &a.ContactID, &kind, &a.Body, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		a.Type = models.ActivityType(kind)
		activities = append(activities, &a)
	}
	return activities, rows.Err()
}

// DeleteActivity removes one entry from a contact's log
func (r *ActivityRepo) DeleteActivity(ctx context.Context, ownerID, id, contactID string) error {
	res, err := r.db.ExecContext(ctx,
		r.q(`DELETE FROM activities WHERE owner_id = ? AND id = ? AND contact_id = ?`),
		ownerID, id, contactID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return requireAffected(res, "activity", id)
}
