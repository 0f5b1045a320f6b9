package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/thenoetrevino/rolodex/internal/models"
)

// DealRepo handles all deal-related database operations
type DealRepo struct {
	store
}

const dealColumns = `d.id, d.owner_id, d.title, d.value, d.stage, d.position, d.contact_id,
	COALESCE(c.name, ''), d.description, d.close_date, d.created_at, d.updated_at`

const dealFrom = ` FROM deals d LEFT JOIN contacts c ON c.id = d.contact_id AND c.owner_id = d.owner_id`

// stageOrder sorts rows by board column order rather than alphabetically
var stageOrder = func() string {
	var b strings.Builder
	b.WriteString("CASE d.stage")
	for i, st := range models.Stages {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", st, i)
	}
	b.WriteString(" ELSE 99 END")
	return b.String()
}()

// ============================================================================
// Deal Operations
// ============================================================================

// CreateDeal inserts a deal at the end of its stage. The stored position and
// timestamps are written back into d.
func (r *DealRepo) CreateDeal(ctx context.Context, d *models.Deal) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		count, err := r.countInStage(ctx, tx, d.OwnerID, d.Stage)
		if err != nil {
			return err
		}

		ts := now()
		d.Position = count
		d.CreatedAt = ts
		d.UpdatedAt = ts

		_, err = tx.ExecContext(ctx, r.q(`INSERT INTO deals
			(id, owner_id, title, value, stage, position, contact_id, description, close_date, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
			d.ID, d.OwnerID, d.Title, int64PtrArg(d.Value), string(d.Stage), d.Position,
			stringPtrArg(d.ContactID), d.Description, dateArg(d.CloseDate), d.CreatedAt, d.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert deal: %w", err)
		}
		return nil
	})
}

// GetDeal retrieves a single deal owned by ownerID
func (r *DealRepo) GetDeal(ctx context.Context, ownerID, id string) (*models.Deal, error) {
	row := r.db.QueryRowContext(ctx,
		r.q(`SELECT `+dealColumns+dealFrom+` WHERE d.owner_id = ? AND d.id = ?`),
		ownerID, id,
	)
	d, err := scanDeal(row)
	if err != nil {
		return nil, notFound(err, "deal", id)
	}
	return d, nil
}

// ListDeals returns the owner's deals in board order (stage, then position).
// A non-empty search keeps deals whose title contains it, ignoring case.
func (r *DealRepo) ListDeals(ctx context.Context, ownerID, search string) ([]*models.Deal, error) {
	query := `SELECT ` + dealColumns + dealFrom + ` WHERE d.owner_id = ?`
	args := []any{ownerID}
	if search = strings.TrimSpace(search); search != "" {
		query += ` AND LOWER(d.title) LIKE ? ESCAPE '\'`
		args = append(args, likePattern(search))
	}
	query += ` ORDER BY ` + stageOrder + `, d.position, d.created_at`

	return r.queryDeals(ctx, query, args...)
}

// ListDealsByContact returns the deals linked to a contact, newest first
func (r *DealRepo) ListDealsByContact(ctx context.Context, ownerID, contactID string) ([]*models.Deal, error) {
	return r.queryDeals(ctx,
		`SELECT `+dealColumns+dealFrom+` WHERE d.owner_id = ? AND d.contact_id = ?
		ORDER BY d.created_at DESC, d.id`,
		ownerID, contactID,
	)
}

// UpdateDeal writes every editable field of d. When the stored stage differs
// from d.Stage the deal moves to the end of its new stage.
func (r *DealRepo) UpdateDeal(ctx context.Context, d *models.Deal) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var current string
		var position int
		err := tx.QueryRowContext(ctx,
			r.q(`SELECT stage, position FROM deals WHERE owner_id = ? AND id = ?`),
			d.OwnerID, d.ID,
		).Scan(&current, &position)
		if err != nil {
			return notFound(err, "deal", d.ID)
		}

		if models.Stage(current) != d.Stage {
			position, err = r.countInStage(ctx, tx, d.OwnerID, d.Stage)
			if err != nil {
				return err
			}
		}

		d.Position = position
		d.UpdatedAt = now()
		res, err := tx.ExecContext(ctx, r.q(`UPDATE deals SET
			title = ?, value = ?, stage = ?, position = ?, contact_id = ?,
			description = ?, close_date = ?, updated_at = ?
			WHERE owner_id = ? AND id = ?`),
			d.Title, int64PtrArg(d.Value), string(d.Stage), d.Position, stringPtrArg(d.ContactID),
			d.Description, dateArg(d.CloseDate), d.UpdatedAt,
			d.OwnerID, d.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update deal: %w", err)
		}
		return requireAffected(res, "deal", d.ID)
	})
}

// DeleteDeal removes a deal. The remaining positions in its stage are left
// as they are; the board renumbers on its next reorder.
func (r *DealRepo) DeleteDeal(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx,
		r.q(`DELETE FROM deals WHERE owner_id = ? AND id = ?`),
		ownerID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete deal: %w", err)
	}
	return requireAffected(res, "deal", id)
}

// UpdateDealPosition writes the stage and position of one deal
func (r *DealRepo) UpdateDealPosition(ctx context.Context, ownerID string, u models.PositionUpdate) error {
	return r.updatePosition(ctx, r.db, ownerID, u)
}

// UpdateDealPositionsTx writes a whole reorder batch in one transaction.
// Any failure rolls back every row of the batch.
func (r *DealRepo) UpdateDealPositionsTx(ctx context.Context, ownerID string, updates []models.PositionUpdate) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, u := range updates {
			if err := r.updatePosition(ctx, tx, ownerID, u); err != nil {
				return err
			}
		}
		return nil
	})
}

// CountDealsInStage returns how many deals the owner has in a stage
func (r *DealRepo) CountDealsInStage(ctx context.Context, ownerID string, stage models.Stage) (int, error) {
	return r.countInStage(ctx, r.db, ownerID, stage)
}

// DealStats returns the deal count and summed value per stage. Null values
// count as zero.
func (r *DealRepo) DealStats(ctx context.Context, ownerID string) (map[models.Stage]int, map[models.Stage]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		r.q(`SELECT stage, COUNT(*), COALESCE(SUM(value), 0) FROM deals WHERE owner_id = ? GROUP BY stage`),
		ownerID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query deal stats: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.Stage]int)
	values := make(map[models.Stage]int64)
	for rows.Next() {
		var stage string
		var count int
		var value int64
		if err := rows.Scan(&stage, &count, &value); err != nil {
			return nil, nil, fmt.Errorf("failed to scan deal stats: %w", err)
		}
		counts[models.Stage(stage)] = count
		values[models.Stage(stage)] = value
	}
	return counts, values, rows.Err()
}

func (r *DealRepo) updatePosition(ctx context.Context, q querier, ownerID string, u models.PositionUpdate) error {
	res, err := q.ExecContext(ctx,
		r.q(`UPDATE deals SET stage = ?, position = ?, updated_at = ? WHERE id = ? AND owner_id = ?`),
		string(u.Stage), u.Position, now(), u.ID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update position of deal %s: %w", u.ID, err)
	}
	return requireAffected(res, "deal", u.ID)
}

func (r *DealRepo) countInStage(ctx context.Context, q querier, ownerID string, stage models.Stage) (int, error) {
	var count int
	err := q.QueryRowContext(ctx,
		r.q(`SELECT COUNT(*) FROM deals WHERE owner_id = ? AND stage = ?`),
		ownerID, string(stage),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count deals in stage %s: %w", stage, err)
	}
	return count, nil
}

func (r *DealRepo) queryDeals(ctx context.Context, query string, args ...any) ([]*models.Deal, error) {
	rows, err := r.db.QueryContext(ctx, r.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query deals: %w", err)
	}
	defer rows.Close()

	deals := make([]*models.Deal, 0)
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deal: %w", err)
		}
		deals = append(deals, d)
	}
	return deals, rows.Err()
}

func scanDeal(s scanner) (*models.Deal, error) {
	var (
		d         models.Deal
		stage     string
		value     sql.NullInt64
		contactID sql.NullString
		closeDate sql.NullString
	)
	err := s.Scan(&d.ID, &d.OwnerID, &d.Title, &value, &stage, &d.Position, &contactID,
		&d.ContactName, &d.Description, &closeDate, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	d.Stage = models.Stage(stage)
	d.Value = nullInt64ToPtr(value)
	d.ContactID = nullStringToPtr(contactID)
	d.CloseDate = parseDate(closeDate)
	return &d, nil
}

// likePattern builds a case-insensitive substring pattern, escaping LIKE
// metacharacters in the user's input
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}
