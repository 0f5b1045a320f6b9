package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/thenoetrevino/rolodex/internal/models"
)

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner is satisfied by both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

// store is the shared base of every repository
type store struct {
	db      *sql.DB
	dialect Dialect
}

// q rebinds a '?' query for the store's dialect
func (s store) q(query string) string {
	return s.dialect.Rebind(query)
}

// withTx executes a function within a database transaction.
// It automatically handles begin, rollback on error, and commit on success.
func withTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// requireAffected turns a zero-row write into models.ErrNotFound. Every write
// is filtered by owner, so a row owned by someone else looks absent.
func requireAffected(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", what, id, models.ErrNotFound)
	}
	return nil
}

// notFound maps sql.ErrNoRows to models.ErrNotFound
func notFound(err error, what, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", what, id, models.ErrNotFound)
	}
	return fmt.Errorf("failed to get %s %s: %w", what, id, err)
}

// now returns the timestamp stored on writes. Truncated to microseconds so
// values survive a Postgres round trip unchanged.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// nullInt64ToPtr converts sql.NullInt64 to *int64.
// Returns nil if the value is not valid.
func nullInt64ToPtr(nv sql.NullInt64) *int64 {
	if nv.Valid {
		val := nv.Int64
		return &val
	}
	return nil
}

// nullInt64ToIntPtr converts sql.NullInt64 to *int
func nullInt64ToIntPtr(nv sql.NullInt64) *int {
	if nv.Valid {
		val := int(nv.Int64)
		return &val
	}
	return nil
}

// nullStringToPtr converts sql.NullString to *string
func nullStringToPtr(ns sql.NullString) *string {
	if ns.Valid {
		val := ns.String
		return &val
	}
	return nil
}

// int64PtrArg converts an optional value into a bind argument
func int64PtrArg(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

// intPtrArg converts an optional value into a bind argument
func intPtrArg(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}

// stringPtrArg converts an optional string into a bind argument, treating
// empty as NULL
func stringPtrArg(v *string) any {
	if v == nil || *v == "" {
		return nil
	}
	return *v
}

// dateArg formats an optional close date for storage
func dateArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(models.DateLayout)
}

// parseDate reads a stored close date. Unparseable values read as unset.
func parseDate(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	t, err := time.Parse(models.DateLayout, ns.String)
	if err != nil {
		slog.Warn("ignoring malformed close date", "value", ns.String, "error", err)
		return nil
	}
	return &t
}
