package database

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/thenoetrevino/rolodex/internal/models"
	"github.com/thenoetrevino/rolodex/internal/types"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates an in-memory database and runs migrations
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}
	if err := RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(setupTestDB(t), DialectSQLite)
}

func createDeal(t *testing.T, repo *Repository, owner string, stage models.Stage, title string) *models.Deal {
	t.Helper()
	d := &models.Deal{ID: types.NewID(), OwnerID: owner, Title: title, Stage: stage}
	if err := repo.CreateDeal(context.Background(), d); err != nil {
		t.Fatalf("Failed to create deal %q: %v", title, err)
	}
	return d
}

func createContact(t *testing.T, repo *Repository, owner string, c models.Contact) *models.Contact {
	t.Helper()
	c.ID = types.NewID()
	c.OwnerID = owner
	if c.Type == "" {
		c.Type = models.ContactCandidate
	}
	if err := repo.CreateContact(context.Background(), &c); err != nil {
		t.Fatalf("Failed to create contact %q: %v", c.Name, err)
	}
	return &c
}

func int64p(v int64) *int64 { return &v }

func titles(deals []*models.Deal) []string {
	out := make([]string, len(deals))
	for i, d := range deals {
		out[i] = d.Title
	}
	return out
}

func names(contacts []*models.Contact) []string {
	out := make([]string, len(contacts))
	for i, c := range contacts {
		out[i] = c.Name
	}
	return out
}
