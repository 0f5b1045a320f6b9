package testutil

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/thenoetrevino/rolodex/internal/auth"
	"github.com/thenoetrevino/rolodex/internal/database"
	"github.com/thenoetrevino/rolodex/internal/models"
	"github.com/thenoetrevino/rolodex/internal/types"
)

// SetupTestDB creates an in-memory database with full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	// Every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	// Enable foreign key constraints
	_, err = db.ExecContext(context.Background(), "PRAGMA foreign_keys = ON")
	if err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := database.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db
}

// SetupTestRepo returns a repository over a fresh in-memory database
func SetupTestRepo(t *testing.T) (*sql.DB, *database.Repository) {
	t.Helper()
	db := SetupTestDB(t)
	return db, database.NewRepository(db, database.DialectSQLite)
}

// Session returns a session for userID
func Session(userID string) *auth.Session {
	return auth.NewSession(userID)
}

// CreateTestContact inserts a contact owned by ownerID and returns its ID
func CreateTestContact(t *testing.T, db *sql.DB, ownerID string, c models.Contact) string {
	t.Helper()
	if c.ID == "" {
		c.ID = types.NewID()
	}
	c.OwnerID = ownerID
	if c.Type == "" {
		c.Type = models.ContactCandidate
	}
	repo := database.NewRepository(db, database.DialectSQLite)
	if err := repo.CreateContact(context.Background(), &c); err != nil {
		t.Fatalf("Failed to create test contact: %v", err)
	}
	return c.ID
}

// CreateTestDeal inserts a deal at the end of stage and returns its ID
func CreateTestDeal(t *testing.T, db *sql.DB, ownerID string, stage models.Stage, title string) string {
	t.Helper()
	d := models.Deal{ID: types.NewID(), OwnerID: ownerID, Title: title, Stage: stage}
	repo := database.NewRepository(db, database.DialectSQLite)
	if err := repo.CreateDeal(context.Background(), &d); err != nil {
		t.Fatalf("Failed to create test deal: %v", err)
	}
	return d.ID
}

// Int64 returns a pointer to v
func Int64(v int64) *int64 {
	return &v
}
