package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is portable between SQLite and Postgres. Identifiers are UUID text,
// money is whole currency units, close dates are YYYY-MM-DD text.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS contacts (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		name TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT 'candidate',
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		company TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		linkedin_url TEXT NOT NULL DEFAULT '',
		current_title TEXT NOT NULL DEFAULT '',
		years_experience INTEGER,
		salary_expectation BIGINT,
		remote_preference TEXT NOT NULL DEFAULT '',
		availability_status TEXT NOT NULL DEFAULT '',
		contract_length TEXT NOT NULL DEFAULT '',
		availability_window TEXT NOT NULL DEFAULT '',
		desired_specialty TEXT NOT NULL DEFAULT '',
		salary_budget_min BIGINT,
		salary_budget_max BIGINT,
		desired_contract_length TEXT NOT NULL DEFAULT '',
		desired_availability TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_contacts_owner_type
		ON contacts(owner_id, type, name)`,
	`CREATE INDEX IF NOT EXISTS idx_contacts_owner_salary
		ON contacts(owner_id, salary_expectation)`,

	`CREATE TABLE IF NOT EXISTS contact_skills (
		contact_id TEXT NOT NULL,
		skill TEXT NOT NULL,
		ordinal INTEGER NOT NULL,
		PRIMARY KEY (contact_id, skill),
		FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_contact_skills_skill
		ON contact_skills(skill)`,

	`CREATE TABLE IF NOT EXISTS deals (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		title TEXT NOT NULL,
		value BIGINT,
		stage TEXT NOT NULL DEFAULT 'Lead',
		position INTEGER NOT NULL DEFAULT 0,
		contact_id TEXT,
		description TEXT NOT NULL DEFAULT '',
		close_date TEXT,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE SET NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_deals_owner_stage
		ON deals(owner_id, stage, position)`,
	`CREATE INDEX IF NOT EXISTS idx_deals_contact
		ON deals(contact_id)`,

	`CREATE TABLE IF NOT EXISTS activities (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		contact_id TEXT NOT NULL,
		type TEXT NOT NULL,
		body TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_contact
		ON activities(contact_id, created_at)`,
}

// RunMigrations creates the database schema if it does not exist yet
func RunMigrations(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
