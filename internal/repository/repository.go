package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/careernest-dev/careernest/backend/internal/config"
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

func (r *Repository) queryContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
}

// EnsureSchema creates the tables on startup. The unique constraint on
// (applicant_email, posting_id) is the authoritative duplicate-application
// guard; the handler's pre-check only exists to return a friendly conflict
// message on the common path.
func (r *Repository) EnsureSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			password_hash TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL CHECK (role IN ('student', 'recruiter')),
			phone TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			education_level TEXT NOT NULL DEFAULT '',
			field_of_study TEXT NOT NULL DEFAULT '',
			graduation_year TEXT NOT NULL DEFAULT '',
			skills TEXT NOT NULL DEFAULT '',
			experience TEXT NOT NULL DEFAULT '',
			bio TEXT NOT NULL DEFAULT '',
			resume_url TEXT NOT NULL DEFAULT '',
			company_name TEXT NOT NULL DEFAULT '',
			company_website TEXT NOT NULL DEFAULT '',
			company_description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			version INTEGER NOT NULL DEFAULT 1,
			CONSTRAINT users_email_key UNIQUE (email)
		);

		CREATE TABLE IF NOT EXISTS postings (
			id BIGSERIAL PRIMARY KEY,
			kind TEXT NOT NULL CHECK (kind IN ('job', 'internship')),
			title TEXT NOT NULL,
			company TEXT NOT NULL,
			company_logo TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL,
			description TEXT NOT NULL,
			requirements TEXT NOT NULL DEFAULT '',
			salary TEXT NOT NULL DEFAULT '',
			stipend TEXT NOT NULL DEFAULT '',
			duration TEXT NOT NULL DEFAULT '',
			posted_by TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'rejected')),
			reviewed_by TEXT,
			reviewed_at TIMESTAMPTZ,
			review_comments TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			version INTEGER NOT NULL DEFAULT 1
		);

		CREATE INDEX IF NOT EXISTS idx_postings_posted_by ON postings (posted_by);
		CREATE INDEX IF NOT EXISTS idx_postings_status ON postings (status);

		CREATE TABLE IF NOT EXISTS applications (
			id BIGSERIAL PRIMARY KEY,
			posting_id BIGINT NOT NULL REFERENCES postings (id) ON DELETE CASCADE,
			posting_kind TEXT NOT NULL CHECK (posting_kind IN ('job', 'internship')),
			applicant_email TEXT NOT NULL,
			applicant_name TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			cover_letter TEXT NOT NULL DEFAULT '',
			resume_url TEXT NOT NULL DEFAULT '',
			company_name TEXT NOT NULL DEFAULT '',
			company_logo TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'reviewed', 'shortlisted', 'hired', 'rejected')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			version INTEGER NOT NULL DEFAULT 1,
			CONSTRAINT applications_applicant_email_posting_id_key UNIQUE (applicant_email, posting_id)
		);

		CREATE INDEX IF NOT EXISTS idx_applications_posting_id ON applications (posting_id);
		CREATE INDEX IF NOT EXISTS idx_applications_applicant_email ON applications (applicant_email);
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, schema); err != nil {
		return err
	}

	return nil
}
