package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/careernest-dev/careernest/backend/internal/domain"
)

func (r *Repository) CreatePosting(posting *domain.Posting) error {
	query := `
		INSERT INTO postings (
			kind, title, company, company_logo, location, description,
			requirements, salary, stipend, duration, posted_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, status, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{
		posting.Kind, posting.Title, posting.Company, posting.CompanyLogo, posting.Location, posting.Description,
		posting.Requirements, posting.Salary, posting.Stipend, posting.Duration, posting.PostedBy,
	}
	dst := []any{&posting.ID, &posting.Status, &posting.CreatedAt, &posting.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetPostingByID(id int64) (*domain.Posting, error) {
	query := `
		SELECT kind, title, company, company_logo, location, description,
			requirements, salary, stipend, duration, posted_by, status,
			reviewed_by, reviewed_at, review_comments, created_at, version
		FROM postings WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	posting := &domain.Posting{
		ID: id,
	}

	var reviewedBy, reviewComments sql.NullString
	var reviewedAt sql.NullTime

	dst := []any{
		&posting.Kind, &posting.Title, &posting.Company, &posting.CompanyLogo, &posting.Location, &posting.Description,
		&posting.Requirements, &posting.Salary, &posting.Stipend, &posting.Duration, &posting.PostedBy, &posting.Status,
		&reviewedBy, &reviewedAt, &reviewComments, &posting.CreatedAt, &posting.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	if reviewedAt.Valid {
		posting.AdminReview = &domain.AdminReview{
			ReviewedBy: reviewedBy.String,
			ReviewedAt: reviewedAt.Time,
			Comments:   reviewComments.String,
		}
	}

	return posting, nil
}

// UpdatePosting writes the content fields only. Status and review columns
// are deliberately untouched: editing an approved posting keeps it approved
// (no re-moderation on edit, matching the documented behavior).
func (r *Repository) UpdatePosting(posting *domain.Posting) error {
	query := `
		UPDATE postings
		SET
			title = $1,
			company = $2,
			company_logo = $3,
			location = $4,
			description = $5,
			requirements = $6,
			salary = $7,
			stipend = $8,
			duration = $9,
			version = version + 1
		WHERE id = $10 AND version = $11
		RETURNING version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{
		posting.Title, posting.Company, posting.CompanyLogo, posting.Location, posting.Description,
		posting.Requirements, posting.Salary, posting.Stipend, posting.Duration,
		posting.ID, posting.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&posting.Version); err != nil {
		return err
	}

	return nil
}

// ReviewPosting writes a moderation decision. Each decision overwrites the
// previous review columns, so re-deciding is allowed and idempotent.
func (r *Repository) ReviewPosting(posting *domain.Posting) error {
	query := `
		UPDATE postings
		SET
			status = $1,
			reviewed_by = $2,
			reviewed_at = $3,
			review_comments = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{
		posting.Status, posting.AdminReview.ReviewedBy, posting.AdminReview.ReviewedAt, posting.AdminReview.Comments,
		posting.ID, posting.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&posting.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeletePosting(id int64) error {
	query := `
		DELETE FROM postings WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

func (r *Repository) ListPostings(filter domain.PostingFilter) ([]*domain.Posting, error) {
	conditions := []string{}
	args := []any{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Kind != "" {
		args = append(args, filter.Kind)
		conditions = append(conditions, fmt.Sprintf("kind = $%d", len(args)))
	}
	if filter.Location != "" {
		args = append(args, filter.Location)
		conditions = append(conditions, fmt.Sprintf("location = $%d", len(args)))
	}
	if filter.PostedBy != "" {
		args = append(args, filter.PostedBy)
		conditions = append(conditions, fmt.Sprintf("posted_by = $%d", len(args)))
	}

	query := `
		SELECT id, kind, title, company, company_logo, location, description,
			requirements, salary, stipend, duration, posted_by, status,
			reviewed_by, reviewed_at, review_comments, created_at, version
		FROM postings
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	// Newest first; id breaks created_at ties deterministically.
	query += " ORDER BY created_at DESC, id DESC"

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	postings := []*domain.Posting{}
	for rows.Next() {
		posting := &domain.Posting{}

		var reviewedBy, reviewComments sql.NullString
		var reviewedAt sql.NullTime

		dst := []any{
			&posting.ID, &posting.Kind, &posting.Title, &posting.Company, &posting.CompanyLogo, &posting.Location, &posting.Description,
			&posting.Requirements, &posting.Salary, &posting.Stipend, &posting.Duration, &posting.PostedBy, &posting.Status,
			&reviewedBy, &reviewedAt, &reviewComments, &posting.CreatedAt, &posting.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if reviewedAt.Valid {
			posting.AdminReview = &domain.AdminReview{
				ReviewedBy: reviewedBy.String,
				ReviewedAt: reviewedAt.Time,
				Comments:   reviewComments.String,
			}
		}

		postings = append(postings, posting)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return postings, nil
}

// GetPostingIDsByOwner resolves the first step of recruiter application
// scoping: the set of posting ids owned by the given recruiter email.
func (r *Repository) GetPostingIDsByOwner(email string) ([]int64, error) {
	query := `
		SELECT id FROM postings WHERE posted_by = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
