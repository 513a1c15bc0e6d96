package repository

import (
	"fmt"
	"strings"

	"github.com/careernest-dev/careernest/backend/internal/domain"
)

func (r *Repository) CreateApplication(application *domain.Application) error {
	query := `
		INSERT INTO applications (
			posting_id, posting_kind, applicant_email, applicant_name,
			phone, cover_letter, resume_url, company_name, company_logo
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, status, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{
		application.PostingID, application.PostingKind, application.ApplicantEmail, application.ApplicantName,
		application.Phone, application.CoverLetter, application.ResumeURL, application.CompanyName, application.CompanyLogo,
	}
	dst := []any{&application.ID, &application.Status, &application.CreatedAt, &application.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetApplicationByID(id int64) (*domain.Application, error) {
	query := `
		SELECT posting_id, posting_kind, applicant_email, applicant_name,
			phone, cover_letter, resume_url, company_name, company_logo,
			status, created_at, version
		FROM applications WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	application := &domain.Application{
		ID: id,
	}

	dst := []any{
		&application.PostingID, &application.PostingKind, &application.ApplicantEmail, &application.ApplicantName,
		&application.Phone, &application.CoverLetter, &application.ResumeURL, &application.CompanyName, &application.CompanyLogo,
		&application.Status, &application.CreatedAt, &application.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return application, nil
}

// UpdateApplicationStatus is the only mutation an application supports after
// submission; the content fields are immutable.
func (r *Repository) UpdateApplicationStatus(application *domain.Application) error {
	query := `
		UPDATE applications
		SET
			status = $1,
			version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{application.Status, application.ID, application.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&application.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteApplication(id int64) error {
	query := `
		DELETE FROM applications WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

// ApplicationExists is the friendly-path duplicate pre-check; the unique
// constraint remains the authoritative guard under concurrent submissions.
func (r *Repository) ApplicationExists(applicantEmail string, postingID int64) (bool, error) {
	isExists := false

	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT EXISTS (SELECT 1 FROM applications WHERE applicant_email = $1 AND posting_id = $2)
	`
	if err := r.dbpool.QueryRowContext(ctx, query, applicantEmail, postingID).Scan(&isExists); err != nil {
		return false, err
	}

	return isExists, nil
}

func (r *Repository) ListApplications(filter domain.ApplicationFilter) ([]*domain.Application, error) {
	conditions := []string{}
	args := []any{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.ApplicantEmail != "" {
		args = append(args, filter.ApplicantEmail)
		conditions = append(conditions, fmt.Sprintf("applicant_email = $%d", len(args)))
	}
	if filter.PostingID != 0 {
		args = append(args, filter.PostingID)
		conditions = append(conditions, fmt.Sprintf("posting_id = $%d", len(args)))
	}
	if filter.PostingKind != "" {
		args = append(args, filter.PostingKind)
		conditions = append(conditions, fmt.Sprintf("posting_kind = $%d", len(args)))
	}
	if filter.PostingIDs != nil {
		args = append(args, filter.PostingIDs)
		conditions = append(conditions, fmt.Sprintf("posting_id = ANY($%d)", len(args)))
	}

	query := `
		SELECT id, posting_id, posting_kind, applicant_email, applicant_name,
			phone, cover_letter, resume_url, company_name, company_logo,
			status, created_at, version
		FROM applications
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applications := []*domain.Application{}
	for rows.Next() {
		application := &domain.Application{}
		dst := []any{
			&application.ID, &application.PostingID, &application.PostingKind, &application.ApplicantEmail, &application.ApplicantName,
			&application.Phone, &application.CoverLetter, &application.ResumeURL, &application.CompanyName, &application.CompanyLogo,
			&application.Status, &application.CreatedAt, &application.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		applications = append(applications, application)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return applications, nil
}
