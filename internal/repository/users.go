package repository

import (
	"github.com/careernest-dev/careernest/backend/internal/domain"
)

func (r *Repository) CreateUser(user *domain.User) error {
	query := `
		INSERT INTO users (
			name, email, password_hash, role, phone, location,
			education_level, field_of_study, graduation_year, skills, experience, bio, resume_url,
			company_name, company_website, company_description
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{
		user.Name, user.Email, user.PasswordHash, user.Role, user.Phone, user.Location,
		user.EducationLevel, user.FieldOfStudy, user.GraduationYear, user.Skills, user.Experience, user.Bio, user.ResumeURL,
		user.CompanyName, user.CompanyWebsite, user.CompanyDescription,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt, &user.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetUserByEmail(email string) (*domain.User, error) {
	query := `
		SELECT id, name, password_hash, role, phone, location,
			education_level, field_of_study, graduation_year, skills, experience, bio, resume_url,
			company_name, company_website, company_description, created_at, version
		FROM users WHERE email = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	user := &domain.User{
		Email: email,
	}

	dst := []any{
		&user.ID, &user.Name, &user.PasswordHash, &user.Role, &user.Phone, &user.Location,
		&user.EducationLevel, &user.FieldOfStudy, &user.GraduationYear, &user.Skills, &user.Experience, &user.Bio, &user.ResumeURL,
		&user.CompanyName, &user.CompanyWebsite, &user.CompanyDescription, &user.CreatedAt, &user.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(dst...); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) UpdateUser(user *domain.User) error {
	query := `
		UPDATE users
		SET
			name = $1,
			password_hash = $2,
			phone = $3,
			location = $4,
			education_level = $5,
			field_of_study = $6,
			graduation_year = $7,
			skills = $8,
			experience = $9,
			bio = $10,
			resume_url = $11,
			company_name = $12,
			company_website = $13,
			company_description = $14,
			version = version + 1
		WHERE id = $15 AND version = $16
		RETURNING version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{
		user.Name, user.PasswordHash, user.Phone, user.Location,
		user.EducationLevel, user.FieldOfStudy, user.GraduationYear, user.Skills, user.Experience, user.Bio, user.ResumeURL,
		user.CompanyName, user.CompanyWebsite, user.CompanyDescription,
		user.ID, user.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) CheckEmailIfExists(email string) (bool, error) {
	isExists := false

	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
	`
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(&isExists); err != nil {
		return false, err
	}

	return isExists, nil
}
