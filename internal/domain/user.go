package domain

import (
	"time"
)

type Role string

const (
	RoleStudent   Role = "student"
	RoleRecruiter Role = "recruiter"
	// RoleAdmin never appears in the users table; it is granted by the
	// statically configured admin credential at login.
	RoleAdmin Role = "admin"
)

type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	Phone        string `json:"phone"`
	Location     string `json:"location"`

	// Student profile
	EducationLevel string `json:"educationLevel,omitempty"`
	FieldOfStudy   string `json:"fieldOfStudy,omitempty"`
	GraduationYear string `json:"graduationYear,omitempty"`
	Skills         string `json:"skills,omitempty"`
	Experience     string `json:"experience,omitempty"`
	Bio            string `json:"bio,omitempty"`
	ResumeURL      string `json:"resumeUrl,omitempty"`

	// Recruiter profile
	CompanyName        string `json:"companyName,omitempty"`
	CompanyWebsite     string `json:"companyWebsite,omitempty"`
	CompanyDescription string `json:"companyDescription,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
