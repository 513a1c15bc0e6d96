package domain

import "time"

type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "pending"
	ApplicationStatusReviewed    ApplicationStatus = "reviewed"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusHired       ApplicationStatus = "hired"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
)

// Application is a student's submission against exactly one posting. At most
// one application exists per (ApplicantEmail, PostingID) pair; the
// applications table enforces this with a unique constraint. CompanyName and
// CompanyLogo are copied from the posting at creation time so later posting
// edits don't rewrite application history.
type Application struct {
	ID             int64             `json:"id"`
	PostingID      int64             `json:"postingId"`
	PostingKind    PostingKind       `json:"postingKind"`
	ApplicantEmail string            `json:"applicantEmail"`
	ApplicantName  string            `json:"applicantName"`
	Phone          string            `json:"phone,omitempty"`
	CoverLetter    string            `json:"coverLetter,omitempty"`
	ResumeURL      string            `json:"resumeUrl,omitempty"`
	CompanyName    string            `json:"companyName"`
	CompanyLogo    string            `json:"companyLogo,omitempty"`
	Status         ApplicationStatus `json:"status"`
	CreatedAt      time.Time         `json:"createdAt"`
	Version        int32             `json:"-"`
}

// ApplicationFilter narrows application lists. PostingIDs carries the
// two-step recruiter scoping: applications don't store the posting owner, so
// the caller first resolves the recruiter's posting ids and restricts the
// list to them. An empty non-nil slice matches nothing.
type ApplicationFilter struct {
	Status         ApplicationStatus
	ApplicantEmail string
	PostingID      int64
	PostingKind    PostingKind
	PostingIDs     []int64
}
