package domain

import "time"

type PostingKind string

const (
	PostingKindJob        PostingKind = "job"
	PostingKindInternship PostingKind = "internship"
)

type PostingStatus string

const (
	PostingStatusPending  PostingStatus = "pending"
	PostingStatusApproved PostingStatus = "approved"
	PostingStatusRejected PostingStatus = "rejected"
)

// AdminReview records the latest moderation decision. A re-decision
// overwrites the previous review entirely.
type AdminReview struct {
	ReviewedBy string    `json:"reviewedBy"`
	ReviewedAt time.Time `json:"reviewedAt"`
	Comments   string    `json:"comments"`
}

// Posting unifies jobs and internships; both share the same moderation
// lifecycle and differ only in Kind and a few descriptive fields.
type Posting struct {
	ID           int64         `json:"id"`
	Kind         PostingKind   `json:"kind"`
	Title        string        `json:"title"`
	Company      string        `json:"company"`
	CompanyLogo  string        `json:"companyLogo,omitempty"`
	Location     string        `json:"location"`
	Description  string        `json:"description"`
	Requirements string        `json:"requirements,omitempty"`
	Salary       string        `json:"salary,omitempty"`
	Stipend      string        `json:"stipend,omitempty"`
	Duration     string        `json:"duration,omitempty"`
	PostedBy     string        `json:"postedBy"` // owning recruiter's email
	Status       PostingStatus `json:"status"`
	AdminReview  *AdminReview  `json:"adminReview,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	Version      int32         `json:"-"`
}

// PostingFilter narrows posting lists. Zero values mean "no restriction";
// the query package derives the caller-effective version of a requested
// filter before it reaches the repository.
type PostingFilter struct {
	Status   PostingStatus
	Kind     PostingKind
	Location string
	PostedBy string
}
