// Package authz centralizes every role and ownership check in the
// marketplace. Handlers never compare roles or emails themselves; they call
// a predicate here and translate ErrForbidden into a 403.
package authz

import (
	"errors"

	"github.com/careernest-dev/careernest/backend/internal/domain"
)

var ErrForbidden = errors.New("forbidden")

// Owns reports whether caller is the recruiter owning the posting. Ownership
// is an exact email match; the right role alone is never enough.
func Owns(caller domain.Identity, posting *domain.Posting) bool {
	return caller.Role == domain.RoleRecruiter && caller.Email == posting.PostedBy
}

// CanCreatePosting allows only recruiters to create postings.
func CanCreatePosting(caller domain.Identity) error {
	if caller.Role != domain.RoleRecruiter {
		return ErrForbidden
	}
	return nil
}

// CanDecidePosting allows only the admin to approve or reject a posting.
func CanDecidePosting(caller domain.Identity) error {
	if !caller.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// CanModifyPosting gates content updates and deletion to the owning
// recruiter.
func CanModifyPosting(caller domain.Identity, posting *domain.Posting) error {
	if !Owns(caller, posting) {
		return ErrForbidden
	}
	return nil
}

// CanViewPosting gates fetching a posting by id. Approved postings are
// public; pending and rejected ones are visible only to the admin and the
// owning recruiter.
func CanViewPosting(caller domain.Identity, posting *domain.Posting) error {
	if posting.Status == domain.PostingStatusApproved {
		return nil
	}
	if caller.IsAdmin() || Owns(caller, posting) {
		return nil
	}
	return ErrForbidden
}

// CanApply allows only students to submit applications.
func CanApply(caller domain.Identity) error {
	if caller.Role != domain.RoleStudent {
		return ErrForbidden
	}
	return nil
}

// CanManageApplication gates status updates and deletion of an application.
// Recruiter authorization is transitive: the caller must own the posting the
// application references.
func CanManageApplication(caller domain.Identity, posting *domain.Posting) error {
	if caller.IsAdmin() || Owns(caller, posting) {
		return nil
	}
	return ErrForbidden
}

// CanViewApplication additionally admits the applicant themselves.
func CanViewApplication(caller domain.Identity, application *domain.Application, posting *domain.Posting) error {
	if caller.Role == domain.RoleStudent && caller.Email == application.ApplicantEmail {
		return nil
	}
	return CanManageApplication(caller, posting)
}
