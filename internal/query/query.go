// Package query derives the caller-effective view of a requested list
// filter. The rules here are the only place where role-scoped visibility of
// collections is decided; the repository executes whatever filter comes out.
package query

import (
	"github.com/careernest-dev/careernest/backend/internal/domain"
)

// EffectivePostingFilter clamps a requested posting filter to what the
// caller may see.
//
// Students and anonymous callers are always forced to approved postings,
// even if they explicitly ask for another status. A recruiter listing their
// own postings (postedBy equal to their email) sees every status; listing
// anything else behaves like a public caller. The admin's filter passes
// through untouched.
func EffectivePostingFilter(caller domain.Identity, requested domain.PostingFilter) domain.PostingFilter {
	effective := requested

	switch {
	case caller.IsAdmin():
		// unrestricted
	case caller.Role == domain.RoleRecruiter && requested.PostedBy == caller.Email:
		// own postings, any status
	default:
		effective.Status = domain.PostingStatusApproved
	}

	return effective
}

// EffectiveApplicationFilter clamps a requested application filter.
//
// Students only ever see their own applications. Recruiters are restricted
// to applications against their own postings; since applications don't
// store the owner, the caller supplies the recruiter's posting ids (resolved
// in a first step) and the filter pins the list to that set. The admin's
// filter passes through untouched.
func EffectiveApplicationFilter(caller domain.Identity, requested domain.ApplicationFilter, ownPostingIDs []int64) domain.ApplicationFilter {
	effective := requested

	switch caller.Role {
	case domain.RoleAdmin:
		// unrestricted
	case domain.RoleRecruiter:
		// A non-nil empty set matches nothing, so a recruiter with no
		// postings gets an empty list rather than everyone's applications.
		effective.PostingIDs = make([]int64, len(ownPostingIDs))
		copy(effective.PostingIDs, ownPostingIDs)
	default:
		effective.ApplicantEmail = caller.Email
	}

	return effective
}
