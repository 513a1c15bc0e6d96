package query

import (
	"reflect"
	"testing"

	"github.com/careernest-dev/careernest/backend/internal/domain"
)

func TestEffectivePostingFilter(t *testing.T) {
	admin := domain.Identity{Email: "admin@careernest.dev", Role: domain.RoleAdmin}
	recruiter := domain.Identity{Email: "owner@acme.com", Role: domain.RoleRecruiter}
	student := domain.Identity{Email: "student@example.com", Role: domain.RoleStudent}

	tests := []struct {
		name      string
		caller    domain.Identity
		requested domain.PostingFilter
		want      domain.PostingFilter
	}{
		{
			name:      "anonymous is forced to approved",
			caller:    domain.Identity{},
			requested: domain.PostingFilter{Status: domain.PostingStatusPending},
			want:      domain.PostingFilter{Status: domain.PostingStatusApproved},
		},
		{
			name:      "student is forced to approved",
			caller:    student,
			requested: domain.PostingFilter{Status: domain.PostingStatusRejected, Kind: domain.PostingKindJob},
			want:      domain.PostingFilter{Status: domain.PostingStatusApproved, Kind: domain.PostingKindJob},
		},
		{
			name:      "student with no status asked still clamped",
			caller:    student,
			requested: domain.PostingFilter{Location: "Bangalore"},
			want:      domain.PostingFilter{Status: domain.PostingStatusApproved, Location: "Bangalore"},
		},
		{
			name:      "recruiter listing own postings keeps requested status",
			caller:    recruiter,
			requested: domain.PostingFilter{PostedBy: "owner@acme.com", Status: domain.PostingStatusPending},
			want:      domain.PostingFilter{PostedBy: "owner@acme.com", Status: domain.PostingStatusPending},
		},
		{
			name:      "recruiter listing someone else is clamped",
			caller:    recruiter,
			requested: domain.PostingFilter{PostedBy: "other@globex.com", Status: domain.PostingStatusPending},
			want:      domain.PostingFilter{PostedBy: "other@globex.com", Status: domain.PostingStatusApproved},
		},
		{
			name:      "recruiter public browse is clamped",
			caller:    recruiter,
			requested: domain.PostingFilter{},
			want:      domain.PostingFilter{Status: domain.PostingStatusApproved},
		},
		{
			name:      "admin passes through",
			caller:    admin,
			requested: domain.PostingFilter{Status: domain.PostingStatusPending},
			want:      domain.PostingFilter{Status: domain.PostingStatusPending},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectivePostingFilter(tt.caller, tt.requested)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("EffectivePostingFilter() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEffectiveApplicationFilter(t *testing.T) {
	admin := domain.Identity{Email: "admin@careernest.dev", Role: domain.RoleAdmin}
	recruiter := domain.Identity{Email: "owner@acme.com", Role: domain.RoleRecruiter}
	student := domain.Identity{Email: "student@example.com", Role: domain.RoleStudent}

	t.Run("student is pinned to own email", func(t *testing.T) {
		requested := domain.ApplicationFilter{ApplicantEmail: "someone@else.com", Status: domain.ApplicationStatusPending}
		got := EffectiveApplicationFilter(student, requested, nil)
		if got.ApplicantEmail != student.Email {
			t.Errorf("ApplicantEmail = %q, want %q", got.ApplicantEmail, student.Email)
		}
		if got.Status != domain.ApplicationStatusPending {
			t.Errorf("Status = %q, want pending", got.Status)
		}
	})

	t.Run("recruiter is pinned to own posting ids", func(t *testing.T) {
		got := EffectiveApplicationFilter(recruiter, domain.ApplicationFilter{}, []int64{3, 7})
		if !reflect.DeepEqual(got.PostingIDs, []int64{3, 7}) {
			t.Errorf("PostingIDs = %v, want [3 7]", got.PostingIDs)
		}
	})

	t.Run("recruiter with no postings matches nothing", func(t *testing.T) {
		got := EffectiveApplicationFilter(recruiter, domain.ApplicationFilter{}, nil)
		if got.PostingIDs == nil {
			t.Fatal("PostingIDs should be non-nil so the filter matches nothing")
		}
		if len(got.PostingIDs) != 0 {
			t.Errorf("PostingIDs = %v, want empty", got.PostingIDs)
		}
	})

	t.Run("admin passes through", func(t *testing.T) {
		requested := domain.ApplicationFilter{ApplicantEmail: "someone@else.com", PostingID: 9}
		got := EffectiveApplicationFilter(admin, requested, nil)
		if !reflect.DeepEqual(got, requested) {
			t.Errorf("EffectiveApplicationFilter() = %+v, want %+v", got, requested)
		}
	})
}
