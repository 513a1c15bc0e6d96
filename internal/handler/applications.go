package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/careernest-dev/careernest/backend/internal/authz"
	"github.com/careernest-dev/careernest/backend/internal/domain"
	"github.com/careernest-dev/careernest/backend/internal/query"
)

func (h *Handler) CreateApplication(w http.ResponseWriter, r *http.Request) {
	identity := h.identity(r)
	if err := authz.CanApply(identity); err != nil {
		h.forbidden(w, r, "only students can apply")
		return
	}

	var req struct {
		PostingID     int64  `json:"postingId" validate:"required"`
		PostingKind   string `json:"postingKind" validate:"required,oneof=job internship"`
		ApplicantName string `json:"applicantName" validate:"required"`
		Phone         string `json:"phone"`
		CoverLetter   string `json:"coverLetter"`
		ResumeURL     string `json:"resumeUrl"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	posting, err := h.store.GetPostingByID(req.PostingID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "posting not found")
		default:
			h.storeError(w, r, err)
		}
		return
	}

	if domain.PostingKind(req.PostingKind) != posting.Kind {
		h.errorResponse(w, r, http.StatusBadRequest, CodeValidationError, "postingKind does not match the posting")
		return
	}

	// Friendly-path duplicate check. Two racing submissions can both pass
	// it; the unique constraint below is the authoritative guard.
	isExists, err := h.store.ApplicationExists(identity.Email, posting.ID)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	if isExists {
		h.conflict(w, r, "you have already applied to this posting")
		return
	}

	application := &domain.Application{
		PostingID:      posting.ID,
		PostingKind:    posting.Kind,
		ApplicantEmail: identity.Email,
		ApplicantName:  req.ApplicantName,
		Phone:          req.Phone,
		CoverLetter:    req.CoverLetter,
		ResumeURL:      req.ResumeURL,

		// Snapshot, not a reference: later posting edits must not rewrite
		// application history.
		CompanyName: posting.Company,
		CompanyLogo: posting.CompanyLogo,
	}

	if err := h.store.CreateApplication(application); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "applications_applicant_email_posting_id_key":
			h.conflict(w, r, "you have already applied to this posting")
		default:
			h.storeError(w, r, err)
		}
		return
	}

	if err := h.publishMail(domain.MailMessage{
		Type: "application_received",
		To:   application.ApplicantEmail,
		Data: domain.ApplicationReceivedMailData{
			ApplicantName: application.ApplicantName,
			PostingTitle:  posting.Title,
			CompanyName:   application.CompanyName,
		},
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.createdResponse(w, r, "application submitted", application)
}

func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	identity := h.identity(r)

	requested := domain.ApplicationFilter{
		Status:         domain.ApplicationStatus(r.URL.Query().Get("status")),
		ApplicantEmail: r.URL.Query().Get("applicantEmail"),
		PostingKind:    domain.PostingKind(r.URL.Query().Get("postingKind")),
	}
	if param := r.URL.Query().Get("postingId"); param != "" {
		postingID, err := strconv.ParseInt(param, 10, 64)
		if err != nil {
			h.errorResponse(w, r, http.StatusBadRequest, CodeValidationError, "invalid posting id")
			return
		}
		requested.PostingID = postingID
	}

	// Applications don't record the posting owner, so recruiter scoping is
	// two-step: resolve the recruiter's posting ids first, then pin the
	// list to that set.
	var ownPostingIDs []int64
	if identity.Role == domain.RoleRecruiter {
		ids, err := h.store.GetPostingIDsByOwner(identity.Email)
		if err != nil {
			h.storeError(w, r, err)
			return
		}
		ownPostingIDs = ids
	}

	applications, err := h.store.ListApplications(query.EffectiveApplicationFilter(identity, requested, ownPostingIDs))
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	h.successResponse(w, r, "applications fetched", applications)
}

func (h *Handler) GetApplication(w http.ResponseWriter, r *http.Request) {
	application := r.Context().Value(ApplicationCtx).(*domain.Application)

	posting, err := h.store.GetPostingByID(application.PostingID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "posting not found")
		default:
			h.storeError(w, r, err)
		}
		return
	}

	if err := authz.CanViewApplication(h.identity(r), application, posting); err != nil {
		h.forbidden(w, r, "not allowed to view this application")
		return
	}

	h.successResponse(w, r, "application fetched", application)
}

// UpdateApplicationStatus sets the status directly; there is no enforced
// order between the five values.
func (h *Handler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	application := r.Context().Value(ApplicationCtx).(*domain.Application)

	posting, err := h.store.GetPostingByID(application.PostingID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "posting not found")
		default:
			h.storeError(w, r, err)
		}
		return
	}

	if err := authz.CanManageApplication(h.identity(r), posting); err != nil {
		h.forbidden(w, r, "only the admin or the owning recruiter can update this application")
		return
	}

	var req struct {
		Status string `json:"status" validate:"required,oneof=pending reviewed shortlisted hired rejected"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	application.Status = domain.ApplicationStatus(req.Status)

	if err := h.store.UpdateApplicationStatus(application); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "application changed concurrently, please retry")
		default:
			h.storeError(w, r, err)
		}
		return
	}

	if err := h.publishMail(domain.MailMessage{
		Type: "application_status",
		To:   application.ApplicantEmail,
		Data: domain.ApplicationStatusMailData{
			ApplicantName: application.ApplicantName,
			PostingTitle:  posting.Title,
			CompanyName:   application.CompanyName,
			Status:        application.Status,
		},
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "application status updated", application)
}

// DeleteApplication requires the same authorization as a status update.
func (h *Handler) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	application := r.Context().Value(ApplicationCtx).(*domain.Application)

	posting, err := h.store.GetPostingByID(application.PostingID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "posting not found")
		default:
			h.storeError(w, r, err)
		}
		return
	}

	if err := authz.CanManageApplication(h.identity(r), posting); err != nil {
		h.forbidden(w, r, "only the admin or the owning recruiter can delete this application")
		return
	}

	if err := h.store.DeleteApplication(application.ID); err != nil {
		h.storeError(w, r, err)
		return
	}

	h.successResponse(w, r, "application deleted", nil)
}
