package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/careernest-dev/careernest/backend/internal/authz"
	"github.com/careernest-dev/careernest/backend/internal/domain"
	"github.com/careernest-dev/careernest/backend/internal/query"
)

func (h *Handler) CreatePosting(w http.ResponseWriter, r *http.Request) {
	identity := h.identity(r)
	if err := authz.CanCreatePosting(identity); err != nil {
		h.forbidden(w, r, "only recruiters can create postings")
		return
	}

	var req struct {
		Kind         string `json:"kind" validate:"required,oneof=job internship"`
		Title        string `json:"title" validate:"required"`
		Company      string `json:"company" validate:"required"`
		CompanyLogo  string `json:"companyLogo"`
		Location     string `json:"location" validate:"required"`
		Description  string `json:"description" validate:"required"`
		Requirements string `json:"requirements"`
		Salary       string `json:"salary"`
		Stipend      string `json:"stipend"`
		Duration     string `json:"duration"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	posting := &domain.Posting{
		Kind:         domain.PostingKind(req.Kind),
		Title:        req.Title,
		Company:      req.Company,
		CompanyLogo:  req.CompanyLogo,
		Location:     req.Location,
		Description:  req.Description,
		Requirements: req.Requirements,
		Salary:       req.Salary,
		Stipend:      req.Stipend,
		Duration:     req.Duration,
		PostedBy:     identity.Email,
	}

	if err := h.store.CreatePosting(posting); err != nil {
		h.storeError(w, r, err)
		return
	}

	h.createdResponse(w, r, "posting created and pending admin approval", posting)
}

func (h *Handler) ListPostings(w http.ResponseWriter, r *http.Request) {
	identity := h.identity(r)

	requested := domain.PostingFilter{
		Status:   domain.PostingStatus(r.URL.Query().Get("status")),
		Kind:     domain.PostingKind(r.URL.Query().Get("kind")),
		Location: r.URL.Query().Get("location"),
		PostedBy: r.URL.Query().Get("postedBy"),
	}

	postings, err := h.store.ListPostings(query.EffectivePostingFilter(identity, requested))
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	h.successResponse(w, r, "postings fetched", postings)
}

func (h *Handler) GetPosting(w http.ResponseWriter, r *http.Request) {
	posting := r.Context().Value(PostingCtx).(*domain.Posting)

	if err := authz.CanViewPosting(h.identity(r), posting); err != nil {
		h.forbidden(w, r, "posting not available")
		return
	}

	h.successResponse(w, r, "posting fetched", posting)
}

// UpdatePosting patches content fields. It never touches status: an edited
// posting keeps its approval, it is not re-moderated.
func (h *Handler) UpdatePosting(w http.ResponseWriter, r *http.Request) {
	posting := r.Context().Value(PostingCtx).(*domain.Posting)

	if err := authz.CanModifyPosting(h.identity(r), posting); err != nil {
		h.forbidden(w, r, "only the owning recruiter can modify this posting")
		return
	}

	var req struct {
		Title        *string `json:"title"`
		Company      *string `json:"company"`
		CompanyLogo  *string `json:"companyLogo"`
		Location     *string `json:"location"`
		Description  *string `json:"description"`
		Requirements *string `json:"requirements"`
		Salary       *string `json:"salary"`
		Stipend      *string `json:"stipend"`
		Duration     *string `json:"duration"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Title != nil {
		posting.Title = *req.Title
	}
	if req.Company != nil {
		posting.Company = *req.Company
	}
	if req.CompanyLogo != nil {
		posting.CompanyLogo = *req.CompanyLogo
	}
	if req.Location != nil {
		posting.Location = *req.Location
	}
	if req.Description != nil {
		posting.Description = *req.Description
	}
	if req.Requirements != nil {
		posting.Requirements = *req.Requirements
	}
	if req.Salary != nil {
		posting.Salary = *req.Salary
	}
	if req.Stipend != nil {
		posting.Stipend = *req.Stipend
	}
	if req.Duration != nil {
		posting.Duration = *req.Duration
	}

	if err := h.store.UpdatePosting(posting); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "posting changed concurrently, please retry")
		default:
			h.storeError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "posting updated", posting)
}

func (h *Handler) DeletePosting(w http.ResponseWriter, r *http.Request) {
	posting := r.Context().Value(PostingCtx).(*domain.Posting)

	if err := authz.CanModifyPosting(h.identity(r), posting); err != nil {
		h.forbidden(w, r, "only the owning recruiter can delete this posting")
		return
	}

	if err := h.store.DeletePosting(posting.ID); err != nil {
		h.storeError(w, r, err)
		return
	}

	h.successResponse(w, r, "posting deleted", nil)
}

// DecidePosting records the admin's moderation decision. Re-deciding is
// allowed; each decision overwrites the previous review.
func (h *Handler) DecidePosting(w http.ResponseWriter, r *http.Request) {
	identity := h.identity(r)
	if err := authz.CanDecidePosting(identity); err != nil {
		h.forbidden(w, r, "only the admin can review postings")
		return
	}

	posting := r.Context().Value(PostingCtx).(*domain.Posting)

	var req struct {
		Decision string `json:"decision" validate:"required,oneof=approved rejected"`
		Comments string `json:"comments"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	posting.Status = domain.PostingStatus(req.Decision)
	posting.AdminReview = &domain.AdminReview{
		ReviewedBy: identity.Email,
		ReviewedAt: time.Now(),
		Comments:   req.Comments,
	}

	if err := h.store.ReviewPosting(posting); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "posting changed concurrently, please retry")
		default:
			h.storeError(w, r, err)
		}
		return
	}

	if err := h.publishMail(domain.MailMessage{
		Type: "posting_decision",
		To:   posting.PostedBy,
		Data: domain.PostingDecisionMailData{
			PostingTitle: posting.Title,
			Decision:     posting.Status,
			Comments:     posting.AdminReview.Comments,
		},
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "posting "+req.Decision, posting)
}
