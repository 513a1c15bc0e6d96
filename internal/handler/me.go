package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/careernest-dev/careernest/backend/internal/domain"
)

func (h *Handler) GetMyInfo(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	h.successResponse(w, r, "profile fetched", myInfo)
}

// UpdateMyInfo patches profile fields. Email and role are fixed: email is
// the ownership key for postings and applications, so rotating it would
// orphan the caller's records.
func (h *Handler) UpdateMyInfo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     *string `json:"name"`
		Phone    *string `json:"phone"`
		Location *string `json:"location"`

		EducationLevel *string `json:"educationLevel"`
		FieldOfStudy   *string `json:"fieldOfStudy"`
		GraduationYear *string `json:"graduationYear"`
		Skills         *string `json:"skills"`
		Experience     *string `json:"experience"`
		Bio            *string `json:"bio"`
		ResumeURL      *string `json:"resumeUrl"`

		CompanyName        *string `json:"companyName"`
		CompanyWebsite     *string `json:"companyWebsite"`
		CompanyDescription *string `json:"companyDescription"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	if req.Name != nil {
		myInfo.Name = *req.Name
	}
	if req.Phone != nil {
		myInfo.Phone = *req.Phone
	}
	if req.Location != nil {
		myInfo.Location = *req.Location
	}
	if req.EducationLevel != nil {
		myInfo.EducationLevel = *req.EducationLevel
	}
	if req.FieldOfStudy != nil {
		myInfo.FieldOfStudy = *req.FieldOfStudy
	}
	if req.GraduationYear != nil {
		myInfo.GraduationYear = *req.GraduationYear
	}
	if req.Skills != nil {
		myInfo.Skills = *req.Skills
	}
	if req.Experience != nil {
		myInfo.Experience = *req.Experience
	}
	if req.Bio != nil {
		myInfo.Bio = *req.Bio
	}
	if req.ResumeURL != nil {
		myInfo.ResumeURL = *req.ResumeURL
	}
	if req.CompanyName != nil {
		myInfo.CompanyName = *req.CompanyName
	}
	if req.CompanyWebsite != nil {
		myInfo.CompanyWebsite = *req.CompanyWebsite
	}
	if req.CompanyDescription != nil {
		myInfo.CompanyDescription = *req.CompanyDescription
	}

	if err := h.store.UpdateUser(myInfo); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "profile changed concurrently, please retry")
		default:
			h.storeError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "profile updated", myInfo)
}

func (h *Handler) UpdateMyPassword(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		OldPassword string `json:"oldPassword" validate:"required"`
		NewPassword string `json:"newPassword" validate:"required,min=8"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(myInfo.PasswordHash), []byte(req.OldPassword)); err != nil {
		h.unauthorized(w, r, "old password is incorrect")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	myInfo.PasswordHash = string(hashedPassword)

	if err := h.store.UpdateUser(myInfo); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "profile changed concurrently, please retry")
		default:
			h.storeError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "password updated", nil)
}
