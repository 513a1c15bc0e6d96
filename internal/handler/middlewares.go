package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/careernest-dev/careernest/backend/internal/domain"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("request handled", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				fmt.Print(string(debug.Stack()))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) identityFromToken(r *http.Request) (domain.Identity, error) {
	cookie, err := r.Cookie(authCookieName)
	if err != nil {
		return domain.Identity{}, err
	}

	claims := &AuthClaims{}
	if _, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(h.config.JWT.Secret), nil
	}); err != nil {
		return domain.Identity{}, err
	}

	return domain.Identity{
		Email: claims.Subject,
		Role:  domain.Role(claims.Role),
	}, nil
}

// auth requires a valid token and puts the caller identity in the context.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := h.identityFromToken(r)
		if err != nil {
			switch {
			case errors.Is(err, http.ErrNoCookie):
				h.unauthorized(w, r, "not logged in")
			default:
				h.unauthorized(w, r, "invalid token")
			}
			return
		}

		ctx := context.WithValue(r.Context(), IdentityCtx, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// optionalAuth attaches the identity when a valid token is present and
// otherwise lets the request through as anonymous. Public listing endpoints
// use it so visibility clamping can still recognize recruiters and admins.
func (h *Handler) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := h.identityFromToken(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), IdentityCtx, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// identity returns the caller identity, anonymous when no auth middleware
// stored one.
func (h *Handler) identity(r *http.Request) domain.Identity {
	if identity, ok := r.Context().Value(IdentityCtx).(domain.Identity); ok {
		return identity
	}
	return domain.Identity{}
}

// myInfo loads the caller's user record. The admin has no users row, so the
// profile endpoints reject it outright.
func (h *Handler) myInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := h.identity(r)
		if identity.IsAdmin() {
			h.forbidden(w, r, "the admin account has no profile")
			return
		}

		user, err := h.store.GetUserByEmail(identity.Email)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.notFound(w, r, "profile not found")
			default:
				h.storeError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), MyInfoCtx, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) posting(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		postingIDParam := chi.URLParam(r, "id")
		postingID, err := strconv.ParseInt(postingIDParam, 10, 64)
		if err != nil {
			h.errorResponse(w, r, http.StatusBadRequest, CodeValidationError, "invalid posting id")
			return
		}

		posting, err := h.store.GetPostingByID(postingID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.notFound(w, r, "posting not found")
			default:
				h.storeError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), PostingCtx, posting)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) application(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		applicationIDParam := chi.URLParam(r, "id")
		applicationID, err := strconv.ParseInt(applicationIDParam, 10, 64)
		if err != nil {
			h.errorResponse(w, r, http.StatusBadRequest, CodeValidationError, "invalid application id")
			return
		}

		application, err := h.store.GetApplicationByID(applicationID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.notFound(w, r, "application not found")
			default:
				h.storeError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), ApplicationCtx, application)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
