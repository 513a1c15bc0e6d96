package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/careernest-dev/careernest/backend/internal/domain"
)

func TestHealth(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/health", nil, nil)
	assertStatus(t, rec, http.StatusOK)

	resp := decodeResponse(t, rec, nil)
	if !resp.Success {
		t.Errorf("success = false, want true")
	}
}

func TestRegister(t *testing.T) {
	h, _, mails := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/auth/register", map[string]any{
		"name":     "Priya Sharma",
		"email":    "priya@example.com",
		"password": "password123",
		"role":     "student",
	}, nil)
	assertStatus(t, rec, http.StatusCreated)

	var user domain.User
	resp := decodeResponse(t, rec, &user)
	if !resp.Success {
		t.Fatalf("success = false: %s", resp.Message)
	}
	if user.Email != "priya@example.com" || user.Role != domain.RoleStudent {
		t.Errorf("unexpected user in response: %+v", user)
	}

	foundCookie := false
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == authCookieName && cookie.Value != "" {
			foundCookie = true
		}
	}
	if !foundCookie {
		t.Error("register should set the auth cookie")
	}

	mail, ok := mails.last()
	if !ok || mail.Type != "welcome" || mail.To != "priya@example.com" {
		t.Errorf("expected a welcome mail to the new user, got %+v", mail)
	}
}

func TestRegisterValidation(t *testing.T) {
	h, _, _ := newTestHandler(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing email", map[string]any{"name": "X", "password": "password123", "role": "student"}},
		{"short password", map[string]any{"name": "X", "email": "x@example.com", "password": "short", "role": "student"}},
		{"bad role", map[string]any{"name": "X", "email": "x@example.com", "password": "password123", "role": "admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/auth/register", tt.body, nil)
			assertStatus(t, rec, http.StatusBadRequest)
			assertCode(t, rec, CodeValidationError)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h, store, _ := newTestHandler(t)
	seedUser(t, store, domain.RoleStudent, "taken@example.com")

	rec := do(t, h, http.MethodPost, "/auth/register", map[string]any{
		"name":     "Someone Else",
		"email":    "taken@example.com",
		"password": "password123",
		"role":     "recruiter",
	}, nil)
	assertStatus(t, rec, http.StatusConflict)
	assertCode(t, rec, CodeConflict)
}

func TestRegisterAdminEmailRejected(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/auth/register", map[string]any{
		"name":     "Impostor",
		"email":    testAdminEmail,
		"password": "password123",
		"role":     "recruiter",
	}, nil)
	assertStatus(t, rec, http.StatusConflict)
}

func TestLogin(t *testing.T) {
	h, store, _ := newTestHandler(t)
	seedUser(t, store, domain.RoleRecruiter, "owner@acme.com")

	t.Run("valid credentials", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/auth/login", map[string]any{
			"email":    "owner@acme.com",
			"password": testUserPassword,
		}, nil)
		assertStatus(t, rec, http.StatusOK)

		var user domain.User
		decodeResponse(t, rec, &user)
		if user.Role != domain.RoleRecruiter {
			t.Errorf("role = %q, want recruiter", user.Role)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/auth/login", map[string]any{
			"email":    "owner@acme.com",
			"password": "wrong-password",
		}, nil)
		assertStatus(t, rec, http.StatusUnauthorized)
		assertCode(t, rec, CodeUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/auth/login", map[string]any{
			"email":    "nobody@example.com",
			"password": testUserPassword,
		}, nil)
		assertStatus(t, rec, http.StatusUnauthorized)
	})
}

func TestAdminLogin(t *testing.T) {
	h, _, _ := newTestHandler(t)

	t.Run("valid credentials", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/auth/login", map[string]any{
			"email":    testAdminEmail,
			"password": testAdminPassword,
		}, nil)
		assertStatus(t, rec, http.StatusOK)

		data := map[string]any{}
		decodeResponse(t, rec, &data)
		if data["role"] != "admin" {
			t.Errorf("role = %v, want admin", data["role"])
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/auth/login", map[string]any{
			"email":    testAdminEmail,
			"password": "wrong-password",
		}, nil)
		assertStatus(t, rec, http.StatusUnauthorized)
	})
}

func TestLogout(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/auth/logout", nil, nil)
	assertStatus(t, rec, http.StatusOK)

	cleared := false
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == authCookieName && cookie.Value == "" {
			cleared = true
		}
	}
	if !cleared {
		t.Error("logout should clear the auth cookie")
	}
}

func TestAuthMiddleware(t *testing.T) {
	h, _, _ := newTestHandler(t)

	t.Run("no cookie", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/applications", nil, nil)
		assertStatus(t, rec, http.StatusUnauthorized)

		resp := decodeResponse(t, rec, nil)
		if !strings.Contains(resp.Message, "not logged in") {
			t.Errorf("message = %q, want a not-logged-in hint", resp.Message)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/applications", nil)
		req.AddCookie(&http.Cookie{Name: authCookieName, Value: "not-a-jwt"})

		rec := httptest.NewRecorder()
		h.Mux.ServeHTTP(rec, req)
		assertStatus(t, rec, http.StatusUnauthorized)

		resp := decodeResponse(t, rec, nil)
		if !strings.Contains(resp.Message, "invalid token") {
			t.Errorf("message = %q, want an invalid-token hint", resp.Message)
		}
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other, _, _ := newTestHandler(t)
		other.config.JWT.Secret = "some-other-secret"
		cookie := authCookie(t, other, domain.Identity{Email: "x@example.com", Role: domain.RoleStudent})

		req := httptest.NewRequest(http.MethodGet, "/applications", nil)
		req.AddCookie(cookie)

		rec := httptest.NewRecorder()
		h.Mux.ServeHTTP(rec, req)
		assertStatus(t, rec, http.StatusUnauthorized)
	})
}
