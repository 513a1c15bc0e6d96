package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/careernest-dev/careernest/backend/internal/config"
	"github.com/careernest-dev/careernest/backend/internal/domain"
)

const (
	testAdminEmail    = "admin@careernest.dev"
	testAdminPassword = "admin-secret-pw"
	testUserPassword  = "password123"
)

// memStore is an in-memory Store. It mirrors the repository's observable
// behavior: sql.ErrNoRows on misses and stale versions, pgconn.PgError with
// the schema's constraint names on uniqueness violations, newest-first list
// ordering, and cascade deletion of applications with their posting.
type memStore struct {
	mu sync.Mutex

	users        map[string]*domain.User
	postings     map[int64]*domain.Posting
	applications map[int64]*domain.Application

	nextPostingID     int64
	nextApplicationID int64
	nextUserID        int64

	// Fake clock; each insert advances it so created_at ordering is
	// deterministic without sleeping.
	now time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:        map[string]*domain.User{},
		postings:     map[int64]*domain.Posting{},
		applications: map[int64]*domain.Application{},
		now:          time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) tick() time.Time {
	m.now = m.now.Add(time.Second)
	return m.now
}

func copyUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func copyPosting(p *domain.Posting) *domain.Posting {
	c := *p
	if p.AdminReview != nil {
		review := *p.AdminReview
		c.AdminReview = &review
	}
	return &c
}

func copyApplication(a *domain.Application) *domain.Application {
	c := *a
	return &c
}

func (m *memStore) CreateUser(user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.Email]; ok {
		return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	}

	m.nextUserID++
	user.ID = m.nextUserID
	user.CreatedAt = m.tick()
	user.Version = 1
	m.users[user.Email] = copyUser(user)
	return nil
}

func (m *memStore) GetUserByEmail(email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return copyUser(user), nil
}

func (m *memStore) UpdateUser(user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.users[user.Email]
	if !ok || stored.Version != user.Version {
		return sql.ErrNoRows
	}
	user.Version++
	m.users[user.Email] = copyUser(user)
	return nil
}

func (m *memStore) CheckEmailIfExists(email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.users[email]
	return ok, nil
}

func (m *memStore) CreatePosting(posting *domain.Posting) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextPostingID++
	posting.ID = m.nextPostingID
	posting.Status = domain.PostingStatusPending
	posting.CreatedAt = m.tick()
	posting.Version = 1
	m.postings[posting.ID] = copyPosting(posting)
	return nil
}

func (m *memStore) GetPostingByID(id int64) (*domain.Posting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	posting, ok := m.postings[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return copyPosting(posting), nil
}

func (m *memStore) UpdatePosting(posting *domain.Posting) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.postings[posting.ID]
	if !ok || stored.Version != posting.Version {
		return sql.ErrNoRows
	}

	updated := copyPosting(posting)
	// Content update only; status and review stay what they were.
	updated.Status = stored.Status
	updated.AdminReview = stored.AdminReview
	updated.Version = stored.Version + 1
	m.postings[posting.ID] = updated
	posting.Version = updated.Version
	return nil
}

func (m *memStore) ReviewPosting(posting *domain.Posting) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.postings[posting.ID]
	if !ok || stored.Version != posting.Version {
		return sql.ErrNoRows
	}

	stored.Status = posting.Status
	review := *posting.AdminReview
	stored.AdminReview = &review
	stored.Version++
	posting.Version = stored.Version
	return nil
}

func (m *memStore) DeletePosting(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.postings, id)
	for applicationID, application := range m.applications {
		if application.PostingID == id {
			delete(m.applications, applicationID)
		}
	}
	return nil
}

func (m *memStore) ListPostings(filter domain.PostingFilter) ([]*domain.Posting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	postings := []*domain.Posting{}
	for _, posting := range m.postings {
		if filter.Status != "" && posting.Status != filter.Status {
			continue
		}
		if filter.Kind != "" && posting.Kind != filter.Kind {
			continue
		}
		if filter.Location != "" && posting.Location != filter.Location {
			continue
		}
		if filter.PostedBy != "" && posting.PostedBy != filter.PostedBy {
			continue
		}
		postings = append(postings, copyPosting(posting))
	}

	sort.Slice(postings, func(i, j int) bool {
		if !postings[i].CreatedAt.Equal(postings[j].CreatedAt) {
			return postings[i].CreatedAt.After(postings[j].CreatedAt)
		}
		return postings[i].ID > postings[j].ID
	})
	return postings, nil
}

func (m *memStore) GetPostingIDsByOwner(email string) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := []int64{}
	for _, posting := range m.postings {
		if posting.PostedBy == email {
			ids = append(ids, posting.ID)
		}
	}
	return ids, nil
}

func (m *memStore) CreateApplication(application *domain.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.applications {
		if existing.ApplicantEmail == application.ApplicantEmail && existing.PostingID == application.PostingID {
			return &pgconn.PgError{Code: "23505", ConstraintName: "applications_applicant_email_posting_id_key"}
		}
	}

	m.nextApplicationID++
	application.ID = m.nextApplicationID
	application.Status = domain.ApplicationStatusPending
	application.CreatedAt = m.tick()
	application.Version = 1
	m.applications[application.ID] = copyApplication(application)
	return nil
}

func (m *memStore) GetApplicationByID(id int64) (*domain.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	application, ok := m.applications[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return copyApplication(application), nil
}

func (m *memStore) UpdateApplicationStatus(application *domain.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.applications[application.ID]
	if !ok || stored.Version != application.Version {
		return sql.ErrNoRows
	}
	stored.Status = application.Status
	stored.Version++
	application.Version = stored.Version
	return nil
}

func (m *memStore) DeleteApplication(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.applications, id)
	return nil
}

func (m *memStore) ListApplications(filter domain.ApplicationFilter) ([]*domain.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	applications := []*domain.Application{}
	for _, application := range m.applications {
		if filter.Status != "" && application.Status != filter.Status {
			continue
		}
		if filter.ApplicantEmail != "" && application.ApplicantEmail != filter.ApplicantEmail {
			continue
		}
		if filter.PostingID != 0 && application.PostingID != filter.PostingID {
			continue
		}
		if filter.PostingKind != "" && application.PostingKind != filter.PostingKind {
			continue
		}
		if filter.PostingIDs != nil {
			found := false
			for _, id := range filter.PostingIDs {
				if application.PostingID == id {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		applications = append(applications, copyApplication(application))
	}

	sort.Slice(applications, func(i, j int) bool {
		if !applications[i].CreatedAt.Equal(applications[j].CreatedAt) {
			return applications[i].CreatedAt.After(applications[j].CreatedAt)
		}
		return applications[i].ID > applications[j].ID
	})
	return applications, nil
}

func (m *memStore) ApplicationExists(applicantEmail string, postingID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, application := range m.applications {
		if application.ApplicantEmail == applicantEmail && application.PostingID == postingID {
			return true, nil
		}
	}
	return false, nil
}

// mailRecorder captures what would have gone onto the rabbitmq queue.
type mailRecorder struct {
	mu        sync.Mutex
	published []domain.MailMessage
}

func (m *mailRecorder) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	var mail domain.MailMessage
	if err := json.Unmarshal(msg.Body, &mail); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, mail)
	return nil
}

func (m *mailRecorder) last() (domain.MailMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.published) == 0 {
		return domain.MailMessage{}, false
	}
	return m.published[len(m.published)-1], true
}

func newTestHandler(t *testing.T) (*Handler, *memStore, *mailRecorder) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Environment = "test"
	cfg.Admin.Email = testAdminEmail
	cfg.Admin.Password = testAdminPassword
	cfg.Admin.Name = "CareerNest Admin"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiration = 3600
	cfg.RabbitMQ.PublishTimeout = 5

	store := newMemStore()
	mails := &mailRecorder{}

	h, err := NewHandler(cfg, store, mails, nil)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	h.RegisterRoutes()

	return h, store, mails
}

func authCookie(t *testing.T, h *Handler, identity domain.Identity) *http.Cookie {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AuthClaims{
		Role: string(identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Subject:   identity.Email,
		},
	})
	ss, err := token.SignedString([]byte(h.config.JWT.Secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	return &http.Cookie{Name: authCookieName, Value: ss}
}

// do runs one request through the full router. A nil identity means an
// anonymous caller; body may be nil, a raw string, or anything marshalable.
func do(t *testing.T, h *Handler, method, target string, body any, identity *domain.Identity) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		encoded, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, target, reader)
	if identity != nil {
		req.AddCookie(authCookie(t, h, *identity))
	}

	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, data any) Response {
	t.Helper()

	resp := Response{Data: data}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return resp
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()

	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}

func assertCode(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()

	resp := decodeResponse(t, rec, nil)
	if resp.Code != want {
		t.Fatalf("code = %q, want %q (body %s)", resp.Code, want, rec.Body.String())
	}
}

func seedUser(t *testing.T, store *memStore, role domain.Role, email string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testUserPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := &domain.User{
		Name:         "Test " + string(role),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := store.CreateUser(user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedPosting(t *testing.T, store *memStore, postedBy string, status domain.PostingStatus) *domain.Posting {
	t.Helper()

	posting := &domain.Posting{
		Kind:        domain.PostingKindJob,
		Title:       "Backend Engineer",
		Company:     "Acme Corp",
		CompanyLogo: "https://acme.example/logo.png",
		Location:    "Bangalore",
		Description: "Build and run backend services.",
		Salary:      "12 LPA",
		PostedBy:    postedBy,
	}
	if err := store.CreatePosting(posting); err != nil {
		t.Fatalf("seed posting: %v", err)
	}

	if status != domain.PostingStatusPending {
		posting.Status = status
		posting.AdminReview = &domain.AdminReview{
			ReviewedBy: testAdminEmail,
			ReviewedAt: time.Now(),
		}
		if err := store.ReviewPosting(posting); err != nil {
			t.Fatalf("seed posting review: %v", err)
		}
	}
	return posting
}

func seedApplication(t *testing.T, store *memStore, applicantEmail string, posting *domain.Posting) *domain.Application {
	t.Helper()

	application := &domain.Application{
		PostingID:      posting.ID,
		PostingKind:    posting.Kind,
		ApplicantEmail: applicantEmail,
		ApplicantName:  "Test Student",
		CompanyName:    posting.Company,
		CompanyLogo:    posting.CompanyLogo,
	}
	if err := store.CreateApplication(application); err != nil {
		t.Fatalf("seed application: %v", err)
	}
	return application
}
