package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/careernest-dev/careernest/backend/internal/config"
	"github.com/careernest-dev/careernest/backend/internal/domain"
)

// Store is the persistence surface the handlers consume. *repository.Repository
// satisfies it; tests substitute an in-memory implementation.
type Store interface {
	CreateUser(user *domain.User) error
	GetUserByEmail(email string) (*domain.User, error)
	UpdateUser(user *domain.User) error
	CheckEmailIfExists(email string) (bool, error)

	CreatePosting(posting *domain.Posting) error
	GetPostingByID(id int64) (*domain.Posting, error)
	UpdatePosting(posting *domain.Posting) error
	ReviewPosting(posting *domain.Posting) error
	DeletePosting(id int64) error
	ListPostings(filter domain.PostingFilter) ([]*domain.Posting, error)
	GetPostingIDsByOwner(email string) ([]int64, error)

	CreateApplication(application *domain.Application) error
	GetApplicationByID(id int64) (*domain.Application, error)
	UpdateApplicationStatus(application *domain.Application) error
	DeleteApplication(id int64) error
	ListApplications(filter domain.ApplicationFilter) ([]*domain.Application, error)
	ApplicationExists(applicantEmail string, postingID int64) (bool, error)
}

// MailPublisher matches *amqp.Channel so tests can record queued mail
// instead of talking to rabbitmq.
type MailPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	store       Store
	translator  ut.Translator
	mailChannel MailPublisher
	redisClient *redis.Client

	// Hashed once at construction so the admin login path is
	// indistinguishable from a stored-user login.
	adminPasswordHash []byte

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, store Store, mailCh MailPublisher, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	adminPasswordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		store:       store,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		adminPasswordHash: adminPasswordHash,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Get("/health", h.Health)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	h.Mux.Route("/my-info", func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.myInfo)
		r.Get("/", h.GetMyInfo)
		r.Patch("/", h.UpdateMyInfo)
		r.Patch("/password", h.UpdateMyPassword)
	})

	// Posting reads are public (visibility is clamped per caller role);
	// every mutation requires a login.
	h.Mux.Route("/postings", func(r chi.Router) {
		r.With(h.optionalAuth).Get("/", h.ListPostings)
		r.With(h.auth).Post("/", h.CreatePosting)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.posting)
			r.With(h.optionalAuth).Get("/", h.GetPosting)
			r.Group(func(r chi.Router) {
				r.Use(h.auth)
				r.Put("/", h.UpdatePosting)
				r.Delete("/", h.DeletePosting)
				r.Put("/approve", h.DecidePosting)
			})
		})
	})

	h.Mux.Route("/applications", func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/", h.CreateApplication)
		r.Get("/", h.ListApplications)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.application)
			r.Get("/", h.GetApplication)
			r.Patch("/status", h.UpdateApplicationStatus)
			r.Delete("/", h.DeleteApplication)
		})
	})
}
