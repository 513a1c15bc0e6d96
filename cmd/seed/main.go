package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/careernest-dev/careernest/backend/internal/config"
	"github.com/careernest-dev/careernest/backend/internal/domain"
	"github.com/careernest-dev/careernest/backend/internal/repository"
	"github.com/careernest-dev/careernest/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "operation (1: insert random recruiters, 2: insert random students, 3: insert random postings, 4: insert random applications)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("unable to create database connection pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("unable to connect to the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	if err := repo.EnsureSchema(); err != nil {
		logger.Error("unable to ensure database schema", "error", err)
		return
	}

	switch op {
	case 1:
		seedUsers(logger, repo, cfg, domain.RoleRecruiter, n)
	case 2:
		seedUsers(logger, repo, cfg, domain.RoleStudent, n)
	case 3:
		seedPostings(logger, repo, n)
	case 4:
		seedApplications(logger, repo, n)
	default:
		logger.Error("unknown operation", "op", op)
		os.Exit(1)
	}
}

func seedUsers(logger *slog.Logger, repo *repository.Repository, cfg *config.Config, role domain.Role, n int) {
	for i := 0; i < n; i++ {
		user, err := utils.GenerateRandomUser(role, cfg.Seed.User.Password)
		if err != nil {
			logger.Error("unable to generate user", "error", err)
			return
		}
		if err := repo.CreateUser(user); err != nil {
			logger.Error("unable to insert user", "error", err)
			return
		}
		logger.Info("user inserted", "email", user.Email, "role", user.Role)
	}
}

// seedPostings inserts a few fresh recruiters and spreads the generated
// postings across them, so ownership scoping has something to chew on.
func seedPostings(logger *slog.Logger, repo *repository.Repository, n int) {
	recruiters := []*domain.User{}
	for i := 0; i < 3; i++ {
		recruiter, err := utils.GenerateRandomUser(domain.RoleRecruiter, utils.GenerateRandomPassword(12))
		if err != nil {
			logger.Error("unable to generate recruiter", "error", err)
			return
		}
		if err := repo.CreateUser(recruiter); err != nil {
			logger.Error("unable to insert recruiter", "error", err)
			return
		}
		recruiters = append(recruiters, recruiter)
	}

	for i := 0; i < n; i++ {
		recruiter := recruiters[rand.Intn(len(recruiters))]
		posting := utils.GenerateRandomPosting(recruiter.Email, recruiter.CompanyName)
		if err := repo.CreatePosting(posting); err != nil {
			logger.Error("unable to insert posting", "error", err)
			return
		}
		logger.Info("posting inserted", "title", posting.Title, "postedBy", posting.PostedBy)
	}
}

func seedApplications(logger *slog.Logger, repo *repository.Repository, n int) {
	postings, err := repo.ListPostings(domain.PostingFilter{Status: domain.PostingStatusApproved})
	if err != nil {
		logger.Error("unable to list postings", "error", err)
		return
	}
	if len(postings) == 0 {
		logger.Error("no approved postings found, approve some first")
		return
	}

	for i := 0; i < n; i++ {
		student, err := utils.GenerateRandomUser(domain.RoleStudent, utils.GenerateRandomPassword(12))
		if err != nil {
			logger.Error("unable to generate student", "error", err)
			return
		}
		if err := repo.CreateUser(student); err != nil {
			logger.Error("unable to insert student", "error", err)
			return
		}

		posting := postings[rand.Intn(len(postings))]
		application := utils.GenerateRandomApplication(student, posting)
		if err := repo.CreateApplication(application); err != nil {
			logger.Error("unable to insert application", "error", err)
			return
		}
		logger.Info("application inserted", "applicant", application.ApplicantEmail, "postingId", application.PostingID)
	}
}
