package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/wachplan-dev/wachplan/backend/internal/config"
	"github.com/wachplan-dev/wachplan/backend/internal/repository"
	"github.com/wachplan-dev/wachplan/backend/internal/seed"
	"github.com/wachplan-dev/wachplan/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var emailDomain string

	flag.IntVar(&op, "op", 0, "operation (1: insert random users, 2: build a demo station)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.StringVar(&emailDomain, "email-domain", "example.org", "domain for generated user emails")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open only builds the pool object, so ping to verify the connection
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		if n <= 0 {
			slog.Error("please pass a valid user count")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, emailDomain)
				if err != nil {
					slog.Error("failed to generate a random user", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateUser(user); err != nil {
					slog.Error("failed to insert user", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("inserted users", slog.Int("count", n-cnt))
		}
	case 2:
		// the demo station is owned by the initial admin account
		admin, err := repo.GetUserByEmail(cfg.InitialAdmin.Email)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				slog.Error("initial admin account does not exist; start the api once first")
			default:
				slog.Error("failed to look up the initial admin", slog.String("error", err.Error()))
			}
			return
		}

		if n <= 0 {
			n = 5
		}
		seed.SeedDemoStation(repo, admin.ID, n)
	default:
		slog.Error("unknown operation")
	}
}
