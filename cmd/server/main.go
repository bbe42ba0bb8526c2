package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/talentlink/talentlink/internal/auth"
	"github.com/talentlink/talentlink/internal/config"
	"github.com/talentlink/talentlink/internal/connection"
	"github.com/talentlink/talentlink/internal/httpapi"
	"github.com/talentlink/talentlink/internal/post"
	"github.com/talentlink/talentlink/internal/profile"
	"github.com/talentlink/talentlink/internal/store/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", "talentlink")

	db, err := postgres.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	logger.Info("connected to postgres")

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := auth.New(db, tokens, logger)
	profileSvc := profile.New(db, logger)
	connSvc := connection.New(db, logger)
	postSvc := post.New(db, db, logger)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	router := httpapi.New(authSvc, profileSvc, connSvc, postSvc, db.Ping)
	router.Register(e)

	logger.Info("server listening", "port", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
