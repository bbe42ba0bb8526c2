package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/talentlink/talentlink/internal/auth"
	"github.com/talentlink/talentlink/internal/config"
	"github.com/talentlink/talentlink/internal/connection"
	"github.com/talentlink/talentlink/internal/post"
	"github.com/talentlink/talentlink/internal/store/postgres"
)

// Seeds a handful of connected demo accounts with posts, so a fresh
// deployment has a browsable feed.
func main() {
	password := flag.String("password", "changeme123", "Password assigned to every demo account")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	db, err := postgres.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := auth.New(db, tokens, logger)
	connSvc := connection.New(db, logger)
	postSvc := post.New(db, db, logger)

	ctx := context.Background()
	seeds := []auth.RegisterInput{
		{FirstName: "Ada", LastName: "Obi", Email: "ada@demo.talentlink.dev", Password: *password},
		{FirstName: "Femi", LastName: "Ade", Email: "femi@demo.talentlink.dev", Password: *password},
		{FirstName: "Chidi", LastName: "Eze", Email: "chidi@demo.talentlink.dev", Password: *password},
	}

	var ids []string
	for _, in := range seeds {
		res, err := authSvc.Register(ctx, in)
		if err != nil {
			log.Fatalf("seed user %s: %v", in.Email, err)
		}
		ids = append(ids, res.User.ID)
		if _, err := postSvc.Create(ctx, res.User.ID, post.CreateInput{
			Content: fmt.Sprintf("Hello from %s %s!", in.FirstName, in.LastName),
		}); err != nil {
			log.Fatalf("seed post for %s: %v", in.Email, err)
		}
	}

	// Connect the first account to the other two.
	for _, other := range ids[1:] {
		if err := connSvc.Send(ctx, ids[0], other); err != nil {
			log.Fatalf("send request: %v", err)
		}
		if err := connSvc.Accept(ctx, other, ids[0]); err != nil {
			log.Fatalf("accept request: %v", err)
		}
	}

	fmt.Printf("Seeded %d demo users.\n", len(ids))
}
