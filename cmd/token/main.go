// Command token issues an access token for local development. The user is
// created on first use.
//
// Usage:
//
//	token -email ann@example.com [-name Ann]
//
// Reads the same configuration as the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/heartmarshall/lexinote-backend/internal/adapter/postgres"
	userrepo "github.com/heartmarshall/lexinote-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/lexinote-backend/internal/auth"
	"github.com/heartmarshall/lexinote-backend/internal/config"
)

func main() {
	email := flag.String("email", "", "user email (required)")
	name := flag.String("name", "", "display name for a new user")
	flag.Parse()

	if *email == "" {
		log.Fatal("-email is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	var namePtr *string
	if *name != "" {
		namePtr = name
	}

	u, err := userrepo.New(pool).GetOrCreateByEmail(ctx, *email, namePtr)
	if err != nil {
		log.Fatalf("get or create user: %v", err)
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	token, err := jwtManager.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}

	fmt.Println(token)
}
