// adminctl is the terminal admin dashboard for WhatToEat: login, CRUD over
// recipes, categories, ingredients, steps, users and images, and the recipe
// editing workflow.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/whattoeat/client_layer/internal/api"
	"github.com/whattoeat/client_layer/internal/config"
	"github.com/whattoeat/client_layer/internal/session"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: adminctl <command> [arguments]

  login -username <name> -password <pw>   authenticate on the admin surface
  logout                                  end the session
  whoami                                  show the current session

  recipes list|get|delete|apply           recipe management
  categories list|get|create|update|delete
  ingredients list|get|create|update|delete
  steps list|get|delete
  users list|get|delete
  images list|upload|delete`)
	os.Exit(2)
}

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
	}

	// Missing .env is fine; the config file and defaults cover it.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("adminctl: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("adminctl: init logger: %v", err)
	}
	defer logger.Sync()

	sessions, err := session.Open(cfg.SessionPath)
	if err != nil {
		log.Fatalf("adminctl: %v", err)
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	client, err := api.New(api.Config{
		BaseURL:  cfg.APIBaseURL,
		Sessions: sessions,
		Logger:   logger,
		Limiter:  limiter,
	})
	if err != nil {
		log.Fatalf("adminctl: %v", err)
	}

	ctx := context.Background()
	app := &app{client: client, log: logger}

	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("adminctl: %v", err)
	}
}

type app struct {
	client *api.Client
	log    *zap.Logger
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.client.Auth().LogoutAdmin(ctx)
	case "whoami":
		return a.whoami()
	case "recipes":
		return a.recipes(ctx, args)
	case "categories":
		return a.categories(ctx, args)
	case "ingredients":
		return a.ingredients(ctx, args)
	case "steps":
		return a.steps(ctx, args)
	case "users":
		return a.users(ctx, args)
	case "images":
		return a.images(ctx, args)
	default:
		usage()
		return nil
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("username", "", "admin username")
	password := fs.String("password", "", "admin password (or ADMIN_PASSWORD env)")
	fs.Parse(args)

	if *password == "" {
		*password = os.Getenv("ADMIN_PASSWORD")
	}
	if *username == "" || *password == "" {
		return fmt.Errorf("login: username and password are required")
	}

	resp, err := a.client.Auth().LoginAdmin(ctx, *username, *password)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s\n", resp.Username)
	return nil
}

func (a *app) whoami() error {
	snap := a.client.Sessions().Snapshot()
	if !snap.Authenticated {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("logged in as %s\n", snap.Username)
	if exp, ok := a.client.Sessions().AccessTokenExpiry(); ok {
		fmt.Printf("access token expires %s\n", exp.Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}
