package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jafarshop/topup/internal/catalog"
	"github.com/jafarshop/topup/internal/config"
	"github.com/jafarshop/topup/internal/repository/backend"
	"github.com/jafarshop/topup/internal/service"
	"go.uber.org/zap"
)

// parseArgs validates the session id the same way the session middleware does
func parseArgs(args []string) (sessionID, slug string, err error) {
	if len(args) < 2 {
		return "", "", fmt.Errorf("session id and product slug are required")
	}
	id, err := uuid.Parse(strings.TrimSpace(args[0]))
	if err != nil {
		return "", "", fmt.Errorf("session id %q is not a UUID", args[0])
	}
	slug = strings.TrimSpace(args[1])
	if slug == "" {
		return "", "", fmt.Errorf("product slug is empty")
	}
	return id.String(), slug, nil
}

func main() {
	sessionID, slug, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		fmt.Println("Usage: go run cmd/show-draft/main.go <session_id> <product_slug>")
		fmt.Println("Example: go run cmd/show-draft/main.go 3f1c2a9e-8d7b-4c55-9f0e-2b6a1d4e7c10 mobile-legends")
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	registry, err := catalog.Load(cfg.Catalog.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	store, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open draft storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fmt.Printf("🔍 Draft for session %s, product %s\n\n", sessionID, slug)

	svc := service.NewDraftService(registry, store.Repos, cfg.DeepLink.BaseURL, logger)
	view, err := svc.GetDraft(ctx, sessionID, slug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load draft: %v\n", err)
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(view, "", "  ")
	fmt.Println(string(out))

	if !view.Submittable {
		fmt.Printf("\n⚠️  Not submittable yet: %s\n", view.Hint)
		return
	}

	result, err := svc.Submit(ctx, sessionID, slug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build summary: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\n%s\n\n%s\n", result.Text, result.DeepLink)
}
