package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/orgball2608/story-playback/internal/migrations"
	"github.com/orgball2608/story-playback/pkg/config"
	"github.com/pressly/goose/v3"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|status|reset|create <name>]")
	}

	command := os.Args[1]

	// New migrations are Go files registered in the migrations package.
	if command == "create" {
		if len(os.Args) < 3 {
			log.Fatal("Usage: migrate create <name>")
		}
		if err := goose.Create(nil, migrations.Dir, os.Args[2], "go"); err != nil {
			log.Fatalf("Failed to create migration: %v", err)
		}
		return
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	switch command {
	case "up", "down", "status", "reset":
	default:
		log.Fatalf("Unknown command: %s", command)
	}

	if err := migrations.Run(context.Background(), cfg.GetDSN(), command); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	fmt.Printf("Migration command %q finished\n", command)
}
