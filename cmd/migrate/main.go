// ABOUTME: Migration utility for moving deal data between store backends.
// ABOUTME: Provides dry-run and backup capabilities for safe migration.

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/yasunobu-co-ltd-coder/matip/config"
	"github.com/yasunobu-co-ltd-coder/matip/db"
	"github.com/yasunobu-co-ltd-coder/matip/deals"
)

func main() {
	direction := flag.String("direction", "up", "Migration direction: up (sqlite -> supabase) or down (supabase -> sqlite)")
	dbPath := flag.String("db", "", "SQLite database path (default: configured path)")
	dryRun := flag.Bool("dry-run", false, "Show what would happen without making changes")
	backup := flag.Bool("backup", true, "Back up the SQLite file before a down migration")
	flag.Parse()

	cfg := config.Load()
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
		log.Fatal("Error: SUPABASE_URL and SUPABASE_ANON_KEY are required")
	}

	if err := migrate(cfg, *direction, *dryRun, *backup); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migration completed successfully")
}

type store interface {
	deals.Repository
	deals.UserRepository
}

func migrate(cfg config.Config, direction string, dryRun, createBackup bool) error {
	database, err := db.OpenDatabase(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = database.Close() }()

	local := db.NewStore(database)
	remote := db.NewRemoteStore(cfg.SupabaseURL, cfg.SupabaseKey)

	var source, target store
	switch direction {
	case "up":
		source, target = local, remote
	case "down":
		source, target = remote, local
		if createBackup && !dryRun {
			if err := backupFile(cfg.DBPath); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown direction: %s (valid: up, down)", direction)
	}

	ctx := context.Background()

	users, err := source.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list source users: %w", err)
	}
	records, err := source.ListDeals(ctx)
	if err != nil {
		return fmt.Errorf("failed to list source deals: %w", err)
	}

	log.Printf("Source: %d user(s), %d deal(s)", len(users), len(records))

	if dryRun {
		for _, u := range users {
			log.Printf("  would migrate user: %s", u.Name)
		}
		for _, d := range records {
			log.Printf("  would migrate deal: %s (%s, due %s)", d.ID, d.Status, d.DueDate)
		}
		log.Println("Dry run; no changes made")
		return nil
	}

	for _, u := range users {
		if _, err := target.AddUser(ctx, u.Name); err != nil {
			return fmt.Errorf("failed to migrate user %s: %w", u.Name, err)
		}
	}
	for _, d := range records {
		if _, err := target.CreateDeal(ctx, d); err != nil {
			return fmt.Errorf("failed to migrate deal %s: %w", d.ID, err)
		}
	}

	log.Printf("Migrated %d user(s) and %d deal(s)", len(users), len(records))
	return nil
}

func backupFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	backupPath := fmt.Sprintf("%s.backup.%s", path, time.Now().Format("20060102-150405"))
	log.Printf("Creating backup: %s", backupPath)

	input, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read database: %w", err)
	}
	if err := os.WriteFile(backupPath, input, 0644); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}
	log.Println("Backup created successfully")
	return nil
}
