package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"user-management/config"
	"user-management/pkg/database"
)

const usage = `
User Management - Database CLI Tool

Usage:
  migrate [command] [flags]

Commands:
  up          Apply all SQL migrations (idempotent)
  status      Show database connection and table status
  seed        Seed the database with a demo user

Flags:
  -migrations string  Path to migrations directory (default "migrations")
  -demo-email string  Demo email for seeding (default "demo@example.com")
  -demo-pass string   Demo password for seeding (default "Demo@123!")

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go status
  go run cmd/migrate/main.go seed
`

func main() {
	// Define flags
	migrationsDir := flag.String("migrations", "migrations", "Path to migrations directory")
	demoEmail := flag.String("demo-email", "demo@example.com", "Demo email for seeding")
	demoPass := flag.String("demo-pass", "Demo@123!", "Demo password for seeding")

	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)

	// Load config and connect to database
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	switch command {
	case "up":
		runMigrationsUp(db, *migrationsDir)
	case "status":
		showStatus(db)
	case "seed":
		runSeed(db, *demoEmail, *demoPass, cfg.BcryptCost)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func runMigrationsUp(db *sql.DB, migrationsDir string) {
	log.Println("🚀 Running migrations UP...")

	if err := database.ApplyRawMigrations(db, migrationsDir); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	log.Println("✅ Migrations completed successfully!")
}

func showStatus(db *sql.DB) {
	log.Println("🔍 Checking database status...")

	if err := database.HealthCheck(db); err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	log.Println("✅ Database connection: OK")

	exists, err := database.TableExists(db, "users")
	if err != nil {
		log.Fatalf("⚠️  Error checking table users: %v", err)
	}
	if exists {
		count, _ := database.GetTableCount(db, "users")
		log.Printf("✅ Table %-10s exists (%d rows)", "users", count)
	} else {
		log.Printf("❌ Table %-10s does not exist", "users")
	}
}

func runSeed(db *sql.DB, demoEmail, demoPass string, bcryptCost int) {
	log.Println("🌱 Seeding database...")

	seedCfg := database.DefaultSeedConfig()
	seedCfg.DemoEmail = demoEmail
	seedCfg.DemoPassword = demoPass
	seedCfg.BcryptCost = bcryptCost

	if err := database.Seed(db, seedCfg); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✅ Seeding completed successfully!")
}
