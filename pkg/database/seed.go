package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
)

// SeedConfig holds configuration for seeding the database
type SeedConfig struct {
	DemoEmail     string
	DemoPassword  string
	DemoFirstName string
	DemoLastName  string
	BcryptCost    int
}

// DefaultSeedConfig returns default seed configuration
func DefaultSeedConfig() *SeedConfig {
	return &SeedConfig{
		DemoEmail:     "demo@example.com",
		DemoPassword:  "Demo@123!",
		DemoFirstName: "Demo",
		DemoLastName:  "User",
		BcryptCost:    bcrypt.DefaultCost,
	}
}

// Seed inserts a demo user if one does not already exist.
func Seed(db *sql.DB, cfg *SeedConfig) error {
	if cfg == nil {
		cfg = DefaultSeedConfig()
	}

	ctx := context.Background()

	var exists bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, cfg.DemoEmail).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check for demo user: %w", err)
	}
	if exists {
		log.Printf("Demo user %s already exists, skipping", cfg.DemoEmail)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DemoPassword), cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO users (first_name, last_name, email, password) VALUES ($1, $2, $3, $4)`,
		cfg.DemoFirstName, cfg.DemoLastName, cfg.DemoEmail, string(hash))
	if err != nil {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}

	log.Printf("Seeded demo user %s", cfg.DemoEmail)
	return nil
}
