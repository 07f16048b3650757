package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/spidevmax/craterra/internal/config"
	"github.com/spidevmax/craterra/internal/db"
	"github.com/spidevmax/craterra/internal/model"
	"github.com/spidevmax/craterra/internal/repository"
)

func main() {
	log.Println("Starting admin seed...")

	// Load configuration
	cfg := config.Load()
	if cfg.AdminPassword == "" {
		log.Fatal("ADMIN_PASSWORD must be set")
	}

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	users := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	created, err := seedAdmin(ctx, users, cfg)
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	if created {
		log.Printf("Admin account created: %s", cfg.AdminEmail)
	} else {
		log.Printf("Existing account promoted to admin: %s", cfg.AdminEmail)
	}
}

// seedAdmin creates the configured admin account, or promotes and re-keys
// an existing account with the same email. Registration only ever produces
// the "user" role, so this is how the first admin comes to be.
func seedAdmin(ctx context.Context, users repository.UserRepository, cfg *config.Config) (created bool, err error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	existing, err := users.FindByEmail(ctx, cfg.AdminEmail)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if existing != nil {
		existing.Name = cfg.AdminName
		existing.Role = model.RoleAdmin
		existing.PasswordHash = string(hash)
		return false, users.Update(ctx, existing)
	}

	admin := &model.User{
		Name:         cfg.AdminName,
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}
	return true, users.Create(ctx, admin)
}
