// Command resetadmin wipes the admin table and reinserts the configured
// account. Use it when the password is lost.
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/TimCalavera/calavera-web/internal/config"
	"github.com/TimCalavera/calavera-web/internal/repositories"
	"github.com/TimCalavera/calavera-web/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	appConfig := config.LoadAppConfig()

	db, err := config.NewDatabase(config.LoadDatabaseConfig())
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	defer db.Close()

	adminRepo := repositories.NewMySQLAdminRepository(db)
	ctx := context.Background()

	count, err := adminRepo.Count(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to count admin rows: %v", err)
	}
	log.Printf("Admin accounts in database: %d", count)

	hash, err := utils.HashPassword(appConfig.AdminPassword)
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	if err := adminRepo.ReplaceAll(ctx, appConfig.AdminUsername, hash); err != nil {
		log.Fatalf("❌ Failed to reset admin account: %v", err)
	}

	log.Printf("✓ Admin account reset")
	log.Printf("Username: %s", appConfig.AdminUsername)
}
