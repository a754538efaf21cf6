package config

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

func LoadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		User:     getEnv("DB_USER", "calavera"),
		Password: getEnv("DB_PASSWORD", "calavera"),
		DBName:   getEnv("DB_NAME", "calavera"),
	}
}

// DSN enables multiStatements so migration files can hold several statements.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&multiStatements=true",
		c.User, c.Password, c.Host, c.Port, c.DBName)
}

func NewDatabase(config *DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("mysql", config.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

// NewDatabaseWithRetry waits for the database to come up, then runs the
// migration files before handing the pool back.
func NewDatabaseWithRetry(config *DatabaseConfig) (*sqlx.DB, error) {
	maxRetries := 30
	retryInterval := 2 * time.Second

	log.Printf("📦 Connecting to database: %s@%s:%s/%s", config.User, config.Host, config.Port, config.DBName)

	var err error
	for i := 0; i < maxRetries; i++ {
		var db *sqlx.DB
		db, err = sqlx.Connect("mysql", config.DSN())
		if err == nil {
			db.SetMaxOpenConns(25)
			db.SetMaxIdleConns(5)

			if pingErr := db.Ping(); pingErr == nil {
				log.Printf("✅ Database connection established: %s@%s:%s/%s", config.User, config.Host, config.Port, config.DBName)

				if migErr := runMigrations(db); migErr != nil {
					log.Printf("⚠️ Migration warning: %v", migErr)
				}

				return db, nil
			} else {
				db.Close()
				err = pingErr
			}
		}

		if i == 0 {
			log.Printf("⏳ Waiting for database to come up... (up to %d attempts)", maxRetries)
		}

		if i < maxRetries-1 {
			log.Printf("⏳ Retry %d/%d: %v", i+1, maxRetries, err)
			time.Sleep(retryInterval)
		}
	}

	return nil, fmt.Errorf("database connection failed after %d attempts: %w", maxRetries, err)
}

func runMigrations(db *sqlx.DB) error {
	log.Printf("🔧 Running database migrations...")

	return runMigrationFiles(db, "migrations")
}

// runMigrationFiles executes every .sql file in the directory in name order.
func runMigrationFiles(db *sqlx.DB, migrationDir string) error {
	files, err := os.ReadDir(migrationDir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("⚠️ Migration directory not found: %s", migrationDir)
			return nil
		}
		return fmt.Errorf("failed to read migration directory: %w", err)
	}

	var sqlFiles []string
	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(file.Name(), ".sql") {
			sqlFiles = append(sqlFiles, file.Name())
		}
	}
	sort.Strings(sqlFiles)

	if len(sqlFiles) == 0 {
		log.Printf("⚠️ No migration files found")
		return nil
	}

	for _, filename := range sqlFiles {
		path := fmt.Sprintf("%s/%s", migrationDir, filename)
		log.Printf("📄 Applying migration: %s", filename)

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", filename, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", filename, err)
		}

		log.Printf("✅ Migration applied: %s", filename)
	}

	log.Printf("🎉 All migrations complete")
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
