package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	Port           int
	DB             *sql.DB
	BulkWorkers    int
	StudentTimeout int // seconds
}

var AppConfig *Config

// Load reads environment variables (via .env in development) and opens the
// database connection pool.
func Load() error {
	if os.Getenv("GO_ENV") == "" || os.Getenv("GO_ENV") == "development" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment variables")
		}
	}

	psqlInfo := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		envOr("DB_HOST", "localhost"),
		envOr("DB_PORT", "5432"),
		envOr("DB_USER", "postgres"),
		os.Getenv("DB_PASSWORD"),
		envOr("DB_NAME", "greenhill"),
		envOr("DB_SSL_MODE", "disable"),
	)

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		return fmt.Errorf("cannot establish database connection: %w", err)
	}

	AppConfig = &Config{
		Port:           envIntOr("PORT", 8080),
		DB:             db,
		BulkWorkers:    envIntOr("REPORT_BULK_WORKERS", 4),
		StudentTimeout: envIntOr("REPORT_STUDENT_TIMEOUT", 30),
	}
	log.Println("Database connected successfully")
	return nil
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}
