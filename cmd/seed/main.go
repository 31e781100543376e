package main

import (
	"context"
	"log"
	"os"

	"warehouse-backend/internal/database"
	"warehouse-backend/internal/demo"

	"github.com/joho/godotenv"
)

// Loads the demo dataset into the configured database. Safe to re-run:
// existing rows are left untouched.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it")
	}

	dbHost := envOr("DB_HOST", "localhost")
	dbPort := envOr("DB_PORT", "5432")
	dbUser := envOr("DB_USER", "postgres")
	dbPassword := envOr("DB_PASSWORD", "postgres")
	dbName := envOr("DB_NAME", "warehouse_db")
	dbSslMode := envOr("DB_SSLMODE", "disable")

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	if err := demo.Seed(context.Background(), db); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
	log.Println("Seed completed.")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
