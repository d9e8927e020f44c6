package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"survey-sensei-be/internal/model"
	"survey-sensei-be/pkg/database"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// 3. Pre-Migration: extensions GORM AutoMigrate does not handle
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.Customer{},
		&model.Product{},
		&model.Transaction{},
		&model.Review{},
		&model.SurveySession{},
		&model.SurveyEvent{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Vector indexes for the similarity searches
	log.Println("Step 3: Creating vector indexes...")

	indexSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_products_embedding ON products USING hnsw (embedding vector_cosine_ops);`,
		`CREATE INDEX IF NOT EXISTS idx_customers_embedding ON customers USING hnsw (embedding vector_cosine_ops);`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_embedding ON reviews USING hnsw (embedding vector_cosine_ops);`,
	}

	for _, sql := range indexSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to create index: %v. Continuing...", err)
		}
	}

	log.Println("✅ Migration complete")
}
