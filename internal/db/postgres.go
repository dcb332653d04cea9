package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("Connected to PostgreSQL")

	if err := initSchema(pool); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return pool
}

// initSchema creates or updates the database schema
func initSchema(pool *pgxpool.Pool) error {
	ctx := context.Background()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'COLLECTOR',
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS wines (
			id UUID PRIMARY KEY,
			name VARCHAR(500) NOT NULL,
			producer VARCHAR(300),
			vintage INTEGER,
			grape_variety TEXT[],
			region VARCHAR(200),
			country VARCHAR(100),
			appellation VARCHAR(200),
			abv NUMERIC(4,2),
			type VARCHAR(20) NOT NULL DEFAULT 'red',
			body SMALLINT,
			tannin SMALLINT,
			acidity SMALLINT,
			sweetness SMALLINT,
			food_pairing TEXT[],
			flavor_notes TEXT[],
			serving_temp_min SMALLINT,
			serving_temp_max SMALLINT,
			drinking_window_start INTEGER,
			drinking_window_end INTEGER,
			description TEXT,
			image_url VARCHAR(500),
			ai_confidence NUMERIC(3,2),
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_wines_name ON wines (name)`,
		`CREATE INDEX IF NOT EXISTS idx_wines_vintage ON wines (vintage)`,

		`CREATE TABLE IF NOT EXISTS user_wines (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			wine_id UUID NOT NULL REFERENCES wines(id) ON DELETE RESTRICT,
			quantity INTEGER NOT NULL DEFAULT 1,
			status VARCHAR(20) NOT NULL DEFAULT 'owned',
			purchase_date DATE,
			purchase_price NUMERIC(10,2),
			purchase_place VARCHAR(200),
			personal_note TEXT,
			personal_rating SMALLINT,
			original_image_url VARCHAR(500),
			label_number VARCHAR(20),
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_user_wines_user ON user_wines (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_user_wines_wine ON user_wines (wine_id)`,

		`CREATE TABLE IF NOT EXISTS scan_sessions (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			scan_id VARCHAR(64) UNIQUE NOT NULL,
			image_urls JSONB NOT NULL DEFAULT '[]',
			wine_data JSONB NOT NULL DEFAULT '{}',
			confidence NUMERIC(4,3),
			existing_wine_id UUID REFERENCES wines(id) ON DELETE SET NULL,
			is_duplicate BOOLEAN NOT NULL DEFAULT FALSE,
			version INTEGER NOT NULL DEFAULT 1,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scan_sessions_user ON scan_sessions (user_id)`,

		`CREATE TABLE IF NOT EXISTS recommendation_cache (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			query_hash VARCHAR(64) NOT NULL,
			response JSONB NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL,
			UNIQUE (user_id, query_hash)
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	log.Println("Schema initialized successfully")
	return nil
}
