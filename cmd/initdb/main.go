// Command initdb creates the predictions and users tables. Intended
// as a one-shot bootstrap before first deploy; the API also migrates
// on startup, so running it is optional on managed environments.
package main

import (
	"context"
	"fmt"
	"log"

	"aqi-prediction-api/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS predictions (
	id            BIGSERIAL PRIMARY KEY,
	state         VARCHAR(100),
	location      VARCHAR(100),
	area_type     VARCHAR(100),
	so2           DOUBLE PRECISION,
	no2           DOUBLE PRECISION,
	rspm          DOUBLE PRECISION,
	predicted_aqi DOUBLE PRECISION,
	category      VARCHAR(50),
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_predictions_created_at ON predictions (created_at DESC);
CREATE INDEX IF NOT EXISTS idx_predictions_location ON predictions (location);

CREATE TABLE IF NOT EXISTS users (
	id            BIGSERIAL PRIMARY KEY,
	name          VARCHAR(100) NOT NULL,
	email         VARCHAR(255) NOT NULL UNIQUE,
	password_hash VARCHAR(255) NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Database.User, cfg.Database.Password,
		cfg.Database.Host, cfg.Database.Port,
		cfg.Database.Name, cfg.Database.SSLMode,
	)

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("db pool init failed: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("db ping failed: %v", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		log.Fatalf("schema creation failed: %v", err)
	}

	log.Printf("schema ready: predictions, users")
}
