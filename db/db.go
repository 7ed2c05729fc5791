package db

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
)

var DB *sql.DB

func InitDB(connStr string, maxOpenConns, maxIdleConns, connMaxLifetimeMin int) error {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return fmt.Errorf("unable to connect to database: %v", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(time.Duration(connMaxLifetimeMin) * time.Minute)

	DB = db
	log.Println("Database connected successfully")

	return runMigrations()
}

func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// runMigrations creates the match history table if it does not exist.
// Match rows are an append-only log; authoritative game state never
// touches the database.
func runMigrations() error {
	query := `
	CREATE TABLE IF NOT EXISTS matches (
		id BIGSERIAL PRIMARY KEY,
		room_id TEXT NOT NULL,
		player1 TEXT NOT NULL,
		player2 TEXT NOT NULL,
		winner TEXT NOT NULL,
		reason TEXT NOT NULL,
		move_count INT NOT NULL,
		started_at TIMESTAMPTZ NOT NULL,
		finished_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_matches_finished_at ON matches (finished_at DESC);
	`
	if _, err := DB.Exec(query); err != nil {
		return fmt.Errorf("failed to run migrations: %v", err)
	}
	return nil
}
