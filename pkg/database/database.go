package database

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

const schema = `
CREATE TABLE IF NOT EXISTS insights (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	level TEXT NOT NULL,
	summary TEXT NOT NULL,
	consistency INTEGER NOT NULL,
	project_quality INTEGER NOT NULL,
	open_source INTEGER NOT NULL,
	documentation INTEGER NOT NULL,
	branding INTEGER NOT NULL,
	hiring_readiness INTEGER NOT NULL,
	missing TEXT NOT NULL,
	plan TEXT NOT NULL,
	recruiter TEXT NOT NULL,
	raw TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_insights_created_at ON insights(created_at);
`

// Init initializes the SQLite database connection
func Init(path string) error {
	var err error

	// Open SQLite database (creates if doesn't exist)
	DB, err = sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=ON&_busy_timeout=30000")
	if err != nil {
		return err
	}

	// Configure connection pool
	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(10)
	DB.SetConnMaxLifetime(time.Hour)

	// Test the connection
	if err = DB.Ping(); err != nil {
		return err
	}

	if _, err = DB.Exec(schema); err != nil {
		return err
	}

	log.Println("Database connected successfully with WAL mode")

	return nil
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
