package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQL is a Store that keeps each collection document in a single
// `collections` row. The document contract stays identical to the
// file backend; what MySQL adds is a transactional replace, so a
// Write is atomic even across processes sharing the database.
type MySQL struct {
	db *sql.DB
}

// OpenMySQL connects to MySQL, verifies the connection and returns a
// store bound to it.
func OpenMySQL(user, pass, host, port, name string) (*MySQL, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime/loc keep DATETIME handling consistent in UTC
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &MySQL{db: db}, nil
}

// EnsureSchema creates the collections table when it does not exist.
func (m *MySQL) EnsureSchema(ctx context.Context) error {
	const ddl = `CREATE TABLE IF NOT EXISTS collections (
		name       VARCHAR(64)  NOT NULL PRIMARY KEY,
		doc        LONGTEXT     NOT NULL,
		updated_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) CHARACTER SET utf8mb4`
	if _, err := m.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("store: ensure schema: %w", err)
	}
	return nil
}

// Read loads the collection document and decodes it into out. An
// absent row or an unparsable document reads as an empty collection.
func (m *MySQL) Read(ctx context.Context, collection string, out any) error {
	var doc []byte
	err := m.db.QueryRowContext(ctx,
		`SELECT doc FROM collections WHERE name = ?`, collection).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("store: read %s: %w", collection, err)
	}
	if err := json.Unmarshal(doc, out); err != nil {
		log.Printf("store: collection %s is corrupt, treating as empty: %v", collection, err)
		return nil
	}
	return nil
}

// Write replaces the collection document inside a transaction.
func (m *MySQL) Write(ctx context.Context, collection string, in any) error {
	doc, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("store: marshal %s: %w", collection, err)
	}
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin write %s: %w", collection, err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO collections (name, doc) VALUES (?, ?)
		 ON DUPLICATE KEY UPDATE doc = VALUES(doc)`,
		collection, doc)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("store: write %s: %w", collection, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit %s: %w", collection, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (m *MySQL) Close() error { return m.db.Close() }
