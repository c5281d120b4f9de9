// Package datatest opens throwaway SQLite catalogs for tests.
package datatest

import (
	"testing"
	"time"
	"ui-market/internal/data"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Schema is the SQLite rendition of the MySQL migrations, plus the session
// table used by scs/sqlite3store.
const Schema = `
CREATE TABLE categories (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	slug TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE components (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	slug TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT '',
	price REAL,
	is_free BOOLEAN NOT NULL DEFAULT 0,
	is_featured BOOLEAN NOT NULL DEFAULT 0,
	is_new BOOLEAN NOT NULL DEFAULT 0,
	is_ai BOOLEAN NOT NULL DEFAULT 0,
	category_id INTEGER NOT NULL,
	created_at DATETIME NOT NULL,
	FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE CASCADE
);
CREATE INDEX idx_components_created_at ON components (created_at);

CREATE TABLE component_keywords (
	component_id INTEGER NOT NULL,
	keyword TEXT NOT NULL,
	PRIMARY KEY (component_id, keyword),
	FOREIGN KEY (component_id) REFERENCES components(id) ON DELETE CASCADE
);

CREATE TABLE orders (
	id INTEGER PRIMARY KEY,
	component_id INTEGER NOT NULL,
	buyer_subject TEXT NOT NULL,
	amount REAL NOT NULL,
	created_at DATETIME NOT NULL,
	FOREIGN KEY (component_id) REFERENCES components(id)
);

CREATE TABLE sessions (
	token TEXT PRIMARY KEY,
	data BLOB NOT NULL,
	expiry REAL NOT NULL
);
CREATE INDEX sessions_expiry_idx ON sessions(expiry);
`

// NewDB returns a private in-memory database with Schema applied. It is
// closed when the test ends.
func NewDB(t testing.TB) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", "file::memory:")
	if err != nil {
		t.Fatalf("Failed to connect to sqlite test database: %v", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	db.MustExec("PRAGMA foreign_keys = ON")
	db.MustExec(Schema)

	t.Cleanup(func() {
		db.Close()
	})
	return db
}

// InsertCategory stores a category and returns its id.
func InsertCategory(t testing.TB, db *sqlx.DB, name, slug string) int64 {
	t.Helper()
	res, err := db.Exec(`INSERT INTO categories (name, slug, description) VALUES (?, ?, ?)`, name, slug, "All about "+name)
	if err != nil {
		t.Fatalf("failed to insert category %q: %v", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatal(err)
	}
	return id
}

// InsertComponent stores c with its keywords and sets c.ID.
func InsertComponent(t testing.TB, db *sqlx.DB, c *data.Component) int64 {
	t.Helper()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	res, err := db.NamedExec(`INSERT INTO components
		(name, slug, description, price, is_free, is_featured, is_new, is_ai, category_id, created_at)
		VALUES (:name, :slug, :description, :price, :is_free, :is_featured, :is_new, :is_ai, :category_id, :created_at)`, c)
	if err != nil {
		t.Fatalf("failed to insert component %q: %v", c.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatal(err)
	}
	c.ID = id
	for _, k := range c.Keywords {
		if _, err := db.Exec(`INSERT INTO component_keywords (component_id, keyword) VALUES (?, ?)`, id, k); err != nil {
			t.Fatalf("failed to insert keyword %q: %v", k, err)
		}
	}
	return id
}

// InsertOrder stores an order for componentID.
func InsertOrder(t testing.TB, db *sqlx.DB, componentID int64, amount float64, at time.Time) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO orders (component_id, buyer_subject, amount, created_at) VALUES (?, ?, ?, ?)`,
		componentID, "buyer", amount, at.UTC())
	if err != nil {
		t.Fatalf("failed to insert order: %v", err)
	}
}

// Price returns a pointer to p for Component literals.
func Price(p float64) *float64 {
	return &p
}
