package catalog

import (
	"context"
	"database/sql"

	"github.com/FocuswithJustin/passage/core/errors"
	"github.com/FocuswithJustin/passage/core/sqlite"
)

const storeSchema = `
CREATE TABLE IF NOT EXISTS catalogs (
	id TEXT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS books (
	catalog_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	osis TEXT NOT NULL,
	name TEXT NOT NULL,
	PRIMARY KEY (catalog_id, position)
);
CREATE TABLE IF NOT EXISTS chapters (
	catalog_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	chapter INTEGER NOT NULL,
	verses INTEGER NOT NULL,
	PRIMARY KEY (catalog_id, position, chapter)
);
`

// Store keeps catalogs in a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// OpenStore opens (creating if needed) a catalog database at path and
// ensures the schema exists.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	s := NewStore(db, path)
	if err := s.Init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// OpenStoreReadOnly opens an existing catalog database for reading. The
// database is neither created nor migrated; Save on the result fails.
func OpenStoreReadOnly(ctx context.Context, path string) (*Store, error) {
	db, err := sqlite.OpenReadOnly(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.NewIO("open", path, err)
	}
	return NewStore(db, path), nil
}

// NewStore wraps an already open database; path is used in error messages.
// Call Init before first use on a new database.
func NewStore(db *sql.DB, path string) *Store {
	return &Store{db: db, path: path}
}

// Init creates the schema if it does not exist.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, storeSchema); err != nil {
		return errors.NewIO("create schema in", s.path, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores c under its ID, replacing any catalog with the same ID.
func (s *Store) Save(ctx context.Context, c *Catalog) error {
	if c.ID() == "" {
		return errors.NewValidation("id", "catalog needs an id to be stored")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewIO("begin transaction on", s.path, err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM chapters WHERE catalog_id = ?`,
		`DELETE FROM books WHERE catalog_id = ?`,
		`DELETE FROM catalogs WHERE id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, q, c.ID()); err != nil {
			return errors.NewIO("clear catalog in", s.path, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO catalogs (id) VALUES (?)`, c.ID()); err != nil {
		return errors.NewIO("insert catalog into", s.path, err)
	}

	bookStmt, err := tx.PrepareContext(ctx, `INSERT INTO books (catalog_id, position, osis, name) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return errors.NewIO("prepare insert into", s.path, err)
	}
	defer bookStmt.Close()

	chapterStmt, err := tx.PrepareContext(ctx, `INSERT INTO chapters (catalog_id, position, chapter, verses) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return errors.NewIO("prepare insert into", s.path, err)
	}
	defer chapterStmt.Close()

	for _, b := range c.books {
		if _, err := bookStmt.ExecContext(ctx, c.ID(), b.position, b.osis, b.name); err != nil {
			return errors.NewIO("insert book into", s.path, err)
		}
		for i, verses := range b.chapters {
			if _, err := chapterStmt.ExecContext(ctx, c.ID(), b.position, i+1, verses); err != nil {
				return errors.NewIO("insert chapter into", s.path, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewIO("commit", s.path, err)
	}
	return nil
}

// Load reads the catalog stored under id.
func (s *Store) Load(ctx context.Context, id string) (*Catalog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.position, b.osis, b.name, c.chapter, c.verses
		FROM books b
		JOIN chapters c ON c.catalog_id = b.catalog_id AND c.position = b.position
		WHERE b.catalog_id = ?
		ORDER BY b.position, c.chapter`, id)
	if err != nil {
		return nil, errors.NewIO("query", s.path, err)
	}
	defer rows.Close()

	var data []BookData
	for rows.Next() {
		var (
			position, chapter, verses int
			osis, name                string
		)
		if err := rows.Scan(&position, &osis, &name, &chapter, &verses); err != nil {
			return nil, errors.NewIO("scan", s.path, err)
		}
		if len(data) == 0 || data[len(data)-1].Position != position {
			data = append(data, BookData{Name: name, OSIS: osis, Position: position})
		}
		bd := &data[len(data)-1]
		if chapter != len(bd.Chapters)+1 {
			return nil, errors.NewParse("catalog store", s.path, osis+": chapters are not contiguous")
		}
		bd.Chapters = append(bd.Chapters, verses)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewIO("read rows from", s.path, err)
	}
	if len(data) == 0 {
		return nil, errors.NewNotFound("catalog", id)
	}
	return New(id, data)
}

// List returns the stored catalog ids in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM catalogs ORDER BY id`)
	if err != nil {
		return nil, errors.NewIO("query", s.path, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.NewIO("scan", s.path, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewIO("read rows from", s.path, err)
	}
	return ids, nil
}
