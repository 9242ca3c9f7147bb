// Package catalog provides book catalogs: display names, canonical positions
// and verse counts per chapter, loaded from the built-in KJV table, catalog
// files or a SQLite database.
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/passage/core/errors"
	"github.com/FocuswithJustin/passage/core/passage"
)

// Catalog is an immutable, ordered set of books.
type Catalog struct {
	id         string
	books      []*Book
	byKey      map[string]*Book
	byPosition map[int]*Book
}

// New builds a catalog from book descriptions. A book without a position
// takes its 1-based index in data.
func New(id string, data []BookData) (*Catalog, error) {
	if len(data) == 0 {
		return nil, errors.NewValidation("books", "catalog has no books")
	}

	c := &Catalog{
		id:         id,
		books:      make([]*Book, 0, len(data)),
		byKey:      make(map[string]*Book, 2*len(data)),
		byPosition: make(map[int]*Book, len(data)),
	}

	for i, d := range data {
		b, err := newBook(d, i+1)
		if err != nil {
			return nil, err
		}
		if _, dup := c.byPosition[b.position]; dup {
			return nil, errors.NewValidationf("books", "duplicate position %d (%s)", b.position, b.osis)
		}
		for _, key := range []string{normalizeKey(b.osis), normalizeKey(b.name)} {
			if other, dup := c.byKey[key]; dup && other != b {
				return nil, errors.NewValidationf("books", "%q is ambiguous between %s and %s", key, other.osis, b.osis)
			}
			c.byKey[key] = b
		}
		c.byPosition[b.position] = b
		c.books = append(c.books, b)
	}
	return c, nil
}

func newBook(d BookData, defaultPosition int) (*Book, error) {
	field := fmt.Sprintf("books[%d]", defaultPosition-1)
	if strings.TrimSpace(d.OSIS) == "" {
		return nil, errors.NewValidation(field, "missing OSIS id")
	}
	if strings.TrimSpace(d.Name) == "" {
		return nil, errors.NewValidationf(field, "%s has no name", d.OSIS)
	}
	if len(d.Chapters) == 0 {
		return nil, errors.NewValidationf(field, "%s has no chapters", d.OSIS)
	}
	for i, count := range d.Chapters {
		if count < 1 {
			return nil, errors.NewValidationf(field, "%s chapter %d has %d verses", d.OSIS, i+1, count)
		}
	}
	position := d.Position
	if position == 0 {
		position = defaultPosition
	}
	if position < 0 {
		return nil, errors.NewValidationf(field, "%s has negative position %d", d.OSIS, position)
	}

	chapters := make([]int, len(d.Chapters))
	copy(chapters, d.Chapters)
	return &Book{
		name:     d.Name,
		osis:     d.OSIS,
		position: position,
		chapters: chapters,
	}, nil
}

// normalizeKey folds case and drops spaces so "1 John", "1john" and "1John"
// all match.
func normalizeKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// ID returns the catalog identifier, e.g. "KJV".
func (c *Catalog) ID() string { return c.id }

// Len returns the number of books.
func (c *Catalog) Len() int { return len(c.books) }

// Books returns the books in catalog order.
func (c *Catalog) Books() []*Book {
	out := make([]*Book, len(c.books))
	copy(out, c.books)
	return out
}

// Lookup finds a book by OSIS id or display name, ignoring case and spaces.
// A decimal string is treated as a position.
func (c *Catalog) Lookup(key string) (*Book, error) {
	if b, ok := c.byKey[normalizeKey(key)]; ok {
		return b, nil
	}
	if pos, err := strconv.Atoi(strings.TrimSpace(key)); err == nil {
		return c.ByPosition(pos)
	}
	return nil, errors.NewNotFound("book", key)
}

// ByPosition finds a book by canonical position.
func (c *Catalog) ByPosition(position int) (*Book, error) {
	if b, ok := c.byPosition[position]; ok {
		return b, nil
	}
	return nil, errors.NewNotFound("book", "position "+strconv.Itoa(position))
}

// BookByPosition implements passage.BookLookup.
func (c *Catalog) BookByPosition(position int) (passage.Book, error) {
	b, err := c.ByPosition(position)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Document returns the serializable form of the catalog.
func (c *Catalog) Document() Document {
	doc := Document{ID: c.id, Books: make([]BookData, len(c.books))}
	for i, b := range c.books {
		doc.Books[i] = b.Data()
	}
	return doc
}
