package builder

import (
	"fmt"

	"github.com/FocuswithJustin/passage/core/catalog"
	"github.com/FocuswithJustin/passage/core/errors"
	"github.com/FocuswithJustin/passage/core/passage"
)

// BookResolver turns a BookRef into a book. Resolvers are consulted in order
// and the first one that accepts a reference resolves it.
type BookResolver interface {
	Accepts(ref BookRef) bool
	ResolveBook(ref BookRef) (passage.Book, error)
}

// VerseResolver turns a VerseRef into a verse number within chapter of book.
type VerseResolver interface {
	Accepts(ref VerseRef) bool
	ResolveVerse(book passage.Book, chapter int, ref VerseRef) (int, error)
}

// ValueBookResolver accepts BookValue references.
type ValueBookResolver struct{}

// Accepts implements BookResolver.
func (ValueBookResolver) Accepts(ref BookRef) bool {
	_, ok := ref.Value()
	return ok
}

// ResolveBook implements BookResolver.
func (ValueBookResolver) ResolveBook(ref BookRef) (passage.Book, error) {
	b, _ := ref.Value()
	return b, nil
}

// CatalogResolver resolves names and positions against a catalog.
type CatalogResolver struct {
	Catalog *catalog.Catalog
}

// Accepts implements BookResolver.
func (r CatalogResolver) Accepts(ref BookRef) bool {
	if r.Catalog == nil {
		return false
	}
	_, named := ref.Name()
	_, at := ref.Position()
	return named || at
}

// ResolveBook implements BookResolver. A name or position missing from the
// catalog is a ValidationError wrapping the catalog's NotFoundError.
func (r CatalogResolver) ResolveBook(ref BookRef) (passage.Book, error) {
	var (
		b   *catalog.Book
		err error
	)
	if pos, ok := ref.Position(); ok {
		b, err = r.Catalog.ByPosition(pos)
	} else {
		name, _ := ref.Name()
		b, err = r.Catalog.Lookup(name)
	}
	if err != nil {
		return nil, &errors.ValidationError{
			Field:   "book",
			Value:   ref.String(),
			Message: fmt.Sprintf("cannot resolve book %s: %v", ref, err),
			Err:     err,
		}
	}
	return b, nil
}

// NumberVerseResolver accepts VerseNumber references.
type NumberVerseResolver struct{}

// Accepts implements VerseResolver.
func (NumberVerseResolver) Accepts(ref VerseRef) bool {
	_, ok := ref.Number()
	return ok
}

// ResolveVerse implements VerseResolver.
func (NumberVerseResolver) ResolveVerse(_ passage.Book, _ int, ref VerseRef) (int, error) {
	n, _ := ref.Number()
	return n, nil
}

// ValueVerseResolver accepts VerseValue references whose book and chapter
// match the selection.
type ValueVerseResolver struct{}

// Accepts implements VerseResolver.
func (ValueVerseResolver) Accepts(ref VerseRef) bool {
	_, ok := ref.Value()
	return ok
}

// ResolveVerse implements VerseResolver.
func (ValueVerseResolver) ResolveVerse(book passage.Book, chapter int, ref VerseRef) (int, error) {
	v, _ := ref.Value()
	if vb := v.Book(); vb == nil || vb.Name() != book.Name() {
		return 0, errors.NewValidationf("verse", "verse %s is not in %s", ref, book.Name())
	}
	if v.ChapterNumber() != chapter {
		return 0, errors.NewValidationf("verse", "verse %s is not in chapter %d", ref, chapter)
	}
	return v.Number(), nil
}

func resolveBook(resolvers []BookResolver, ref BookRef) (passage.Book, error) {
	for _, r := range resolvers {
		if r.Accepts(ref) {
			return r.ResolveBook(ref)
		}
	}
	return nil, errors.NewValidationf("book", "no resolver accepts book %s", ref)
}

func resolveVerse(resolvers []VerseResolver, book passage.Book, chapter int, ref VerseRef) (int, error) {
	for _, r := range resolvers {
		if r.Accepts(ref) {
			return r.ResolveVerse(book, chapter, ref)
		}
	}
	return 0, errors.NewValidationf("verse", "no resolver accepts verse %s", ref)
}
