// Package builder assembles passage collections from loosely typed input:
// book names or positions, chapter numbers, verse numbers and OSIS strings.
package builder

import (
	"github.com/google/uuid"

	"github.com/FocuswithJustin/passage/core/catalog"
	"github.com/FocuswithJustin/passage/core/errors"
	"github.com/FocuswithJustin/passage/core/osis"
	"github.com/FocuswithJustin/passage/core/passage"
	"github.com/FocuswithJustin/passage/internal/logging"
)

// Config contains builder configuration options.
type Config struct {
	// Catalog resolves book names and positions (nil = built-in KJV).
	Catalog *catalog.Catalog

	// BookResolvers are consulted before the default resolvers.
	BookResolvers []BookResolver

	// VerseResolvers are consulted before the default resolvers.
	VerseResolvers []VerseResolver
}

// Selection describes one block of verses.
//
// ToChapter 0 means Chapter. An unset Verse means verse 1. An unset ToVerse
// means Verse itself when Verse is set and ToChapter is 0, and the last verse
// of the end chapter otherwise.
type Selection struct {
	Book      BookRef
	Chapter   int
	ToChapter int
	Verse     VerseRef
	ToVerse   VerseRef
}

// Builder accumulates ranges into a collection. It is not safe for
// concurrent use.
type Builder struct {
	books      []BookResolver
	verses     []VerseResolver
	collection *passage.Collection
}

// New creates a builder with the given configuration.
func New(config Config) *Builder {
	cat := config.Catalog
	if cat == nil {
		cat = catalog.KJV()
	}

	b := &Builder{collection: passage.NewCollection()}
	b.books = append(b.books, config.BookResolvers...)
	b.books = append(b.books, ValueBookResolver{}, CatalogResolver{Catalog: cat})
	b.verses = append(b.verses, config.VerseResolvers...)
	b.verses = append(b.verses, NumberVerseResolver{}, ValueVerseResolver{})
	return b
}

// Default creates a builder over the built-in KJV catalog.
func Default() *Builder {
	return New(Config{})
}

// With resolves sel and appends the resulting range.
func (b *Builder) With(sel Selection) (*passage.Range, error) {
	book, span, err := b.resolve(sel)
	if err != nil {
		return nil, err
	}
	r, err := passage.NewFromSpan(book, span)
	if err != nil {
		return nil, err
	}
	b.collection.Add(r)
	logging.Debug("range_added", "reference", r.Reference())
	return r, nil
}

// Without resolves sel and excludes it from the most recently added range.
func (b *Builder) Without(sel Selection) error {
	last := b.collection.Last()
	if last == nil {
		return errors.NewValidation("selection", "no range to exclude from")
	}
	book, span, err := b.resolve(sel)
	if err != nil {
		return err
	}
	if book.Name() != last.Book().Name() {
		return errors.NewValidationf("book", "cannot exclude %s from a range of %s", book.Name(), last.Book().Name())
	}
	if err := last.AddExclusion(span); err != nil {
		return err
	}
	logging.Debug("exclusion_added", "reference", last.Reference(), "exclusion", span.String())
	return nil
}

// WithOSIS adds one range per reference in s, e.g. "Gen.1-3 Exod.2.1-10".
// Nothing is added when any reference fails.
func (b *Builder) WithOSIS(s string) ([]*passage.Range, error) {
	sels, err := b.osisSelections(s)
	if err != nil {
		return nil, err
	}

	// Resolve everything first so a bad reference leaves the builder as it was.
	ranges := make([]*passage.Range, 0, len(sels))
	for _, sel := range sels {
		book, span, err := b.resolve(sel)
		if err != nil {
			return nil, err
		}
		r, err := passage.NewFromSpan(book, span)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	b.collection.Add(ranges...)
	for _, r := range ranges {
		logging.Debug("range_added", "reference", r.Reference())
	}
	return ranges, nil
}

// WithoutOSIS excludes each reference in s from the last range.
func (b *Builder) WithoutOSIS(s string) error {
	sels, err := b.osisSelections(s)
	if err != nil {
		return err
	}
	for _, sel := range sels {
		if err := b.Without(sel); err != nil {
			return err
		}
	}
	return nil
}

// Named sets the collection name.
func (b *Builder) Named(name string) *Builder {
	b.collection.SetName(name)
	return b
}

// Identified sets the collection id.
func (b *Builder) Identified(id string) *Builder {
	b.collection.SetID(id)
	return b
}

// GenerateID sets a random UUID as the collection id.
func (b *Builder) GenerateID() *Builder {
	b.collection.SetID(uuid.NewString())
	return b
}

// Collection returns the collection being built. Later calls on the builder
// keep modifying it.
func (b *Builder) Collection() *passage.Collection {
	return b.collection
}

// Build finishes the collection and logs it once. The builder may still be
// used afterwards; the returned collection then keeps changing.
func (b *Builder) Build() *passage.Collection {
	args := []any{}
	if name, ok := b.collection.Name(); ok {
		args = append(args, "name", name)
	}
	if id, ok := b.collection.ID(); ok {
		args = append(args, "id", id)
	}
	logging.CollectionBuilt(b.collection.Len(), b.collection.Reference(), args...)
	return b.collection
}

// ResolveBook runs ref through the resolver chain.
func (b *Builder) ResolveBook(ref BookRef) (passage.Book, error) {
	return resolveBook(b.books, ref)
}

func (b *Builder) resolve(sel Selection) (passage.Book, passage.Span, error) {
	book, err := resolveBook(b.books, sel.Book)
	if err != nil {
		return nil, passage.Span{}, err
	}

	startCh := sel.Chapter
	endCh := sel.ToChapter
	if endCh == 0 {
		endCh = startCh
	}
	for _, ch := range []int{startCh, endCh} {
		if book.ChapterVerseCount(ch) < 1 {
			return nil, passage.Span{}, errors.NewValidationf("chapter", "%s has no chapter %d", book.Name(), ch)
		}
	}

	startV := 1
	if sel.Verse.IsSet() {
		if startV, err = resolveVerse(b.verses, book, startCh, sel.Verse); err != nil {
			return nil, passage.Span{}, err
		}
	}

	var endV int
	switch {
	case sel.ToVerse.IsSet():
		if endV, err = resolveVerse(b.verses, book, endCh, sel.ToVerse); err != nil {
			return nil, passage.Span{}, err
		}
	case sel.Verse.IsSet() && sel.ToChapter == 0:
		endV = startV
	default:
		endV = book.ChapterVerseCount(endCh)
	}

	if err := checkVerse(book, startCh, startV); err != nil {
		return nil, passage.Span{}, err
	}
	if err := checkVerse(book, endCh, endV); err != nil {
		return nil, passage.Span{}, err
	}

	span := passage.NewSpan(startCh, endCh, startV, endV)
	if err := span.Validate(); err != nil {
		return nil, passage.Span{}, err
	}
	return book, span, nil
}

func checkVerse(book passage.Book, chapter, verse int) error {
	if n := book.ChapterVerseCount(chapter); verse < 1 || verse > n {
		return errors.NewValidationf("verse", "%s %d has no verse %d", book.Name(), chapter, verse)
	}
	return nil
}

// osisSelections parses s and turns each reference into a Selection.
func (b *Builder) osisSelections(s string) ([]Selection, error) {
	refs, err := osis.Parse(s)
	if err != nil {
		return nil, err
	}

	sels := make([]Selection, 0, len(refs))
	for _, ref := range refs {
		sel, err := b.selectionFromRef(ref)
		if err != nil {
			return nil, err
		}
		sels = append(sels, sel)
	}
	return sels, nil
}

func (b *Builder) selectionFromRef(ref osis.Ref) (Selection, error) {
	book, err := resolveBook(b.books, BookNamed(ref.Book))
	if err != nil {
		return Selection{}, err
	}
	if ref.IsRange() && ref.EndBook != ref.Book {
		end, err := resolveBook(b.books, BookNamed(ref.EndBook))
		if err != nil {
			return Selection{}, err
		}
		if end.Name() != book.Name() {
			return Selection{}, errors.NewValidationf("reference", "%s spans more than one book", ref)
		}
	}

	sel := Selection{Book: BookValue(book), Chapter: ref.Chapter}
	if ref.Verse > 0 {
		sel.Verse = VerseNumber(ref.Verse)
	}
	wholeBook := ref.Chapter == 0
	if wholeBook {
		sel.Chapter = 1
	}

	switch {
	case ref.IsRange():
		sel.ToChapter = ref.EndChapter
		if sel.ToChapter == 0 {
			sel.ToChapter = lastChapter(book)
		}
		if ref.EndVerse > 0 {
			sel.ToVerse = VerseNumber(ref.EndVerse)
		}
	case wholeBook:
		sel.ToChapter = lastChapter(book)
	}
	return sel, nil
}

// lastChapter returns the highest chapter with verses.
func lastChapter(book passage.Book) int {
	if c, ok := book.(interface{ ChapterCount() int }); ok {
		return c.ChapterCount()
	}
	n := 0
	for book.ChapterVerseCount(n+1) > 0 {
		n++
	}
	return n
}
