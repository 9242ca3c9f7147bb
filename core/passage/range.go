package passage

import (
	"fmt"

	"github.com/FocuswithJustin/passage/core/errors"
)

// Range is a contiguous span of one book with optional exclusions.
// The book and primary span are fixed at construction; only the exclusion
// list changes afterwards.
type Range struct {
	book       Book
	span       Span
	exclusions []Span
}

// New creates a Range of book from startChapter:startVerse to
// endChapter:endVerse.
func New(book Book, startChapter, endChapter, startVerse, endVerse int) (*Range, error) {
	return NewFromSpan(book, NewSpan(startChapter, endChapter, startVerse, endVerse))
}

// NewFromSpan creates a Range of book covering span.
func NewFromSpan(book Book, span Span) (*Range, error) {
	if book == nil {
		return nil, errors.NewValidation("book", "a range needs a book")
	}
	if err := span.Validate(); err != nil {
		return nil, err
	}
	return &Range{book: book, span: span}, nil
}

// Chapters creates a Range of whole chapters.
func Chapters(book Book, startChapter, endChapter int) (*Range, error) {
	if book == nil {
		return nil, errors.NewValidation("book", "a range needs a book")
	}
	return NewFromSpan(book, ChapterSpan(book, startChapter, endChapter))
}

// Book returns the range's book.
func (r *Range) Book() Book { return r.book }

// Span returns the primary span.
func (r *Range) Span() Span { return r.span }

// StartChapter returns the first chapter of the range.
func (r *Range) StartChapter() int { return r.span.StartChapter }

// EndChapter returns the last chapter of the range.
func (r *Range) EndChapter() int { return r.span.EndChapter }

// StartVerse returns the first verse of StartChapter.
func (r *Range) StartVerse() int { return r.span.StartVerse }

// EndVerse returns the last verse of EndChapter.
func (r *Range) EndVerse() int { return r.span.EndVerse }

// ChapterCount returns the number of chapters the range touches.
func (r *Range) ChapterCount() int {
	return r.span.EndChapter - r.span.StartChapter + 1
}

// Exclusions returns a copy of the exclusion list in insertion order.
func (r *Range) Exclusions() []Span {
	out := make([]Span, len(r.exclusions))
	copy(out, r.exclusions)
	return out
}

// HasExclusions reports whether any exclusion has been added.
func (r *Range) HasExclusions() bool {
	return len(r.exclusions) > 0
}

// Contains reports whether v is inside the range and not excluded.
// Books are compared by name.
func (r *Range) Contains(v Verse) bool {
	if v == nil || !sameBook(r.book, v.Book()) {
		return false
	}
	return r.covers(v.ChapterNumber(), v.Number())
}

// covers is Contains without the book check.
func (r *Range) covers(chapter, verse int) bool {
	if !r.span.Covers(chapter, verse) {
		return false
	}
	for _, ex := range r.exclusions {
		if ex.Covers(chapter, verse) {
			return false
		}
	}
	return true
}

// AddExclusion appends span to the exclusion list. The span must be well
// formed and lie within the range's chapters; verse bounds on the boundary
// chapters are not checked. On error the range is unchanged.
func (r *Range) AddExclusion(span Span) error {
	if err := span.Validate(); err != nil {
		return errors.Wrap(err, "exclusion")
	}
	if span.StartChapter < r.span.StartChapter {
		return &errors.ValidationError{
			Field:   "exclusion",
			Value:   span.String(),
			Message: fmt.Sprintf("start chapter %d is before the range start chapter %d", span.StartChapter, r.span.StartChapter),
		}
	}
	if span.EndChapter > r.span.EndChapter {
		return &errors.ValidationError{
			Field:   "exclusion",
			Value:   span.String(),
			Message: fmt.Sprintf("end chapter %d is after the range end chapter %d", span.EndChapter, r.span.EndChapter),
		}
	}
	r.exclusions = append(r.exclusions, span)
	return nil
}

// addExclusionUnsafe appends span without validation. Callers must already
// know the span is inside the range.
func (r *Range) addExclusionUnsafe(span Span) {
	r.exclusions = append(r.exclusions, span)
}

// RemoveExclusion removes every exclusion equal to span.
func (r *Range) RemoveExclusion(span Span) {
	kept := r.exclusions[:0]
	for _, ex := range r.exclusions {
		if ex != span {
			kept = append(kept, ex)
		}
	}
	r.exclusions = kept
}

// Equal reports whether other has the same book name, primary span and
// exclusion list (in order).
func (r *Range) Equal(other *Range) bool {
	if r == nil || other == nil {
		return r == other
	}
	if !sameBook(r.book, other.book) || r.span != other.span {
		return false
	}
	if len(r.exclusions) != len(other.exclusions) {
		return false
	}
	for i := range r.exclusions {
		if r.exclusions[i] != other.exclusions[i] {
			return false
		}
	}
	return true
}

// String returns the human-readable reference.
func (r *Range) String() string {
	return r.Reference()
}
