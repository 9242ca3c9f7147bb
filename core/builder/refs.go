package builder

import (
	"strconv"

	"github.com/FocuswithJustin/passage/core/passage"
)

type bookKind int

const (
	bookUnset bookKind = iota
	bookNamed
	bookAt
	bookValue
)

// BookRef identifies a book by name, by canonical position or directly.
// The zero value identifies nothing.
type BookRef struct {
	kind     bookKind
	name     string
	position int
	book     passage.Book
}

// BookNamed refers to a book by OSIS id or display name.
func BookNamed(name string) BookRef { return BookRef{kind: bookNamed, name: name} }

// BookAt refers to a book by canonical position.
func BookAt(position int) BookRef { return BookRef{kind: bookAt, position: position} }

// BookValue wraps an already resolved book.
func BookValue(book passage.Book) BookRef { return BookRef{kind: bookValue, book: book} }

// IsZero reports whether the reference is unset.
func (r BookRef) IsZero() bool { return r.kind == bookUnset }

// Name returns the name of a BookNamed reference.
func (r BookRef) Name() (string, bool) { return r.name, r.kind == bookNamed }

// Position returns the position of a BookAt reference.
func (r BookRef) Position() (int, bool) { return r.position, r.kind == bookAt }

// Value returns the book of a BookValue reference.
func (r BookRef) Value() (passage.Book, bool) { return r.book, r.kind == bookValue && r.book != nil }

func (r BookRef) String() string {
	switch r.kind {
	case bookNamed:
		return strconv.Quote(r.name)
	case bookAt:
		return "#" + strconv.Itoa(r.position)
	case bookValue:
		if r.book == nil {
			return "<nil book>"
		}
		return r.book.Name()
	default:
		return "<unset>"
	}
}

type verseKind int

const (
	verseUnset verseKind = iota
	verseNumber
	verseValue
)

// VerseRef is a verse given as a number or as a verse value. The zero value
// means "not given" and lets Selection apply its defaults.
type VerseRef struct {
	kind   verseKind
	number int
	verse  passage.Verse
}

// VerseNumber refers to a verse by number within the selected chapter.
func VerseNumber(n int) VerseRef { return VerseRef{kind: verseNumber, number: n} }

// VerseValue wraps a verse. Its chapter must match the chapter it is used
// with.
func VerseValue(v passage.Verse) VerseRef { return VerseRef{kind: verseValue, verse: v} }

// IsSet reports whether a verse was given.
func (r VerseRef) IsSet() bool { return r.kind != verseUnset }

// Number returns the number of a VerseNumber reference.
func (r VerseRef) Number() (int, bool) { return r.number, r.kind == verseNumber }

// Value returns the verse of a VerseValue reference.
func (r VerseRef) Value() (passage.Verse, bool) { return r.verse, r.kind == verseValue && r.verse != nil }

func (r VerseRef) String() string {
	switch r.kind {
	case verseNumber:
		return strconv.Itoa(r.number)
	case verseValue:
		if r.verse == nil {
			return "<nil verse>"
		}
		return strconv.Itoa(r.verse.ChapterNumber()) + ":" + strconv.Itoa(r.verse.Number())
	default:
		return "<unset>"
	}
}
