package passage

// Book is what a Range needs to know about the book it addresses.
type Book interface {
	// Name is the display name used in references and to compare books.
	Name() string

	// Position is the book's stable ordinal, used as its serialization key.
	Position() int

	// ChapterVerseCount returns the number of verses in chapter.
	ChapterVerseCount(chapter int) int
}

// Verse is a single addressable verse, used as the point type for containment.
type Verse interface {
	Number() int
	ChapterNumber() int
	Book() Book
}

// BookLookup resolves a book from its serialized position.
type BookLookup interface {
	BookByPosition(position int) (Book, error)
}

// Point is a plain Verse value.
type Point struct {
	book    Book
	chapter int
	verse   int
}

// At returns the verse at chapter:verse of book.
func At(book Book, chapter, verse int) Point {
	return Point{book: book, chapter: chapter, verse: verse}
}

// Number returns the verse number.
func (p Point) Number() int { return p.verse }

// ChapterNumber returns the chapter number.
func (p Point) ChapterNumber() int { return p.chapter }

// Book returns the book the verse belongs to.
func (p Point) Book() Book { return p.book }

func sameBook(a, b Book) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Name() == b.Name()
}
