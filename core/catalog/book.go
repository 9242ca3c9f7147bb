package catalog

import "github.com/FocuswithJustin/passage/core/passage"

// BookData is the serializable description of one book.
type BookData struct {
	Name     string `json:"name" yaml:"name"`
	OSIS     string `json:"osis" yaml:"osis"`
	Position int    `json:"position,omitempty" yaml:"position,omitempty"`
	Chapters []int  `json:"chapters" yaml:"chapters"` // Verse counts per chapter
}

// Book is a catalog entry. It implements passage.Book.
type Book struct {
	name     string
	osis     string
	position int
	chapters []int
}

var _ passage.Book = (*Book)(nil)

// Name returns the display name, e.g. "1 John".
func (b *Book) Name() string { return b.name }

// OSIS returns the OSIS book id, e.g. "1John".
func (b *Book) OSIS() string { return b.osis }

// Position returns the 1-based canonical position.
func (b *Book) Position() int { return b.position }

// ChapterCount returns the number of chapters in the book.
func (b *Book) ChapterCount() int { return len(b.chapters) }

// ChapterVerseCount returns the number of verses in chapter, or 0 when the
// book has no such chapter.
func (b *Book) ChapterVerseCount(chapter int) int {
	if chapter < 1 || chapter > len(b.chapters) {
		return 0
	}
	return b.chapters[chapter-1]
}

// TotalVerses returns the verse count of the whole book.
func (b *Book) TotalVerses() int {
	total := 0
	for _, count := range b.chapters {
		total += count
	}
	return total
}

// Data returns the serializable form of the book.
func (b *Book) Data() BookData {
	chapters := make([]int, len(b.chapters))
	copy(chapters, b.chapters)
	return BookData{
		Name:     b.name,
		OSIS:     b.osis,
		Position: b.position,
		Chapters: chapters,
	}
}

func (b *Book) String() string { return b.name }
