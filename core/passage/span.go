package passage

import (
	"fmt"

	"github.com/FocuswithJustin/passage/core/errors"
)

// Span is a chapter/verse interval. StartVerse applies to StartChapter and
// EndVerse to EndChapter; every chapter in between is covered whole.
type Span struct {
	StartChapter int
	EndChapter   int
	StartVerse   int
	EndVerse     int
}

// NewSpan returns a Span with the given bounds. It does not validate them.
func NewSpan(startChapter, endChapter, startVerse, endVerse int) Span {
	return Span{
		StartChapter: startChapter,
		EndChapter:   endChapter,
		StartVerse:   startVerse,
		EndVerse:     endVerse,
	}
}

// ChapterSpan returns a Span of whole chapters from startChapter to endChapter.
func ChapterSpan(book Book, startChapter, endChapter int) Span {
	return NewSpan(startChapter, endChapter, 1, book.ChapterVerseCount(endChapter))
}

// Validate checks that the bounds are positive and that the start does not
// come after the end.
func (s Span) Validate() error {
	if s.StartChapter < 1 || s.EndChapter < 1 || s.StartVerse < 1 || s.EndVerse < 1 {
		return &errors.ValidationError{
			Field:   "span",
			Value:   s.String(),
			Message: "chapter and verse numbers must be positive",
		}
	}
	if s.StartChapter > s.EndChapter {
		return &errors.ValidationError{
			Field:   "span",
			Value:   s.String(),
			Message: fmt.Sprintf("start chapter %d is after end chapter %d", s.StartChapter, s.EndChapter),
		}
	}
	if s.StartChapter == s.EndChapter && s.StartVerse > s.EndVerse {
		return &errors.ValidationError{
			Field:   "span",
			Value:   s.String(),
			Message: fmt.Sprintf("start verse %d is after end verse %d", s.StartVerse, s.EndVerse),
		}
	}
	return nil
}

// Covers reports whether chapter:verse lies inside the span.
func (s Span) Covers(chapter, verse int) bool {
	if chapter < s.StartChapter || chapter > s.EndChapter {
		return false
	}
	if chapter == s.StartChapter && verse < s.StartVerse {
		return false
	}
	if chapter == s.EndChapter && verse > s.EndVerse {
		return false
	}
	return true
}

// CoversChapter reports whether any part of chapter lies inside the span.
func (s Span) CoversChapter(chapter int) bool {
	return chapter >= s.StartChapter && chapter <= s.EndChapter
}

// verseWindow returns the verses of chapter the span covers. The chapter must
// be inside the span.
func (s Span) verseWindow(book Book, chapter int) interval {
	w := interval{lo: 1, hi: book.ChapterVerseCount(chapter)}
	if chapter == s.StartChapter {
		w.lo = s.StartVerse
	}
	if chapter == s.EndChapter {
		w.hi = s.EndVerse
	}
	return w
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.StartChapter, s.StartVerse, s.EndChapter, s.EndVerse)
}
