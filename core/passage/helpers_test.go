package passage

import (
	"testing"

	"github.com/FocuswithJustin/passage/core/errors"
)

// testBook is an in-memory Book with fixed verse counts.
type testBook struct {
	name     string
	position int
	verses   []int
}

func (b *testBook) Name() string  { return b.name }
func (b *testBook) Position() int { return b.position }

func (b *testBook) ChapterVerseCount(chapter int) int {
	if chapter < 1 || chapter > len(b.verses) {
		return 0
	}
	return b.verses[chapter-1]
}

// Synthetic verse counts keep the arithmetic in tests obvious.
var (
	genesis = &testBook{name: "Genesis", position: 1, verses: []int{31, 31, 31, 25, 25, 25, 24, 22, 29, 32}}
	exodus  = &testBook{name: "Exodus", position: 2, verses: []int{22, 25, 22, 31}}
	luke    = &testBook{name: "Luke", position: 42, verses: []int{80, 52, 38}}
)

// testLookup resolves books by position.
type testLookup map[int]Book

func (l testLookup) BookByPosition(position int) (Book, error) {
	if b, ok := l[position]; ok {
		return b, nil
	}
	return nil, errors.NewNotFound("book", "position")
}

var allBooks = testLookup{1: genesis, 2: exodus, 42: luke}

func mustRange(t *testing.T, book Book, startChapter, endChapter, startVerse, endVerse int) *Range {
	t.Helper()
	r, err := New(book, startChapter, endChapter, startVerse, endVerse)
	if err != nil {
		t.Fatalf("New(%s %d-%d %d-%d) failed: %v", book.Name(), startChapter, endChapter, startVerse, endVerse, err)
	}
	return r
}

func mustExclude(t *testing.T, r *Range, startChapter, endChapter, startVerse, endVerse int) {
	t.Helper()
	if err := r.AddExclusion(NewSpan(startChapter, endChapter, startVerse, endVerse)); err != nil {
		t.Fatalf("AddExclusion(%d-%d %d-%d) failed: %v", startChapter, endChapter, startVerse, endVerse, err)
	}
}

// coordinates lists every chapter:verse of book in chapters [from, to].
func coordinates(book Book, from, to int) [][2]int {
	var out [][2]int
	for ch := from; ch <= to; ch++ {
		for v := 1; v <= book.ChapterVerseCount(ch); v++ {
			out = append(out, [2]int{ch, v})
		}
	}
	return out
}
