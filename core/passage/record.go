package passage

import (
	"encoding/json"

	"github.com/FocuswithJustin/passage/core/errors"
)

// Bound is one end of a serialized span. Book is set only on a range's own
// start and end; Verse is omitted when it is the implied default (1 for a
// start, the chapter's last verse for an end).
type Bound struct {
	Book    int `json:"book,omitempty"`
	Chapter int `json:"chapter"`
	Verse   int `json:"verse,omitempty"`
}

// ExclusionRecord is the serialized form of one exclusion.
type ExclusionRecord struct {
	Start Bound `json:"start"`
	End   Bound `json:"end"`
}

// Record is the compact structured form of a Range.
type Record struct {
	Start   Bound             `json:"start"`
	End     Bound             `json:"end"`
	Exclude []ExclusionRecord `json:"exclude,omitempty"`
}

// ToRecord encodes the range. Omitted verse fields mean "start of the first
// chapter" and "end of the last chapter" respectively.
func (r *Range) ToRecord() Record {
	pos := r.book.Position()
	rec := Record{
		Start: Bound{Book: pos, Chapter: r.span.StartChapter},
		End:   Bound{Book: pos, Chapter: r.span.EndChapter},
	}
	rec.Start.Verse, rec.End.Verse = r.encodeVerses(r.span)

	if len(r.exclusions) > 0 {
		rec.Exclude = make([]ExclusionRecord, 0, len(r.exclusions))
		for _, ex := range r.exclusions {
			er := ExclusionRecord{
				Start: Bound{Chapter: ex.StartChapter},
				End:   Bound{Chapter: ex.EndChapter},
			}
			er.Start.Verse, er.End.Verse = r.encodeVerses(ex)
			rec.Exclude = append(rec.Exclude, er)
		}
	}
	return rec
}

func (r *Range) encodeVerses(s Span) (start, end int) {
	if s.StartVerse != 1 {
		start = s.StartVerse
	}
	if s.EndVerse != r.book.ChapterVerseCount(s.EndChapter) {
		end = s.EndVerse
	}
	return start, end
}

// FromRecord decodes rec against book. Missing start verses default to 1 and
// missing end verses to the last verse of the end chapter. Exclusions go
// through AddExclusion, so an exclusion outside the range fails the decode.
func FromRecord(rec Record, book Book) (*Range, error) {
	if book == nil {
		return nil, errors.NewValidation("book", "a range needs a book")
	}
	r, err := NewFromSpan(book, decodeSpan(book, rec.Start, rec.End))
	if err != nil {
		return nil, err
	}
	for i, er := range rec.Exclude {
		if err := r.AddExclusion(decodeSpan(book, er.Start, er.End)); err != nil {
			return nil, errors.Wrapf(err, "exclude[%d]", i)
		}
	}
	return r, nil
}

func decodeSpan(book Book, start, end Bound) Span {
	s := NewSpan(start.Chapter, end.Chapter, start.Verse, end.Verse)
	if s.StartVerse == 0 {
		s.StartVerse = 1
	}
	if s.EndVerse == 0 {
		s.EndVerse = book.ChapterVerseCount(s.EndChapter)
	}
	return s
}

// MarshalJSON encodes the range as its Record.
func (r *Range) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ToRecord())
}

// DecodeRange parses a JSON Record and resolves its book through books.
func DecodeRange(data []byte, books BookLookup) (*Range, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, &errors.ParseError{Format: "range record", Message: err.Error(), Err: err}
	}
	return rangeFromRecord(rec, books)
}

func rangeFromRecord(rec Record, books BookLookup) (*Range, error) {
	if rec.Start.Book == 0 {
		return nil, errors.NewValidation("start.book", "missing book position")
	}
	if rec.End.Book != 0 && rec.End.Book != rec.Start.Book {
		return nil, errors.NewValidationf("end.book", "book %d differs from start book %d", rec.End.Book, rec.Start.Book)
	}
	book, err := books.BookByPosition(rec.Start.Book)
	if err != nil {
		return nil, err
	}
	return FromRecord(rec, book)
}
