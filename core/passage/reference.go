package passage

import (
	"strconv"
	"strings"
)

// Reference formats the range for humans, e.g. "Genesis 1-3:15".
//
// Verse numbers are dropped where they are implied: a start at verse 1 and an
// end at the last verse of the end chapter. Within a single chapter, a range
// that ends on the last verse but starts later renders only its start verse
// ("Genesis 1:5" for 1:5-31).
func (r *Range) Reference() string {
	return r.book.Name() + " " + r.label()
}

// label is the reference without the book name.
func (r *Range) label() string {
	s := r.span
	fullEnd := r.endsOnLastVerse()

	if s.StartChapter == s.EndChapter {
		ch := strconv.Itoa(s.StartChapter)
		switch {
		case s.StartVerse == 1 && fullEnd:
			return ch
		case s.StartVerse == 1:
			return ch + ":" + strconv.Itoa(s.EndVerse)
		case fullEnd:
			return ch + ":" + strconv.Itoa(s.StartVerse)
		case s.StartVerse == s.EndVerse:
			return ch + ":" + strconv.Itoa(s.StartVerse)
		default:
			return ch + ":" + strconv.Itoa(s.StartVerse) + "-" + strconv.Itoa(s.EndVerse)
		}
	}

	var sb strings.Builder
	sb.WriteString(strconv.Itoa(s.StartChapter))
	if s.StartVerse != 1 {
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(s.StartVerse))
	}
	sb.WriteString("-")
	sb.WriteString(strconv.Itoa(s.EndChapter))
	if !fullEnd {
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(s.EndVerse))
	}
	return sb.String()
}

// chapterLabel renders only the chapter bounds, "4" or "4-6".
func (r *Range) chapterLabel() string {
	if r.span.StartChapter == r.span.EndChapter {
		return strconv.Itoa(r.span.StartChapter)
	}
	return strconv.Itoa(r.span.StartChapter) + "-" + strconv.Itoa(r.span.EndChapter)
}

func (r *Range) endsOnLastVerse() bool {
	return r.span.EndVerse == r.book.ChapterVerseCount(r.span.EndChapter)
}

// wholeChapters reports whether the primary span starts at verse 1 and ends on
// the last verse of its end chapter. Exclusions are not considered.
func (r *Range) wholeChapters() bool {
	return r.span.StartVerse == 1 && r.endsOnLastVerse()
}
