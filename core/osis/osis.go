// Package osis parses OSIS scripture references such as "Gen.1.1",
// "Gen.1.1-Gen.3.15" and "1John.3.16-18".
package osis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/passage/core/errors"
)

// Ref is one parsed reference. Zero numbers mean "not given": a Ref with
// Chapter 0 names the whole book and one with Verse 0 the whole chapter.
type Ref struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter,omitempty"`
	Verse   int    `json:"verse,omitempty"`

	// End fields are set only for ranges. EndBook is filled with Book when
	// the input omits it.
	EndBook    string `json:"end_book,omitempty"`
	EndChapter int    `json:"end_chapter,omitempty"`
	EndVerse   int    `json:"end_verse,omitempty"`
}

// IsRange reports whether the reference has an explicit end.
func (r Ref) IsRange() bool {
	return r.EndBook != ""
}

// String renders the canonical OSIS form, spelling out the book on both
// sides of a range.
func (r Ref) String() string {
	var sb strings.Builder
	writeID(&sb, r.Book, r.Chapter, r.Verse)
	if r.IsRange() {
		sb.WriteString("-")
		writeID(&sb, r.EndBook, r.EndChapter, r.EndVerse)
	}
	return sb.String()
}

func writeID(sb *strings.Builder, book string, chapter, verse int) {
	sb.WriteString(book)
	if chapter > 0 {
		sb.WriteString(".")
		sb.WriteString(strconv.Itoa(chapter))
		if verse > 0 {
			sb.WriteString(".")
			sb.WriteString(strconv.Itoa(verse))
		}
	}
}

// refList is the participle grammar for a reference list.
// Examples: "Gen.1", "Gen.1.1-3.15, Exod.2", "1John.3.16-18 Rev"
//
//nolint:govet // participle grammar tags are not standard struct tags
type refList struct {
	Refs []*refExpr `@@ ( ","? @@ )*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type refExpr struct {
	Start *osisID  `@@`
	End   *rangeTo `( "-" @@ )?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type osisID struct {
	Book    string       `@Book`
	Chapter *chapterPart `( "." @@ )?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type chapterPart struct {
	Chapter int  `@Int`
	Verse   *int `( "." @Int )?`
}

// rangeTo is the end of a range, with or without its book.
//
//nolint:govet // participle grammar tags are not standard struct tags
type rangeTo struct {
	Full    *osisID      `  @@`
	Partial *chapterPart `| @@`
}

// Book ids may carry a digit prefix ("1John"), so Book is tried before Int.
var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Book", Pattern: `[0-9]*[A-Za-z][A-Za-z0-9]*`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[.,\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var refParser = participle.MustBuild[refList](
	participle.Lexer(refLexer),
	participle.Elide("Whitespace"),
)

// Parse parses a whitespace- or comma-separated list of references.
// Supported forms:
//   - "Gen" (whole book)
//   - "Gen.1" (whole chapter)
//   - "Gen.1.1" (single verse)
//   - "Gen.1.1-Gen.3.15" (range, canonical form)
//   - "Gen.1.1-3.15" (range, end book omitted)
//   - "Gen.1.1-15" (verses within one chapter)
//   - "Gen.1-3" (chapters)
func Parse(s string) ([]Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.NewParse("OSIS", "", "empty reference")
	}

	parsed, err := refParser.ParseString("", s)
	if err != nil {
		return nil, &errors.ParseError{
			Format:  "OSIS",
			Message: fmt.Sprintf("invalid reference %q: %v", s, err),
			Err:     err,
		}
	}

	refs := make([]Ref, 0, len(parsed.Refs))
	for _, expr := range parsed.Refs {
		ref, err := expr.ref()
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// ParseRef parses exactly one reference.
func ParseRef(s string) (Ref, error) {
	refs, err := Parse(s)
	if err != nil {
		return Ref{}, err
	}
	if len(refs) != 1 {
		return Ref{}, errors.NewParse("OSIS", "", fmt.Sprintf("%q holds %d references, want 1", s, len(refs)))
	}
	return refs[0], nil
}

func (e *refExpr) ref() (Ref, error) {
	ref := Ref{Book: e.Start.Book}
	if err := e.Start.Chapter.check(ref.Book); err != nil {
		return Ref{}, err
	}
	ref.Chapter, ref.Verse = e.Start.Chapter.numbers()

	if e.End == nil {
		return ref, nil
	}

	if full := e.End.Full; full != nil {
		if err := full.Chapter.check(full.Book); err != nil {
			return Ref{}, err
		}
		ref.EndBook = full.Book
		ref.EndChapter, ref.EndVerse = full.Chapter.numbers()
		return ref, nil
	}

	p := e.End.Partial
	if ref.Chapter == 0 {
		return Ref{}, errors.NewParse("OSIS", "", ref.Book+": range end needs a book when the start has no chapter")
	}
	if err := p.check(ref.Book); err != nil {
		return Ref{}, err
	}
	ref.EndBook = ref.Book
	switch {
	case p.Verse != nil:
		ref.EndChapter, ref.EndVerse = p.Chapter, *p.Verse
	case ref.Verse > 0:
		// "Gen.1.1-15" ends at verse 15 of the start chapter.
		ref.EndChapter, ref.EndVerse = ref.Chapter, p.Chapter
	default:
		ref.EndChapter = p.Chapter
	}
	return ref, nil
}

func (c *chapterPart) numbers() (chapter, verse int) {
	if c == nil {
		return 0, 0
	}
	if c.Verse != nil {
		verse = *c.Verse
	}
	return c.Chapter, verse
}

// check rejects explicit zeros, which would read as "not given".
func (c *chapterPart) check(book string) error {
	if c == nil {
		return nil
	}
	if c.Chapter == 0 || c.Verse != nil && *c.Verse == 0 {
		return errors.NewParse("OSIS", "", book+": chapter and verse numbers start at 1")
	}
	return nil
}
