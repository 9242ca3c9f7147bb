package passage

import (
	"sort"

	"github.com/FocuswithJustin/passage/core/errors"
)

// interval is an inclusive run of verse numbers within one chapter.
type interval struct {
	lo, hi int
}

func (iv interval) empty() bool { return iv.lo > iv.hi }

// Combine unions same-book ranges into one Range. The result spans the
// bounding box of the inputs, and its exclusions are exactly the verses in
// that box no input contains. Books are compared by name.
//
// The result never aliases the inputs.
func Combine(ranges []*Range) (*Range, error) {
	if len(ranges) == 0 {
		return nil, errors.NewValidation("ranges", "no ranges to combine")
	}
	book := ranges[0].book
	for _, r := range ranges[1:] {
		if !sameBook(book, r.book) {
			return nil, errors.NewValidationf("ranges", "cannot combine %q with %q", r.book.Name(), book.Name())
		}
	}

	bounds := boundingSpan(ranges)
	combined := &Range{book: book, span: bounds}

	for ch := bounds.StartChapter; ch <= bounds.EndChapter; ch++ {
		window := bounds.verseWindow(book, ch)
		if window.empty() {
			continue
		}

		var included []interval
		for _, r := range ranges {
			included = append(included, r.includedIn(ch)...)
		}

		for _, gap := range gaps(window, mergeIntervals(included)) {
			combined.addExclusionUnsafe(NewSpan(ch, ch, gap.lo, gap.hi))
		}
	}

	return combined, nil
}

// boundingSpan picks the earliest start and the latest end. Verses are only
// compared among ranges tied on the winning chapter.
func boundingSpan(ranges []*Range) Span {
	b := ranges[0].span
	for _, r := range ranges[1:] {
		s := r.span
		if s.StartChapter < b.StartChapter ||
			(s.StartChapter == b.StartChapter && s.StartVerse < b.StartVerse) {
			b.StartChapter, b.StartVerse = s.StartChapter, s.StartVerse
		}
		if s.EndChapter > b.EndChapter ||
			(s.EndChapter == b.EndChapter && s.EndVerse > b.EndVerse) {
			b.EndChapter, b.EndVerse = s.EndChapter, s.EndVerse
		}
	}
	return b
}

// includedIn returns the verses of chapter the range contains, as disjoint
// intervals. Returns nil when the range does not touch chapter.
func (r *Range) includedIn(chapter int) []interval {
	if !r.span.CoversChapter(chapter) {
		return nil
	}
	window := r.span.verseWindow(r.book, chapter)
	if window.empty() {
		return nil
	}

	parts := []interval{window}
	for _, ex := range r.exclusions {
		if !ex.CoversChapter(chapter) {
			continue
		}
		parts = subtract(parts, ex.verseWindow(r.book, chapter))
		if len(parts) == 0 {
			break
		}
	}
	return parts
}

// subtract removes cut from every interval in parts. An interval that
// straddles cut splits in two.
func subtract(parts []interval, cut interval) []interval {
	if cut.empty() {
		return parts
	}
	out := make([]interval, 0, len(parts)+1)
	for _, p := range parts {
		if cut.hi < p.lo || cut.lo > p.hi {
			out = append(out, p)
			continue
		}
		if left := (interval{lo: p.lo, hi: cut.lo - 1}); !left.empty() {
			out = append(out, left)
		}
		if right := (interval{lo: cut.hi + 1, hi: p.hi}); !right.empty() {
			out = append(out, right)
		}
	}
	return out
}

// mergeIntervals sorts and coalesces overlapping or touching intervals.
func mergeIntervals(ivs []interval) []interval {
	if len(ivs) == 0 {
		return nil
	}
	sorted := make([]interval, len(ivs))
	copy(sorted, ivs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].lo != sorted[j].lo {
			return sorted[i].lo < sorted[j].lo
		}
		return sorted[i].hi < sorted[j].hi
	})

	merged := []interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv.lo <= last.hi+1 {
			if iv.hi > last.hi {
				last.hi = iv.hi
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// gaps returns the parts of window not covered by merged, which must be
// sorted and disjoint.
func gaps(window interval, merged []interval) []interval {
	var out []interval
	cursor := window.lo
	for _, iv := range merged {
		if iv.hi < cursor {
			continue
		}
		if iv.lo > window.hi {
			break
		}
		if iv.lo > cursor {
			out = append(out, interval{lo: cursor, hi: iv.lo - 1})
		}
		cursor = iv.hi + 1
		if cursor > window.hi {
			return out
		}
	}
	if cursor <= window.hi {
		out = append(out, interval{lo: cursor, hi: window.hi})
	}
	return out
}
