package passage

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/FocuswithJustin/passage/core/errors"
)

// Collection is an ordered list of ranges, possibly across books, with an
// optional id and name.
type Collection struct {
	id     *string
	name   *string
	ranges []*Range
}

// NewCollection returns a collection holding ranges, in order.
func NewCollection(ranges ...*Range) *Collection {
	c := &Collection{}
	c.Add(ranges...)
	return c
}

// ID returns the collection id and whether one is set.
func (c *Collection) ID() (string, bool) {
	if c.id == nil {
		return "", false
	}
	return *c.id, true
}

// SetID sets the id. An empty string is a set value.
func (c *Collection) SetID(id string) { c.id = &id }

// ClearID removes the id.
func (c *Collection) ClearID() { c.id = nil }

// Name returns the collection name and whether one is set.
func (c *Collection) Name() (string, bool) {
	if c.name == nil {
		return "", false
	}
	return *c.name, true
}

// SetName sets the name. An empty string is a set value.
func (c *Collection) SetName(name string) { c.name = &name }

// ClearName removes the name.
func (c *Collection) ClearName() { c.name = nil }

// Add appends ranges. Nil ranges are skipped.
func (c *Collection) Add(ranges ...*Range) {
	for _, r := range ranges {
		if r != nil {
			c.ranges = append(c.ranges, r)
		}
	}
}

// Remove drops r, compared by identity, and reports whether it was present.
func (c *Collection) Remove(r *Range) bool {
	for i, existing := range c.ranges {
		if existing == r {
			c.ranges = append(c.ranges[:i], c.ranges[i+1:]...)
			return true
		}
	}
	return false
}

// Ranges returns the ranges in insertion order. The slice is a copy; the
// ranges are shared.
func (c *Collection) Ranges() []*Range {
	out := make([]*Range, len(c.ranges))
	copy(out, c.ranges)
	return out
}

// Len returns the number of ranges.
func (c *Collection) Len() int { return len(c.ranges) }

// Last returns the most recently added range, or nil.
func (c *Collection) Last() *Range {
	if len(c.ranges) == 0 {
		return nil
	}
	return c.ranges[len(c.ranges)-1]
}

// Contains reports whether any range contains v.
func (c *Collection) Contains(v Verse) bool {
	for _, r := range c.ranges {
		if r.Contains(v) {
			return true
		}
	}
	return false
}

// bookGroup holds the ranges of one book in insertion order.
type bookGroup struct {
	book   Book
	ranges []*Range
}

// groups partitions the ranges by book name, in first-seen order.
func (c *Collection) groups() []*bookGroup {
	var out []*bookGroup
	index := make(map[string]*bookGroup)
	for _, r := range c.ranges {
		name := r.book.Name()
		g, ok := index[name]
		if !ok {
			g = &bookGroup{book: r.book}
			index[name] = g
			out = append(out, g)
		}
		g.ranges = append(g.ranges, r)
	}
	return out
}

// normalized returns the group's single range or, for several, their union.
// It only fails if Combine's book-name check fails, which groups() rules out.
func (g *bookGroup) normalized() (*Range, error) {
	if len(g.ranges) == 1 {
		return g.ranges[0], nil
	}
	return Combine(g.ranges)
}

// Books returns the distinct books in first-seen order.
func (c *Collection) Books() []Book {
	groups := c.groups()
	out := make([]Book, len(groups))
	for i, g := range groups {
		out[i] = g.book
	}
	return out
}

// Combined returns one range per book: the book's only range as is, or the
// union of its ranges.
func (c *Collection) Combined() ([]*Range, error) {
	groups := c.groups()
	out := make([]*Range, 0, len(groups))
	for _, g := range groups {
		r, err := g.normalized()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// HasConsecutiveChapters reports whether any book in the collection has at
// least n consecutive full chapters. Ranges of the same book are combined
// first, so ranges that are partial alone can jointly fill a chapter, and a
// gap between ranges breaks a run.
func (c *Collection) HasConsecutiveChapters(n int) bool {
	if n <= 0 {
		return false
	}
	for _, g := range c.groups() {
		r, err := g.normalized()
		if err != nil {
			// Unreachable: a group is non-empty and its ranges share one book
			// name, which is all Combine checks.
			continue
		}
		if r.HasConsecutiveChapters(n) {
			return true
		}
	}
	return false
}

// Reference formats the collection, grouping ranges by book:
//
//	Genesis 1-3
//	Genesis (1-3, 4-6); Exodus 2:1-10
//
// Within a book, ranges are ordered by start and split into runs where each
// range begins right after the previous one ends.
func (c *Collection) Reference() string {
	groups := c.groups()
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		if len(g.ranges) == 1 {
			parts = append(parts, g.ranges[0].Reference())
			continue
		}
		var labels []string
		for _, run := range consecutiveRuns(sortByStart(g.ranges)) {
			labels = append(labels, runLabels(run)...)
		}
		parts = append(parts, g.book.Name()+" ("+strings.Join(labels, ", ")+")")
	}
	return strings.Join(parts, "; ")
}

// String returns the collection reference.
func (c *Collection) String() string {
	return c.Reference()
}

func sortByStart(ranges []*Range) []*Range {
	sorted := make([]*Range, len(ranges))
	copy(sorted, ranges)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].span, sorted[j].span
		if a.StartChapter != b.StartChapter {
			return a.StartChapter < b.StartChapter
		}
		return a.StartVerse < b.StartVerse
	})
	return sorted
}

// Consecutive reports whether next begins on the verse right after prev ends:
// the following verse of the same chapter, or verse 1 of the next chapter
// when prev ends on the last verse of its chapter. Books must match by name.
func Consecutive(prev, next *Range) bool {
	if !sameBook(prev.book, next.book) {
		return false
	}
	p, n := prev.span, next.span
	if n.StartChapter == p.EndChapter {
		return n.StartVerse == p.EndVerse+1
	}
	return n.StartChapter == p.EndChapter+1 && n.StartVerse == 1 && prev.endsOnLastVerse()
}

// consecutiveRuns splits sorted ranges into maximal runs of consecutive ranges.
func consecutiveRuns(sorted []*Range) [][]*Range {
	var runs [][]*Range
	for i, r := range sorted {
		if i > 0 && Consecutive(sorted[i-1], r) {
			runs[len(runs)-1] = append(runs[len(runs)-1], r)
			continue
		}
		runs = append(runs, []*Range{r})
	}
	return runs
}

// runLabels renders a run as chapter spans when every range in it covers
// whole chapters, otherwise as the ranges' own labels.
func runLabels(run []*Range) []string {
	whole := true
	for _, r := range run {
		if !r.wholeChapters() {
			whole = false
			break
		}
	}
	labels := make([]string, len(run))
	for i, r := range run {
		if whole {
			labels[i] = r.chapterLabel()
		} else {
			labels[i] = r.label()
		}
	}
	return labels
}

// CollectionRecord is the structured form of a Collection.
type CollectionRecord struct {
	Ranges []Record `json:"ranges"`
	Name   *string  `json:"name,omitempty"`
	ID     *string  `json:"id,omitempty"`
}

// ToRecord encodes the collection. Name and id are present only when set.
func (c *Collection) ToRecord() CollectionRecord {
	rec := CollectionRecord{Ranges: make([]Record, 0, len(c.ranges))}
	for _, r := range c.ranges {
		rec.Ranges = append(rec.Ranges, r.ToRecord())
	}
	if c.name != nil {
		name := *c.name
		rec.Name = &name
	}
	if c.id != nil {
		id := *c.id
		rec.ID = &id
	}
	return rec
}

// MarshalJSON encodes the collection as its CollectionRecord.
func (c *Collection) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.ToRecord())
}

// CollectionFromRecord decodes rec, resolving each range's book by position.
func CollectionFromRecord(rec CollectionRecord, books BookLookup) (*Collection, error) {
	c := &Collection{}
	for i, rr := range rec.Ranges {
		r, err := rangeFromRecord(rr, books)
		if err != nil {
			return nil, errors.Wrapf(err, "ranges[%d]", i)
		}
		c.ranges = append(c.ranges, r)
	}
	if rec.Name != nil {
		c.SetName(*rec.Name)
	}
	if rec.ID != nil {
		c.SetID(*rec.ID)
	}
	return c, nil
}

// DecodeCollection parses a JSON CollectionRecord.
func DecodeCollection(data []byte, books BookLookup) (*Collection, error) {
	var rec CollectionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, &errors.ParseError{Format: "collection record", Message: err.Error(), Err: err}
	}
	return CollectionFromRecord(rec, books)
}
