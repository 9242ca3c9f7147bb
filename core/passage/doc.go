// Package passage models contiguous chapter/verse ranges within a single book,
// optionally punctured by exclusion sub-ranges.
//
// # Core Types
//
//   - Span: a (startChapter, endChapter, startVerse, endVerse) interval whose
//     verse bounds apply only to its first and last chapter
//   - Range: a book, a primary Span and an ordered list of exclusion Spans
//   - Collection: an ordered list of Ranges with optional id and name
//
// The package never embeds book data. Verse counts come from the Book
// capability supplied by the caller (see package catalog for a concrete one).
//
// # Range Algebra
//
// Combine unions several same-book ranges into one range whose bounds are the
// bounding box of the inputs and whose exclusions are exactly the uncovered
// gaps inside it. HasConsecutiveChapters reports whether a range covers a run
// of whole chapters once exclusions are applied.
//
// # Example
//
//	r, err := passage.New(genesis, 1, 3, 1, 15)
//	if err != nil {
//	    return err
//	}
//	r.Reference() // "Genesis 1-3:15"
//	r.Contains(passage.At(genesis, 4, 1)) // false
//
// Ranges are not safe for concurrent mutation. Build them on one goroutine,
// then share them read-only.
package passage
