package passage

// IsFullChapter reports whether every verse of chapter is in r once the
// range's boundaries and exclusions are applied.
func IsFullChapter(r *Range, chapter int) bool {
	s := r.span
	if !s.CoversChapter(chapter) {
		return false
	}
	count := r.book.ChapterVerseCount(chapter)
	if chapter == s.StartChapter && s.StartVerse != 1 {
		return false
	}
	if chapter == s.EndChapter && s.EndVerse != count {
		return false
	}

	touched := false
	for _, ex := range r.exclusions {
		if ex.CoversChapter(chapter) {
			touched = true
			break
		}
	}
	if !touched {
		return true
	}

	for v := 1; v <= count; v++ {
		if !r.covers(chapter, v) {
			return false
		}
	}
	return true
}

// HasConsecutiveChapters reports whether r covers at least n full chapters in
// a row. It is false for n <= 0.
func (r *Range) HasConsecutiveChapters(n int) bool {
	if n <= 0 {
		return false
	}
	run := 0
	for ch := r.span.StartChapter; ch <= r.span.EndChapter; ch++ {
		if !IsFullChapter(r, ch) {
			run = 0
			continue
		}
		run++
		if run >= n {
			return true
		}
	}
	return false
}

// FullChapters returns the full chapters of r in ascending order.
func FullChapters(r *Range) []int {
	var out []int
	for ch := r.span.StartChapter; ch <= r.span.EndChapter; ch++ {
		if IsFullChapter(r, ch) {
			out = append(out, ch)
		}
	}
	return out
}

// LongestFullChapterRun returns the length of the longest run of consecutive
// full chapters in r.
func LongestFullChapterRun(r *Range) int {
	longest, run := 0, 0
	for ch := r.span.StartChapter; ch <= r.span.EndChapter; ch++ {
		if !IsFullChapter(r, ch) {
			run = 0
			continue
		}
		run++
		if run > longest {
			longest = run
		}
	}
	return longest
}
