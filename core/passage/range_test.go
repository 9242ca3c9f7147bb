package passage

import (
	"testing"

	"github.com/FocuswithJustin/passage/core/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name                                         string
		book                                         Book
		startChapter, endChapter, startVerse, endVerse int
		wantErr                                      bool
	}{
		{"multi chapter", genesis, 1, 3, 1, 15, false},
		{"single verse", genesis, 2, 2, 7, 7, false},
		{"end verse before start verse across chapters", genesis, 1, 2, 20, 3, false},
		{"chapters reversed", genesis, 3, 1, 1, 1, true},
		{"verses reversed in one chapter", genesis, 2, 2, 5, 4, true},
		{"zero chapter", genesis, 0, 1, 1, 1, true},
		{"zero verse", genesis, 1, 1, 0, 1, true},
		{"nil book", nil, 1, 1, 1, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.book, tt.startChapter, tt.endChapter, tt.startVerse, tt.endVerse)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("New() = %v, want error", r)
				}
				if !errors.IsValidation(err) {
					t.Errorf("New() error = %v, want a validation error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
			want := NewSpan(tt.startChapter, tt.endChapter, tt.startVerse, tt.endVerse)
			if r.Span() != want {
				t.Errorf("Span() = %v, want %v", r.Span(), want)
			}
			if r.HasExclusions() {
				t.Error("new range should have no exclusions")
			}
		})
	}
}

func TestChapters(t *testing.T) {
	r, err := Chapters(genesis, 4, 6)
	if err != nil {
		t.Fatalf("Chapters() failed: %v", err)
	}
	if want := NewSpan(4, 6, 1, 25); r.Span() != want {
		t.Errorf("Span() = %v, want %v", r.Span(), want)
	}
	if r.ChapterCount() != 3 {
		t.Errorf("ChapterCount() = %d, want 3", r.ChapterCount())
	}
}

func TestRangeContains(t *testing.T) {
	r := mustRange(t, genesis, 1, 3, 1, 15)

	tests := []struct {
		name  string
		verse Verse
		want  bool
	}{
		{"first verse", At(genesis, 1, 1), true},
		{"middle chapter last verse", At(genesis, 2, 31), true},
		{"end verse", At(genesis, 3, 15), true},
		{"past end verse", At(genesis, 3, 16), false},
		{"next chapter", At(genesis, 4, 1), false},
		{"other book", At(exodus, 1, 1), false},
		{"nil verse", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.verse); got != tt.want {
				t.Errorf("Contains() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRangeContainsComparesBookNames(t *testing.T) {
	r := mustRange(t, genesis, 1, 1, 1, 31)
	twin := &testBook{name: "Genesis", position: 99, verses: []int{31}}
	if !r.Contains(At(twin, 1, 5)) {
		t.Error("a different Book value with the same name should match")
	}
}

func TestRangeContainsWindow(t *testing.T) {
	r := mustRange(t, genesis, 2, 3, 5, 10)

	for _, c := range coordinates(genesis, 1, 4) {
		ch, v := c[0], c[1]
		want := (ch == 2 && v >= 5) || (ch == 3 && v <= 10)
		if got := r.Contains(At(genesis, ch, v)); got != want {
			t.Errorf("Contains(%d:%d) = %v, want %v", ch, v, got, want)
		}
	}
}

func TestAddExclusion(t *testing.T) {
	r := mustRange(t, luke, 1, 1, 1, 10)
	mustExclude(t, r, 1, 1, 7, 8)

	if r.Contains(At(luke, 1, 7)) {
		t.Error("Contains(Luke 1:7) = true, want false")
	}
	if r.Contains(At(luke, 1, 8)) {
		t.Error("Contains(Luke 1:8) = true, want false")
	}
	if !r.Contains(At(luke, 1, 1)) {
		t.Error("Contains(Luke 1:1) = false, want true")
	}
	if !r.Contains(At(luke, 1, 9)) {
		t.Error("Contains(Luke 1:9) = false, want true")
	}
	if got := len(r.Exclusions()); got != 1 {
		t.Errorf("len(Exclusions()) = %d, want 1", got)
	}
}

func TestAddExclusionRejects(t *testing.T) {
	tests := []struct {
		name string
		span Span
	}{
		{"chapters reversed", NewSpan(3, 2, 1, 1)},
		{"verses reversed", NewSpan(2, 2, 9, 3)},
		{"starts before range", NewSpan(1, 2, 1, 1)},
		{"ends after range", NewSpan(3, 5, 1, 1)},
		{"zero verse", NewSpan(2, 2, 0, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustRange(t, genesis, 2, 4, 1, 25)
			mustExclude(t, r, 3, 3, 1, 2)

			err := r.AddExclusion(tt.span)
			if err == nil {
				t.Fatal("AddExclusion() succeeded, want error")
			}
			var ve *errors.ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("AddExclusion() error = %T, want *ValidationError", err)
			}
			if got := r.Exclusions(); len(got) != 1 || got[0] != NewSpan(3, 3, 1, 2) {
				t.Errorf("Exclusions() = %v, want unchanged", got)
			}
		})
	}
}

func TestAddExclusionIgnoresBoundaryVerses(t *testing.T) {
	r := mustRange(t, genesis, 2, 3, 5, 10)

	// Verses 1-3 of chapter 2 are before the range start but only chapters are checked.
	if err := r.AddExclusion(NewSpan(2, 2, 1, 3)); err != nil {
		t.Fatalf("AddExclusion() error = %v, want nil", err)
	}
	if !r.Contains(At(genesis, 2, 5)) {
		t.Error("Contains(2:5) = false, want true")
	}
}

func TestAddExclusionKeepsDuplicates(t *testing.T) {
	r := mustRange(t, genesis, 1, 2, 1, 31)
	mustExclude(t, r, 1, 1, 3, 5)
	mustExclude(t, r, 1, 1, 4, 9)
	mustExclude(t, r, 1, 1, 3, 5)

	want := []Span{NewSpan(1, 1, 3, 5), NewSpan(1, 1, 4, 9), NewSpan(1, 1, 3, 5)}
	got := r.Exclusions()
	if len(got) != len(want) {
		t.Fatalf("Exclusions() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Exclusions()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	for v := 3; v <= 9; v++ {
		if r.Contains(At(genesis, 1, v)) {
			t.Errorf("Contains(1:%d) = true, want false with overlapping exclusions", v)
		}
	}
}

func TestRemoveExclusion(t *testing.T) {
	r := mustRange(t, genesis, 1, 2, 1, 31)
	mustExclude(t, r, 1, 1, 3, 5)
	mustExclude(t, r, 2, 2, 1, 1)
	mustExclude(t, r, 1, 1, 3, 5)

	r.RemoveExclusion(NewSpan(1, 1, 3, 5))
	got := r.Exclusions()
	if len(got) != 1 || got[0] != NewSpan(2, 2, 1, 1) {
		t.Errorf("Exclusions() = %v, want [2:1-2:1]", got)
	}

	r.RemoveExclusion(NewSpan(1, 1, 7, 7))
	if len(r.Exclusions()) != 1 {
		t.Errorf("removing an absent exclusion changed the list: %v", r.Exclusions())
	}
}

func TestExclusionRoundTrip(t *testing.T) {
	r := mustRange(t, genesis, 1, 3, 4, 20)
	before := make(map[[2]int]bool)
	for _, c := range coordinates(genesis, 1, 3) {
		before[c] = r.Contains(At(genesis, c[0], c[1]))
	}

	ex := NewSpan(1, 2, 10, 6)
	if err := r.AddExclusion(ex); err != nil {
		t.Fatalf("AddExclusion() failed: %v", err)
	}
	if r.Contains(At(genesis, 1, 31)) {
		t.Error("Contains(1:31) = true while excluded")
	}
	r.RemoveExclusion(ex)

	for c, want := range before {
		if got := r.Contains(At(genesis, c[0], c[1])); got != want {
			t.Errorf("Contains(%d:%d) = %v after round trip, want %v", c[0], c[1], got, want)
		}
	}
}

func TestExclusionsReturnsCopy(t *testing.T) {
	r := mustRange(t, genesis, 1, 1, 1, 31)
	mustExclude(t, r, 1, 1, 2, 2)

	got := r.Exclusions()
	got[0] = NewSpan(1, 1, 9, 9)
	if r.Exclusions()[0] != NewSpan(1, 1, 2, 2) {
		t.Error("mutating the returned slice changed the range")
	}
}

func TestRangeEqual(t *testing.T) {
	a := mustRange(t, genesis, 1, 2, 1, 10)
	b := mustRange(t, genesis, 1, 2, 1, 10)
	if !a.Equal(b) {
		t.Error("identical ranges should be equal")
	}
	mustExclude(t, a, 1, 1, 4, 4)
	if a.Equal(b) {
		t.Error("ranges with different exclusions should not be equal")
	}
	if a.Equal(mustRange(t, exodus, 1, 2, 1, 10)) {
		t.Error("ranges of different books should not be equal")
	}
	var nilRange *Range
	if !nilRange.Equal(nil) {
		t.Error("nil should equal nil")
	}
}
