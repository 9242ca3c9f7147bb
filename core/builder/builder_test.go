package builder

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/passage/core/catalog"
	"github.com/FocuswithJustin/passage/core/errors"
	"github.com/FocuswithJustin/passage/core/passage"
	"github.com/FocuswithJustin/passage/internal/logging"
)

func lookup(t *testing.T, key string) *catalog.Book {
	t.Helper()
	b, err := catalog.KJV().Lookup(key)
	if err != nil {
		t.Fatalf("Lookup(%q) failed: %v", key, err)
	}
	return b
}

func TestWithDefaults(t *testing.T) {
	tests := []struct {
		name string
		sel  Selection
		want passage.Span
		ref  string
	}{
		{
			name: "whole chapter",
			sel:  Selection{Book: BookNamed("Gen"), Chapter: 1},
			want: passage.NewSpan(1, 1, 1, 31),
			ref:  "Genesis 1",
		},
		{
			name: "chapters",
			sel:  Selection{Book: BookNamed("Genesis"), Chapter: 1, ToChapter: 3},
			want: passage.NewSpan(1, 3, 1, 24),
			ref:  "Genesis 1-3",
		},
		{
			name: "single verse",
			sel:  Selection{Book: BookAt(1), Chapter: 1, Verse: VerseNumber(5)},
			want: passage.NewSpan(1, 1, 5, 5),
			ref:  "Genesis 1:5",
		},
		{
			name: "verse to end of chapter range",
			sel:  Selection{Book: BookNamed("gen"), Chapter: 1, ToChapter: 2, Verse: VerseNumber(5)},
			want: passage.NewSpan(1, 2, 5, 25),
			ref:  "Genesis 1:5-2",
		},
		{
			name: "explicit end verse",
			sel:  Selection{Book: BookNamed("Gen"), Chapter: 1, ToChapter: 3, ToVerse: VerseNumber(15)},
			want: passage.NewSpan(1, 3, 1, 15),
			ref:  "Genesis 1-3:15",
		},
		{
			name: "verses within a chapter",
			sel:  Selection{Book: BookNamed("Luke"), Chapter: 1, Verse: VerseNumber(20), ToVerse: VerseNumber(30)},
			want: passage.NewSpan(1, 1, 20, 30),
			ref:  "Luke 1:20-30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Default()
			r, err := b.With(tt.sel)
			if err != nil {
				t.Fatalf("With() failed: %v", err)
			}
			if r.Span() != tt.want {
				t.Errorf("Span() = %v, want %v", r.Span(), tt.want)
			}
			if got := r.Reference(); got != tt.ref {
				t.Errorf("Reference() = %q, want %q", got, tt.ref)
			}
			if b.Collection().Last() != r {
				t.Error("the range should be appended to the collection")
			}
		})
	}
}

func TestWithBookValueAndVerseValue(t *testing.T) {
	gen := lookup(t, "Gen")
	b := Default()

	r, err := b.With(Selection{
		Book:      BookValue(gen),
		Chapter:   2,
		ToChapter: 3,
		Verse:     VerseValue(passage.At(gen, 2, 4)),
		ToVerse:   VerseValue(passage.At(gen, 3, 7)),
	})
	if err != nil {
		t.Fatalf("With() failed: %v", err)
	}
	if want := passage.NewSpan(2, 3, 4, 7); r.Span() != want {
		t.Errorf("Span() = %v, want %v", r.Span(), want)
	}

	exod := lookup(t, "Exod")
	_, err = b.With(Selection{Book: BookValue(gen), Chapter: 2, Verse: VerseValue(passage.At(exod, 2, 4))})
	if !errors.IsValidation(err) {
		t.Errorf("verse from another book: error = %v, want a validation error", err)
	}
	_, err = b.With(Selection{Book: BookValue(gen), Chapter: 2, Verse: VerseValue(passage.At(gen, 3, 4))})
	if !errors.IsValidation(err) {
		t.Errorf("verse from another chapter: error = %v, want a validation error", err)
	}
}

func TestWithErrors(t *testing.T) {
	tests := []struct {
		name     string
		sel      Selection
		notFound bool
	}{
		{"unset book", Selection{Chapter: 1}, false},
		{"nil book value", Selection{Book: BookValue(nil), Chapter: 1}, false},
		{"unknown book", Selection{Book: BookNamed("Tobit"), Chapter: 1}, true},
		{"unknown position", Selection{Book: BookAt(99), Chapter: 1}, true},
		{"chapter zero", Selection{Book: BookNamed("Gen"), Chapter: 0}, false},
		{"chapter past end", Selection{Book: BookNamed("Gen"), Chapter: 51}, false},
		{"end chapter past end", Selection{Book: BookNamed("Gen"), Chapter: 49, ToChapter: 51}, false},
		{"reversed chapters", Selection{Book: BookNamed("Gen"), Chapter: 3, ToChapter: 2}, false},
		{"verse past end", Selection{Book: BookNamed("Gen"), Chapter: 1, Verse: VerseNumber(32)}, false},
		{"verse zero", Selection{Book: BookNamed("Gen"), Chapter: 1, Verse: VerseNumber(0)}, false},
		{"reversed verses", Selection{Book: BookNamed("Gen"), Chapter: 1, Verse: VerseNumber(10), ToVerse: VerseNumber(5)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Default()
			_, err := b.With(tt.sel)
			if !errors.IsValidation(err) {
				t.Errorf("With() error = %v, want a validation error", err)
			}
			var ve *errors.ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("With() error = %v, want a *ValidationError", err)
			}
			if tt.notFound && !errors.Is(err, errors.ErrNotFound) {
				t.Errorf("With() error = %v, want the catalog's ErrNotFound as cause", err)
			}
			if b.Collection().Len() != 0 {
				t.Error("a failed With() should not add a range")
			}
		})
	}
}

func TestWithout(t *testing.T) {
	b := Default()

	if err := b.Without(Selection{Book: BookNamed("Gen"), Chapter: 2}); !errors.IsValidation(err) {
		t.Errorf("Without() on an empty builder: error = %v, want a validation error", err)
	}

	r, err := b.With(Selection{Book: BookNamed("Gen"), Chapter: 1, ToChapter: 3})
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Without(Selection{Book: BookNamed("Gen"), Chapter: 2}); err != nil {
		t.Fatalf("Without() failed: %v", err)
	}
	gen := lookup(t, "Gen")
	if r.Contains(passage.At(gen, 2, 10)) {
		t.Error("Genesis 2:10 should be excluded")
	}
	if !r.Contains(passage.At(gen, 3, 1)) {
		t.Error("Genesis 3:1 should still be included")
	}

	if err := b.Without(Selection{Book: BookNamed("Exod"), Chapter: 1}); !errors.IsValidation(err) {
		t.Errorf("Without() of another book: error = %v, want a validation error", err)
	}
	if err := b.Without(Selection{Book: BookNamed("Gen"), Chapter: 4}); !errors.IsValidation(err) {
		t.Errorf("Without() outside the range: error = %v, want a validation error", err)
	}
	if got := len(r.Exclusions()); got != 1 {
		t.Errorf("len(Exclusions()) = %d, want 1", got)
	}
}

func TestWithOSIS(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Gen.1-3", "Genesis 1-3"},
		{"Gen.1.1-3.15", "Genesis 1-3:15"},
		{"Gen.1.1-Gen.3.15", "Genesis 1-3:15"},
		{"Luke.1.20-30", "Luke 1:20-30"},
		{"Gen.1.5", "Genesis 1:5"},
		{"Obad", "Obadiah 1"},
		{"Ruth", "Ruth 1-4"},
		{"Gen.1-3 Gen.4-6", "Genesis (1-3, 4-6)"},
		{"Luke.1.20-30, Gen.1, Luke.1.1-10", "Luke (1:10, 1:20-30); Genesis 1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			b := Default()
			if _, err := b.WithOSIS(tt.input); err != nil {
				t.Fatalf("WithOSIS(%q) failed: %v", tt.input, err)
			}
			if got := b.Collection().Reference(); got != tt.want {
				t.Errorf("Reference() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWithOSISErrors(t *testing.T) {
	tests := []string{
		"Gen.1-Exod.2",
		"Gen.51",
		"Tobit.1",
		"Gen.1.40",
		"Gen.1:1",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			b := Default()
			_, err := b.WithOSIS("Gen.1 " + input)
			if err == nil {
				t.Fatalf("WithOSIS(%q) should fail", input)
			}
			if !errors.IsValidation(err) {
				t.Errorf("WithOSIS(%q) error = %v, want a validation error", input, err)
			}
			if b.Collection().Len() != 0 {
				t.Error("a failed WithOSIS() should add nothing")
			}
		})
	}
}

func TestWithoutOSIS(t *testing.T) {
	b := Default()
	if _, err := b.WithOSIS("Gen.1-3"); err != nil {
		t.Fatal(err)
	}
	if err := b.WithoutOSIS("Gen.2.4-25, Gen.3.1-5"); err != nil {
		t.Fatalf("WithoutOSIS() failed: %v", err)
	}

	r := b.Collection().Last()
	want := []passage.Span{passage.NewSpan(2, 2, 4, 25), passage.NewSpan(3, 3, 1, 5)}
	got := r.Exclusions()
	if len(got) != len(want) {
		t.Fatalf("Exclusions() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Exclusions()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if passage.IsFullChapter(r, 2) {
		t.Error("chapter 2 should not be full")
	}
	if !passage.IsFullChapter(r, 1) {
		t.Error("chapter 1 should be full")
	}
}

func TestCollectionIdentity(t *testing.T) {
	b := Default().Named("Creation").Identified("gen-1")
	c := b.Collection()

	if name, ok := c.Name(); !ok || name != "Creation" {
		t.Errorf("Name() = %q, %v, want Creation", name, ok)
	}
	if id, ok := c.ID(); !ok || id != "gen-1" {
		t.Errorf("ID() = %q, %v, want gen-1", id, ok)
	}

	id, ok := b.GenerateID().Collection().ID()
	if !ok {
		t.Fatal("GenerateID() should set an id")
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("generated id %q is not a UUID: %v", id, err)
	}
}

type aliasResolver map[string]string

func (a aliasResolver) Accepts(ref BookRef) bool {
	name, ok := ref.Name()
	if !ok {
		return false
	}
	_, known := a[name]
	return known
}

func (a aliasResolver) ResolveBook(ref BookRef) (passage.Book, error) {
	name, _ := ref.Name()
	b, err := catalog.KJV().Lookup(a[name])
	if err != nil {
		return nil, err
	}
	return b, nil
}

func TestCustomResolvers(t *testing.T) {
	b := New(Config{BookResolvers: []BookResolver{aliasResolver{"Apocalypse": "Rev"}}})

	r, err := b.With(Selection{Book: BookNamed("Apocalypse"), Chapter: 22})
	if err != nil {
		t.Fatalf("With() failed: %v", err)
	}
	if got, want := r.Reference(), "Revelation 22"; got != want {
		t.Errorf("Reference() = %q, want %q", got, want)
	}

	// Names the alias resolver does not know fall through to the catalog.
	if _, err := b.With(Selection{Book: BookNamed("Gen"), Chapter: 1}); err != nil {
		t.Errorf("With(Gen) failed: %v", err)
	}
}

func TestCustomCatalog(t *testing.T) {
	cat, err := catalog.New("mini", []catalog.BookData{
		{Name: "Genesis", OSIS: "Gen", Chapters: []int{31, 25, 31}},
	})
	if err != nil {
		t.Fatal(err)
	}
	b := New(Config{Catalog: cat})

	r, err := b.With(Selection{Book: BookNamed("Gen"), Chapter: 3})
	if err != nil {
		t.Fatalf("With() failed: %v", err)
	}
	if r.EndVerse() != 31 {
		t.Errorf("EndVerse() = %d, want 31 from the custom catalog", r.EndVerse())
	}
	if _, err := b.With(Selection{Book: BookNamed("Exod"), Chapter: 1}); !errors.IsValidation(err) {
		t.Errorf("With(Exod) error = %v, want a validation error", err)
	}
}

func TestRefStrings(t *testing.T) {
	gen := lookup(t, "Gen")
	tests := []struct {
		got  string
		want string
	}{
		{BookNamed("Gen").String(), `"Gen"`},
		{BookAt(42).String(), "#42"},
		{BookValue(gen).String(), "Genesis"},
		{BookRef{}.String(), "<unset>"},
		{VerseNumber(5).String(), "5"},
		{VerseValue(passage.At(gen, 3, 15)).String(), "3:15"},
		{VerseRef{}.String(), "<unset>"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
	if !(BookRef{}).IsZero() || BookNamed("x").IsZero() {
		t.Error("IsZero() mismatch")
	}
	if (VerseRef{}).IsSet() || !VerseNumber(0).IsSet() {
		t.Error("IsSet() mismatch")
	}
}

func TestBuildLogsOnce(t *testing.T) {
	var buf bytes.Buffer
	logging.InitLoggerTo(&buf, logging.LevelDebug, logging.FormatJSON)
	t.Cleanup(func() { logging.InitLogger(logging.LevelWarn, logging.FormatText) })

	b := Default().Named("Creation")
	if _, err := b.WithOSIS("Gen.1-3"); err != nil {
		t.Fatal(err)
	}
	b.Collection()
	b.Collection()
	if strings.Contains(buf.String(), "collection_built") {
		t.Errorf("Collection() should not log:\n%s", buf.String())
	}

	c := b.Build()
	if c != b.Collection() {
		t.Error("Build() should return the builder's collection")
	}
	if got := strings.Count(buf.String(), `"msg":"collection_built"`); got != 1 {
		t.Errorf("collection_built logged %d times, want 1:\n%s", got, buf.String())
	}
	if !strings.Contains(buf.String(), `"reference":"Genesis 1-3"`) || !strings.Contains(buf.String(), `"name":"Creation"`) {
		t.Errorf("collection_built entry missing fields:\n%s", buf.String())
	}
}
