package passage

import "testing"

func TestReference(t *testing.T) {
	tests := []struct {
		name string
		span Span
		want string
	}{
		{"chapters with partial end", NewSpan(1, 3, 1, 15), "Genesis 1-3:15"},
		{"whole chapter", NewSpan(1, 1, 1, 31), "Genesis 1"},
		{"chapter prefix", NewSpan(1, 1, 1, 10), "Genesis 1:10"},
		// A same-chapter range ending on the last verse shows only its start.
		{"start verse to chapter end", NewSpan(1, 1, 5, 31), "Genesis 1:5"},
		{"single verse", NewSpan(1, 1, 7, 7), "Genesis 1:7"},
		{"verse range", NewSpan(1, 1, 7, 12), "Genesis 1:7-12"},
		{"whole chapters", NewSpan(1, 3, 1, 31), "Genesis 1-3"},
		{"whole chapters with other verse count", NewSpan(4, 6, 1, 25), "Genesis 4-6"},
		{"mid-chapter start to chapter end", NewSpan(1, 3, 5, 31), "Genesis 1:5-3"},
		{"verse to verse across chapters", NewSpan(1, 3, 5, 10), "Genesis 1:5-3:10"},
		{"single verse chapter end", NewSpan(2, 2, 31, 31), "Genesis 2:31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewFromSpan(genesis, tt.span)
			if err != nil {
				t.Fatalf("NewFromSpan() failed: %v", err)
			}
			if got := r.Reference(); got != tt.want {
				t.Errorf("Reference() = %q, want %q", got, tt.want)
			}
			if got := r.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReferenceIgnoresExclusions(t *testing.T) {
	r := mustRange(t, luke, 1, 1, 1, 10)
	mustExclude(t, r, 1, 1, 7, 8)
	if got, want := r.Reference(), "Luke 1:10"; got != want {
		t.Errorf("Reference() = %q, want %q", got, want)
	}
}
