package richdoc

import (
	"errors"
	"testing"
)

func TestSpliceInsertAndDelete(t *testing.T) {
	b := NewTextBuffer("abcd")
	got, err := b.Splice(2, 1, "XY")
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "abXYd" {
		t.Fatalf("unexpected splice result: %q", got.String())
	}
	if b.String() != "abcd" {
		t.Fatalf("receiver was modified: %q", b.String())
	}
}

func TestSpliceOutOfRangeLeavesBufferUnchanged(t *testing.T) {
	b := NewTextBuffer("ab")
	cases := []struct {
		name       string
		start, del int
	}{
		{"start past end", 3, 0},
		{"delete past end", 1, 2},
		{"negative start", -1, 0},
		{"negative delete", 0, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := b.Splice(tc.start, tc.del, "x")
			if !errors.Is(err, ErrOutOfRange) {
				t.Fatalf("expected ErrOutOfRange, got %v", err)
			}
			if got.String() != "ab" || b.String() != "ab" {
				t.Fatalf("buffer changed: %q / %q", got.String(), b.String())
			}
		})
	}
}

func TestSliceClamps(t *testing.T) {
	b := NewTextBuffer("héllo")
	if got := b.Slice(1, 3); got != "él" {
		t.Fatalf("unexpected slice: %q", got)
	}
	if got := b.Slice(-5, 99); got != "héllo" {
		t.Fatalf("unexpected clamped slice: %q", got)
	}
	if got := b.Slice(4, 2); got != "ll" {
		t.Fatalf("unexpected reversed slice: %q", got)
	}
}

func TestHasPrefixCountsCharacters(t *testing.T) {
	b := NewTextBuffer("**x")
	if !b.HasPrefix("**") || !b.HasPrefix("*") || b.HasPrefix("***") {
		t.Fatalf("prefix checks failed for %q", b.String())
	}
	if !NewTextBuffer("").HasPrefix("") {
		t.Fatalf("empty prefix should match")
	}
}
