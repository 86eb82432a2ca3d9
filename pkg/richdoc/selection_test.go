package richdoc

import "testing"

func TestSelectionShiftClampsAtZero(t *testing.T) {
	s := Selection{Anchor: 1, Focus: 4}.Shift(-2)
	if s.Anchor != 0 || s.Focus != 2 {
		t.Fatalf("unexpected shift: %+v", s)
	}
}

func TestSelectionTranslate(t *testing.T) {
	cases := []struct {
		name                  string
		sel                   Selection
		at, removed, inserted int
		wantAnchor, wantFocus int
	}{
		{"before edit", Caret(0, 1), 2, 0, 3, 1, 1},
		{"at insertion point", Caret(0, 2), 2, 0, 3, 5, 5},
		{"after deletion", Caret(0, 6), 2, 2, 0, 4, 4},
		{"inside deletion", Caret(0, 3), 2, 2, 1, 3, 3},
		{"range across edit", Selection{Anchor: 1, Focus: 5}, 2, 1, 0, 1, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.sel.Translate(tc.at, tc.removed, tc.inserted)
			if got.Anchor != tc.wantAnchor || got.Focus != tc.wantFocus {
				t.Fatalf("got %d..%d, want %d..%d", got.Anchor, got.Focus, tc.wantAnchor, tc.wantFocus)
			}
		})
	}
}

func TestSelectionOrdering(t *testing.T) {
	s := Selection{Anchor: 5, Focus: 2}
	if s.Start() != 2 || s.End() != 5 || s.Len() != 3 || s.IsCollapsed() {
		t.Fatalf("unexpected ordering for %+v", s)
	}
	if c := s.Collapse(); !c.IsCollapsed() || c.Focus != 2 {
		t.Fatalf("unexpected collapse: %+v", c)
	}
}
