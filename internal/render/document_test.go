package render

import (
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"richdoc/pkg/richdoc"
)

func testStyles() Styles {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	return Styles{
		Text: r.NewStyle(),
		Tags: map[richdoc.StyleTag]lipgloss.Style{
			richdoc.Bold: r.NewStyle().Bold(true),
			richdoc.Red:  r.NewStyle().Foreground(lipgloss.Color("#ff0000")),
		},
		Selection:    r.NewStyle().Background(lipgloss.Color("#333333")),
		Caret:        r.NewStyle().Reverse(true),
		Gutter:       r.NewStyle(),
		GutterActive: r.NewStyle().Bold(true),
	}
}

func TestDocumentRendersStyleRuns(t *testing.T) {
	st := testStyles()
	doc := richdoc.FromBlocks(richdoc.NewBlock(1, "abc", richdoc.StyleRange{Offset: 1, Length: 2, Tag: richdoc.Bold}))

	got := Document(doc, st, Options{}).String()
	want := st.Text.Render("a") + st.ForMask(richdoc.MaskOf(richdoc.Bold)).Render("bc")
	if got != want {
		t.Fatalf("unexpected render:\n got: %q\nwant: %q", got, want)
	}
}

func TestDocumentCaretAtEnd(t *testing.T) {
	st := testStyles()
	doc := richdoc.FromBlocks(richdoc.NewBlock(1, "ab")).WithSelection(richdoc.Caret(0, 2))

	got := Document(doc, st, Options{Caret: true}).String()
	want := st.Text.Render("ab") + st.cellStyle(cell{caret: true}).Render(" ")
	if got != want {
		t.Fatalf("unexpected render:\n got: %q\nwant: %q", got, want)
	}
}

func TestDocumentSelection(t *testing.T) {
	st := testStyles()
	doc := richdoc.FromBlocks(richdoc.NewBlock(1, "abcd")).
		WithSelection(richdoc.Selection{Anchor: 1, Focus: 3})

	got := Document(doc, st, Options{Caret: true}).String()
	want := st.Text.Render("a") + st.cellStyle(cell{selected: true}).Render("bc") + st.Text.Render("d")
	if got != want {
		t.Fatalf("unexpected render:\n got: %q\nwant: %q", got, want)
	}
}

func TestDocumentLinesAndCaretLine(t *testing.T) {
	st := testStyles()
	doc := richdoc.FromBlocks(
		richdoc.NewBlock(1, "one"),
		richdoc.NewBlock(2, "two\nthree"),
	).WithSelection(richdoc.Caret(1, 5))

	f := Document(doc, st, Options{})
	if len(f.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(f.Lines), f.Lines)
	}
	if f.CaretLine != 2 {
		t.Fatalf("expected caret on line 2, got %d", f.CaretLine)
	}
	if f.Lines[2] != st.Text.Render("three") {
		t.Fatalf("unexpected last line: %q", f.Lines[2])
	}
}

func TestDocumentGutterMarksCaretLine(t *testing.T) {
	st := testStyles()
	doc := richdoc.FromBlocks(richdoc.NewBlock(1, "a"), richdoc.NewBlock(2, "b")).
		WithSelection(richdoc.Caret(1, 0))

	f := Document(doc, st, Options{Gutter: true})
	if f.Lines[0] != st.Gutter.Render(gutterMark)+st.Text.Render("a") {
		t.Fatalf("unexpected inactive line: %q", f.Lines[0])
	}
	if f.Lines[1] != st.GutterActive.Render(gutterActive)+st.Text.Render("b") {
		t.Fatalf("unexpected active line: %q", f.Lines[1])
	}
}

func TestForMaskCombinesTags(t *testing.T) {
	st := testStyles()
	got := st.ForMask(richdoc.MaskOf(richdoc.Bold, richdoc.Red))
	if !got.GetBold() {
		t.Fatalf("expected bold")
	}
	if got.GetForeground() != lipgloss.Color("#ff0000") {
		t.Fatalf("expected red foreground, got %v", got.GetForeground())
	}
	if st.ForMask(richdoc.MaskOf(richdoc.Italic)).GetItalic() {
		t.Fatalf("tag without a style should render plain")
	}
}
