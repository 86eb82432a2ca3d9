package editor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"richdoc/pkg/richdoc"
)

func TestExpandShortcut(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		caret     int
		wantText  string
		wantTag   richdoc.StyleTag
		wantCaret int
	}{
		{name: "underline", text: "***", caret: 3, wantText: "", wantTag: richdoc.Underline, wantCaret: 0},
		{name: "red", text: "**", caret: 2, wantText: "", wantTag: richdoc.Red, wantCaret: 0},
		{name: "bold", text: "*", caret: 1, wantText: "", wantTag: richdoc.Bold, wantCaret: 0},
		{name: "heading", text: "#", caret: 1, wantText: "", wantTag: richdoc.Heading, wantCaret: 0},
		{name: "heading with text", text: "#ab", caret: 3, wantText: "ab", wantTag: richdoc.Heading, wantCaret: 2},
		{name: "bold with text", text: "*hi", caret: 1, wantText: "hi", wantTag: richdoc.Bold, wantCaret: 0},
		{name: "red wins over bold", text: "**x", caret: 3, wantText: "x", wantTag: richdoc.Red, wantCaret: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, res := ExpandShortcut(docWithCaret(tt.text, tt.caret), ' ')
			require.Equal(t, Handled, res)
			requireText(t, next, tt.wantText)
			requireCaret(t, next, tt.wantCaret)

			blk := next.CurrentBlock()
			if tt.wantText == "" {
				require.Equal(t, richdoc.MaskOf(tt.wantTag), blk.Styles.BlockMask())
				return
			}
			want := []richdoc.StyleRange{{Offset: 0, Length: len([]rune(tt.wantText)), Tag: tt.wantTag}}
			require.Equal(t, want, blk.Styles.Ranges())
		})
	}
}

func TestExpandShortcutReplacesExistingStyles(t *testing.T) {
	doc := docWithCaret("*hi", 3, richdoc.StyleRange{Offset: 0, Length: 3, Tag: richdoc.Italic})
	next, res := InsertCharacter(doc, ' ')
	require.Equal(t, Handled, res)
	require.Equal(t, []richdoc.StyleRange{{Offset: 0, Length: 2, Tag: richdoc.Bold}}, next.CurrentBlock().Styles.Ranges())
}

func TestExpandShortcutNotHandled(t *testing.T) {
	tests := []struct {
		name string
		text string
		ch   rune
	}{
		{name: "not a space", text: "#", ch: 'x'},
		{name: "no marker", text: "ab", ch: ' '},
		{name: "marker not leading", text: "a#", ch: ' '},
		{name: "empty block", text: "", ch: ' '},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := docWithCaret(tt.text, len([]rune(tt.text)))
			next, res := ExpandShortcut(doc, tt.ch)
			require.Equal(t, NotHandled, res)
			require.Equal(t, doc, next)
		})
	}
}

func TestShortcutsAreReadOnly(t *testing.T) {
	got := Shortcuts()
	got[0].Marker = "!"
	require.Equal(t, "***", Shortcuts()[0].Marker)
}

func TestTypedMarkersPickMostSpecificShortcut(t *testing.T) {
	tests := []struct {
		typed string
		want  richdoc.StyleTag
	}{
		{typed: "*** ", want: richdoc.Underline},
		{typed: "** ", want: richdoc.Red},
		{typed: "* ", want: richdoc.Bold},
		{typed: "# ", want: richdoc.Heading},
	}
	for _, tt := range tests {
		doc := richdoc.New()
		var res Result
		for _, r := range tt.typed {
			doc, res = InsertCharacter(doc, r)
		}
		require.Equal(t, Handled, res, tt.typed)
		requireText(t, doc, "")
		require.Equal(t, richdoc.MaskOf(tt.want), doc.CurrentBlock().Styles.BlockMask(), tt.typed)
	}
}
