package editor

import (
	"unicode/utf8"

	"richdoc/pkg/richdoc"
)

const shortcutTrigger = ' '

// Shortcut restyles a block whose text starts with Marker when the trigger
// character is typed.
type Shortcut struct {
	Marker string
	Tag    richdoc.StyleTag
}

// Longer markers come first: "*" is a prefix of "**" and "***".
var shortcuts = []Shortcut{
	{Marker: "***", Tag: richdoc.Underline},
	{Marker: "**", Tag: richdoc.Red},
	{Marker: "*", Tag: richdoc.Bold},
	{Marker: "#", Tag: richdoc.Heading},
}

// Shortcuts returns the shortcut table in evaluation order.
func Shortcuts() []Shortcut {
	return append([]Shortcut(nil), shortcuts...)
}

// MatchShortcut returns the first shortcut that fires when ch is typed into a
// block holding text.
func MatchShortcut(text richdoc.TextBuffer, ch rune) (Shortcut, bool) {
	if ch != shortcutTrigger {
		return Shortcut{}, false
	}
	for _, sc := range shortcuts {
		if text.HasPrefix(sc.Marker) {
			return sc, true
		}
	}
	return Shortcut{}, false
}

// ExpandShortcut runs before ch is committed. On a match the marker is
// stripped, the selection moves left by the marker length, the whole block
// takes the shortcut style and the trigger character is dropped.
func ExpandShortcut(doc richdoc.Document, ch rune) (richdoc.Document, Result) {
	idx := doc.CurrentIndex()
	blk := doc.CurrentBlock()
	sc, ok := MatchShortcut(blk.Text, ch)
	if !ok {
		return doc, NotHandled
	}
	n := utf8.RuneCountInString(sc.Marker)
	text, err := blk.Text.Splice(0, n, "")
	if err != nil {
		return doc, NotHandled
	}
	blk.Text = text
	blk.Styles = blk.Styles.ApplyUniform(sc.Tag, text.Len())

	next := doc.WithBlock(idx, blk)
	sel := doc.Selection
	sel.Block = idx
	next.Selection = sel.Shift(-n).Clamp(text.Len())
	return next, Handled
}
