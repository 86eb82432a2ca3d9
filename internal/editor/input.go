package editor

import (
	"strings"
	"unicode/utf8"

	"richdoc/pkg/richdoc"
)

// InsertCharacter handles one typed character. Shortcuts are evaluated
// first; when one fires the character is consumed and Handled is returned.
// Otherwise ch replaces the selection and NotHandled is returned.
func InsertCharacter(doc richdoc.Document, ch rune) (richdoc.Document, Result) {
	switch ch {
	case 0, utf8.RuneError:
		return doc, NotHandled
	case '\r':
		ch = '\n'
	}
	if next, res := ExpandShortcut(doc, ch); res == Handled {
		return next, Handled
	}
	return replaceSelection(doc, string(ch)), NotHandled
}

// Paste inserts text at the caret without evaluating shortcuts.
func Paste(doc richdoc.Document, text string) richdoc.Document {
	text = normalizeInput(text)
	if text == "" {
		return doc
	}
	return replaceSelection(doc, text)
}

// Return inserts a literal newline into the current block.
func Return(doc richdoc.Document) richdoc.Document {
	return replaceSelection(doc, "\n")
}

func SetSelection(doc richdoc.Document, sel richdoc.Selection) richdoc.Document {
	return doc.WithSelection(sel)
}

// DeleteSelection removes a non-collapsed selection. It reports false when
// there was nothing to delete.
func DeleteSelection(doc richdoc.Document) (richdoc.Document, bool) {
	sel := doc.Selection.Clamp(doc.CurrentBlock().Len())
	if sel.IsCollapsed() {
		return doc, false
	}
	return spliceAndPlace(doc, sel.Start(), sel.Len(), ""), true
}

// Backspace deletes the selection or the grapheme before the caret.
func Backspace(doc richdoc.Document) richdoc.Document {
	if next, ok := DeleteSelection(doc); ok {
		return next
	}
	blk := doc.CurrentBlock()
	at := clampOffset(doc.Selection.Focus, blk.Len())
	if at == 0 {
		return doc
	}
	start := prevGrapheme(blk.Text.String(), at)
	return spliceAndPlace(doc, start, at-start, "")
}

// DeleteForward deletes the selection or the grapheme after the caret.
func DeleteForward(doc richdoc.Document) richdoc.Document {
	if next, ok := DeleteSelection(doc); ok {
		return next
	}
	blk := doc.CurrentBlock()
	at := clampOffset(doc.Selection.Focus, blk.Len())
	if at >= blk.Len() {
		return doc
	}
	end := nextGrapheme(blk.Text.String(), at)
	return spliceAndPlace(doc, at, end-at, "")
}

func replaceSelection(doc richdoc.Document, text string) richdoc.Document {
	sel := doc.Selection.Clamp(doc.CurrentBlock().Len())
	return spliceAndPlace(doc, sel.Start(), sel.Len(), text)
}

// spliceAndPlace edits the current block and leaves a caret after the
// inserted text.
func spliceAndPlace(doc richdoc.Document, start, deleteLen int, text string) richdoc.Document {
	next, err := doc.SpliceCurrent(start, deleteLen, text)
	if err != nil {
		return doc
	}
	return next.WithSelection(richdoc.Caret(next.CurrentIndex(), start+utf8.RuneCountInString(text)))
}

func normalizeInput(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\x00", "")
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	return s
}

func clampOffset(v, n int) int {
	if v < 0 {
		return 0
	}
	if v > n {
		return n
	}
	return v
}
