package editor

import (
	"unicode"

	"github.com/rivo/uniseg"

	"richdoc/pkg/richdoc"
)

type MoveUnit uint8

const (
	MoveGrapheme MoveUnit = iota
	MoveWord
	MoveLine
	MoveBlock
)

type Direction int8

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// Move describes a caret movement. With Extend the anchor stays put and only
// the focus moves.
type Move struct {
	Unit   MoveUnit
	Dir    Direction
	Extend bool
}

// MoveCaret applies m to the selection. Selections never span blocks, so a
// block move always collapses.
func MoveCaret(doc richdoc.Document, m Move) richdoc.Document {
	sel := doc.Selection
	idx := doc.CurrentIndex()
	blk := doc.CurrentBlock()
	sel = sel.Clamp(blk.Len())
	sel.Block = idx

	if m.Unit == MoveBlock {
		target := idx + int(m.Dir)
		if target < 0 || target >= doc.BlockCount() {
			return doc.WithSelection(sel.Collapse())
		}
		return doc.WithSelection(richdoc.Caret(target, sel.Focus))
	}

	if !m.Extend && !sel.IsCollapsed() && m.Unit == MoveGrapheme {
		if m.Dir == Backward {
			return doc.WithSelection(sel.CollapseTo(sel.Start()))
		}
		return doc.WithSelection(sel.CollapseTo(sel.End()))
	}

	text := blk.Text.String()
	var focus int
	switch m.Unit {
	case MoveWord:
		focus = wordBoundary(blk.Text, sel.Focus, m.Dir)
	case MoveLine:
		focus = lineEdge(blk.Text, sel.Focus, m.Dir)
	default:
		if m.Dir == Backward {
			focus = prevGrapheme(text, sel.Focus)
		} else {
			focus = nextGrapheme(text, sel.Focus)
		}
	}
	if m.Extend {
		sel.Focus = focus
		return doc.WithSelection(sel)
	}
	return doc.WithSelection(sel.CollapseTo(focus))
}

// graphemeStops returns the rune offsets at which grapheme clusters start,
// followed by the text length.
func graphemeStops(text string) []int {
	stops := []int{0}
	g := uniseg.NewGraphemes(text)
	pos := 0
	for g.Next() {
		pos += len(g.Runes())
		stops = append(stops, pos)
	}
	return stops
}

func prevGrapheme(text string, at int) int {
	prev := 0
	for _, s := range graphemeStops(text) {
		if s >= at {
			break
		}
		prev = s
	}
	return prev
}

func nextGrapheme(text string, at int) int {
	stops := graphemeStops(text)
	for _, s := range stops {
		if s > at {
			return s
		}
	}
	return stops[len(stops)-1]
}

func wordBoundary(text richdoc.TextBuffer, at int, dir Direction) int {
	pos := clampOffset(at, text.Len())
	isWord := func(i int) bool {
		r, ok := text.RuneAt(i)
		return ok && isWordRune(r)
	}
	if dir == Backward {
		for pos > 0 && !isWord(pos-1) {
			pos--
		}
		for pos > 0 && isWord(pos-1) {
			pos--
		}
		return pos
	}
	for pos < text.Len() && !isWord(pos) {
		pos++
	}
	for pos < text.Len() && isWord(pos) {
		pos++
	}
	return pos
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// lineEdge finds the start or end of the newline-delimited line holding at.
func lineEdge(text richdoc.TextBuffer, at int, dir Direction) int {
	pos := clampOffset(at, text.Len())
	if dir == Backward {
		for pos > 0 {
			if r, _ := text.RuneAt(pos - 1); r == '\n' {
				break
			}
			pos--
		}
		return pos
	}
	for pos < text.Len() {
		if r, _ := text.RuneAt(pos); r == '\n' {
			break
		}
		pos++
	}
	return pos
}
