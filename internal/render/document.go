// Package render turns documents into styled terminal text.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"richdoc/pkg/richdoc"
)

// Styles holds one lipgloss style per inline tag plus the editing overlays.
type Styles struct {
	Text      lipgloss.Style
	Tags      map[richdoc.StyleTag]lipgloss.Style
	Selection lipgloss.Style
	Caret     lipgloss.Style

	Gutter       lipgloss.Style
	GutterActive lipgloss.Style
}

const (
	gutterMark   = "  "
	gutterActive = "▌ "
)

// ForMask merges the styles of every tag in m over the text style. Tags
// later in canonical order win on conflicting properties.
func (s Styles) ForMask(m richdoc.StyleMask) lipgloss.Style {
	st := s.Text
	for _, t := range m.Tags() {
		if ts, ok := s.Tags[t]; ok {
			st = ts.Inherit(st)
		}
	}
	return st
}

type Options struct {
	Caret  bool
	Gutter bool
}

// Frame is a rendered document. CaretLine is the index in Lines holding the
// focus, used to scroll it into view.
type Frame struct {
	Lines     []string
	CaretLine int
}

func (f Frame) String() string { return strings.Join(f.Lines, "\n") }

type cell struct {
	mask     richdoc.StyleMask
	selected bool
	caret    bool
}

// Document renders every block. Newlines inside a block start a new line;
// blocks always start on a fresh line.
func Document(doc richdoc.Document, st Styles, opts Options) Frame {
	var f Frame
	cur := doc.CurrentIndex()
	for i, blk := range doc.Blocks {
		active := i == cur
		sel := richdoc.Selection{Anchor: -1, Focus: -1}
		if active {
			sel = doc.Selection.Clamp(blk.Len())
		}
		lines, caretLine := renderBlock(blk, sel, st, opts.Caret && active)
		if active {
			f.CaretLine = len(f.Lines) + caretLine
		}
		for j, line := range lines {
			if opts.Gutter {
				g := st.Gutter.Render(gutterMark)
				if active && j == caretLine {
					g = st.GutterActive.Render(gutterActive)
				}
				line = g + line
			}
			f.Lines = append(f.Lines, line)
		}
	}
	return f
}

func renderBlock(blk richdoc.Block, sel richdoc.Selection, st Styles, showCaret bool) ([]string, int) {
	runes := []rune(blk.Text.String())
	cov := blk.Coverage()
	start, end := sel.Start(), sel.End()

	var (
		lines   []string
		line    strings.Builder
		seg     []rune
		segCell cell
	)
	flush := func() {
		if len(seg) == 0 {
			return
		}
		line.WriteString(st.cellStyle(segCell).Render(string(seg)))
		seg = seg[:0]
	}
	emit := func(c cell, r rune) {
		if len(seg) > 0 && c != segCell {
			flush()
		}
		segCell = c
		seg = append(seg, r)
	}
	caretHere := func(i int) bool { return showCaret && sel.IsCollapsed() && i == sel.Focus }

	for i, r := range runes {
		c := cell{mask: cov[i], selected: start <= i && i < end}
		if r == '\n' {
			if caretHere(i) {
				emit(cell{mask: c.mask, caret: true}, ' ')
			}
			flush()
			lines = append(lines, line.String())
			line.Reset()
			continue
		}
		if caretHere(i) {
			c.caret = true
		}
		emit(c, r)
	}
	if caretHere(len(runes)) {
		mask := blk.Styles.BlockMask()
		if len(cov) > 0 {
			mask = cov[len(cov)-1]
		}
		emit(cell{mask: mask, caret: true}, ' ')
	}
	flush()
	lines = append(lines, line.String())
	return lines, lineOf(runes, sel.Focus)
}

func (s Styles) cellStyle(c cell) lipgloss.Style {
	st := s.ForMask(c.mask)
	if c.selected {
		st = s.Selection.Inherit(st)
	}
	if c.caret {
		st = s.Caret.Inherit(st)
	}
	return st
}

func lineOf(runes []rune, offset int) int {
	n := 0
	for i := 0; i < offset && i < len(runes); i++ {
		if runes[i] == '\n' {
			n++
		}
	}
	return n
}
