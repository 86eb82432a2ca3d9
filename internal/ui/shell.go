package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"richdoc/internal/render"
)

// Layout is the screen split, in terminal cells.
type Layout struct {
	HeaderH  int
	StatusH  int
	PageX    int
	PageW    int
	ContentW int
	ContentH int
}

const (
	headerH    = 1
	statusH    = 1
	pageFrameW = 4
	pageFrameH = 2
)

func ComputeLayout(w, h int, theme Theme) Layout {
	pageW := w - theme.PageMargin*2
	if pageW > theme.MaxPageWidth {
		pageW = theme.MaxPageWidth
	}
	if pageW < theme.MinPageWidth {
		pageW = theme.MinPageWidth
	}
	pageX := (w - pageW) / 2
	if pageX < 0 {
		pageX = 0
	}
	contentH := h - headerH - statusH - pageFrameH
	if contentH < 1 {
		contentH = 1
	}
	return Layout{
		HeaderH:  headerH,
		StatusH:  statusH,
		PageX:    pageX,
		PageW:    pageW,
		ContentW: pageW - pageFrameW,
		ContentH: contentH,
	}
}

// Screen is everything the shell draws around the document.
type Screen struct {
	Width, Height int
	Title         string
	Hint          string
	Status        string
	Frame         render.Frame
	Scroll        int
}

// Scroll returns the first visible line so that the caret line stays
// inside a window of height lines, moving prev as little as possible.
func Scroll(prev, caretLine, height, total int) int {
	if height < 1 {
		height = 1
	}
	top := prev
	if caretLine < top {
		top = caretLine
	}
	if caretLine >= top+height {
		top = caretLine - height + 1
	}
	if maxTop := total - height; top > maxTop {
		top = maxTop
	}
	if top < 0 {
		top = 0
	}
	return top
}

// DrawShell composes the header, the centered page and the status bar.
func DrawShell(r *lipgloss.Renderer, theme Theme, s Screen) string {
	layout := ComputeLayout(s.Width, s.Height, theme)
	c := theme.chrome(r)

	header := c.header.Width(s.Width).MaxHeight(headerH).Render(s.Title)

	// TODO: wrap lines to ContentW before slicing so Scroll counts visual rows.
	lines := s.Frame.Lines
	top := s.Scroll
	if top > len(lines) {
		top = len(lines)
	}
	end := top + layout.ContentH
	if end > len(lines) {
		end = len(lines)
	}
	visible := append([]string(nil), lines[top:end]...)
	for len(visible) < layout.ContentH {
		visible = append(visible, "")
	}
	page := c.page.Width(layout.PageW - 2).Render(strings.Join(visible, "\n"))
	page = lipgloss.PlaceHorizontal(s.Width, lipgloss.Center, page, lipgloss.WithWhitespaceChars(" "))

	status := s.Status
	if s.Hint != "" {
		status += "  " + c.muted.Render(s.Hint)
	}
	bar := c.status.Width(s.Width).MaxHeight(statusH).Render(status)

	return lipgloss.JoinVertical(lipgloss.Left, header, page, bar)
}
