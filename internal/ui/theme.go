package ui

import (
	"github.com/charmbracelet/lipgloss"

	"richdoc/internal/render"
	"richdoc/pkg/richdoc"
)

type Theme struct {
	TopBar     lipgloss.AdaptiveColor
	TopBarText lipgloss.AdaptiveColor
	Border     lipgloss.AdaptiveColor
	StatusBar  lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Accent     lipgloss.AdaptiveColor
	Alert      lipgloss.AdaptiveColor
	CodeBG     lipgloss.AdaptiveColor
	Selection  lipgloss.AdaptiveColor

	PageMargin   int
	MaxPageWidth int
	MinPageWidth int
}

func DefaultTheme() Theme {
	return Theme{
		TopBar:     lipgloss.AdaptiveColor{Light: "#2B579A", Dark: "#2B579A"},
		TopBarText: lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"},
		Border:     lipgloss.AdaptiveColor{Light: "#B2BFD0", Dark: "#4A5568"},
		StatusBar:  lipgloss.AdaptiveColor{Light: "#EAEFF6", Dark: "#1F2937"},
		Muted:      lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"},
		Accent:     lipgloss.AdaptiveColor{Light: "#2B579A", Dark: "#7AA2F7"},
		Alert:      lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#FF5F5F"},
		CodeBG:     lipgloss.AdaptiveColor{Light: "#E2E7EF", Dark: "#2D3340"},
		Selection:  lipgloss.AdaptiveColor{Light: "#C8D7F0", Dark: "#3B4A66"},

		PageMargin:   2,
		MaxPageWidth: 100,
		MinPageWidth: 20,
	}
}

// DocumentStyles builds the per-tag styles the document renderer uses.
func (t Theme) DocumentStyles(r *lipgloss.Renderer) render.Styles {
	return render.Styles{
		Text: r.NewStyle(),
		Tags: map[richdoc.StyleTag]lipgloss.Style{
			richdoc.Bold:          r.NewStyle().Bold(true),
			richdoc.Italic:        r.NewStyle().Italic(true),
			richdoc.Underline:     r.NewStyle().Underline(true),
			richdoc.Strikethrough: r.NewStyle().Strikethrough(true),
			richdoc.Code:          r.NewStyle().Background(t.CodeBG),
			richdoc.Heading:       r.NewStyle().Bold(true).Foreground(t.Accent),
			richdoc.Red:           r.NewStyle().Foreground(t.Alert),
		},
		Selection:    r.NewStyle().Background(t.Selection),
		Caret:        r.NewStyle().Reverse(true),
		Gutter:       r.NewStyle().Foreground(t.Muted),
		GutterActive: r.NewStyle().Foreground(t.Accent),
	}
}

type chrome struct {
	header lipgloss.Style
	page   lipgloss.Style
	status lipgloss.Style
	muted  lipgloss.Style
}

func (t Theme) chrome(r *lipgloss.Renderer) chrome {
	return chrome{
		header: r.NewStyle().Bold(true).Foreground(t.TopBarText).Background(t.TopBar).Padding(0, 1),
		page:   r.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1),
		status: r.NewStyle().Background(t.StatusBar).Padding(0, 1),
		muted:  r.NewStyle().Foreground(t.Muted),
	}
}
