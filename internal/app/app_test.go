package app

import (
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"richdoc/internal/editor"
	"richdoc/internal/store"
)

func newTestModel(t *testing.T, clip func() (string, error)) (*Model, *store.MemorySlot) {
	t.Helper()
	slot := &store.MemorySlot{}
	state, err := editor.Open(slot, editor.Options{})
	require.NoError(t, err)
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	m := New(state, Options{Title: "test", Renderer: r, Clipboard: clip})
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 16})
	return m, slot
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestTypingShortcutAndSave(t *testing.T) {
	m, slot := newTestModel(t, nil)
	press(m,
		runes("#"),
		tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}},
		runes("Title"),
	)
	require.Equal(t, "<p><h1>Title</h1></p>", m.state.Markup())

	press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	got, ok, _ := slot.Load()
	require.True(t, ok)
	require.Equal(t, "<p><h1>Title</h1></p>", got)
	require.Contains(t, m.View(), "saved")
}

func TestAltBindingsToggleStyles(t *testing.T) {
	m, _ := newTestModel(t, nil)
	press(m, runes("hi"), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}, Alt: true})
	require.Equal(t, "<p><strong>hi</strong></p>", m.state.Markup())

	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}, Alt: true})
	require.Equal(t, "<p>hi</p>", m.state.Markup())
}

func TestBracketedPasteSkipsShortcuts(t *testing.T) {
	m, _ := newTestModel(t, nil)
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("** x"), Paste: true})
	require.Equal(t, "<p>** x</p>", m.state.Markup())
}

func TestClipboardPaste(t *testing.T) {
	m, _ := newTestModel(t, func() (string, error) { return "a\r\nb", nil })
	press(m, tea.KeyMsg{Type: tea.KeyCtrlV})
	require.Equal(t, "a\nb", m.state.Document().CurrentBlock().Text.String())

	failing, _ := newTestModel(t, func() (string, error) { return "", errors.New("no display") })
	press(failing, tea.KeyMsg{Type: tea.KeyCtrlV})
	require.Contains(t, failing.View(), "paste failed: no display")
}

func TestEditingKeys(t *testing.T) {
	m, _ := newTestModel(t, nil)
	press(m,
		runes("abc"),
		tea.KeyMsg{Type: tea.KeyLeft},
		tea.KeyMsg{Type: tea.KeyBackspace},
		tea.KeyMsg{Type: tea.KeyEnter},
		tea.KeyMsg{Type: tea.KeyDelete},
	)
	require.Equal(t, "a\n", m.state.Document().CurrentBlock().Text.String())
	require.Equal(t, 1, m.state.Document().BlockCount())
}

func TestQuitNeedsConfirmationWhenDirty(t *testing.T) {
	m, _ := newTestModel(t, nil)
	require.NotNil(t, press(m, tea.KeyMsg{Type: tea.KeyCtrlQ}))

	m, _ = newTestModel(t, nil)
	press(m, runes("x"))
	require.Nil(t, press(m, tea.KeyMsg{Type: tea.KeyCtrlQ}))
	require.Contains(t, m.View(), "unsaved changes")
	require.NotNil(t, press(m, tea.KeyMsg{Type: tea.KeyCtrlQ}))
}

func TestViewShowsDocumentAndStatus(t *testing.T) {
	m, _ := newTestModel(t, nil)
	press(m, runes("hello"))
	view := m.View()
	require.Contains(t, view, "test [modified]")
	require.Contains(t, view, "hello")
	require.Contains(t, view, "block 1/1  col 6")
	require.Equal(t, 16, lipgloss.Height(view))

	press(m, tea.KeyMsg{Type: tea.KeyF1})
	require.True(t, strings.Contains(m.View(), "word left"))
}
