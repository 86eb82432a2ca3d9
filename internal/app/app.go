// Package app runs the terminal editor on top of internal/editor.
package app

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"richdoc/internal/diag"
	"richdoc/internal/editor"
	"richdoc/internal/render"
	"richdoc/internal/ui"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

type Options struct {
	Title     string
	Theme     ui.Theme
	Renderer  *lipgloss.Renderer
	Clipboard func() (string, error)
	Logger    *slog.Logger
}

// Model is the bubbletea model. All edits go through the editor state;
// the model only translates keys and draws.
type Model struct {
	state    *editor.State
	keys     KeyMap
	theme    ui.Theme
	renderer *lipgloss.Renderer
	styles   render.Styles
	help     help.Model
	log      *slog.Logger

	readClipboard func() (string, error)

	title     string
	status    string
	quitArmed bool

	width  int
	height int
	frame  render.Frame
	scroll int
}

func New(state *editor.State, opts Options) *Model {
	theme := opts.Theme
	if theme.MaxPageWidth == 0 {
		theme = ui.DefaultTheme()
	}
	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	readClip := opts.Clipboard
	if readClip == nil {
		readClip = clipboard.ReadAll
	}
	logger := opts.Logger
	if logger == nil {
		logger = diag.Discard()
	}
	title := opts.Title
	if title == "" {
		title = "richedit"
	}
	m := &Model{
		state:         state,
		keys:          DefaultKeyMap(),
		theme:         theme,
		renderer:      r,
		styles:        theme.DocumentStyles(r),
		help:          help.New(),
		log:           logger,
		readClipboard: readClip,
		title:         title,
		width:         defaultWidth,
		height:        defaultHeight,
	}
	m.help.Width = ui.ComputeLayout(m.width, m.height, theme).ContentW
	m.refresh()
	return m
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle(m.title)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		if msg.Height > 0 {
			m.height = msg.Height
		}
		m.help.Width = ui.ComputeLayout(m.width, m.height, m.theme).ContentW
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	}
	m.refresh()
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	k := m.keys
	m.status = ""
	if !key.Matches(msg, k.Quit) {
		m.quitArmed = false
	}
	switch {
	case key.Matches(msg, k.Quit):
		if m.state.Dirty() && !m.quitArmed {
			m.quitArmed = true
			m.status = "unsaved changes: quit again to discard, ctrl+s to save"
			return nil
		}
		return tea.Quit
	case key.Matches(msg, k.Save):
		m.save()
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, k.Paste):
		m.paste()
	case key.Matches(msg, k.Left):
		m.state.Move(editor.Move{Unit: editor.MoveGrapheme, Dir: editor.Backward})
	case key.Matches(msg, k.Right):
		m.state.Move(editor.Move{Unit: editor.MoveGrapheme, Dir: editor.Forward})
	case key.Matches(msg, k.ShiftLeft):
		m.state.Move(editor.Move{Unit: editor.MoveGrapheme, Dir: editor.Backward, Extend: true})
	case key.Matches(msg, k.ShiftRight):
		m.state.Move(editor.Move{Unit: editor.MoveGrapheme, Dir: editor.Forward, Extend: true})
	case key.Matches(msg, k.WordLeft):
		m.state.Move(editor.Move{Unit: editor.MoveWord, Dir: editor.Backward})
	case key.Matches(msg, k.WordRight):
		m.state.Move(editor.Move{Unit: editor.MoveWord, Dir: editor.Forward})
	case key.Matches(msg, k.Home):
		m.state.Move(editor.Move{Unit: editor.MoveLine, Dir: editor.Backward})
	case key.Matches(msg, k.End):
		m.state.Move(editor.Move{Unit: editor.MoveLine, Dir: editor.Forward})
	case key.Matches(msg, k.Up):
		m.state.Move(editor.Move{Unit: editor.MoveBlock, Dir: editor.Backward})
	case key.Matches(msg, k.Down):
		m.state.Move(editor.Move{Unit: editor.MoveBlock, Dir: editor.Forward})
	case key.Matches(msg, k.Backspace):
		m.state.Backspace()
	case key.Matches(msg, k.Delete):
		m.state.DeleteForward()
	case key.Matches(msg, k.Enter):
		m.state.OnReturn()
	default:
		for _, cb := range k.commandBindings() {
			if key.Matches(msg, cb.binding) {
				m.state.OnCommand(cb.cmd.String())
				return nil
			}
		}
		m.typeKey(msg)
	}
	return nil
}

func (m *Model) typeKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return
		}
		if msg.Paste {
			m.state.OnPaste(string(msg.Runes))
			return
		}
		for _, r := range msg.Runes {
			m.insert(r)
		}
	case tea.KeySpace:
		m.insert(' ')
	case tea.KeyTab:
		m.insert('\t')
	}
}

func (m *Model) insert(r rune) {
	if m.state.OnCharacterInsertion(r) == editor.Handled {
		blk := m.state.Document().CurrentBlock()
		m.status = "styled block " + blk.Styles.BlockMask().String()
		if blk.Len() > 0 {
			m.status = "styled block " + blk.Styles.MaskAt(0).String()
		}
	}
}

func (m *Model) paste() {
	text, err := m.readClipboard()
	if err != nil {
		m.log.Warn("clipboard read failed", "err", err)
		m.status = "paste failed: " + err.Error()
		return
	}
	m.state.OnPaste(text)
}

func (m *Model) save() {
	if err := m.state.Save(); err != nil {
		m.log.Error("save failed", "err", err)
		m.status = "save failed: " + err.Error()
		return
	}
	m.status = "saved"
}

// refresh re-renders the document and scrolls the caret into view.
func (m *Model) refresh() {
	layout := ui.ComputeLayout(m.width, m.height, m.theme)
	m.frame = render.Document(m.state.Document(), m.styles, render.Options{Caret: true, Gutter: true})
	if m.help.ShowAll {
		m.frame = render.Frame{Lines: strings.Split(m.help.FullHelpView(m.keys.FullHelp()), "\n")}
	}
	m.scroll = ui.Scroll(m.scroll, m.frame.CaretLine, layout.ContentH, len(m.frame.Lines))
}

func (m *Model) View() string {
	title := m.title
	if m.state.Dirty() {
		title += " [modified]"
	}
	return ui.DrawShell(m.renderer, m.theme, ui.Screen{
		Width:  m.width,
		Height: m.height,
		Title:  title,
		Hint:   m.help.ShortHelpView(m.keys.ShortHelp()),
		Status: m.statusLine(),
		Frame:  m.frame,
		Scroll: m.scroll,
	})
}

func (m *Model) statusLine() string {
	if m.status != "" {
		return m.status
	}
	doc := m.state.Document()
	blk := doc.CurrentBlock()
	focus := doc.Selection.Focus
	mask := blk.Styles.BlockMask()
	if blk.Len() > 0 {
		mask = blk.Styles.MaskAt(max(focus-1, 0))
	}
	line := fmt.Sprintf("block %d/%d  col %d  %s", doc.CurrentIndex()+1, doc.BlockCount(), focus+1, mask)
	if n := doc.Selection.Len(); n > 0 {
		line += fmt.Sprintf("  %d selected", n)
	}
	if c := m.state.LastChange(); c.Inserted > 0 || c.Deleted > 0 || c.Restyled {
		line += "  " + c.String()
	}
	return line
}
