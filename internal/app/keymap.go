package app

import (
	"github.com/charmbracelet/bubbles/key"

	"richdoc/internal/editor"
)

// KeyMap binds terminal keys to editor operations.
type KeyMap struct {
	Left, Right           key.Binding
	ShiftLeft, ShiftRight key.Binding
	WordLeft, WordRight   key.Binding
	Home, End             key.Binding
	Up, Down              key.Binding

	Backspace, Delete key.Binding
	Enter             key.Binding
	Paste             key.Binding

	Bold, Italic, Underline, Strikethrough, Code, Heading key.Binding

	Save, Help, Quit key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:       key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:      key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		ShiftLeft:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "select left")),
		ShiftRight: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "select right")),
		WordLeft:   key.NewBinding(key.WithKeys("alt+left", "ctrl+left"), key.WithHelp("alt+←", "word left")),
		WordRight:  key.NewBinding(key.WithKeys("alt+right", "ctrl+right"), key.WithHelp("alt+→", "word right")),
		Home:       key.NewBinding(key.WithKeys("home", "ctrl+a"), key.WithHelp("home", "line start")),
		End:        key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("end", "line end")),
		Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous block")),
		Down:       key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next block")),

		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete left")),
		Delete:    key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete right")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "newline")),
		Paste:     key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),

		Bold:          key.NewBinding(key.WithKeys("alt+b"), key.WithHelp("alt+b", "bold")),
		Italic:        key.NewBinding(key.WithKeys("alt+i"), key.WithHelp("alt+i", "italic")),
		Underline:     key.NewBinding(key.WithKeys("alt+u"), key.WithHelp("alt+u", "underline")),
		Strikethrough: key.NewBinding(key.WithKeys("alt+s"), key.WithHelp("alt+s", "strikethrough")),
		Code:          key.NewBinding(key.WithKeys("alt+c"), key.WithHelp("alt+c", "code")),
		Heading:       key.NewBinding(key.WithKeys("alt+h"), key.WithHelp("alt+h", "heading")),

		Save: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Help: key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit: key.NewBinding(key.WithKeys("ctrl+q", "esc", "ctrl+c"), key.WithHelp("ctrl+q", "quit")),
	}
}

// commandBindings pairs each style binding with the command it dispatches.
func (k KeyMap) commandBindings() []commandBinding {
	return []commandBinding{
		{k.Bold, editor.ToggleBold},
		{k.Italic, editor.ToggleItalic},
		{k.Underline, editor.ToggleUnderline},
		{k.Strikethrough, editor.ToggleStrikethrough},
		{k.Code, editor.ToggleCode},
		{k.Heading, editor.ToggleHeading},
	}
}

type commandBinding struct {
	binding key.Binding
	cmd     editor.Command
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Bold, k.Heading, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.WordLeft, k.WordRight, k.Home, k.End, k.Up, k.Down},
		{k.ShiftLeft, k.ShiftRight, k.Backspace, k.Delete, k.Enter, k.Paste},
		{k.Bold, k.Italic, k.Underline, k.Strikethrough, k.Code, k.Heading},
		{k.Save, k.Help, k.Quit},
	}
}
