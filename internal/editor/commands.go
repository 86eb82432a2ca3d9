package editor

import (
	"fmt"
	"strings"

	"richdoc/pkg/richdoc"
)

// Command is one named style toggle.
type Command uint8

const (
	ToggleBold Command = iota
	ToggleItalic
	ToggleUnderline
	ToggleStrikethrough
	ToggleCode
	ToggleHeading

	commandCount
)

var commandTags = [commandCount]richdoc.StyleTag{
	ToggleBold:          richdoc.Bold,
	ToggleItalic:        richdoc.Italic,
	ToggleUnderline:     richdoc.Underline,
	ToggleStrikethrough: richdoc.Strikethrough,
	ToggleCode:          richdoc.Code,
	ToggleHeading:       richdoc.Heading,
}

var commandNames = [commandCount]string{
	ToggleBold:          "bold",
	ToggleItalic:        "italic",
	ToggleUnderline:     "underline",
	ToggleStrikethrough: "strikethrough",
	ToggleCode:          "code",
	ToggleHeading:       "heading",
}

func Commands() []Command {
	out := make([]Command, 0, commandCount)
	for c := Command(0); c < commandCount; c++ {
		out = append(out, c)
	}
	return out
}

func (c Command) Valid() bool { return c < commandCount }

func (c Command) String() string {
	if !c.Valid() {
		return fmt.Sprintf("command(%d)", uint8(c))
	}
	return "toggle-" + commandNames[c]
}

func (c Command) Tag() richdoc.StyleTag { return commandTags[c] }

// LookupCommand accepts both "bold" and "toggle-bold".
func LookupCommand(name string) (Command, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimPrefix(name, "toggle-")
	for c := Command(0); c < commandCount; c++ {
		if commandNames[c] == name {
			return c, true
		}
	}
	return 0, false
}

// Scope selects which characters a command restyles.
type Scope uint8

const (
	// ScopeBlock restyles the whole current block regardless of selection.
	ScopeBlock Scope = iota
	// ScopeSelection restyles only a non-collapsed selection; a caret still
	// restyles the whole block.
	ScopeSelection
)

func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "block":
		return ScopeBlock, nil
	case "selection":
		return ScopeSelection, nil
	default:
		return ScopeBlock, fmt.Errorf("unknown style scope %q", s)
	}
}

func (s Scope) String() string {
	if s == ScopeSelection {
		return "selection"
	}
	return "block"
}

type Dispatcher struct {
	Scope Scope
}

// Dispatch toggles the command's tag. Other tags on the block are kept, so
// dispatching the same command twice restores the original styles.
func (d Dispatcher) Dispatch(doc richdoc.Document, cmd Command) (richdoc.Document, Result) {
	if !cmd.Valid() {
		return doc, NotHandled
	}
	idx := doc.CurrentIndex()
	blk := doc.CurrentBlock()
	offset, length := 0, blk.Len()
	if d.Scope == ScopeSelection && !doc.Selection.IsCollapsed() {
		sel := doc.Selection.Clamp(blk.Len())
		offset, length = sel.Start(), sel.Len()
	}
	blk.Styles = blk.Styles.Toggle(cmd.Tag(), offset, length, blk.Len())
	return doc.WithBlock(idx, blk), Handled
}

// DispatchNamed looks up name and dispatches it. Unknown names leave doc
// untouched and report NotHandled.
func (d Dispatcher) DispatchNamed(doc richdoc.Document, name string) (richdoc.Document, Result) {
	cmd, ok := LookupCommand(name)
	if !ok {
		return doc, NotHandled
	}
	return d.Dispatch(doc, cmd)
}
