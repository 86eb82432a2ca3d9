package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"richdoc/internal/diag"
	"richdoc/pkg/richdoc"
)

var ErrNoSlot = errors.New("editor: no storage slot")

// Slot is the storage a State loads from and saves to.
type Slot interface {
	Load() (string, bool, error)
	Store(markup string) error
}

type Options struct {
	Scope  Scope
	Logger *slog.Logger
}

// State owns the live document. Handlers compute a new document and the
// state replaces its reference wholesale.
type State struct {
	doc        richdoc.Document
	dispatcher Dispatcher
	slot       Slot
	log        *slog.Logger

	saved    string
	hasSaved bool
	last     Change
}

func NewState(doc richdoc.Document, opts Options) *State {
	logger := opts.Logger
	if logger == nil {
		logger = diag.Discard()
	}
	if doc.BlockCount() == 0 {
		doc = richdoc.New()
	}
	return &State{
		doc:        doc.Normalize(),
		dispatcher: Dispatcher{Scope: opts.Scope},
		log:        logger,
	}
}

// Open loads the document held by slot. A missing value gives an empty
// document; unparseable markup is logged and also gives an empty document.
func Open(slot Slot, opts Options) (*State, error) {
	markup, ok, err := slot.Load()
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	s := NewState(richdoc.New(), opts)
	s.slot = slot
	if !ok {
		s.log.Info("no stored document, starting empty")
		return s, nil
	}
	doc, err := richdoc.DeserializeOrEmpty(markup)
	if err != nil {
		s.log.Warn("stored document unreadable, starting empty", "err", err)
		return s, nil
	}
	s.doc = doc
	s.saved, s.hasSaved = markup, true
	s.log.Info("document loaded", "blocks", doc.BlockCount())
	return s, nil
}

func (s *State) Document() richdoc.Document { return s.doc }

func (s *State) Scope() Scope { return s.dispatcher.Scope }

// LastChange summarizes the most recent edit.
func (s *State) LastChange() Change { return s.last }

// Replace swaps in doc as the live document.
func (s *State) Replace(doc richdoc.Document) {
	s.apply("replace", doc)
}

func (s *State) apply(op string, next richdoc.Document) {
	prev := s.doc
	s.doc = next
	s.last = Summarize(prev, next)
	if s.log.Enabled(context.Background(), slog.LevelDebug) && !s.last.IsZero() {
		s.log.Debug("edit",
			"op", op,
			"inserted", s.last.Inserted,
			"deleted", s.last.Deleted,
			"restyled", s.last.Restyled,
			"block", next.CurrentIndex(),
		)
	}
}

func (s *State) OnCharacterInsertion(ch rune) Result {
	next, res := InsertCharacter(s.doc, ch)
	op := "insert"
	if res == Handled {
		op = "shortcut"
	}
	s.apply(op, next)
	return res
}

func (s *State) OnCommand(name string) Result {
	next, res := s.dispatcher.DispatchNamed(s.doc, name)
	if res == NotHandled {
		s.log.Debug("unknown command", "name", name)
		return res
	}
	s.apply("command", next)
	return res
}

func (s *State) OnPaste(text string) {
	s.apply("paste", Paste(s.doc, text))
}

func (s *State) OnReturn() {
	s.apply("return", Return(s.doc))
}

func (s *State) OnSelectionChange(sel richdoc.Selection) {
	s.apply("select", SetSelection(s.doc, sel))
}

func (s *State) Backspace() {
	s.apply("backspace", Backspace(s.doc))
}

func (s *State) DeleteForward() {
	s.apply("delete", DeleteForward(s.doc))
}

func (s *State) Move(m Move) {
	s.apply("move", MoveCaret(s.doc, m))
}

// Markup serializes the live document.
func (s *State) Markup() string { return richdoc.Serialize(s.doc) }

// Save writes the serialized document to the slot.
func (s *State) Save() error {
	if s.slot == nil {
		return ErrNoSlot
	}
	markup := s.Markup()
	if err := s.slot.Store(markup); err != nil {
		return fmt.Errorf("store document: %w", err)
	}
	s.saved, s.hasSaved = markup, true
	s.log.Info("document saved", "blocks", s.doc.BlockCount(), "bytes", len(markup))
	return nil
}

// Dirty reports whether the document differs from what was last loaded or
// saved.
func (s *State) Dirty() bool {
	markup := s.Markup()
	if !s.hasSaved {
		return markup != richdoc.Serialize(richdoc.New())
	}
	return markup != s.saved
}
