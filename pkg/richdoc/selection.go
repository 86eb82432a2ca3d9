package richdoc

// Selection is an anchor/focus pair inside one block. Anchor == Focus is a caret.
type Selection struct {
	Block  int
	Anchor int
	Focus  int
}

func Caret(block, offset int) Selection {
	return Selection{Block: block, Anchor: offset, Focus: offset}
}

func (s Selection) IsCollapsed() bool { return s.Anchor == s.Focus }

func (s Selection) Start() int {
	if s.Anchor < s.Focus {
		return s.Anchor
	}
	return s.Focus
}

func (s Selection) End() int {
	if s.Anchor > s.Focus {
		return s.Anchor
	}
	return s.Focus
}

func (s Selection) Len() int { return s.End() - s.Start() }

// Shift moves anchor and focus by delta, never below zero.
func (s Selection) Shift(delta int) Selection {
	s.Anchor = max(s.Anchor+delta, 0)
	s.Focus = max(s.Focus+delta, 0)
	return s
}

// Translate maps both offsets across an edit that replaced removed characters
// at position at with inserted characters.
func (s Selection) Translate(at, removed, inserted int) Selection {
	s.Anchor = translateOffset(s.Anchor, at, removed, inserted)
	s.Focus = translateOffset(s.Focus, at, removed, inserted)
	return s
}

func (s Selection) Clamp(length int) Selection {
	s.Anchor = clampInt(s.Anchor, 0, length)
	s.Focus = clampInt(s.Focus, 0, length)
	return s
}

// Collapse drops the selected span, keeping the focus.
func (s Selection) Collapse() Selection {
	s.Anchor = s.Focus
	return s
}

func (s Selection) CollapseTo(offset int) Selection {
	if offset < 0 {
		offset = 0
	}
	s.Anchor = offset
	s.Focus = offset
	return s
}

func translateOffset(o, at, removed, inserted int) int {
	switch {
	case o < at:
		return o
	case o >= at+removed:
		o += inserted - removed
	default:
		o = at + inserted
	}
	if o < 0 {
		return 0
	}
	return o
}
