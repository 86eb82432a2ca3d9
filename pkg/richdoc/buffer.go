package richdoc

import "fmt"

// TextBuffer is the character sequence of one block. Offsets are rune offsets.
// A TextBuffer is never modified after construction.
type TextBuffer struct {
	runes []rune
}

func NewTextBuffer(text string) TextBuffer {
	if text == "" {
		return TextBuffer{}
	}
	return TextBuffer{runes: []rune(text)}
}

func (b TextBuffer) Len() int { return len(b.runes) }

func (b TextBuffer) String() string { return string(b.runes) }

// Slice returns the text in [start, end) after clamping both offsets into bounds.
func (b TextBuffer) Slice(start, end int) string {
	start = clampInt(start, 0, len(b.runes))
	end = clampInt(end, 0, len(b.runes))
	if start > end {
		start, end = end, start
	}
	return string(b.runes[start:end])
}

// HasPrefix reports whether the buffer starts with prefix.
func (b TextBuffer) HasPrefix(prefix string) bool {
	i := 0
	for _, r := range prefix {
		if i >= len(b.runes) || b.runes[i] != r {
			return false
		}
		i++
	}
	return true
}

// RuneAt returns the character at offset i, or false when i is outside the buffer.
func (b TextBuffer) RuneAt(i int) (rune, bool) {
	if i < 0 || i >= len(b.runes) {
		return 0, false
	}
	return b.runes[i], true
}

// Splice removes deleteLen characters at start and inserts text in their place.
func (b TextBuffer) Splice(start, deleteLen int, insert string) (TextBuffer, error) {
	n := len(b.runes)
	if start < 0 || deleteLen < 0 || start > n || start+deleteLen > n {
		return b, fmt.Errorf("%w: splice start=%d delete=%d length=%d", ErrOutOfRange, start, deleteLen, n)
	}
	ins := []rune(insert)
	if deleteLen == 0 && len(ins) == 0 {
		return b, nil
	}
	out := make([]rune, 0, n-deleteLen+len(ins))
	out = append(out, b.runes[:start]...)
	out = append(out, ins...)
	out = append(out, b.runes[start+deleteLen:]...)
	return TextBuffer{runes: out}, nil
}

func (b TextBuffer) Equal(o TextBuffer) bool {
	if len(b.runes) != len(o.runes) {
		return false
	}
	for i := range b.runes {
		if b.runes[i] != o.runes[i] {
			return false
		}
	}
	return true
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
