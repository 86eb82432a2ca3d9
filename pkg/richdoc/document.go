package richdoc

import (
	"fmt"
	"strings"
)

// Block is one paragraph: its text and the styles over it.
type Block struct {
	ID     uint64
	Text   TextBuffer
	Styles StyleRangeSet
}

func NewBlock(id uint64, text string, ranges ...StyleRange) Block {
	tb := NewTextBuffer(text)
	return Block{ID: id, Text: tb, Styles: NewStyleRangeSet(tb.Len(), ranges...)}
}

func (b Block) Len() int { return b.Text.Len() }

// Splice edits the block text and carries the styles across the edit.
func (b Block) Splice(start, deleteLen int, insert string) (Block, error) {
	oldLen := b.Text.Len()
	next, err := b.Text.Splice(start, deleteLen, insert)
	if err != nil {
		return b, err
	}
	inserted := next.Len() - oldLen + deleteLen
	b.Styles = b.Styles.AdjustForSplice(oldLen, start, deleteLen, inserted)
	b.Text = next
	return b, nil
}

func (b Block) WithStyles(s StyleRangeSet) Block {
	b.Styles = s.Renormalize(b.Text.Len())
	return b
}

func (b Block) Coverage() []StyleMask { return b.Styles.Coverage(b.Text.Len()) }

// Document is an immutable editing state. Every operation returns a new
// value; blocks that did not change are shared between values.
type Document struct {
	Blocks    []Block
	Selection Selection
}

// New returns an empty document: one empty block with a caret at 0.
func New() Document {
	return Document{Blocks: []Block{{ID: 1}}, Selection: Caret(0, 0)}
}

func FromBlocks(blocks ...Block) Document {
	d := Document{Blocks: blocks, Selection: Caret(0, 0)}
	return d.Normalize()
}

func (d Document) BlockCount() int { return len(d.Blocks) }

// CurrentIndex is the index of the block holding the focus.
func (d Document) CurrentIndex() int {
	if len(d.Blocks) == 0 {
		return 0
	}
	return clampInt(d.Selection.Block, 0, len(d.Blocks)-1)
}

func (d Document) CurrentBlock() Block {
	if len(d.Blocks) == 0 {
		return Block{ID: 1}
	}
	return d.Blocks[d.CurrentIndex()]
}

func (d Document) Block(i int) (Block, bool) {
	if i < 0 || i >= len(d.Blocks) {
		return Block{}, false
	}
	return d.Blocks[i], true
}

// WithBlock returns a copy of d with block i replaced.
func (d Document) WithBlock(i int, b Block) Document {
	if i < 0 || i >= len(d.Blocks) {
		return d
	}
	blocks := make([]Block, len(d.Blocks))
	copy(blocks, d.Blocks)
	blocks[i] = b
	d.Blocks = blocks
	return d
}

// WithSelection returns a copy of d with sel clamped into bounds.
func (d Document) WithSelection(sel Selection) Document {
	if len(d.Blocks) == 0 {
		d = New()
	}
	sel.Block = clampInt(sel.Block, 0, len(d.Blocks)-1)
	d.Selection = sel.Clamp(d.Blocks[sel.Block].Len())
	return d
}

// SpliceCurrent edits the current block and translates the selection across
// the edit.
func (d Document) SpliceCurrent(start, deleteLen int, insert string) (Document, error) {
	idx := d.CurrentIndex()
	if len(d.Blocks) == 0 {
		d = New()
		idx = 0
	}
	blk := d.Blocks[idx]
	next, err := blk.Splice(start, deleteLen, insert)
	if err != nil {
		return d, err
	}
	inserted := next.Len() - blk.Len() + deleteLen
	d = d.WithBlock(idx, next)
	sel := d.Selection
	sel.Block = idx
	d.Selection = sel.Translate(start, deleteLen, inserted).Clamp(next.Len())
	return d, nil
}

// PlainText joins all block texts with newlines.
func (d Document) PlainText() string {
	parts := make([]string, len(d.Blocks))
	for i, b := range d.Blocks {
		parts[i] = b.Text.String()
	}
	return strings.Join(parts, "\n")
}

func (d Document) NextBlockID() uint64 {
	var maxID uint64
	for _, b := range d.Blocks {
		if b.ID > maxID {
			maxID = b.ID
		}
	}
	return maxID + 1
}

// Normalize re-derives every document invariant: at least one block, unique
// non-zero block ids, normalized styles and a selection inside its block.
func (d Document) Normalize() Document {
	if len(d.Blocks) == 0 {
		sel := d.Selection
		d = New()
		return d.WithSelection(sel)
	}
	blocks := make([]Block, len(d.Blocks))
	seen := make(map[uint64]struct{}, len(d.Blocks))
	var maxID uint64
	for _, b := range d.Blocks {
		if b.ID > maxID {
			maxID = b.ID
		}
	}
	for i, b := range d.Blocks {
		if _, dup := seen[b.ID]; b.ID == 0 || dup {
			maxID++
			b.ID = maxID
		}
		seen[b.ID] = struct{}{}
		b.Styles = b.Styles.Renormalize(b.Text.Len())
		blocks[i] = b
	}
	d.Blocks = blocks
	return d.WithSelection(d.Selection)
}

// Validate reports the first invariant violation in d.
func Validate(d Document) error {
	if len(d.Blocks) == 0 {
		return fmt.Errorf("%w: no blocks", ErrInvalidDocument)
	}
	seen := map[uint64]struct{}{}
	for i, b := range d.Blocks {
		if b.ID == 0 {
			return fmt.Errorf("%w: block[%d] id is zero", ErrInvalidDocument, i)
		}
		if _, ok := seen[b.ID]; ok {
			return fmt.Errorf("%w: duplicate block id %d", ErrInvalidDocument, b.ID)
		}
		seen[b.ID] = struct{}{}
		if err := validateRanges(b.Text.Len(), b.Styles.ranges); err != nil {
			return fmt.Errorf("%w: block %d: %v", ErrInvalidDocument, b.ID, err)
		}
	}
	sel := d.Selection
	if sel.Block < 0 || sel.Block >= len(d.Blocks) {
		return fmt.Errorf("%w: selection block %d outside %d blocks", ErrInvalidDocument, sel.Block, len(d.Blocks))
	}
	n := d.Blocks[sel.Block].Len()
	if sel.Anchor < 0 || sel.Anchor > n || sel.Focus < 0 || sel.Focus > n {
		return fmt.Errorf("%w: selection %d..%d outside text length %d", ErrInvalidDocument, sel.Anchor, sel.Focus, n)
	}
	return nil
}

func validateRanges(textLen int, ranges []StyleRange) error {
	lastEnd := map[StyleTag]int{}
	for _, r := range ranges {
		if !r.Tag.Valid() {
			return fmt.Errorf("unknown style tag %d", r.Tag)
		}
		if r.Length == 0 {
			if !(textLen == 0 && r.Offset == 0) {
				return fmt.Errorf("invalid zero-length %s range at %d", r.Tag, r.Offset)
			}
			continue
		}
		if r.Offset < 0 || r.Length < 0 || r.End() > textLen {
			return fmt.Errorf("%s range %d..%d outside text length %d", r.Tag, r.Offset, r.End(), textLen)
		}
		if end, ok := lastEnd[r.Tag]; ok && r.Offset <= end {
			return fmt.Errorf("unmerged %s ranges around offset %d", r.Tag, r.Offset)
		}
		lastEnd[r.Tag] = r.End()
	}
	return nil
}

// Equivalent reports whether a and b render the same: same block texts and
// the same styles on every character. Range fragmentation and block ids are
// ignored.
func Equivalent(a, b Document) bool {
	if len(a.Blocks) != len(b.Blocks) {
		return false
	}
	for i := range a.Blocks {
		ba, bb := a.Blocks[i], b.Blocks[i]
		if !ba.Text.Equal(bb.Text) {
			return false
		}
		if ba.Len() == 0 {
			if ba.Styles.BlockMask() != bb.Styles.BlockMask() {
				return false
			}
			continue
		}
		ca, cb := ba.Coverage(), bb.Coverage()
		for j := range ca {
			if ca[j] != cb[j] {
				return false
			}
		}
	}
	return true
}
