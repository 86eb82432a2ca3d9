package editor

import (
	"fmt"
	"unicode/utf8"

	dmp "github.com/sergi/go-diff/diffmatchpatch"

	"richdoc/pkg/richdoc"
)

// Change summarizes the difference between two documents.
type Change struct {
	Inserted int
	Deleted  int
	Restyled bool
	Moved    bool
}

func (c Change) IsZero() bool { return c == Change{} }

func (c Change) String() string {
	if c.IsZero() {
		return "no change"
	}
	s := fmt.Sprintf("+%d -%d", c.Inserted, c.Deleted)
	if c.Restyled {
		s += " restyled"
	}
	if c.Moved {
		s += " moved"
	}
	return s
}

// Summarize diffs the plain text of prev and next character-wise. Blocks
// whose text is unchanged are compared for style changes.
func Summarize(prev, next richdoc.Document) Change {
	var c Change
	before, after := prev.PlainText(), next.PlainText()
	if before != after {
		d := dmp.New()
		for _, df := range d.DiffMain(before, after, false) {
			switch df.Type {
			case dmp.DiffInsert:
				c.Inserted += utf8.RuneCountInString(df.Text)
			case dmp.DiffDelete:
				c.Deleted += utf8.RuneCountInString(df.Text)
			}
		}
	}
	for i, b := range next.Blocks {
		p, ok := prev.Block(i)
		if !ok || !p.Text.Equal(b.Text) {
			continue
		}
		if !p.Styles.Equal(b.Styles) {
			c.Restyled = true
			break
		}
	}
	c.Moved = prev.Selection != next.Selection
	return c
}
