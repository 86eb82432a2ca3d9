package richdoc

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Markup layout: every block is a <p> element, concatenated in block order.
// Inline styles use one element per tag. The vocabulary is closed; changing
// it breaks documents that were already stored.
const blockElement = "p"

var tagElements = [styleTagCount]string{
	Bold:          "strong",
	Italic:        "em",
	Underline:     "u",
	Strikethrough: "s",
	Code:          "code",
	Heading:       "h1",
	Red:           "mark",
}

var elementTags = func() map[string]StyleTag {
	m := make(map[string]StyleTag, styleTagCount)
	for t := StyleTag(0); t < styleTagCount; t++ {
		m[tagElements[t]] = t
	}
	return m
}()

// ElementFor returns the markup element name used for tag.
func ElementFor(tag StyleTag) string {
	if !tag.Valid() {
		return ""
	}
	return tagElements[tag]
}

// Serialize writes d as markup. Each run of characters sharing the same set
// of tags is wrapped in those tags, opened in canonical order.
func Serialize(d Document) string {
	var b strings.Builder
	for _, blk := range d.Blocks {
		b.WriteString("<" + blockElement + ">")
		writeBlock(&b, blk)
		b.WriteString("</" + blockElement + ">")
	}
	return b.String()
}

func writeBlock(b *strings.Builder, blk Block) {
	n := blk.Len()
	if n == 0 {
		for _, t := range blk.Styles.BlockMask().Tags() {
			openTag(b, t)
			closeTag(b, t)
		}
		return
	}
	runes := blk.Text.runes
	cov := blk.Coverage()
	for i := 0; i < n; {
		j := i + 1
		for j < n && cov[j] == cov[i] {
			j++
		}
		tags := cov[i].Tags()
		for _, t := range tags {
			openTag(b, t)
		}
		b.WriteString(html.EscapeString(string(runes[i:j])))
		for k := len(tags) - 1; k >= 0; k-- {
			closeTag(b, tags[k])
		}
		i = j
	}
}

func openTag(b *strings.Builder, t StyleTag) {
	b.WriteString("<" + tagElements[t] + ">")
}

func closeTag(b *strings.Builder, t StyleTag) {
	b.WriteString("</" + tagElements[t] + ">")
}

// Deserialize parses markup produced by Serialize. Blank input yields an
// empty document. Any other deviation from the layout fails with
// ErrUnparseableMarkup.
func Deserialize(markup string) (Document, error) {
	if strings.TrimSpace(markup) == "" {
		return New(), nil
	}
	z := html.NewTokenizer(strings.NewReader(markup))
	var blocks []Block
	var cur *blockBuilder

loop:
	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				break loop
			}
			return Document{}, fmt.Errorf("%w: %v", ErrUnparseableMarkup, z.Err())
		case html.CommentToken, html.DoctypeToken:
			continue
		case html.TextToken:
			text := string(z.Text())
			if cur == nil {
				if strings.TrimSpace(text) == "" {
					continue
				}
				return Document{}, fmt.Errorf("%w: text outside a block: %q", ErrUnparseableMarkup, text)
			}
			cur.appendText(text)
		case html.SelfClosingTagToken:
			name, _ := z.TagName()
			return Document{}, fmt.Errorf("%w: unexpected self-closing <%s/>", ErrUnparseableMarkup, name)
		case html.StartTagToken:
			name, _ := z.TagName()
			el := string(name)
			if el == blockElement {
				if cur != nil {
					return Document{}, fmt.Errorf("%w: nested <%s>", ErrUnparseableMarkup, blockElement)
				}
				cur = &blockBuilder{}
				continue
			}
			tag, ok := elementTags[el]
			if !ok {
				return Document{}, fmt.Errorf("%w: unknown element <%s>", ErrUnparseableMarkup, el)
			}
			if cur == nil {
				return Document{}, fmt.Errorf("%w: <%s> outside a block", ErrUnparseableMarkup, el)
			}
			cur.open(tag)
		case html.EndTagToken:
			name, _ := z.TagName()
			el := string(name)
			if el == blockElement {
				if cur == nil {
					return Document{}, fmt.Errorf("%w: unmatched </%s>", ErrUnparseableMarkup, blockElement)
				}
				if len(cur.stack) > 0 {
					return Document{}, fmt.Errorf("%w: unclosed <%s> in block %d", ErrUnparseableMarkup, tagElements[cur.stack[len(cur.stack)-1]], len(blocks)+1)
				}
				blocks = append(blocks, cur.build(uint64(len(blocks)+1)))
				cur = nil
				continue
			}
			tag, ok := elementTags[el]
			if !ok {
				return Document{}, fmt.Errorf("%w: unknown element </%s>", ErrUnparseableMarkup, el)
			}
			if cur == nil || !cur.close(tag) {
				return Document{}, fmt.Errorf("%w: mismatched </%s>", ErrUnparseableMarkup, el)
			}
		}
	}
	if cur != nil {
		return Document{}, fmt.Errorf("%w: unclosed <%s>", ErrUnparseableMarkup, blockElement)
	}
	if len(blocks) == 0 {
		return New(), nil
	}
	return FromBlocks(blocks...), nil
}

// DeserializeOrEmpty is Deserialize that degrades to an empty document. The
// parse error is still returned so the caller can report it.
func DeserializeOrEmpty(markup string) (Document, error) {
	d, err := Deserialize(markup)
	if err != nil {
		return New(), err
	}
	return d, nil
}

type blockBuilder struct {
	runes []rune
	cov   []StyleMask
	stack []StyleTag
	seen  StyleMask
}

func (bb *blockBuilder) open(t StyleTag) {
	bb.stack = append(bb.stack, t)
	bb.seen = bb.seen.With(t)
}

func (bb *blockBuilder) close(t StyleTag) bool {
	if len(bb.stack) == 0 || bb.stack[len(bb.stack)-1] != t {
		return false
	}
	bb.stack = bb.stack[:len(bb.stack)-1]
	return true
}

func (bb *blockBuilder) appendText(text string) {
	var mask StyleMask
	for _, t := range bb.stack {
		mask = mask.With(t)
	}
	for _, r := range text {
		bb.runes = append(bb.runes, r)
		bb.cov = append(bb.cov, mask)
	}
}

func (bb *blockBuilder) build(id uint64) Block {
	if len(bb.runes) == 0 {
		return Block{ID: id, Styles: blockStyleSet(bb.seen)}
	}
	return Block{ID: id, Text: TextBuffer{runes: bb.runes}, Styles: FromCoverage(bb.cov)}
}
