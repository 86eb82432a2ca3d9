package richdoc

import "sort"

// StyleRange attaches Tag to [Offset, Offset+Length). A zero-length range at
// offset 0 is only kept on an empty buffer, where it marks the style that the
// first typed characters inherit.
type StyleRange struct {
	Offset int
	Length int
	Tag    StyleTag
}

func (r StyleRange) End() int { return r.Offset + r.Length }

// StyleRangeSet is an immutable, normalized set of style ranges for one block.
// Ranges are sorted by offset then tag; same-tag ranges never overlap or touch.
type StyleRangeSet struct {
	ranges []StyleRange
}

// NewStyleRangeSet builds a normalized set for a buffer of textLen characters.
func NewStyleRangeSet(textLen int, ranges ...StyleRange) StyleRangeSet {
	return StyleRangeSet{ranges: ranges}.Renormalize(textLen)
}

func (s StyleRangeSet) Ranges() []StyleRange {
	if len(s.ranges) == 0 {
		return nil
	}
	return append([]StyleRange(nil), s.ranges...)
}

func (s StyleRangeSet) Len() int { return len(s.ranges) }

func (s StyleRangeSet) IsEmpty() bool { return len(s.ranges) == 0 }

func (s StyleRangeSet) HasTag(tag StyleTag) bool {
	for _, r := range s.ranges {
		if r.Tag == tag {
			return true
		}
	}
	return false
}

// ApplyUniform replaces every range with a single tag range covering the whole text.
func (s StyleRangeSet) ApplyUniform(tag StyleTag, textLen int) StyleRangeSet {
	if !tag.Valid() {
		return s
	}
	if textLen < 0 {
		textLen = 0
	}
	return StyleRangeSet{ranges: []StyleRange{{Offset: 0, Length: textLen, Tag: tag}}}
}

// Toggle removes tag from [offset, offset+length) when the span is fully
// covered by it, and adds it otherwise.
func (s StyleRangeSet) Toggle(tag StyleTag, offset, length, textLen int) StyleRangeSet {
	if !tag.Valid() {
		return s
	}
	if textLen <= 0 {
		mask := s.blockMask()
		if mask.Has(tag) {
			mask = mask.Without(tag)
		} else {
			mask = mask.With(tag)
		}
		return blockStyleSet(mask)
	}
	start := clampInt(offset, 0, textLen)
	end := clampInt(offset+length, 0, textLen)
	if start > end {
		start, end = end, start
	}
	if start == end {
		return s
	}
	remove := s.Covers(tag, start, end-start)
	cov := s.Coverage(textLen)
	for i := start; i < end; i++ {
		if remove {
			cov[i] = cov[i].Without(tag)
		} else {
			cov[i] = cov[i].With(tag)
		}
	}
	return FromCoverage(cov)
}

// Covers reports whether tag is active on every character of the span. An
// empty span is covered when a range of tag contains its offset.
func (s StyleRangeSet) Covers(tag StyleTag, offset, length int) bool {
	end := offset + length
	for _, r := range s.ranges {
		if r.Tag != tag {
			continue
		}
		if length == 0 {
			if r.Offset <= offset && offset <= r.End() {
				return true
			}
			continue
		}
		if r.Offset <= offset && end <= r.End() {
			return true
		}
	}
	return false
}

// Renormalize clips every range into [0, textLen], drops ranges that no
// longer fit and merges overlapping or adjacent ranges of the same tag.
func (s StyleRangeSet) Renormalize(textLen int) StyleRangeSet {
	if textLen <= 0 {
		return blockStyleSet(s.blockMask())
	}
	return FromCoverage(s.Coverage(textLen))
}

// AdjustForSplice maps the set across a text edit that replaced removed
// characters at start with inserted characters. Inserted characters take the
// style of the character before start, or of the first character when start
// is 0.
func (s StyleRangeSet) AdjustForSplice(oldLen, start, removed, inserted int) StyleRangeSet {
	if oldLen < 0 {
		oldLen = 0
	}
	start = clampInt(start, 0, oldLen)
	removed = clampInt(removed, 0, oldLen-start)
	if inserted < 0 {
		inserted = 0
	}
	if removed == 0 && inserted == 0 {
		return s.Renormalize(oldLen)
	}

	var inherit StyleMask
	var old []StyleMask
	if oldLen == 0 {
		inherit = s.blockMask()
	} else {
		old = s.Coverage(oldLen)
		if start > 0 {
			inherit = old[start-1]
		} else {
			inherit = old[0]
		}
	}

	newLen := oldLen - removed + inserted
	if newLen == 0 {
		return blockStyleSet(inherit)
	}
	cov := make([]StyleMask, 0, newLen)
	cov = append(cov, old[:start]...)
	for i := 0; i < inserted; i++ {
		cov = append(cov, inherit)
	}
	cov = append(cov, old[start+removed:]...)
	return FromCoverage(cov)
}

// MaskAt returns the tags active on character i.
func (s StyleRangeSet) MaskAt(i int) StyleMask {
	var m StyleMask
	for _, r := range s.ranges {
		if r.Offset <= i && i < r.End() {
			m = m.With(r.Tag)
		}
	}
	return m
}

// BlockMask returns the style carried by an empty buffer.
func (s StyleRangeSet) BlockMask() StyleMask { return s.blockMask() }

// Coverage paints the set into one StyleMask per character.
func (s StyleRangeSet) Coverage(textLen int) []StyleMask {
	if textLen <= 0 {
		return nil
	}
	cov := make([]StyleMask, textLen)
	for _, r := range s.ranges {
		if !r.Tag.Valid() {
			continue
		}
		start := clampInt(r.Offset, 0, textLen)
		end := clampInt(r.End(), 0, textLen)
		for i := start; i < end; i++ {
			cov[i] = cov[i].With(r.Tag)
		}
	}
	return cov
}

func (s StyleRangeSet) Equal(o StyleRangeSet) bool {
	if len(s.ranges) != len(o.ranges) {
		return false
	}
	for i := range s.ranges {
		if s.ranges[i] != o.ranges[i] {
			return false
		}
	}
	return true
}

// FromCoverage rebuilds a normalized set from per-character masks.
func FromCoverage(cov []StyleMask) StyleRangeSet {
	var out []StyleRange
	for t := StyleTag(0); t < styleTagCount; t++ {
		runStart := -1
		for i, m := range cov {
			if m.Has(t) {
				if runStart < 0 {
					runStart = i
				}
				continue
			}
			if runStart >= 0 {
				out = append(out, StyleRange{Offset: runStart, Length: i - runStart, Tag: t})
				runStart = -1
			}
		}
		if runStart >= 0 {
			out = append(out, StyleRange{Offset: runStart, Length: len(cov) - runStart, Tag: t})
		}
	}
	sortRanges(out)
	return StyleRangeSet{ranges: out}
}

func (s StyleRangeSet) blockMask() StyleMask {
	var m StyleMask
	for _, r := range s.ranges {
		if r.Offset == 0 && r.Length == 0 {
			m = m.With(r.Tag)
		}
	}
	return m
}

func blockStyleSet(mask StyleMask) StyleRangeSet {
	tags := mask.Tags()
	if len(tags) == 0 {
		return StyleRangeSet{}
	}
	out := make([]StyleRange, len(tags))
	for i, t := range tags {
		out[i] = StyleRange{Offset: 0, Length: 0, Tag: t}
	}
	return StyleRangeSet{ranges: out}
}

func sortRanges(rs []StyleRange) {
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].Offset == rs[j].Offset {
			return rs[i].Tag < rs[j].Tag
		}
		return rs[i].Offset < rs[j].Offset
	})
}
