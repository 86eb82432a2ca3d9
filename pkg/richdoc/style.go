package richdoc

import "strings"

// StyleTag is one inline style. The set is closed.
type StyleTag uint8

const (
	Bold StyleTag = iota
	Italic
	Underline
	Strikethrough
	Code
	Heading
	Red

	styleTagCount
)

var styleTagNames = [styleTagCount]string{
	Bold:          "BOLD",
	Italic:        "ITALIC",
	Underline:     "UNDERLINE",
	Strikethrough: "STRIKETHROUGH",
	Code:          "CODE",
	Heading:       "HEADING",
	Red:           "RED",
}

// AllStyleTags lists every tag in canonical order.
func AllStyleTags() []StyleTag {
	out := make([]StyleTag, 0, styleTagCount)
	for t := StyleTag(0); t < styleTagCount; t++ {
		out = append(out, t)
	}
	return out
}

func (t StyleTag) Valid() bool { return t < styleTagCount }

func (t StyleTag) String() string {
	if !t.Valid() {
		return "UNKNOWN"
	}
	return styleTagNames[t]
}

func ParseStyleTag(s string) (StyleTag, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for t := StyleTag(0); t < styleTagCount; t++ {
		if styleTagNames[t] == s {
			return t, true
		}
	}
	return 0, false
}

// StyleMask is the set of tags active on one character.
type StyleMask uint8

func MaskOf(tags ...StyleTag) StyleMask {
	var m StyleMask
	for _, t := range tags {
		m = m.With(t)
	}
	return m
}

func (m StyleMask) Has(t StyleTag) bool {
	return t.Valid() && m&(1<<t) != 0
}

func (m StyleMask) With(t StyleTag) StyleMask {
	if !t.Valid() {
		return m
	}
	return m | 1<<t
}

func (m StyleMask) Without(t StyleTag) StyleMask {
	if !t.Valid() {
		return m
	}
	return m &^ (1 << t)
}

// Tags returns the tags in m in canonical order.
func (m StyleMask) Tags() []StyleTag {
	var out []StyleTag
	for t := StyleTag(0); t < styleTagCount; t++ {
		if m.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

func (m StyleMask) String() string {
	tags := m.Tags()
	if len(tags) == 0 {
		return "PLAIN"
	}
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.String()
	}
	return strings.Join(names, "+")
}
