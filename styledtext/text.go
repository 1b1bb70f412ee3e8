package styledtext

import "sort"

// Style names recognized by this package. Parse and Render only ever produce
// or consume these five.
const (
	StyleFG      = "fg"      // value: "0".."15" (standard + bright ANSI colors)
	StyleBG      = "bg"      // value: "0".."15"
	StyleFGIndex = "fgindex" // value: "0".."255" (extended 256-color palette)
	StyleBGIndex = "bgindex" // value: "0".."255"
	StyleBold    = "bold"    // value: "" (presence-only)
)

// Style is a single named style attribute with its value.
type Style struct {
	Name  string
	Value string
}

// Tag is a style extent over code-point offsets [Start, End).
type Tag struct {
	Start, End int
	Style
}

// Text is a sequence of code points plus a set of tag extents.
//
// The zero Text is valid and represents the empty string.
type Text struct {
	runes []rune
	tags  []Tag // in insertion order; Tags returns them sorted by Start, then End
}

// New wraps a plain, unstyled string.
func New(s string) Text {
	return Text{runes: []rune(s)}
}

// Len returns the number of code points in t.
func (t Text) Len() int { return len(t.runes) }

// String returns the plain text of t with all style information discarded.
func (t Text) String() string { return string(t.runes) }

// Tags returns a copy of t's tag extents, sorted by Start then End.
func (t Text) Tags() []Tag {
	return t.sortedTags()
}

func (t Text) sortedTags() []Tag {
	tags := make([]Tag, len(t.tags))
	copy(tags, t.tags)
	sort.SliceStable(tags, func(i, j int) bool {
		if tags[i].Start != tags[j].Start {
			return tags[i].Start < tags[j].Start
		}
		return tags[i].End < tags[j].End
	})
	return tags
}

// Slice returns the substring of t over code points [start, end), clipping
// and translating tags to the new offsets. Tags that don't intersect
// [start, end) are dropped.
func (t Text) Slice(start, end int) Text {
	if start < 0 {
		start = 0
	}
	if end > len(t.runes) {
		end = len(t.runes)
	}
	if start >= end {
		return Text{}
	}

	out := Text{runes: append([]rune(nil), t.runes[start:end]...)}
	for _, tg := range t.tags {
		s, e := tg.Start, tg.End
		if s < start {
			s = start
		}
		if e > end {
			e = end
		}
		if s >= e {
			continue
		}
		out.tags = append(out.tags, Tag{Start: s - start, End: e - start, Style: tg.Style})
	}
	return out
}

// Concat returns t followed by other, with other's tags shifted by t.Len().
func (t Text) Concat(other Text) Text {
	if t.Len() == 0 {
		return other
	}
	if other.Len() == 0 {
		return t
	}
	offset := t.Len()
	out := Text{
		runes: append(append([]rune(nil), t.runes...), other.runes...),
		tags:  append([]Tag(nil), t.tags...),
	}
	for _, tg := range other.tags {
		out.tags = append(out.tags, Tag{Start: tg.Start + offset, End: tg.End + offset, Style: tg.Style})
	}
	return out
}

// Join concatenates parts in order, analogous to strings.Join but without a
// separator (callers that need one can include it as its own Text).
func Join(parts ...Text) Text {
	var out Text
	for _, p := range parts {
		out = out.Concat(p)
	}
	return out
}

// WithTag returns a copy of t with an additional tag covering code points
// [start, end). start/end are clamped to t's bounds; a non-positive-width
// range after clamping is a no-op.
func (t Text) WithTag(start, end int, style Style) Text {
	if start < 0 {
		start = 0
	}
	if end > t.Len() {
		end = t.Len()
	}
	if start >= end {
		return t
	}
	out := Text{
		runes: append([]rune(nil), t.runes...),
		tags:  append(append([]Tag(nil), t.tags...), Tag{Start: start, End: end, Style: style}),
	}
	return out
}

// HasTagAt reports whether any tag named name covers code point pos.
func (t Text) HasTagAt(pos int, name string) bool {
	for _, tg := range t.tags {
		if tg.Name == name && tg.Start <= pos && pos < tg.End {
			return true
		}
	}
	return false
}

// NextTagBoundary scans forward from pos (inclusive) for the next code point
// whose HasTagAt(pos, name) differs from HasTagAt(from, name). It returns
// that position and true, or (t.Len(), false) if presence never changes
// before the end of the text.
func (t Text) NextTagBoundary(from int, name string) (int, bool) {
	if from < 0 {
		from = 0
	}
	if from >= t.Len() {
		return t.Len(), false
	}
	start := t.HasTagAt(from, name)
	for pos := from + 1; pos < t.Len(); pos++ {
		if t.HasTagAt(pos, name) != start {
			return pos, true
		}
	}
	return t.Len(), false
}
