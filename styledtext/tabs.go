package styledtext

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

// ExpandTabsANSI replaces '\t' in s with spaces so that each tab advances to
// the next multiple of tabWidth columns, counting visible grapheme clusters
// only — embedded ANSI escape sequences don't contribute to the column
// count. tabWidth <= 0 leaves s unchanged.
//
// This runs on the raw, still-escaped line, before Parse: a tab stop depends
// on the visible column position, which Parse's Text representation no
// longer distinguishes from styling once converted.
func ExpandTabsANSI(s string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(s, '\t') {
		return s
	}

	cond := runewidth.NewCondition()
	cond.StrictEmojiNeutral = true

	var b strings.Builder
	b.Grow(len(s))
	col := 0

	i := 0
	for i < len(s) {
		switch s[i] {
		case '\x1b':
			seqLen := ansiSequenceLength(s[i:])
			if seqLen == 0 {
				b.WriteByte(s[i])
				i++
				continue
			}
			b.WriteString(s[i : i+seqLen])
			i += seqLen
		case '\t':
			spaces := tabWidth - (col % tabWidth)
			b.WriteString(strings.Repeat(" ", spaces))
			col += spaces
			i++
		default:
			next := i
			for next < len(s) && s[next] != '\x1b' && s[next] != '\t' {
				next++
			}
			segment := s[i:next]
			iter := graphemes.FromString(segment)
			for iter.Next() {
				cluster := iter.Value()
				b.WriteString(cluster)
				col += cond.StringWidth(cluster)
			}
			i = next
		}
	}

	return b.String()
}
