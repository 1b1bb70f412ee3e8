package styledtext

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_Plain(t *testing.T) {
	txt, err := Parse("hello")
	require.NoError(t, err)
	require.Equal(t, "hello", txt.String())
	require.Empty(t, txt.Tags())
}

func TestParse_SimpleColor(t *testing.T) {
	txt, err := Parse("\x1b[31mred\x1b[0m plain")
	require.NoError(t, err)
	require.Equal(t, "red plain", txt.String())
	require.Len(t, txt.Tags(), 1)
	tag := txt.Tags()[0]
	require.Equal(t, StyleFG, tag.Name)
	require.Equal(t, "1", tag.Value)
	require.Equal(t, 0, tag.Start)
	require.Equal(t, 3, tag.End)
}

func TestParse_ExtendedIndexAndBold(t *testing.T) {
	txt, err := Parse("\x1b[1;38;5;200mhi\x1b[0m")
	require.NoError(t, err)
	require.Equal(t, "hi", txt.String())
	names := map[string]string{}
	for _, tg := range txt.Tags() {
		names[tg.Name] = tg.Value
	}
	require.Equal(t, "200", names[StyleFGIndex])
	_, hasBold := names[StyleBold]
	require.True(t, hasBold)
}

func TestParse_NonSGREscapeIsRecoverable(t *testing.T) {
	_, err := Parse("\x1b[?25lhidden")
	require.ErrorIs(t, err, ErrNonSGREscape)

	stripped := StripANSI("\x1b[?25lhidden")
	require.Equal(t, "hidden", stripped)

	txt, err := Parse(stripped)
	require.NoError(t, err)
	require.Equal(t, "hidden", txt.String())
}

func TestParse_MalformedEscapeIsFatal(t *testing.T) {
	_, err := Parse("\x1b[31")
	require.ErrorIs(t, err, ErrMalformedEscape)
}

func TestRenderRoundTrip(t *testing.T) {
	orig := "\x1b[31mred\x1b[0m and \x1b[1mbold\x1b[0m"
	txt, err := Parse(orig)
	require.NoError(t, err)

	rendered := txt.Render()
	reparsed, err := Parse(rendered)
	require.NoError(t, err)
	require.Equal(t, txt.String(), reparsed.String())

	var fgFound, boldFound bool
	for _, tg := range reparsed.Tags() {
		if tg.Name == StyleFG && tg.Value == "1" {
			fgFound = true
		}
		if tg.Name == StyleBold {
			boldFound = true
		}
	}
	require.True(t, fgFound)
	require.True(t, boldFound)
}

func TestSliceAndConcat(t *testing.T) {
	txt, err := Parse("\x1b[32mgreen\x1b[0mplain")
	require.NoError(t, err)

	left := txt.Slice(0, 5)
	require.Equal(t, "green", left.String())
	require.Len(t, left.Tags(), 1)

	right := txt.Slice(5, txt.Len())
	require.Equal(t, "plain", right.String())
	require.Empty(t, right.Tags())

	joined := left.Concat(right)
	require.Equal(t, "greenplain", joined.String())
	require.Len(t, joined.Tags(), 1)
	require.Equal(t, 0, joined.Tags()[0].Start)
	require.Equal(t, 5, joined.Tags()[0].End)
}

func TestWithTagAndNextTagBoundary(t *testing.T) {
	txt := New("hello world")
	tagged := txt.WithTag(0, 5, Style{Name: StyleBold})

	require.True(t, tagged.HasTagAt(0, StyleBold))
	require.True(t, tagged.HasTagAt(4, StyleBold))
	require.False(t, tagged.HasTagAt(5, StyleBold))

	pos, ok := tagged.NextTagBoundary(0, StyleBold)
	require.True(t, ok)
	require.Equal(t, 5, pos)
}

func TestExpandTabsANSI(t *testing.T) {
	out := ExpandTabsANSI("a\tb", 8)
	require.Equal(t, "a"+spaces(7)+"b", out)

	// ANSI codes don't consume columns.
	out2 := ExpandTabsANSI("\x1b[31ma\x1b[0m\tb", 8)
	txt, err := Parse(out2)
	require.NoError(t, err)
	require.Equal(t, "a"+spaces(7)+"b", txt.String())
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
