package worddiff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSequenceDiff_Equal(t *testing.T) {
	spans := SequenceDiff([]string{"a", "b", "c"}, []string{"a", "b", "c"})
	require.Len(t, spans, 1)
	require.Equal(t, OpEqual, spans[0].Op)
	require.Equal(t, "abc", spans[0].OldText)
	require.Equal(t, "abc", spans[0].NewText)
}

func TestSequenceDiff_Replace(t *testing.T) {
	spans := SequenceDiff([]string{"foo", "(", "a,", "b", ")"}, []string{"foo", "(", "a,", "b,", "c", ")"})

	var oldConcat, newConcat string
	for _, sp := range spans {
		oldConcat += sp.OldText
		newConcat += sp.NewText
	}
	require.Equal(t, "foo(a,b)", oldConcat)
	require.Equal(t, "foo(a,b,c)", newConcat)

	var sawChange bool
	for _, sp := range spans {
		if sp.Op != OpEqual {
			sawChange = true
		}
	}
	require.True(t, sawChange)
}

func TestSequenceDiff_PureInsertDelete(t *testing.T) {
	spans := SequenceDiff(nil, []string{"x", "y"})
	require.Len(t, spans, 1)
	require.Equal(t, OpInsert, spans[0].Op)
	require.Equal(t, "xy", spans[0].NewText)

	spans = SequenceDiff([]string{"x", "y"}, nil)
	require.Len(t, spans, 1)
	require.Equal(t, OpDelete, spans[0].Op)
	require.Equal(t, "xy", spans[0].OldText)
}

func TestDiffWords_Reconstructs(t *testing.T) {
	spans := DiffWords("hello world", "hello there")
	var oldConcat, newConcat string
	for _, sp := range spans {
		oldConcat += sp.OldText
		newConcat += sp.NewText
	}
	require.Equal(t, "hello world", oldConcat)
	require.Equal(t, "hello there", newConcat)
}

func TestRenderStyled_UnchangedHasNoDeleteInsertColor(t *testing.T) {
	txt := RenderStyled("hello world", "hello world")
	require.Equal(t, "hello world", txt.String())
	for _, tg := range txt.Tags() {
		require.NotEqual(t, deleteFGIndex, tg.Value)
		require.NotEqual(t, insertFGIndex, tg.Value)
	}
}

func TestRenderStyled_ShowsBothSides(t *testing.T) {
	txt := RenderStyled("foo(a, b)", "foo(a, b, c)")
	require.Contains(t, txt.String(), "foo(a, b")
	require.Contains(t, txt.String(), "c)")

	var sawInsert bool
	for _, tg := range txt.Tags() {
		if tg.Value == insertFGIndex {
			sawInsert = true
		}
	}
	require.True(t, sawInsert)
}
