package worddiff

import "github.com/codalotl/diffmove/styledtext"

// Palette for the Mover's word-diff annotation body (spec.md §4.6 step 6):
// background index 8 with bold applied uniformly, foreground defaulting to
// 8+7 (bright white) where nothing more specific applies. Deleted and
// inserted spans get their own foreground so a reader can tell removed
// tokens from added ones within the combined rendering; these reuse the
// same index family as the path-label colors (8+1 source, 8+2 destination)
// so the deletion/insertion coloring lines up with which side of the move
// each token came from.
const (
	wordDiffBGIndex = "8"
	wordDiffFGIndex = "15" // 8+7
	deleteFGIndex   = "9"  // 8+1
	insertFGIndex   = "10" // 8+2
)

// PathLabelStyle returns the bold fg/bg styling for a Mover path label:
// source (isSource==true) uses 8+1, destination uses 8+2, both over
// background 8+0.
func PathLabelStyle(isSource bool) []styledtext.Style {
	fg := "10"
	if isSource {
		fg = "9"
	}
	return []styledtext.Style{
		{Name: styledtext.StyleBold},
		{Name: styledtext.StyleFGIndex, Value: fg},
		{Name: styledtext.StyleBGIndex, Value: "8"},
	}
}

// RenderStyled renders a word-level diff between oldText and newText as a
// single styledtext.Text showing both sides: deleted tokens (present in
// oldText only) followed by inserted tokens (present in newText only),
// unchanged tokens shown once. The whole region carries the uniform
// word-diff background and bold; deleted/inserted spans are additionally
// colored per the palette above.
func RenderStyled(oldText, newText string) styledtext.Text {
	spans := DiffWords(oldText, newText)

	type run struct {
		start, end int
		op         Op
	}

	var plain []byte
	var runs []run

	appendPiece := func(s string, op Op) {
		if s == "" {
			return
		}
		start := len([]rune(string(plain)))
		plain = append(plain, s...)
		end := len([]rune(string(plain)))
		runs = append(runs, run{start: start, end: end, op: op})
	}

	for _, sp := range spans {
		switch sp.Op {
		case OpEqual:
			appendPiece(sp.OldText, OpEqual)
		case OpDelete:
			appendPiece(sp.OldText, OpDelete)
		case OpInsert:
			appendPiece(sp.NewText, OpInsert)
		case OpReplace:
			appendPiece(sp.OldText, OpDelete)
			appendPiece(sp.NewText, OpInsert)
		}
	}

	out := styledtext.New(string(plain))
	if out.Len() == 0 {
		return out
	}

	out = out.WithTag(0, out.Len(), styledtext.Style{Name: styledtext.StyleBGIndex, Value: wordDiffBGIndex})
	out = out.WithTag(0, out.Len(), styledtext.Style{Name: styledtext.StyleBold})
	out = out.WithTag(0, out.Len(), styledtext.Style{Name: styledtext.StyleFGIndex, Value: wordDiffFGIndex})

	for _, r := range runs {
		switch r.op {
		case OpDelete:
			out = out.WithTag(r.start, r.end, styledtext.Style{Name: styledtext.StyleFGIndex, Value: deleteFGIndex})
		case OpInsert:
			out = out.WithTag(r.start, r.end, styledtext.Style{Name: styledtext.StyleFGIndex, Value: insertFGIndex})
		}
	}

	return out
}
