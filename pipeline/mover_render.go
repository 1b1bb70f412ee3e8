package pipeline

import (
	"strings"

	"github.com/codalotl/diffmove/internal/worddiff"
	"github.com/codalotl/diffmove/record"
	"github.com/codalotl/diffmove/styledtext"
)

// Label sigils (spec.md §4.6 Step 6): a "source side" comment rendered at
// the removed line, pointing forward at its destination; a "destination
// side" comment rendered at the added line, pointing back at its source.
const (
	sourceSigil = "#→" // "#→"
	destSigil   = "#←" // "#←"
)

// skyBlueFGIndex is the 256-color index used for the unchanged-move comment
// body ("sky-blue tag" in spec.md §4.6 Step 6).
const skyBlueFGIndex = "39"

// anno is one synthesized annotation record plus the index (into the
// group's pre-splice Items slice) it's anchored to.
type anno struct {
	index int
	rec   record.Record
}

// renderAnnotations implements Step 6: build the source-side and
// destination-side comment records for every match, in emission order
// (source then destination per match, matches already ordered per Step 5).
func renderAnnotations(matches []match) []anno {
	annos := make([]anno, 0, len(matches)*2)
	for _, m := range matches {
		fromFile, toFile := filePaths(m)

		sourceText := renderCommentBody(true, toFile, m)
		annos = append(annos, anno{
			index: m.removed.index,
			rec:   commentRecord(m.removed.rec.LineNumber, sourceText, fromFile, toFile),
		})

		destText := renderCommentBody(false, fromFile, m)
		annos = append(annos, anno{
			index: m.added.index,
			rec:   commentRecord(m.added.rec.LineNumber, destText, fromFile, toFile),
		})
	}
	return annos
}

// filePaths resolves the from/to file paths a match's annotations should
// cite: toFile is where the content moved to — the added line's own
// enclosing to_file; fromFile is where it moved from — the removed line's
// own enclosing from_file. Falls back to the git header's path when a
// generic run never saw a bare from/to line.
func filePaths(m match) (fromFile, toFile string) {
	if ref := m.removed.rec.Info.Ref; ref != nil {
		if ref.FileHeader.From != nil {
			fromFile = ref.FileHeader.From.Info.Diff.FromFile
		} else if ref.FileHeader.Git != nil {
			fromFile = ref.FileHeader.Git.Info.Diff.FromFile
		}
	}
	if ref := m.added.rec.Info.Ref; ref != nil {
		if ref.FileHeader.To != nil {
			toFile = ref.FileHeader.To.Info.Diff.ToFile
		} else if ref.FileHeader.Git != nil {
			toFile = ref.FileHeader.Git.Info.Diff.ToFile
		}
	}
	return fromFile, toFile
}

// commentRecord wraps body into a synthesized record.Record of
// DiffKindComment/CommentMoved, carrying the same line number as the body
// line it annotates (spec.md §3: "a moved comment is always adjacent to the
// body line it annotates").
func commentRecord(lineNumber int, body styledtext.Text, fromFile, toFile string) record.Record {
	return record.Record{
		LineNumber: lineNumber,
		Text:       body,
		Info: record.Info{
			Top: record.TopDiff,
			Diff: &record.DiffInfo{
				Kind:       record.DiffKindComment,
				CommentSub: record.CommentMoved,
				FromFile:   fromFile,
				ToFile:     toFile,
			},
		},
	}
}

// renderCommentBody builds one side's full comment text: the bold path
// label (sigil + path, styled via worddiff.PathLabelStyle) followed by
// either ": (unchanged)" in sky blue (distance 0) or the two-line
// "sigil\tword-diff" form (spec.md §4.6 Step 6).
func renderCommentBody(isSource bool, path string, m match) styledtext.Text {
	sigil := sourceSigil
	if !isSource {
		sigil = destSigil
	}

	label := styledtext.New(sigil + path)
	for _, st := range worddiff.PathLabelStyle(isSource) {
		label = label.WithTag(0, label.Len(), st)
	}

	if m.distance == 0 {
		unchanged := styledtext.New(": (unchanged)")
		unchanged = unchanged.WithTag(0, unchanged.Len(), styledtext.Style{Name: styledtext.StyleFGIndex, Value: skyBlueFGIndex})
		return label.Concat(unchanged)
	}

	wordDiff := worddiff.RenderStyled(strings.TrimSpace(m.removedPayload), strings.TrimSpace(m.addedPayload))
	tail := styledtext.New(":\n" + sigil + "\t").Concat(wordDiff)
	return label.Concat(tail)
}
