package pipeline

import (
	"errors"
	"testing"

	"github.com/codalotl/diffmove/record"
	"github.com/stretchr/testify/require"
)

// sliceLines is a Lines implementation over an in-memory slice, the trivial
// adapter the spec expects callers to write over a bufio.Scanner.
type sliceLines struct {
	lines []string
	pos   int
}

func (s *sliceLines) Next() (string, bool, error) {
	if s.pos >= len(s.lines) {
		return "", false, nil
	}
	l := s.lines[s.pos]
	s.pos++
	return l, true, nil
}

func collectGroups(t *testing.T, lines []string) []record.Group {
	t.Helper()
	p := New(&sliceLines{lines: lines})
	var groups []record.Group
	for {
		g, ok, err := p.Groups().Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		groups = append(groups, g)
	}
	return groups
}

func TestEmptyInput_NoGroups(t *testing.T) {
	groups := collectGroups(t, nil)
	require.Empty(t, groups)
}

func TestNoDiffContent_SingleNonDiffGroup(t *testing.T) {
	groups := collectGroups(t, []string{"hello", "world"})
	require.Len(t, groups, 1)
	require.Equal(t, record.TopNonDiff, groups[0].Top)
	require.Len(t, groups[0].Items, 2)
}

// S1 — Header recognition: a one-token change ("alpha" -> "beta") exceeds
// the cap at T=0.3 (cap floor(0.3*1)=0, distance 1), so no annotation is
// emitted.
func TestS1_HeaderRecognition(t *testing.T) {
	groups := collectGroups(t, []string{
		"diff --git a/x b/x",
		"index 111..222 100644",
		"--- a/x",
		"+++ b/x",
		"@@ -1,1 +1,1 @@",
		"-alpha",
		"+beta",
	})
	require.Len(t, groups, 1)
	g := groups[0]
	require.Equal(t, record.TopDiff, g.Top)
	require.Len(t, g.Items, 7)

	wantSubs := []struct {
		kind record.DiffKind
		sub  string
	}{
		{record.DiffKindFileHeader, string(record.FileHeaderGit)},
		{record.DiffKindFileHeader, string(record.FileHeaderGeneric)},
		{record.DiffKindFileHeader, string(record.FileHeaderFrom)},
		{record.DiffKindFileHeader, string(record.FileHeaderTo)},
		{record.DiffKindBody, string(record.BodyHunkLines)},
		{record.DiffKindBody, string(record.BodyRemoved)},
		{record.DiffKindBody, string(record.BodyAdded)},
	}
	for i, want := range wantSubs {
		require.Equal(t, want.kind, g.Items[i].Info.Diff.Kind, "item %d", i)
		gotSub := string(g.Items[i].Info.Diff.FileHeaderSub)
		if want.kind == record.DiffKindBody {
			gotSub = string(g.Items[i].Info.Diff.BodySub)
		}
		require.Equal(t, want.sub, gotSub, "item %d", i)
	}
}

// S2 — Exact move: "hello world" deleted from file x, added verbatim to
// file y. Expect one unchanged annotation pair.
func TestS2_ExactMove(t *testing.T) {
	groups := collectGroups(t, []string{
		"--- a/x",
		"+++ b/x",
		"@@ -1,1 +0,0 @@",
		"-hello world",
		"--- a/y",
		"+++ b/y",
		"@@ -0,0 +1,1 @@",
		"+hello world",
	})
	require.Len(t, groups, 1)
	g := groups[0]

	var comments []record.Record
	for _, it := range g.Items {
		if it.Info.Diff != nil && it.Info.Diff.Kind == record.DiffKindComment {
			comments = append(comments, it)
		}
	}
	require.Len(t, comments, 2)
	for _, c := range comments {
		require.Contains(t, c.Text.String(), "(unchanged)")
	}

	// One annotation sits right after the removed line pointing at b/y,
	// the other right after the added line pointing at a/x.
	require.Contains(t, comments[0].Text.String(), "b/y")
	require.Contains(t, comments[1].Text.String(), "a/x")
}

// S3 — Approximate move: a single-token substitution (x -> z) inside
// "value = helper(x)" differs by one token out of six ("=" and the
// parens are delimiter tokens); distance 1 is within T=0.3's cap
// (floor(0.3*6)=1), so the pair is retained but rendered as a word-diff,
// not "(unchanged)".
func TestS3_ApproximateMove(t *testing.T) {
	groups := collectGroups(t, []string{
		"--- a/x",
		"+++ b/x",
		"@@ -1,1 +0,0 @@",
		"-value = helper(x)",
		"--- a/y",
		"+++ b/y",
		"@@ -0,0 +1,1 @@",
		"+value = helper(z)",
	})
	require.Len(t, groups, 1)

	var comments []record.Record
	for _, it := range groups[0].Items {
		if it.Info.Diff != nil && it.Info.Diff.Kind == record.DiffKindComment {
			comments = append(comments, it)
		}
	}
	require.Len(t, comments, 2)
	for _, c := range comments {
		require.NotContains(t, c.Text.String(), "(unchanged)")
		require.Contains(t, c.Text.String(), "value = helper(")
	}
}

// S4 — Binary files.
func TestS4_BinaryFiles(t *testing.T) {
	groups := collectGroups(t, []string{
		"diff --git a/x b/x",
		"Binary files a/x and b/x differ",
	})
	require.Len(t, groups, 1)
	g := groups[0]
	require.Len(t, g.Items, 2)

	bin := g.Items[1]
	require.Equal(t, record.DiffKindBody, bin.Info.Diff.Kind)
	require.Equal(t, record.BodyCommentBinary, bin.Info.Diff.BodySub)
	require.Equal(t, "a/x", bin.Info.Diff.FromFile)
	require.Equal(t, "b/x", bin.Info.Diff.ToFile)
	require.True(t, bin.Info.Ref.HasAny())
}

// S5 — /dev/null addition: both header rows present, added lines reference
// to_file=b/new and from_file=/dev/null via their ref.
func TestS5_DevNullAddition(t *testing.T) {
	groups := collectGroups(t, []string{
		"--- /dev/null",
		"+++ b/new",
		"@@ -0,0 +1,1 @@",
		"+hello",
	})
	require.Len(t, groups, 1)
	g := groups[0]

	var added record.Record
	for _, it := range g.Items {
		if it.Info.Diff != nil && it.Info.Diff.BodySub == record.BodyAdded {
			added = it
		}
	}
	require.NotNil(t, added.Info.Ref)
	require.Equal(t, "/dev/null", added.Info.Ref.FileHeader.From.Info.Diff.FromFile)
	require.Equal(t, "b/new", added.Info.Ref.FileHeader.To.Info.Diff.ToFile)
}

// S6 — Non-SGR escape fallback: a cursor-visibility toggle is stripped, not
// fatal.
func TestS6_NonSGREscapeFallback(t *testing.T) {
	groups := collectGroups(t, []string{"\x1b[?25lhidden cursor"})
	require.Len(t, groups, 1)
	require.Equal(t, "hidden cursor", groups[0].Items[0].Text.String())
}

func TestOnlyRemovals_NoAdditions_NoAnnotations(t *testing.T) {
	groups := collectGroups(t, []string{
		"--- a/x",
		"+++ b/x",
		"@@ -1,1 +0,0 @@",
		"-gone",
	})
	require.Len(t, groups, 1)
	for _, it := range groups[0].Items {
		require.NotEqual(t, record.DiffKindComment, it.Info.Diff.Kind)
	}
}

func TestThresholdZero_OnlyExactMatches(t *testing.T) {
	t.Setenv("T", "0")
	groups := collectGroups(t, []string{
		"--- a/x",
		"+++ b/x",
		"@@ -1,1 +0,0 @@",
		"-foo(a, b)",
		"--- a/y",
		"+++ b/y",
		"@@ -0,0 +1,1 @@",
		"+foo(a, b, c)",
	})
	for _, it := range groups[0].Items {
		require.NotEqual(t, record.DiffKindComment, it.Info.Diff.Kind)
	}
}

func TestClassify_UnreachableLine_IsFatal(t *testing.T) {
	lines := []string{
		"--- a/x",
		"+++ b/x",
		"@@ -1,1 +1,1 @@",
		"?not a valid body prefix",
	}
	p := New(&sliceLines{lines: lines})
	_, _, err := p.Groups().Next()
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrClassifyUnreachable))
}
