package pipeline

import (
	"os"
	"strconv"

	"github.com/codalotl/diffmove/internal/simplelog"
	"github.com/codalotl/diffmove/internal/tokenize"
	"github.com/codalotl/diffmove/internal/worddiff"
	"github.com/codalotl/diffmove/record"
)

// defaultThreshold is T's fallback value (spec.md §6) when the environment
// variable is unset or unparsable.
const defaultThreshold = 0.3

// threshold reads T once per call from the environment, per spec.md §5 ("the
// global similarity threshold T is ... otherwise immutable"). Mover reads it
// fresh for every group rather than caching it at process start, which is
// behaviorally identical for a long-running process that never mutates its
// own environment but keeps the group-local move function free of global
// state.
func threshold() float64 {
	raw := os.Getenv("T")
	if raw == "" {
		return defaultThreshold
	}
	t, err := strconv.ParseFloat(raw, 64)
	if err != nil || t < 0 || t > 1 {
		simplelog.Log("pipeline: mover: invalid T=%q, using default %v", raw, defaultThreshold)
		return defaultThreshold
	}
	return t
}

// indexed pairs a record.Record with its position in the group's Items
// slice, carried through tokenization and matching so the Mover can splice
// annotations back at stable positions (spec.md §4.6 Step 7).
type indexed struct {
	rec   record.Record
	index int
}

// tokenized is a tokenize-and-keep tuple (spec.md §4.6 Step 2): the raw
// payload (body text with its +/-/space prefix stripped), its tokens, and
// the original indexed record.
type tokenized struct {
	raw    string
	tokens []string
	item   indexed
}

// candidate is a retained removed/added pairing from Step 3, carrying the
// token-edit distance and the shortest edit script between the two token
// sequences (spec.md: "kept as auxiliary match info ... carried for
// potential consumers").
type candidate struct {
	added    tokenized
	distance int
	ses      []worddiff.Span
}

// match is one flattened, renderable Mover result (Step 5): a removed/added
// record pair plus the match info used to render its annotations.
type match struct {
	removed        indexed
	added          indexed
	removedPayload string
	addedPayload   string
	distance       int
	ses            []worddiff.Span
}

// move runs the Mover (spec.md §4.6) over a single diff group: partition its
// added/removed body items, tokenize, pairwise-match under the threshold,
// narrow each removed item's candidates, render annotation comment records,
// and splice them into the group's item list. Groups with no diff-body
// content, or for which no candidate survives narrowing, pass through
// unaltered (spec.md: "not an error; the group passes through unaltered").
func move(g record.Group) (record.Group, error) {
	removed, added := partition(g.Items)
	if len(removed) == 0 || len(added) == 0 {
		return g, nil
	}

	t := threshold()
	matches := matchAll(removed, added, t)
	if len(matches) == 0 {
		return g, nil
	}

	annotations := renderAnnotations(matches)
	g.Items = splice(g.Items, annotations)
	return g, nil
}

// partition selects body items with subtype removed/added (Step 1),
// tokenizes their payload (Step 2), and drops entries with no tokens.
// "No newline at end of file" comment lines (BodyComment) are excluded, per
// spec.md §9's Open Question decision to preserve that behavior.
func partition(items []record.Record) (removed, added []tokenized) {
	for i, r := range items {
		if r.Info.Diff == nil || r.Info.Diff.Kind != record.DiffKindBody {
			continue
		}
		switch r.Info.Diff.BodySub {
		case record.BodyRemoved:
			if tk := tokenizeItem(r, i); tk != nil {
				removed = append(removed, *tk)
			}
		case record.BodyAdded:
			if tk := tokenizeItem(r, i); tk != nil {
				added = append(added, *tk)
			}
		}
	}
	return removed, added
}

func tokenizeItem(r record.Record, i int) *tokenized {
	raw := payload(r.Text.String())
	toks := tokenize.Tokens(raw)
	if len(toks) == 0 {
		return nil
	}
	return &tokenized{raw: raw, tokens: toks, item: indexed{rec: r, index: i}}
}

// payload strips a body line's single-character +/-/space/backslash prefix.
func payload(line string) string {
	if line == "" {
		return line
	}
	return line[1:]
}
