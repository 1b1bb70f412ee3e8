package pipeline

import (
	"math"
	"sort"

	"github.com/agnivade/levenshtein"
	"github.com/codalotl/diffmove/internal/simplelog"
	"github.com/codalotl/diffmove/internal/worddiff"
)

// matchAll runs Steps 3–5 of the Mover (spec.md §4.6): for every removed
// entry, compute distance to every added entry, retain those within the
// threshold cap, narrow to the zero-distance prefix (or top 2), and flatten
// into a stable-ordered list of matches.
func matchAll(removed, added []tokenized, t float64) []match {
	var out []match
	for _, r := range removed {
		cands := candidatesFor(r, added, t)
		narrowed := narrow(cands)
		for _, c := range narrowed {
			out = append(out, match{
				removed:        r.item,
				added:          c.added.item,
				removedPayload: r.raw,
				addedPayload:   c.added.raw,
				distance:       c.distance,
				ses:            c.ses,
			})
		}
	}
	return out
}

// candidatesFor computes, for a single removed entry r, every added
// candidate within the relative threshold, sorted by ascending distance
// (Step 3). Distance is the Levenshtein distance over the token sequences
// treated as atomic units: each distinct token across r and a is mapped to
// its own rune by worddiff.EncodeTokens (the DiffLinesToRunes-style trick,
// applied to tokens instead of lines), then agnivade/levenshtein runs over
// the two rune strings.
func candidatesFor(r tokenized, added []tokenized, t float64) []candidate {
	var cands []candidate
	for _, a := range added {
		distCap := int(math.Floor(t * float64(max(len(r.tokens), len(a.tokens)))))

		rRunes, aRunes := worddiff.EncodeTokens(r.tokens, a.tokens)
		dist := levenshtein.ComputeDistance(rRunes, aRunes)
		if dist > distCap {
			continue
		}

		cands = append(cands, candidate{
			added:    a,
			distance: dist,
			ses:      worddiff.SequenceDiff(r.tokens, a.tokens),
		})
	}

	sort.SliceStable(cands, func(i, j int) bool { return cands[i].distance < cands[j].distance })

	simplelog.Log("pipeline: mover: removed line %d has %d candidate(s) within T=%v", r.item.rec.LineNumber, len(cands), t)
	return cands
}

// narrow implements Step 4: take the prefix of exact (distance-0) matches;
// if that prefix is empty, fall back to the first two candidates overall
// (spec.md §9 Open Questions: hard-coded at 2).
func narrow(cands []candidate) []candidate {
	var zero []candidate
	for _, c := range cands {
		if c.distance != 0 {
			break // cands is sorted ascending by distance
		}
		zero = append(zero, c)
	}
	if len(zero) > 0 {
		return zero
	}
	if len(cands) > 2 {
		return cands[:2]
	}
	return cands
}
