package worddiff

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Op is an operation from an old sequence to a new sequence.
type Op int

const (
	OpEqual Op = iota
	OpInsert
	OpDelete
	OpReplace
)

// Span is one diffed element: either an unchanged element shared by both
// sequences (Op==OpEqual, OldText==NewText), a pure deletion (OpDelete,
// NewText==""), a pure insertion (OpInsert, OldText==""), or — after
// coalescing adjacent insert/delete runs — a replacement (OpReplace, both
// set). Spans never split an element; concatenating every Span's OldText
// reconstructs the old sequence (joined the same way the caller joined it),
// and likewise for NewText.
type Span struct {
	Op      Op
	OldText string
	NewText string
}

// SequenceDiff diffs oldSeq against newSeq, treating each element as an
// atomic unit (it is never split, regardless of shared substrings). This is
// the teacher's DiffLinesToRunes trick generalized from "sequence of lines"
// to "sequence of arbitrary strings": each distinct element is mapped to a
// single rune (its index in first-seen order), the resulting rune strings are diffed with
// diffmatchpatch's Myers implementation, and the result is decoded back to
// the original elements.
//
// Adjacent inserts and deletes are coalesced into OpReplace spans, matching
// internal/diff's diffsToSpans behavior.
func SequenceDiff(oldSeq, newSeq []string) []Span {
	rOld, rNew, dict := encodeRunes(oldSeq, newSeq)

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMainRunes(rOld, rNew, false)
	diffs = dmp.DiffCleanupMerge(diffs)

	decode := func(s string) []string {
		if s == "" {
			return nil
		}
		out := make([]string, 0, len(s))
		for _, r := range s {
			idx := int(r)
			if idx >= 0 && idx < len(dict) {
				out = append(out, dict[idx])
			}
		}
		return out
	}

	var spans []Span
	appendRun := func(op Op, elems []string) {
		if len(elems) == 0 {
			return
		}
		joined := joinSeq(elems)
		switch op {
		case OpEqual:
			spans = append(spans, Span{Op: OpEqual, OldText: joined, NewText: joined})
		case OpDelete:
			spans = append(spans, Span{Op: OpDelete, OldText: joined})
		case OpInsert:
			spans = append(spans, Span{Op: OpInsert, NewText: joined})
		}
	}

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			appendRun(OpEqual, decode(d.Text))
		case diffmatchpatch.DiffDelete:
			appendRun(OpDelete, decode(d.Text))
		case diffmatchpatch.DiffInsert:
			appendRun(OpInsert, decode(d.Text))
		}
	}

	return coalesceReplacements(spans)
}

// EncodeTokens maps each distinct token across oldTokens and newTokens to its
// own rune and returns the two rune-encoded sequences as strings. This lets a
// caller run a string-oriented algorithm (here, the Mover's
// agnivade/levenshtein distance) over token sequences while still treating
// each token as a single atomic unit, regardless of its length.
func EncodeTokens(oldTokens, newTokens []string) (oldRunes, newRunes string) {
	rOld, rNew, _ := encodeRunes(oldTokens, newTokens)
	return string(rOld), string(rNew)
}

// encodeRunes assigns each distinct element of oldSeq/newSeq its own rune —
// the same trick as the teacher's DiffLinesToRunes, generalized from lines to
// arbitrary elements — and returns the two rune-encoded sequences plus the
// dict mapping rune value back to the original element.
func encodeRunes(oldSeq, newSeq []string) (rOld, rNew []rune, dict []string) {
	index := map[string]rune{}

	encode := func(seq []string) []rune {
		out := make([]rune, 0, len(seq))
		for _, s := range seq {
			r, ok := index[s]
			if !ok {
				r = rune(len(dict))
				index[s] = r
				dict = append(dict, s)
			}
			out = append(out, r)
		}
		return out
	}

	rOld = encode(oldSeq)
	rNew = encode(newSeq)
	return rOld, rNew, dict
}

// joinSeq concatenates elements with no separator; callers decide whether
// elements already carry their own trailing whitespace (as word-segmented
// tokens do).
func joinSeq(elems []string) string {
	if len(elems) == 1 {
		return elems[0]
	}
	total := 0
	for _, e := range elems {
		total += len(e)
	}
	buf := make([]byte, 0, total)
	for _, e := range elems {
		buf = append(buf, e...)
	}
	return string(buf)
}

// coalesceReplacements merges adjacent OpDelete/OpInsert spans into a single
// OpReplace, matching internal/diff's normalization so a replaced word reads
// as one span rather than a delete immediately followed by an insert.
func coalesceReplacements(spans []Span) []Span {
	var out []Span
	for i := 0; i < len(spans); {
		s := spans[i]
		if s.Op != OpDelete && s.Op != OpInsert {
			out = append(out, s)
			i++
			continue
		}
		j := i
		var old, new string
		for j < len(spans) && (spans[j].Op == OpDelete || spans[j].Op == OpInsert) {
			old += spans[j].OldText
			new += spans[j].NewText
			j++
		}
		op := OpReplace
		switch {
		case old != "" && new == "":
			op = OpDelete
		case old == "" && new != "":
			op = OpInsert
		}
		out = append(out, Span{Op: op, OldText: old, NewText: new})
		i = j
	}
	return out
}
