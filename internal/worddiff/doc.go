// Package worddiff computes and renders word-level diffs between two short
// strings — the payload of a removed line and the payload of its candidate
// added match. It mirrors the teacher's line-oriented internal/diff package
// (Op/Diff/Hunk/Line/Span, the DiffLinesToRunes rune-encoding trick, the
// DiffMainRunes pass) one level down: sequences of words or tokens instead of
// sequences of lines.
//
// SequenceDiff is the generic engine; DiffWords feeds it word-segmented text
// for Mover's rendered annotations, and Mover itself feeds it token slices
// (from internal/tokenize) to obtain the shortest edit script between two
// token sequences.
package worddiff
