package worddiff

import "github.com/clipperhouse/uax29/v2/words"

// splitWords segments s into Unicode word-boundary tokens (words, runs of
// whitespace, and individual punctuation characters), so that concatenating
// the returned slice reconstructs s exactly. This feeds SequenceDiff for
// DiffWords, the same way the teacher splits text into lines before feeding
// DiffLinesToRunes — here the unit is a word instead of a line.
func splitWords(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	iter := words.FromString(s)
	for iter.Next() {
		out = append(out, iter.Value())
	}
	return out
}

// DiffWords returns a word-level diff between oldText and newText: spans of
// equal, inserted, deleted, or replaced words, built via SequenceDiff over
// each text's word-segmented tokens.
func DiffWords(oldText, newText string) []Span {
	return SequenceDiff(splitWords(oldText), splitWords(newText))
}
