// Package tokenize implements the delimiter-driven tokenizer used by the
// Mover (spec.md §4.5): splits a body line's payload on whitespace and
// additionally around the delimiter set "? : ( ) + * - = < >", keeping each
// delimiter as its own token. Deterministic, order-preserving, and drops
// empty token runs.
package tokenize

import "unicode"

var delimiters = map[rune]bool{
	'?': true, ':': true, '(': true, ')': true,
	'+': true, '*': true, '-': true, '=': true, '<': true, '>': true,
}

// Tokens splits s into tokens: runs of non-whitespace, non-delimiter
// characters, plus each delimiter rune as its own single-character token.
// Whitespace is a separator only — it never becomes a token.
func Tokens(s string) []string {
	var tokens []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			tokens = append(tokens, string(cur))
			cur = nil
		}
	}

	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			flush()
		case delimiters[r]:
			flush()
			tokens = append(tokens, string(r))
		default:
			cur = append(cur, r)
		}
	}
	flush()

	return tokens
}
