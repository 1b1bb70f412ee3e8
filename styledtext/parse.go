package styledtext

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrNonSGREscape reports that an escape sequence was recognized (it has a
// well-formed, terminated shape) but isn't an SGR (color/style) sequence —
// e.g. a cursor-visibility toggle like ESC[?25l. Callers may recover by
// stripping all ANSI codes and re-parsing the result, which always succeeds.
var ErrNonSGREscape = errors.New("styledtext: non-SGR escape sequence")

// ErrMalformedEscape reports an ESC byte that doesn't form any recognized
// escape sequence shape (CSI/OSC/DCS, or a lone two-byte form) — e.g. an
// unterminated CSI sequence that runs to the end of the string. This is not
// recoverable by stripping; the input is malformed.
var ErrMalformedEscape = errors.New("styledtext: malformed escape sequence")

// Parse converts an ANSI SGR-bearing string into a Text, translating SGR
// escape sequences into Tag extents over the non-escape code points.
//
// If s contains no ESC byte, Parse always succeeds with a plain Text.
// If s contains a recognized-but-non-SGR escape, Parse returns
// (Text{}, ErrNonSGREscape); the caller can fall back via StripANSI.
// If s contains a malformed/unterminated escape, Parse returns
// (Text{}, ErrMalformedEscape).
func Parse(s string) (Text, error) {
	if !strings.ContainsRune(s, '\x1b') {
		return New(s), nil
	}

	var out Text
	state := sgrState{}
	var runBuf []rune
	openStarts := map[string]int{} // style name -> code-point offset where it began

	flushRun := func() {
		if len(runBuf) == 0 {
			return
		}
		out.runes = append(out.runes, runBuf...)
		runBuf = nil
	}

	closeOpen := func(name, value string) {
		if start, ok := openStarts[name]; ok {
			if out.Len() > start {
				out.tags = append(out.tags, Tag{Start: start, End: out.Len(), Style: Style{Name: name, Value: value}})
			}
			delete(openStarts, name)
		}
	}

	openIfNeeded := func(name string) {
		if _, ok := openStarts[name]; !ok {
			openStarts[name] = out.Len()
		}
	}

	applyTransition := func(prev sgrState) {
		flushRun()
		for _, name := range []string{StyleFG, StyleBG, StyleFGIndex, StyleBGIndex, StyleBold} {
			wasOn := prev.isOn(name)
			nowOn := state.isOn(name)
			switch {
			case wasOn && !nowOn:
				closeOpen(name, prev.valueOf(name))
			case !wasOn && nowOn:
				openIfNeeded(name)
			case wasOn && nowOn && prev.valueOf(name) != state.valueOf(name):
				closeOpen(name, prev.valueOf(name))
				openIfNeeded(name)
			}
		}
	}

	i := 0
	for i < len(s) {
		if s[i] != '\x1b' {
			r, size := decodeRuneAt(s, i)
			runBuf = append(runBuf, r)
			i += size
			continue
		}

		seqLen := ansiSequenceLength(s[i:])
		if seqLen == 0 {
			return Text{}, fmt.Errorf("styledtext: parse: %w at byte %d", ErrMalformedEscape, i)
		}
		seq := s[i : i+seqLen]
		if !isSGRSequence(seq) {
			return Text{}, fmt.Errorf("styledtext: parse: %w at byte %d (%q)", ErrNonSGREscape, i, seq)
		}

		params, ok := parseSGRParams(seq[2 : seqLen-1])
		if ok {
			prev := state
			state.apply(params)
			applyTransition(prev)
		}
		i += seqLen
	}
	flushRun()

	// Close any styles still open at end of string.
	prevState := state
	state = sgrState{}
	applyTransition(prevState)

	return out, nil
}

// StripANSI removes all recognized escape sequences from s, leaving plain
// text. Malformed escapes are left in place verbatim (StripANSI never
// fails); Normalizer relies on this only after Parse has already identified
// a non-SGR-but-well-formed escape, so malformed input shouldn't reach here
// in practice.
func StripANSI(s string) string {
	if !strings.ContainsRune(s, '\x1b') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '\x1b' {
			b.WriteByte(s[i])
			i++
			continue
		}
		seqLen := ansiSequenceLength(s[i:])
		if seqLen == 0 {
			b.WriteByte(s[i])
			i++
			continue
		}
		i += seqLen
	}
	return b.String()
}

func decodeRuneAt(s string, i int) (rune, int) {
	r, size := utf8.DecodeRuneInString(s[i:])
	return r, size
}

// ansiSequenceLength returns the byte length of the recognized escape
// sequence at the start of s (s[0] == ESC), or 0 if none is recognized.
// Mirrors the CSI/OSC/DCS dispatch used throughout ANSI-aware terminal
// libraries: CSI ends on a byte in 0x40-0x7e, OSC ends on BEL or ST, DCI/APC/PM
// end on ST, and anything else is a bare two-byte escape.
func ansiSequenceLength(s string) int {
	if len(s) == 0 || s[0] != '\x1b' {
		return 0
	}
	if len(s) == 1 {
		return 0
	}

	switch s[1] {
	case '[':
		for i := 2; i < len(s); i++ {
			final := s[i]
			if final >= 0x40 && final <= 0x7e {
				return i + 1
			}
		}
		return 0
	case ']':
		for i := 2; i < len(s); i++ {
			if s[i] == '\a' {
				return i + 1
			}
			if s[i] == '\\' && i > 0 && s[i-1] == '\x1b' {
				return i + 1
			}
		}
		return 0
	case 'P', '^', '_':
		for i := 2; i < len(s); i++ {
			if s[i] == '\\' && i > 0 && s[i-1] == '\x1b' {
				return i + 1
			}
		}
		return 0
	default:
		return 2
	}
}

func isSGRSequence(seq string) bool {
	return len(seq) >= 3 && seq[0] == '\x1b' && seq[1] == '[' && seq[len(seq)-1] == 'm'
}

func parseSGRParams(content string) ([]int, bool) {
	if content == "" {
		return []int{0}, true
	}
	parts := strings.Split(content, ";")
	params := make([]int, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			params = append(params, 0)
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, false
		}
		params = append(params, v)
	}
	return params, true
}

// sgrState tracks the currently active SGR attributes while scanning.
type sgrState struct {
	fgOn, bgOn, fgIdxOn, bgIdxOn, boldOn bool
	fgVal, bgVal, fgIdxVal, bgIdxVal     string
}

func (s sgrState) isOn(name string) bool {
	switch name {
	case StyleFG:
		return s.fgOn
	case StyleBG:
		return s.bgOn
	case StyleFGIndex:
		return s.fgIdxOn
	case StyleBGIndex:
		return s.bgIdxOn
	case StyleBold:
		return s.boldOn
	}
	return false
}

func (s sgrState) valueOf(name string) string {
	switch name {
	case StyleFG:
		return s.fgVal
	case StyleBG:
		return s.bgVal
	case StyleFGIndex:
		return s.fgIdxVal
	case StyleBGIndex:
		return s.bgIdxVal
	}
	return ""
}

func (s *sgrState) apply(params []int) {
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			*s = sgrState{}
		case p == 1:
			s.boldOn = true
		case p == 22:
			s.boldOn = false
		case p == 39:
			s.fgOn, s.fgIdxOn = false, false
		case p == 49:
			s.bgOn, s.bgIdxOn = false, false
		case p >= 30 && p <= 37:
			s.fgOn, s.fgIdxOn = true, false
			s.fgVal = strconv.Itoa(p - 30)
		case p >= 90 && p <= 97:
			s.fgOn, s.fgIdxOn = true, false
			s.fgVal = strconv.Itoa(p - 90 + 8)
		case p >= 40 && p <= 47:
			s.bgOn, s.bgIdxOn = true, false
			s.bgVal = strconv.Itoa(p - 40)
		case p >= 100 && p <= 107:
			s.bgOn, s.bgIdxOn = true, false
			s.bgVal = strconv.Itoa(p - 100 + 8)
		case p == 38:
			idx, next, ok := parseExtendedIndex(params, i)
			if ok {
				s.fgIdxOn, s.fgOn = true, false
				s.fgIdxVal = strconv.Itoa(idx)
			}
			i = next
		case p == 48:
			idx, next, ok := parseExtendedIndex(params, i)
			if ok {
				s.bgIdxOn, s.bgOn = true, false
				s.bgIdxVal = strconv.Itoa(idx)
			}
			i = next
		}
	}
}

// parseExtendedIndex handles the "38;5;N" (256-color) form starting at
// params[idx]==38/48. Truecolor ("38;2;r;g;b") is recognized (so the index
// past it is skipped correctly) but not represented as a Tag: this package's
// data model only names fgindex/bgindex (spec.md data model, styled string
// tag names), not a truecolor variant.
func parseExtendedIndex(params []int, idx int) (int, int, bool) {
	if idx+1 >= len(params) {
		return 0, idx, false
	}
	switch params[idx+1] {
	case 5:
		if idx+2 >= len(params) {
			return 0, idx, false
		}
		return params[idx+2], idx + 2, true
	case 2:
		if idx+4 >= len(params) {
			return 0, idx, false
		}
		return 0, idx + 4, false
	}
	return 0, idx, false
}
