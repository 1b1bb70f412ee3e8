package styledtext

import (
	"strconv"
	"strings"
)

// Render renders t back to an ANSI SGR-bearing string suitable for a
// terminal. Overlapping tags of different names combine into a single SGR
// sequence at each boundary; a trailing reset is emitted if anything was
// open at the end.
func (t Text) Render() string {
	if t.Len() == 0 {
		return ""
	}

	// Collect boundaries where the active tag set changes.
	boundary := make(map[int]bool, len(t.tags)*2)
	boundary[0] = true
	boundary[t.Len()] = true
	for _, tg := range t.tags {
		boundary[tg.Start] = true
		boundary[tg.End] = true
	}
	positions := make([]int, 0, len(boundary))
	for pos := range boundary {
		positions = append(positions, pos)
	}
	sortInts(positions)

	var b strings.Builder
	prevCodes := map[string]string{}
	anyOpen := false

	for idx := 0; idx < len(positions)-1; idx++ {
		start, end := positions[idx], positions[idx+1]
		active := map[string]string{}
		for _, tg := range t.tags {
			if tg.Start <= start && start < tg.End {
				active[tg.Name] = tg.Value
			}
		}

		if !sameSet(prevCodes, active) {
			b.WriteString(sgrSequenceFor(active))
			anyOpen = len(active) > 0
		}
		b.WriteString(string(t.runes[start:end]))
		prevCodes = active
	}

	if anyOpen {
		b.WriteString("\x1b[0m")
	}
	return b.String()
}

func sameSet(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

func sgrSequenceFor(active map[string]string) string {
	if len(active) == 0 {
		return "\x1b[0m"
	}
	var params []string
	if _, ok := active[StyleBold]; ok {
		params = append(params, "1")
	}
	if v, ok := active[StyleFG]; ok {
		params = append(params, ansiFGCode(v))
	}
	if v, ok := active[StyleFGIndex]; ok {
		params = append(params, "38", "5", v)
	}
	if v, ok := active[StyleBG]; ok {
		params = append(params, ansiBGCode(v))
	}
	if v, ok := active[StyleBGIndex]; ok {
		params = append(params, "48", "5", v)
	}
	if len(params) == 0 {
		return "\x1b[0m"
	}
	return "\x1b[0;" + strings.Join(params, ";") + "m"
}

func ansiFGCode(value string) string {
	n, _ := strconv.Atoi(value)
	if n < 8 {
		return strconv.Itoa(30 + n)
	}
	return strconv.Itoa(90 + n - 8)
}

func ansiBGCode(value string) string {
	n, _ := strconv.Atoi(value)
	if n < 8 {
		return strconv.Itoa(40 + n)
	}
	return strconv.Itoa(100 + n - 8)
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
