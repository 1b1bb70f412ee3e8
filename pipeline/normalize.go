package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/codalotl/diffmove/record"
	"github.com/codalotl/diffmove/styledtext"
)

// tabWidth matches the teacher's termformat convention of 8-column tab
// stops.
const tabWidth = 8

// normalizer is the pipeline's first stage (spec.md §4.1): it strips the
// line terminator, expands tabs with ANSI awareness, and parses any SGR
// escapes into a styledtext.Text, falling back to a stripped plain Text on a
// recognized-but-non-SGR escape.
type normalizer struct {
	lines Lines
}

func newNormalizer(lines Lines) Stage { return &normalizer{lines: lines} }

func (n *normalizer) Next() (record.Record, bool, error) {
	line, ok, err := n.lines.Next()
	if err != nil {
		return record.Record{}, false, fmt.Errorf("pipeline: normalize: %w", err)
	}
	if !ok {
		return record.Record{}, false, nil
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	line = styledtext.ExpandTabsANSI(line, tabWidth)

	txt, perr := styledtext.Parse(line)
	if errors.Is(perr, styledtext.ErrNonSGREscape) {
		txt, perr = styledtext.Parse(styledtext.StripANSI(line))
	}
	if perr != nil {
		return record.Record{}, false, fmt.Errorf("pipeline: normalize: %w", perr)
	}

	return record.Record{Text: txt}, true, nil
}
