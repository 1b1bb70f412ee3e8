package pipeline

import "github.com/codalotl/diffmove/record"

// topGrouper is the pipeline's fourth stage (spec.md §4.3): single-pass
// chunking of classified records into groups by equality of Info.Top,
// buffering exactly one record of lookahead to detect each boundary.
type topGrouper struct {
	src Stage

	buf       record.Record
	bufOK     bool
	bufErr    error
	bufValid  bool
	exhausted bool
}

func newTopGrouper(src Stage) GroupStage { return &topGrouper{src: src} }

func (t *topGrouper) fill() {
	if t.bufValid || t.exhausted {
		return
	}
	r, ok, err := t.src.Next()
	t.buf, t.bufOK, t.bufErr = r, ok, err
	t.bufValid = true
	if err != nil || !ok {
		t.exhausted = true
	}
}

func (t *topGrouper) Next() (record.Group, bool, error) {
	t.fill()
	if t.bufErr != nil {
		return record.Group{}, false, t.bufErr
	}
	if !t.bufOK {
		return record.Group{}, false, nil
	}

	first := t.buf
	t.bufValid = false

	g := record.Group{Top: first.Info.Top, Items: []record.Record{first}}

	for {
		t.fill()
		if t.bufErr != nil {
			return record.Group{}, false, t.bufErr
		}
		if !t.bufOK || t.buf.Info.Top != g.Top {
			break
		}
		g.Items = append(g.Items, t.buf)
		t.bufValid = false
	}
	return g, true, nil
}
