package pipeline

import "github.com/codalotl/diffmove/record"

// enumerator is the pipeline's second stage (spec.md §4's Enumerator): it
// pairs each normalized line with a 1-based, monotonically increasing line
// number.
type enumerator struct {
	src Stage
	n   int
}

func newEnumerator(src Stage) Stage { return &enumerator{src: src} }

func (e *enumerator) Next() (record.Record, bool, error) {
	r, ok, err := e.src.Next()
	if err != nil || !ok {
		return record.Record{}, ok, err
	}
	e.n++
	r.LineNumber = e.n
	return r, true, nil
}
