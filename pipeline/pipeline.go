// Package pipeline implements the five-stage streaming transformation from
// raw, possibly ANSI-colored diff text to annotated record.Group values:
// Normalizer, Enumerator, Classifier, Top-grouper, Header-linker, Mover. Each
// stage (other than Header-linker/Mover, which operate on a whole group at
// once — see mover.go) is a pull-based Stage wrapping the previous one, the
// same lazy-iterator shape the teacher's internal/diff package uses for its
// hunk/line/span trees, generalized here to a five-deep chain.
package pipeline

import "github.com/codalotl/diffmove/record"

// Lines is a minimal pull-based line source: one line of input per call,
// with io.EOF-style exhaustion signaled by ok==false. A small adapter over a
// bufio.Scanner (on an *os.File or any io.Reader) satisfies this.
type Lines interface {
	Next() (string, bool, error)
}

// Stage pulls one normalized/enumerated/classified Record at a time.
type Stage interface {
	Next() (record.Record, bool, error)
}

// GroupStage pulls one fully linked, move-annotated Group at a time.
type GroupStage interface {
	Next() (record.Group, bool, error)
}

// Pipeline composes the five stages over a Lines source.
type Pipeline struct {
	groups GroupStage
}

// New builds the full pipeline over lines.
func New(lines Lines) *Pipeline {
	norm := newNormalizer(lines)
	enum := newEnumerator(norm)
	cls := newClassifier(enum)
	top := newTopGrouper(cls)
	return &Pipeline{groups: &annotatedGroupStage{src: top}}
}

// Groups returns the pipeline's final stage: fully linked and move-annotated
// groups, in input order.
func (p *Pipeline) Groups() GroupStage { return p.groups }

// annotatedGroupStage wraps the top-grouper with the Header-linker and Mover,
// both of which operate on a whole group at once rather than record by
// record (spec.md §5: "Mover buffers an entire diff group").
type annotatedGroupStage struct {
	src GroupStage
}

func (a *annotatedGroupStage) Next() (record.Group, bool, error) {
	g, ok, err := a.src.Next()
	if err != nil || !ok {
		return record.Group{}, ok, err
	}

	if g.Top != record.TopDiff {
		return g, true, nil
	}

	linkHeaders(g.Items)

	g, err = move(g)
	if err != nil {
		return record.Group{}, false, err
	}
	return g, true, nil
}
