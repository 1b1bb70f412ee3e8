package pipeline

import (
	"sort"

	"github.com/codalotl/diffmove/record"
)

// splice implements Step 7: insert every annotation into items immediately
// after the original item at its anchor index, preserving emission order
// for annotations that share an index. Sorting is stable, so annotations
// anchored at the same index keep the relative order renderAnnotations gave
// them (source-side before destination-side, matches in removed-input
// order then ascending distance).
func splice(items []record.Record, annos []anno) []record.Record {
	sort.SliceStable(annos, func(i, j int) bool { return annos[i].index < annos[j].index })

	out := make([]record.Record, 0, len(items)+len(annos))
	ai := 0
	for i, it := range items {
		out = append(out, it)
		for ai < len(annos) && annos[ai].index == i {
			out = append(out, annos[ai].rec)
			ai++
		}
	}
	for ; ai < len(annos); ai++ {
		out = append(out, annos[ai].rec)
	}
	return out
}
