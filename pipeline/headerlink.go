package pipeline

import "github.com/codalotl/diffmove/record"

// linkHeaders is the pipeline's fifth stage (spec.md §4.4). It scans a diff
// group's items left to right, tracking the running file-header set and the
// most recent hunk snapshot, and attaches that snapshot (by shared pointer)
// to every body item's Info.Ref.
//
// Unlike the other stages, Header-linker operates on a whole group at once
// (it mutates g.Items in place) rather than pulling record by record — the
// Mover that follows it needs the same whole-group view, so both are driven
// from annotatedGroupStage in pipeline.go.
func linkHeaders(items []record.Record) {
	var header record.FileHeaderSet
	var ref *record.Ref // becomes non-nil once there's a hunk, or any body item needing one
	prevFileHeader := false

	for i := range items {
		info := items[i].Info
		if info.Diff == nil {
			continue
		}

		isFileHeader := info.Diff.Kind == record.DiffKindFileHeader
		if isFileHeader && !prevFileHeader {
			header = record.FileHeaderSet{}
			ref = nil
		}
		prevFileHeader = isFileHeader

		if isFileHeader {
			switch info.Diff.FileHeaderSub {
			case record.FileHeaderGit:
				header.Git = &items[i]
			case record.FileHeaderFrom:
				header.From = &items[i]
			case record.FileHeaderTo:
				header.To = &items[i]
			}
			continue
		}

		if info.Diff.Kind != record.DiffKindBody {
			continue
		}

		switch {
		case info.Diff.BodySub == record.BodyHunkLines:
			ref = &record.Ref{FileHeader: header, HunkLines: &items[i]}
		case ref == nil:
			// No hunk has been seen yet under this header run (e.g. a
			// Binary-files comment line, which has no hunk at all) — fall
			// back to a header-only ref so the invariant that every body
			// record carries a populated ref still holds.
			ref = &record.Ref{FileHeader: header}
		}

		items[i].Info.Ref = ref
	}
}
