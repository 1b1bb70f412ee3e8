// Package record defines the per-line data model shared by every pipeline
// stage: Record (one per input line), its Info classification, and Group
// (a contiguous run of records sharing a top-level type).
package record

import "github.com/codalotl/diffmove/styledtext"

// TopType is the top-level classification of a record: inside a diff block,
// or not.
type TopType string

const (
	TopDiff    TopType = "diff"
	TopNonDiff TopType = "non-diff"
)

// DiffKind distinguishes the three kinds of diff-related info a record can
// carry.
type DiffKind string

const (
	DiffKindFileHeader DiffKind = "file-header"
	DiffKindBody       DiffKind = "body"
	DiffKindComment    DiffKind = "comment" // synthesized moved-comment only
)

// FileHeaderSubtype distinguishes the four kinds of file-header lines.
type FileHeaderSubtype string

const (
	FileHeaderGit     FileHeaderSubtype = "git"
	FileHeaderFrom    FileHeaderSubtype = "from"
	FileHeaderTo      FileHeaderSubtype = "to"
	FileHeaderGeneric FileHeaderSubtype = "generic"
)

// BodySubtype distinguishes the kinds of body lines.
type BodySubtype string

const (
	BodyCommentBinary BodySubtype = "comment-binary"
	BodyHunkLines     BodySubtype = "hunk-lines"
	BodyAdded         BodySubtype = "added"
	BodyRemoved       BodySubtype = "removed"
	BodyContext       BodySubtype = "context"
	BodyComment       BodySubtype = "comment" // "\ No newline at end of file"
)

// CommentSubtype distinguishes kinds of DiffKindComment records. Only
// CommentMoved exists today; it's synthesized by the Mover.
type CommentSubtype string

const CommentMoved CommentSubtype = "moved"

// DiffInfo is the diff-specific detail attached when Info.Top == TopDiff.
type DiffInfo struct {
	Kind DiffKind

	FileHeaderSub FileHeaderSubtype // valid when Kind == DiffKindFileHeader
	BodySub       BodySubtype       // valid when Kind == DiffKindBody
	CommentSub    CommentSubtype    // valid when Kind == DiffKindComment

	// FromFile/ToFile are populated per the rules in spec.md §3: FromFile
	// originates from "---" or "diff --git"; ToFile from "+++" or
	// "diff --git". Populated on file-header git/from/to records and on
	// body/comment-binary and comment/moved records.
	FromFile, ToFile string
}

// FileHeaderSet is the running set of file-header records seen since the
// last file-header run began.
type FileHeaderSet struct {
	Git, From, To *Record
}

// Ref is the back-reference every body record carries to its enclosing
// file-header set and hunk. A body record seen before any hunk under its
// header run (a comment-binary line) gets a header-only Ref with a nil
// HunkLines. Ref is shared (by pointer) across every body record under the
// same hunk.
type Ref struct {
	FileHeader FileHeaderSet
	HunkLines  *Record
}

// HasAny reports whether r (or a nil Ref) has at least one of
// git/from/to populated, per the invariant in spec.md §3.
func (r *Ref) HasAny() bool {
	if r == nil {
		return false
	}
	return r.FileHeader.Git != nil || r.FileHeader.From != nil || r.FileHeader.To != nil
}

// Info is the classification attached to a Record in stage 3 (Classifier)
// and, for body records, enriched with Ref in stage 5 (Header-linker).
type Info struct {
	Top  TopType
	Diff *DiffInfo // non-nil only when Top == TopDiff
	Ref  *Ref       // non-nil only for body records inside a diff group
}

// Record is one line of input (or a synthesized annotation line), after
// normalization, enumeration, and classification.
type Record struct {
	LineNumber int // 1-based, dense over original input; splices don't renumber
	Text       styledtext.Text
	Info       Info
}

// Group is a maximal run of consecutive records sharing Info.Top.
type Group struct {
	Top   TopType
	Items []Record
}
