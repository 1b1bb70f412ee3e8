package pipeline

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/codalotl/diffmove/record"
)

// ErrClassifyUnreachable reports a line inside a diff body whose first
// character matches none of the recognized body prefixes. The offending
// line is preserved in the wrapping error's message.
var ErrClassifyUnreachable = errors.New("pipeline: classify: unreachable line in diff body")

var (
	reGitHeader  = regexp.MustCompile(`^diff --git (a/.+?) (b/.+?)$`)
	reHeaderLead = regexp.MustCompile(`^[-+]{3} `)
	reFromLine   = regexp.MustCompile(`^--- (.+?)(?:\t.*)?$`)
	reToLine     = regexp.MustCompile(`^\+\+\+ (.+?)(?:\t.*)?$`)
	reBinary     = regexp.MustCompile(`^Binary files (\S*) and (\S*)`)
)

// classifier is the pipeline's third stage (spec.md §4.2): it attaches an
// Info to each record by applying the ordered rule set to the record's
// color-stripped text (Text.String() already excludes style tags — a
// styledtext.Text separates content from styling, so this is exactly the
// "color-stripped text" the spec calls for), tracking two state bits
// (diffStart, inHeader) across the whole input.
type classifier struct {
	src       Stage
	diffStart bool
	inHeader  bool
}

func newClassifier(src Stage) Stage { return &classifier{src: src} }

func (c *classifier) Next() (record.Record, bool, error) {
	r, ok, err := c.src.Next()
	if err != nil || !ok {
		return record.Record{}, ok, err
	}

	line := r.Text.String()

	// Rule 1.
	if m := reGitHeader.FindStringSubmatch(line); m != nil {
		c.diffStart = true
		c.inHeader = true
		r.Info = record.Info{
			Top: record.TopDiff,
			Diff: &record.DiffInfo{
				Kind:          record.DiffKindFileHeader,
				FileHeaderSub: record.FileHeaderGit,
				FromFile:      m[1],
				ToFile:        m[2],
			},
		}
		return r, true, nil
	}

	// Rule 2.
	if c.inHeader || reHeaderLead.MatchString(line) {
		c.diffStart = true
		c.inHeader = true

		switch {
		case reFromLine.MatchString(line):
			m := reFromLine.FindStringSubmatch(line)
			r.Info = record.Info{
				Top: record.TopDiff,
				Diff: &record.DiffInfo{
					Kind:          record.DiffKindFileHeader,
					FileHeaderSub: record.FileHeaderFrom,
					FromFile:      m[1],
				},
			}
		case reToLine.MatchString(line):
			m := reToLine.FindStringSubmatch(line)
			c.inHeader = false // last header line before body
			r.Info = record.Info{
				Top: record.TopDiff,
				Diff: &record.DiffInfo{
					Kind:          record.DiffKindFileHeader,
					FileHeaderSub: record.FileHeaderTo,
					ToFile:        m[1],
				},
			}
		case reBinary.MatchString(line):
			m := reBinary.FindStringSubmatch(line)
			c.inHeader = false
			r.Info = record.Info{
				Top: record.TopDiff,
				Diff: &record.DiffInfo{
					Kind:     record.DiffKindBody,
					BodySub:  record.BodyCommentBinary,
					FromFile: m[1],
					ToFile:   m[2],
				},
			}
		default:
			r.Info = record.Info{
				Top: record.TopDiff,
				Diff: &record.DiffInfo{
					Kind:          record.DiffKindFileHeader,
					FileHeaderSub: record.FileHeaderGeneric,
				},
			}
		}
		return r, true, nil
	}

	// Rule 3.
	if c.diffStart && !c.inHeader && line != "" {
		var sub record.BodySubtype
		switch {
		case strings.HasPrefix(line, "@@"):
			sub = record.BodyHunkLines
		case line[0] == '-':
			sub = record.BodyRemoved
		case line[0] == '+':
			sub = record.BodyAdded
		case line[0] == ' ':
			sub = record.BodyContext
		case line[0] == '\\':
			sub = record.BodyComment
		default:
			return record.Record{}, false, fmt.Errorf("pipeline: classify: %w: %q", ErrClassifyUnreachable, line)
		}
		r.Info = record.Info{
			Top: record.TopDiff,
			Diff: &record.DiffInfo{
				Kind:    record.DiffKindBody,
				BodySub: sub,
			},
		}
		return r, true, nil
	}

	// Rule 4.
	c.diffStart = false
	r.Info = record.Info{Top: record.TopNonDiff}
	return r, true, nil
}
