// Package chunker groups ordered timed transcript units into bounded,
// overlapping text segments.
package chunker

import (
	"strings"

	"github.com/morphuslabs/podseek/internal/core/domain"
)

// DefaultMaxChars is the default soft bound on segment content length.
const DefaultMaxChars = 800

// DefaultOverlapChars is the default number of trailing characters
// carried into the next segment for continuity.
const DefaultOverlapChars = 120

// Segment is one assembled chunk of transcript text. StartSeconds is
// the anchor of the first unit that began the segment; overlap prefix
// text keeps no timestamp of its own.
type Segment struct {
	StartSeconds int
	Content      string
}

// Chunker assembles timed units into segments.
type Chunker struct {
	maxChars int
	overlap  int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithMaxChars sets the soft content length bound in characters.
func WithMaxChars(n int) Option {
	return func(c *Chunker) {
		if n > 0 {
			c.maxChars = n
		}
	}
}

// WithOverlap sets the overlap between consecutive segments in characters.
func WithOverlap(n int) Option {
	return func(c *Chunker) {
		if n >= 0 {
			c.overlap = n
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		maxChars: DefaultMaxChars,
		overlap:  DefaultOverlapChars,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Ensure overlap doesn't exceed the segment bound
	if c.overlap >= c.maxChars {
		c.overlap = c.maxChars / 4
	}

	return c
}

// MaxChars returns the configured soft content bound.
func (c *Chunker) MaxChars() int { return c.maxChars }

// Overlap returns the configured overlap width.
func (c *Chunker) Overlap() int { return c.overlap }

// Chunk assembles ordered units into segments. Consecutive units are
// joined by a single space while the running length stays within the
// bound; when the next unit would overflow, the segment is closed and a
// new one opens with the previous segment's trailing overlap characters
// prepended verbatim.
//
// The bound is soft: a single unit longer than the bound is never split
// and becomes its own oversized segment. Segment boundaries never split
// a unit. Empty input yields empty output.
func (c *Chunker) Chunk(units []domain.TimedUnit) []Segment {
	segments := make([]Segment, 0, len(units)/4+1)

	cur := ""
	curStart := 0

	for _, u := range units {
		switch {
		case cur == "":
			cur = u.Text
			curStart = u.StartSeconds

		case len(cur)+1+len(u.Text) <= c.maxChars:
			cur = cur + " " + u.Text

		default:
			segments = append(segments, Segment{StartSeconds: curStart, Content: cur})
			tail := cur
			if len(tail) > c.overlap {
				tail = tail[len(tail)-c.overlap:]
			}
			cur = strings.TrimSpace(tail + " " + u.Text)
			curStart = u.StartSeconds
		}
	}

	if cur != "" {
		segments = append(segments, Segment{StartSeconds: curStart, Content: cur})
	}

	return segments
}
