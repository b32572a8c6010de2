package genoindex

import (
	"bufio"
	"fmt"
	"io"
)

// HitSink buffers incoming hits and flushes them to w in batches, per spec
// §4.6. It is not safe for concurrent use - callers (the WorkPool's result
// consumer) must serialize their calls to Add.
type HitSink struct {
	w         *bufio.Writer
	buf       []Hit
	threshold int
}

// NewHitSink wraps w with the default flush threshold.
func NewHitSink(w io.Writer) *HitSink {
	return &HitSink{w: bufio.NewWriter(w), threshold: hitFlushThreshold}
}

// Add appends hits to the sink, flushing once the buffer reaches its
// threshold.
func (s *HitSink) Add(hits []Hit) error {
	s.buf = append(s.buf, hits...)
	if len(s.buf) >= s.threshold {
		return s.Flush()
	}
	return nil
}

// Flush writes any buffered hits and clears the buffer, then flushes the
// underlying writer.
func (s *HitSink) Flush() error {
	for _, h := range s.buf {
		if err := writeHitLine(s.w, h); err != nil {
			return err
		}
	}
	s.buf = s.buf[:0]
	return s.w.Flush()
}

// writeHitLine formats one hit as five right-aligned columns
// {3,12,12,24,24} separated by single spaces, terminated with a newline.
func writeHitLine(w io.Writer, h Hit) error {
	_, err := fmt.Fprintf(w, "%3d %12s %12d %24s %24s\n",
		h.Flag, h.ContigName, h.GlobalPos, h.Query, h.Matched)
	return err
}
