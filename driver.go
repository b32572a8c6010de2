package genoindex

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
)

// BuildIndex reads every contig from ref, plans its chunks, and writes their
// sequence and index artifacts under dir. It is idempotent in the sense
// that re-running it simply overwrites the existing artifacts - callers
// that only want to build once should check IndexDirEmpty first.
func BuildIndex(ref ReferenceReader, dir string) error {
	for {
		contig, err := ref.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return IoError{Op: "reading reference", Err: err}
		}
		Log.WithField("contig", contig.Name).WithField("len", len(contig.Sequence)).Info("indexing contig")

		for _, chunk := range ChunkPlanner(len(contig.Sequence)) {
			chunk.ContigName = contig.Name
			seq := contig.Sequence[chunk.Start : chunk.Start+chunk.Len]
			if err := WriteChunkArtifacts(dir, chunk, seq); err != nil {
				return err
			}
		}
	}
}

// IndexDirEmpty reports whether dir is missing or has no entries at all,
// the condition under which Driver triggers a build. Any entry counts,
// whether or not it is a chunk artifact.
func IndexDirEmpty(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return true
	}
	return len(entries) == 0
}

// Driver runs the one-shot build-if-absent-then-search orchestration
// described in spec §4.7: exactly one pattern per invocation.
type Driver struct {
	RefPath  string
	IndexDir string
	Workers  int
	Out      io.Writer
	OpenRef  func(path string) (ReferenceReader, error)
}

// Run validates the pattern and K, builds the index if necessary, then
// searches and writes every hit to d.Out.
func (d Driver) Run(ctx context.Context, pattern []byte, k int) error {
	if len(pattern) == 0 {
		return InputError{Msg: "pattern must not be empty"}
	}
	if len(pattern) > MaxPatternLen {
		return InputError{Msg: "pattern longer than maximum supported length"}
	}
	if k < 0 {
		return InputError{Msg: "K must not be negative"}
	}

	if IndexDirEmpty(d.IndexDir) {
		if d.RefPath == "" {
			return InputError{Msg: "no reference provided and index directory is empty"}
		}
		open := d.OpenRef
		if open == nil {
			open = openFastaGz
		}
		ref, err := open(d.RefPath)
		if err != nil {
			return err
		}
		defer ref.Close()
		if err := BuildIndex(ref, d.IndexDir); err != nil {
			return err
		}
	}

	sink := NewHitSink(d.Out)
	var sinkErr error
	pool := WorkPool{Dir: d.IndexDir, Pattern: pattern, K: k, Workers: d.Workers}
	if err := pool.Run(ctx, func(hits []Hit) {
		if sinkErr == nil {
			sinkErr = sink.Add(hits)
		}
	}); err != nil {
		return err
	}
	if sinkErr != nil {
		return errors.Wrap(sinkErr, "writing hits")
	}
	return errors.Wrap(sink.Flush(), "flushing output")
}

func openFastaGz(path string) (ReferenceReader, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, InputError{Msg: "reference file not found: " + path}
		}
		return nil, IoError{Op: "opening reference " + path, Err: err}
	}
	return NewFastaGzReader(f)
}
