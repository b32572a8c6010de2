package genoindex

import (
	"bufio"
	"compress/gzip"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Contig is a single named sequence read from a reference. Sequence case is
// preserved exactly as it appeared in the source file.
type Contig struct {
	Name     string
	Sequence []byte
}

// ReferenceReader yields the contigs of a reference genome one at a time.
// IndexBuilder and the Driver consume it; decoding format is the reader's
// concern, not the index's.
type ReferenceReader interface {
	// Next returns the next contig, or io.EOF when the reference is
	// exhausted.
	Next() (Contig, error)
	Close() error
}

// FastaGzReader reads contigs from a gzip-compressed FASTA file. It is the
// default ReferenceReader; any other format is an external collaborator's
// concern, per spec §6.1.
type FastaGzReader struct {
	f  io.Closer
	gz *gzip.Reader
	r  *bufio.Reader

	pendingName string // name of the next contig, read ahead by the previous Next()
	havePending bool
}

// NewFastaGzReader opens a gzip-compressed FASTA file for streaming.
func NewFastaGzReader(f io.ReadCloser) (*FastaGzReader, error) {
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "opening gzip reference")
	}
	return &FastaGzReader{f: f, gz: gz, r: bufio.NewReaderSize(gz, 1<<20)}, nil
}

// Next returns the next contig. Sequence lines are concatenated verbatim
// (newlines stripped); no case folding or alphabet validation is performed.
func (r *FastaGzReader) Next() (Contig, error) {
	var name string
	if r.havePending {
		name = r.pendingName
		r.havePending = false
	} else {
		// Find the first header line.
		for {
			line, err := r.r.ReadString('\n')
			if err != nil && line == "" {
				return Contig{}, io.EOF
			}
			line = strings.TrimRight(line, "\r\n")
			if strings.HasPrefix(line, ">") {
				name = headerName(line)
				break
			}
			if err == io.EOF {
				return Contig{}, io.EOF
			}
		}
	}

	var seq []byte
	for {
		line, err := r.r.ReadString('\n')
		trimmed := strings.TrimRight(line, "\r\n")
		if strings.HasPrefix(trimmed, ">") {
			r.pendingName = headerName(trimmed)
			r.havePending = true
			break
		}
		seq = append(seq, trimmed...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return Contig{}, errors.Wrap(err, "reading reference sequence")
		}
	}
	return Contig{Name: name, Sequence: seq}, nil
}

// Close releases the underlying file handle.
func (r *FastaGzReader) Close() error {
	return r.f.Close()
}

func headerName(line string) string {
	line = strings.TrimPrefix(line, ">")
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		line = line[:i]
	}
	return line
}
