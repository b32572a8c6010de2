package genoindex

import "fmt"

// InputError is returned for problems with caller-supplied parameters: a
// pattern that is empty or too long, a negative K, or a missing reference
// file.
type InputError struct {
	Msg string
}

func (e InputError) Error() string { return e.Msg }

// IndexCorruption is returned when an on-disk index fails its structural
// contract: a .seq file without a matching index file, or an index missing
// a symbol that a spot check finds in the corresponding sequence.
type IndexCorruption struct {
	ChunkID string
	Msg     string
}

func (e IndexCorruption) Error() string {
	return fmt.Sprintf("index corruption in chunk %s: %s", e.ChunkID, e.Msg)
}

// IoError wraps a read, write, or directory-enumeration failure.
type IoError struct {
	Op  string
	Err error
}

func (e IoError) Error() string { return fmt.Sprintf("%s: %s", e.Op, e.Err) }
func (e IoError) Unwrap() error { return e.Err }

// WorkerError wraps any of the above, tagging it with the chunk that failed.
// WorkPool returns the first WorkerError it observes; all others are
// discarded along with the in-flight results of the chunks that produced
// them.
type WorkerError struct {
	ChunkID string
	Err     error
}

func (e WorkerError) Error() string {
	return fmt.Sprintf("chunk %s: %s", e.ChunkID, e.Err)
}

func (e WorkerError) Unwrap() error { return e.Err }
