package genoindex

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Hit is a single reported approximate match, per spec §3: flag 0 for a
// forward-strand match, 16 for a reverse-complement match. GlobalPos is
// 1-based.
type Hit struct {
	Flag       int
	ContigName string
	GlobalPos  int64
	Query      []byte
	Matched    []byte
}

// ParseChunkID splits a chunk identifier of the form CONTIG_<name>_CHUNK_<k>
// back into its contig name and ordinal. The contig name itself may contain
// underscores, so the split anchors on the last "_CHUNK_" marker.
func ParseChunkID(id string) (contigName string, index int, err error) {
	const prefix = "CONTIG_"
	const marker = "_CHUNK_"
	if !strings.HasPrefix(id, prefix) {
		return "", 0, errors.Errorf("malformed chunk id %q", id)
	}
	rest := id[len(prefix):]
	i := strings.LastIndex(rest, marker)
	if i < 0 {
		return "", 0, errors.Errorf("malformed chunk id %q", id)
	}
	contigName = rest[:i]
	k, err := strconv.Atoi(rest[i+len(marker):])
	if err != nil {
		return "", 0, errors.Wrapf(err, "malformed chunk id %q", id)
	}
	return contigName, k, nil
}

// LoadChunk reads a chunk's sequence and positional index from dir, given
// its chunk identifier. The chunk's global start offset is derived from its
// ordinal (k*ChunkStride), per spec §3 - it never needs to be stored
// separately.
func LoadChunk(dir, chunkID string) (Chunk, []byte, ChunkIndex, error) {
	contigName, k, err := ParseChunkID(chunkID)
	if err != nil {
		return Chunk{}, nil, nil, err
	}

	seqPath := SeqPath(dir, chunkID)
	seq, err := os.ReadFile(seqPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Chunk{}, nil, nil, IndexCorruption{ChunkID: chunkID, Msg: "missing .seq artifact"}
		}
		return Chunk{}, nil, nil, IoError{Op: "read sequence " + seqPath, Err: err}
	}

	idxPath := IndexPath(dir, chunkID)
	f, err := os.Open(idxPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Chunk{}, nil, nil, IndexCorruption{ChunkID: chunkID, Msg: "missing index artifact"}
		}
		return Chunk{}, nil, nil, IoError{Op: "open index " + idxPath, Err: err}
	}
	defer f.Close()
	idx, err := ReadChunkIndex(f)
	if err != nil {
		return Chunk{}, nil, nil, IndexCorruption{ChunkID: chunkID, Msg: err.Error()}
	}
	// Spot-check the first, middle and last bytes of the sequence against
	// the index's symbol table.
	if n := len(seq); n > 0 {
		for _, p := range []int{0, n / 2, n - 1} {
			if _, ok := idx[seq[p]]; !ok {
				return Chunk{}, nil, nil, IndexCorruption{ChunkID: chunkID, Msg: "index has no entry for symbol " + strconv.QuoteRune(rune(seq[p])) + " found in the sequence"}
			}
		}
	}

	chunk := Chunk{
		ContigName: contigName,
		Index:      k,
		Start:      k * ChunkStride,
		Len:        len(seq),
	}
	return chunk, seq, idx, nil
}

// SearchChunk runs the vote-accumulation scan (spec §4.3) for pattern
// against one loaded chunk, on both strands, and returns every surviving
// hit with global coordinates.
func SearchChunk(chunk Chunk, seq []byte, idx ChunkIndex, pattern []byte, maxMismatches int) ([]Hit, error) {
	m := len(pattern)
	if m == 0 || m > MaxPatternLen {
		return nil, InputError{Msg: "pattern length must be in [1, " + strconv.Itoa(MaxPatternLen) + "]"}
	}
	if maxMismatches < 0 {
		return nil, InputError{Msg: "K must not be negative"}
	}

	rc := ReverseComplement(pattern)
	minStart := MinStart(chunk.Index, m)

	var hits []Hit
	hits = append(hits, scanStrand(chunk, seq, idx, pattern, 0, maxMismatches, minStart)...)
	hits = append(hits, scanStrand(chunk, seq, idx, rc, 16, maxMismatches, minStart)...)
	return hits, nil
}

// scanStrand performs one vote-accumulation pass (spec §4.3 steps 2-5) for a
// single query (either the pattern or its reverse complement).
func scanStrand(chunk Chunk, seq []byte, idx ChunkIndex, query []byte, flag, maxMismatches, minStart int) []Hit {
	n := len(seq)
	m := len(query)
	if n < m {
		return nil
	}

	votes := make([]int16, n)
	for j := 0; j < m; j++ {
		c := query[j]
		for _, p := range idx[c] {
			t := int(p) - j
			if t >= 0 && t < n {
				votes[t]++
			}
		}
	}

	threshold := int16(m - maxMismatches)
	lastStart := n - m // inclusive; t+m <= n
	var hits []Hit
	for t := minStart; t <= lastStart; t++ {
		if votes[t] >= threshold {
			hits = append(hits, Hit{
				Flag:       flag,
				ContigName: chunk.ContigName,
				GlobalPos:  int64(chunk.Start+t) + 1,
				Query:      query,
				Matched:    seq[t : t+m],
			})
		}
	}
	return hits
}
