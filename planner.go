package genoindex

import "strconv"

// Chunk describes one contiguous, possibly overlapping window of a contig.
type Chunk struct {
	ContigName string
	Index      int // 0-based ordinal within the contig
	Start      int // global offset of Sequence[0] within the contig (= positions_offset)
	Len        int // len(Sequence), <= ChunkStride+ChunkOverlap
}

// ID returns the stable chunk identifier used to name its on-disk artifacts.
func (c Chunk) ID() string {
	return chunkID(c.ContigName, c.Index)
}

// MinStart returns the smallest local start position this chunk is allowed
// to emit hits for (§4.3 step 4), using the package's fixed ChunkOverlap.
// Chunk 0 may emit from position 0; later chunks must not re-emit
// alignments that chunk k-1's overlap tail already covered.
func MinStart(chunkIndex, patternLen int) int {
	return minStartWithOverlap(chunkIndex, patternLen, ChunkOverlap)
}

// minStartWithOverlap is the general form of MinStart, parameterized on
// overlap so the chunking invariant can be exercised at small scale in
// tests without allocating multi-megabyte chunks.
//
// The k>0 formula assumes chunk k-1 was a full stride+overlap window.
// ChunkPlannerWithStride emits a shorter chunk k-1 only when it already
// reaches the contig's end; chunk k then lies wholly inside it and is
// shorter than overlap, so this min start leaves chunk k no start position
// to emit and no alignment is lost or reported twice.
func minStartWithOverlap(chunkIndex, patternLen, overlap int) int {
	if chunkIndex == 0 {
		return 0
	}
	return overlap - patternLen + 1
}

// ChunkPlanner yields the chunk windows covering a contig of the given
// length, per spec §3/§4.1: fixed stride S = ChunkStride, overlap
// O = ChunkOverlap, terminal chunk truncated at the contig's end.
func ChunkPlanner(contigLen int) []Chunk {
	return ChunkPlannerWithStride(contigLen, ChunkStride, ChunkOverlap)
}

// ChunkPlannerWithStride is the general form of ChunkPlanner, parameterized
// on stride and overlap. The package always builds and searches indexes
// using the fixed ChunkStride/ChunkOverlap constants; this form exists so
// the chunking invariants can be verified at a scale a test can allocate.
func ChunkPlannerWithStride(contigLen, stride, overlap int) []Chunk {
	if contigLen <= 0 {
		return nil
	}
	var chunks []Chunk
	for k := 0; k*stride < contigLen; k++ {
		start := k * stride
		length := stride + overlap
		if start+length > contigLen {
			length = contigLen - start
		}
		chunks = append(chunks, Chunk{Index: k, Start: start, Len: length})
	}
	return chunks
}

func chunkID(contigName string, index int) string {
	return "CONTIG_" + contigName + "_CHUNK_" + strconv.Itoa(index)
}
