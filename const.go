package genoindex

const (
	// ChunkStride is the nominal stride (S) between consecutive chunks'
	// start positions within a contig, in bytes.
	ChunkStride = 5_000_000

	// ChunkOverlap (O) is the number of trailing bytes a chunk shares with
	// its successor. It must be at least as long as the longest pattern
	// this index will ever be searched with.
	ChunkOverlap = 1_000

	// MaxPatternLen is the longest pattern a search will accept. It is
	// pinned to ChunkOverlap: a longer pattern may not fit inside chunk
	// k-1's overlap tail, and the boundary de-duplication in Step 4 of the
	// search algorithm would then no longer report every alignment exactly
	// once.
	MaxPatternLen = ChunkOverlap

	// defaultMaxSearchWorkers is the default parallelism degree for the
	// WorkPool: min(8, NumCPU) is computed at runtime, this is the cap.
	defaultMaxSearchWorkers = 8

	// chunkBatchSize is how many chunk ids are handed to a worker at a time.
	// Batching amortizes scheduling overhead when an index has many
	// thousands of chunks (whole-genome scale).
	chunkBatchSize = 5

	// hitFlushThreshold is the number of buffered hits HitSink accumulates
	// before flushing to its writer.
	hitFlushThreshold = 20
)

// alphabet is the DNA alphabet this index is tuned for. Bytes outside the
// alphabet are still indexed (as themselves) but behavior for *queries*
// containing them is undefined, per spec.
const alphabet = "ACGT"

// complement maps a byte to its DNA base complement. Bytes outside the
// alphabet map to themselves, so ReverseComplement is always deterministic.
var complement = buildComplementTable()

func buildComplementTable() [256]byte {
	var t [256]byte
	for i := 0; i < 256; i++ {
		t[i] = byte(i)
	}
	t['A'], t['T'] = 'T', 'A'
	t['C'], t['G'] = 'G', 'C'
	t['a'], t['t'] = 't', 'a'
	t['c'], t['g'] = 'g', 'c'
	return t
}
