package genoindex

import "testing"

func TestChunkPlannerCoversContig(t *testing.T) {
	const stride, overlap = 100, 20
	lengths := []int{1, stride, stride + overlap, stride + overlap + 1, 2*stride + overlap, 2*stride + overlap + 1, 2*stride + 2*overlap}
	for _, L := range lengths {
		chunks := ChunkPlannerWithStride(L, stride, overlap)
		if len(chunks) == 0 {
			t.Fatalf("length %d: no chunks produced", L)
		}
		covered := make([]bool, L)
		for _, c := range chunks {
			if c.Len > stride+overlap {
				t.Fatalf("length %d, chunk %d: len %d exceeds stride+overlap", L, c.Index, c.Len)
			}
			for p := c.Start; p < c.Start+c.Len; p++ {
				covered[p] = true
			}
		}
		for p, ok := range covered {
			if !ok {
				t.Fatalf("length %d: position %d not covered by any chunk", L, p)
			}
		}
		last := chunks[len(chunks)-1]
		if last.Start+last.Len != L {
			t.Fatalf("length %d: last chunk ends at %d, want %d", L, last.Start+last.Len, L)
		}
	}
}

func TestChunkPlannerSingleChunkForShortContig(t *testing.T) {
	chunks := ChunkPlannerWithStride(50, 100, 20)
	if len(chunks) != 1 {
		t.Fatalf("expected exactly one chunk for a contig shorter than stride, got %d", len(chunks))
	}
	if chunks[0].Index != 0 || chunks[0].Start != 0 || chunks[0].Len != 50 {
		t.Fatalf("unexpected chunk: %+v", chunks[0])
	}
}

func TestMinStart(t *testing.T) {
	if got := minStartWithOverlap(0, 20, 1000); got != 0 {
		t.Fatalf("chunk 0: MinStart = %d, want 0", got)
	}
	if got := minStartWithOverlap(1, 20, 1000); got != 981 {
		t.Fatalf("chunk 1: MinStart = %d, want 981", got)
	}
}

func TestChunkID(t *testing.T) {
	c := Chunk{ContigName: "chr1", Index: 3}
	if got, want := c.ID(), "CONTIG_chr1_CHUNK_3"; got != want {
		t.Fatalf("ID() = %q, want %q", got, want)
	}
	name, idx, err := ParseChunkID(c.ID())
	if err != nil {
		t.Fatal(err)
	}
	if name != "chr1" || idx != 3 {
		t.Fatalf("ParseChunkID roundtrip mismatch: %q, %d", name, idx)
	}
}

func TestParseChunkIDWithUnderscoresInName(t *testing.T) {
	id := "CONTIG_scaffold_007_CHUNK_12"
	name, idx, err := ParseChunkID(id)
	if err != nil {
		t.Fatal(err)
	}
	if name != "scaffold_007" || idx != 12 {
		t.Fatalf("got name=%q idx=%d", name, idx)
	}
}

func TestParseChunkIDMalformed(t *testing.T) {
	if _, _, err := ParseChunkID("not-a-chunk-id"); err == nil {
		t.Fatal("expected an error for a malformed chunk id")
	}
}
