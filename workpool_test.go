package genoindex

import (
	"context"
	stderrors "errors"
	"os"
	"sort"
	"testing"
)

func writeTestChunks(t *testing.T, dir string, contigName string, seq []byte) {
	t.Helper()
	for _, c := range ChunkPlannerWithStride(len(seq), 16, 8) {
		c.ContigName = contigName
		if err := WriteChunkArtifacts(dir, c, seq[c.Start:c.Start+c.Len]); err != nil {
			t.Fatal(err)
		}
	}
}

func TestEnumerateChunks(t *testing.T) {
	dir := t.TempDir()
	writeTestChunks(t, dir, "Z", []byte("TTTTTTTTTTTTTTTTACGTCCCCTTTTTTTT"))

	ids, err := EnumerateChunks(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) == 0 {
		t.Fatal("expected at least one chunk id")
	}
	sort.Strings(ids)
	for _, id := range ids {
		name, idx, err := ParseChunkID(id)
		if err != nil {
			t.Fatalf("ParseChunkID(%q): %v", id, err)
		}
		if name != "Z" || idx < 0 {
			t.Fatalf("unexpected parsed chunk id %q -> (%q, %d)", id, name, idx)
		}
	}
}

func TestEnumerateChunksDetectsOrphanedIndexArtifact(t *testing.T) {
	dir := t.TempDir()
	// Stride 16, overlap 8, length 32 yields more than one chunk.
	writeTestChunks(t, dir, "Z", []byte("TTTTTTTTTTTTTTTTACGTCCCCTTTTTTTT"))

	ids, err := EnumerateChunks(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) < 2 {
		t.Fatalf("expected multiple chunks to set up this scenario, got %d", len(ids))
	}

	// Delete only the .seq artifact of one chunk; its .index.gidx is now
	// an orphan that must not make the chunk silently disappear.
	victim := ids[0]
	if err := os.Remove(SeqPath(dir, victim)); err != nil {
		t.Fatal(err)
	}

	_, err = EnumerateChunks(dir)
	if err == nil {
		t.Fatal("expected an error when a chunk's .seq artifact is missing but its index remains")
	}
	corruption, ok := err.(IndexCorruption)
	if !ok {
		t.Fatalf("expected IndexCorruption, got %T: %v", err, err)
	}
	if corruption.ChunkID != victim {
		t.Fatalf("expected IndexCorruption for chunk %q, got %q", victim, corruption.ChunkID)
	}
}

func TestEnumerateChunksDetectsOrphanedSeqArtifact(t *testing.T) {
	dir := t.TempDir()
	writeTestChunks(t, dir, "Z", []byte("TTTTTTTTTTTTTTTTACGTCCCCTTTTTTTT"))

	ids, err := EnumerateChunks(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) < 2 {
		t.Fatalf("expected multiple chunks to set up this scenario, got %d", len(ids))
	}

	// Delete only the .index.gidx artifact of one chunk; its .seq is now
	// an orphan that must not make the chunk silently disappear either.
	victim := ids[0]
	if err := os.Remove(IndexPath(dir, victim)); err != nil {
		t.Fatal(err)
	}

	_, err = EnumerateChunks(dir)
	if err == nil {
		t.Fatal("expected an error when a chunk's index artifact is missing but its .seq remains")
	}
	corruption, ok := err.(IndexCorruption)
	if !ok {
		t.Fatalf("expected IndexCorruption, got %T: %v", err, err)
	}
	if corruption.ChunkID != victim {
		t.Fatalf("expected IndexCorruption for chunk %q, got %q", victim, corruption.ChunkID)
	}
}

func TestWorkPoolRunFailsWithIndexCorruptionOnOrphanedArtifact(t *testing.T) {
	dir := t.TempDir()
	writeTestChunks(t, dir, "Z", []byte("TTTTTTTTTTTTTTTTACGTCCCCTTTTTTTT"))

	ids, err := EnumerateChunks(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) < 2 {
		t.Fatalf("expected multiple chunks to set up this scenario, got %d", len(ids))
	}
	if err := os.Remove(SeqPath(dir, ids[0])); err != nil {
		t.Fatal(err)
	}

	pool := WorkPool{Dir: dir, Pattern: []byte("ACGT"), K: 0, Workers: 2}
	called := false
	runErr := pool.Run(context.Background(), func(hits []Hit) { called = true })
	if runErr == nil {
		t.Fatal("expected an error instead of a clean, incomplete run")
	}
	if called {
		t.Fatal("onHits must not fire when discovery itself fails")
	}
}

func TestEnumerateChunksEmptyDir(t *testing.T) {
	dir := t.TempDir()
	ids, err := EnumerateChunks(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no chunk ids in an empty directory, got %v", ids)
	}
}

func TestWorkPoolRunFindsHitsAcrossChunks(t *testing.T) {
	dir := t.TempDir()
	writeTestChunks(t, dir, "Z", []byte("TTTTTTTTTTTTTTTTACGTCCCCTTTTTTTT"))

	pool := WorkPool{Dir: dir, Pattern: []byte("ACGT"), K: 0, Workers: 2}

	var total int
	err := pool.Run(context.Background(), func(hits []Hit) {
		total += len(hits)
	})
	if err != nil {
		t.Fatal(err)
	}
	if total == 0 {
		t.Fatal("expected at least one hit for ACGT in the test sequence")
	}
}

func TestWorkPoolRunEmptyIndexDir(t *testing.T) {
	dir := t.TempDir()
	pool := WorkPool{Dir: dir, Pattern: []byte("ACGT"), K: 0}
	err := pool.Run(context.Background(), func(hits []Hit) {
		t.Fatal("onHits should not be called for an empty index directory")
	})
	if err == nil {
		t.Fatal("expected an error for an empty index directory")
	}
	if _, ok := err.(IndexCorruption); !ok {
		t.Fatalf("expected IndexCorruption, got %T: %v", err, err)
	}
}

func TestWorkPoolRunPropagatesWorkerError(t *testing.T) {
	dir := t.TempDir()
	writeTestChunks(t, dir, "Z", []byte("TTTTTTTTTTTTTTTTACGTCCCCTTTTTTTT"))

	ids, err := EnumerateChunks(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) == 0 {
		t.Fatal("expected chunk ids to corrupt")
	}
	// Overwrite one chunk's index artifact with garbage: discovery still
	// sees both files, so the failure surfaces from the worker that loads it.
	if err := os.WriteFile(IndexPath(dir, ids[0]), []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	pool := WorkPool{Dir: dir, Pattern: []byte("ACGT"), K: 0, Workers: 2}
	runErr := pool.Run(context.Background(), func(hits []Hit) {})
	if runErr == nil {
		t.Fatal("expected an error when a chunk artifact is corrupt")
	}
	var workerErr WorkerError
	if !stderrors.As(runErr, &workerErr) {
		t.Fatalf("expected a WorkerError, got %T: %v", runErr, runErr)
	}
}

func TestBatchChunkIDs(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}
	batches := batchChunkIDs(ids, 2)
	if len(batches) != 3 {
		t.Fatalf("expected 3 batches, got %d: %v", len(batches), batches)
	}
	if len(batches[0]) != 2 || len(batches[1]) != 2 || len(batches[2]) != 1 {
		t.Fatalf("unexpected batch sizes: %v", batches)
	}
}

func TestMaxWorkers(t *testing.T) {
	if got := MaxWorkers(); got < 1 || got > defaultMaxSearchWorkers {
		t.Fatalf("MaxWorkers() = %d, want in [1, %d]", got, defaultMaxSearchWorkers)
	}
}
