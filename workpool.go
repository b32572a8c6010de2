package genoindex

import (
	"context"
	"os"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// MaxWorkers returns the parallelism degree the WorkPool uses by default:
// min(8, NumCPU), per spec §4.5.
func MaxWorkers() int {
	n := runtime.NumCPU()
	if n > defaultMaxSearchWorkers {
		return defaultMaxSearchWorkers
	}
	return n
}

// EnumerateChunks discovers the chunk identifiers present in an index
// directory by listing the union of its *.seq and *.index.gidx files, per
// spec §6.2. A chunk id present under only one of the two suffixes is an
// orphaned artifact - a deleted .seq or a deleted index file - and is
// reported as IndexCorruption rather than silently dropped, so a chunk
// missing from the results never slips past the caller as a clean run with
// incomplete hits (spec §8 scenario 6). Order is unspecified.
func EnumerateChunks(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, IoError{Op: "enumerate index directory " + dir, Err: err}
	}
	seqIDs := make(map[string]bool)
	idxIDs := make(map[string]bool)
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".seq"):
			seqIDs[strings.TrimSuffix(strings.TrimPrefix(name, "GRCh38_"), ".seq")] = true
		case strings.HasSuffix(name, ".index.gidx"):
			idxIDs[strings.TrimSuffix(strings.TrimPrefix(name, "GRCh38_"), ".index.gidx")] = true
		}
	}

	union := make(map[string]bool, len(seqIDs)+len(idxIDs))
	for id := range seqIDs {
		union[id] = true
	}
	for id := range idxIDs {
		union[id] = true
	}

	ids := make([]string, 0, len(union))
	for id := range union {
		if !seqIDs[id] {
			return nil, IndexCorruption{ChunkID: id, Msg: "missing .seq artifact"}
		}
		if !idxIDs[id] {
			return nil, IndexCorruption{ChunkID: id, Msg: "missing index artifact"}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// WorkPool dispatches chunk ids to N parallel workers, each running
// SearchChunk with the same (pattern, K) and streaming its hits back
// through onHits as soon as a chunk finishes - no global ordering, and no
// requirement that every chunk's results be resident in memory at once.
//
// If any worker returns an error, the pool cancels all others; in-flight
// chunks may run to completion but their results are discarded, and the
// first observed error is returned.
type WorkPool struct {
	Dir     string
	Pattern []byte
	K       int
	Workers int
}

// Run searches every chunk discovered in the pool's directory and delivers
// each chunk's hits to onHits, in the unspecified order workers complete.
// onHits is only ever called from the single consumer goroutine that Run
// starts, and every call has returned before Run does, so it does not need
// its own synchronization.
func (wp WorkPool) Run(ctx context.Context, onHits func([]Hit)) error {
	chunkIDs, err := EnumerateChunks(wp.Dir)
	if err != nil {
		return err
	}
	if len(chunkIDs) == 0 {
		return IndexCorruption{ChunkID: "-", Msg: "index directory is empty"}
	}

	workers := wp.Workers
	if workers <= 0 {
		workers = MaxWorkers()
	}

	batches := batchChunkIDs(chunkIDs, chunkBatchSize)

	g, gctx := errgroup.WithContext(ctx)
	work := make(chan []string)
	results := make(chan []Hit, workers)
	var failed atomic.Bool

	g.Go(func() error {
		defer close(work)
		for _, b := range batches {
			select {
			case work <- b:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for batch := range work {
				for _, id := range batch {
					select {
					case <-gctx.Done():
						return gctx.Err()
					default:
					}
					chunk, seq, idx, err := LoadChunk(wp.Dir, id)
					if err != nil {
						failed.Store(true)
						return WorkerError{ChunkID: id, Err: err}
					}
					hits, err := SearchChunk(chunk, seq, idx, wp.Pattern, wp.K)
					if err != nil {
						failed.Store(true)
						return WorkerError{ChunkID: id, Err: err}
					}
					select {
					case results <- hits:
					case <-gctx.Done():
						return gctx.Err()
					}
				}
			}
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for hits := range results {
			// Results that arrive after a worker has failed are dropped.
			if len(hits) > 0 && !failed.Load() {
				onHits(hits)
			}
		}
	}()

	err = g.Wait()
	close(results)
	<-done
	if err != nil {
		return errors.Wrap(err, "search")
	}
	return nil
}

func batchChunkIDs(ids []string, size int) [][]string {
	var batches [][]string
	for len(ids) > 0 {
		n := size
		if n > len(ids) {
			n = len(ids)
		}
		batches = append(batches, ids[:n])
		ids = ids[n:]
	}
	return batches
}
