/*
Package genoindex implements a chunked, dictionary-index based approximate
matcher for short DNA patterns against large reference genomes.

A reference is split into fixed-size, overlapping chunks (see ChunkPlanner).
Each chunk is indexed by base (IndexBuilder) so that a vote-accumulation scan
(ChunkSearcher) can locate every position where a query matches within a
bounded number of substitutions, on either strand. Chunks are searched
independently and in parallel (WorkPool); the overlap between consecutive
chunks combined with a boundary rule guarantees every alignment is reported
exactly once.

See genoindex/cmd/genoindex for the reference CLI built on top of this
package.
*/
package genoindex
