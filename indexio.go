package genoindex

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// indexMagic/indexVersion identify the on-disk container so a reader can
// reject anything that isn't one of ours before trying to interpret it.
const (
	indexMagic   = "GIDX"
	indexVersion = 1
)

// symbolTable is the uncompressed header of an index artifact: for each
// distinct byte appearing in the chunk sequence, how many offsets it has.
// The payload that follows (compressed) is the concatenation of those
// offset arrays, int32 little-endian, in the same order as the table.
type symbolTable []symbolEntry

type symbolEntry struct {
	Symbol byte
	Count  uint32
}

// ChunkIndex is the in-memory form of a chunk's positional index: symbol ->
// ascending local offsets at which that symbol occurs.
type ChunkIndex map[byte][]int32

// SeqPath and IndexPath return the on-disk paths for a chunk's two
// artifacts within dir, per §6.2.
func SeqPath(dir, chunkID string) string {
	return filepath.Join(dir, "GRCh38_"+chunkID+".seq")
}

func IndexPath(dir, chunkID string) string {
	return filepath.Join(dir, "GRCh38_"+chunkID+".index.gidx")
}

// BuildChunkIndex computes the positional index for a chunk's sequence:
// every distinct byte maps to the ascending list of offsets at which it
// occurs. The union of all arrays partitions {0, ..., len(seq)-1}.
func BuildChunkIndex(seq []byte) ChunkIndex {
	idx := make(ChunkIndex)
	for p, c := range seq {
		idx[c] = append(idx[c], int32(p))
	}
	return idx
}

// WriteChunkArtifacts writes the sequence and index files for one chunk
// under dir, creating the directory if absent. Writes go to a temp file
// first and are renamed into place, so a reader never observes a
// half-written artifact.
func WriteChunkArtifacts(dir string, chunk Chunk, seq []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "creating index directory")
	}
	id := chunk.ID()

	if err := atomicWrite(SeqPath(dir, id), func(w io.Writer) error {
		_, err := w.Write(seq)
		return err
	}); err != nil {
		return errors.Wrapf(err, "writing sequence artifact for %s", id)
	}

	idx := BuildChunkIndex(seq)
	if err := atomicWrite(IndexPath(dir, id), func(w io.Writer) error {
		return encodeChunkIndex(w, idx)
	}); err != nil {
		return errors.Wrapf(err, "writing index artifact for %s", id)
	}
	return nil
}

func atomicWrite(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-gidx-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// encodeChunkIndex writes the symbol table followed by the zstd-compressed
// concatenation of offset arrays, in ascending byte-value order (so the
// container layout is deterministic and diffable between builds).
func encodeChunkIndex(w io.Writer, idx ChunkIndex) error {
	symbols := make([]byte, 0, len(idx))
	for s := range idx {
		symbols = append(symbols, s)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })

	var payload bytes.Buffer
	table := make(symbolTable, 0, len(symbols))
	for _, s := range symbols {
		offs := idx[s]
		table = append(table, symbolEntry{Symbol: s, Count: uint32(len(offs))})
		for _, o := range offs {
			var b [4]byte
			binary.LittleEndian.PutUint32(b[:], uint32(o))
			payload.Write(b[:])
		}
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return err
	}
	defer enc.Close()
	compressed := enc.EncodeAll(payload.Bytes(), nil)

	if _, err := io.WriteString(w, indexMagic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint8(indexVersion)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(table))); err != nil {
		return err
	}
	for _, e := range table {
		if err := binary.Write(w, binary.LittleEndian, e.Symbol); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, e.Count); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(compressed))); err != nil {
		return err
	}
	_, err = w.Write(compressed)
	return err
}

// ReadChunkIndex decodes an index artifact in full.
func ReadChunkIndex(r io.Reader) (ChunkIndex, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, errors.Wrap(err, "reading index magic")
	}
	if string(magic[:]) != indexMagic {
		return nil, errors.New("not a genoindex container")
	}
	var version uint8
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, err
	}
	if version != indexVersion {
		return nil, errors.Errorf("unsupported index version %d", version)
	}
	var n uint16
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	table := make(symbolTable, n)
	for i := range table {
		if err := binary.Read(r, binary.LittleEndian, &table[i].Symbol); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &table[i].Count); err != nil {
			return nil, err
		}
	}
	var compressedLen uint64
	if err := binary.Read(r, binary.LittleEndian, &compressedLen); err != nil {
		return nil, err
	}
	compressed := make([]byte, compressedLen)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, errors.Wrap(err, "reading compressed index payload")
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	payload, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, errors.Wrap(err, "decompressing index payload")
	}

	idx := make(ChunkIndex, len(table))
	var off int
	for _, e := range table {
		offs := make([]int32, e.Count)
		for i := range offs {
			if off+4 > len(payload) {
				return nil, errors.Errorf("index payload truncated for symbol %q", e.Symbol)
			}
			offs[i] = int32(binary.LittleEndian.Uint32(payload[off : off+4]))
			off += 4
		}
		idx[e.Symbol] = offs
	}
	return idx, nil
}
