package stream

import (
	"encoding/binary"
	"hash"
	"hash/crc32"
	"io"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/evz/greenland/codec"
)

// maxFrameSize bounds a single encoded record. Even a subset spanning
// every vertex of a large graph stays far below this.
const maxFrameSize = 16 << 20

// castagnoli is the CRC-32C table used for sink checksums. Hardware
// accelerated on amd64/arm64.
var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// Writer streams records into a sink. The byte layout per record is a
// little-endian uint32 payload length followed by the codec payload;
// the whole sequence optionally passes through a compressor. The CRC
// covers the uncompressed frames, so it verifies the decoded stream
// rather than one particular compressed representation.
//
// Writer is not safe for concurrent use; each worker owns one.
type Writer struct {
	comp    io.WriteCloser
	codec   codec.Codec
	crc     hash.Hash32
	records int64
	roots   *roaring.Bitmap
	scratch [4]byte
	cname   string
}

// NewWriter creates a Writer over w. Close must be called to flush
// compressor frames before the underlying sink is finalized; closing
// the Writer does not close w.
func NewWriter(w io.Writer, c codec.Codec, comp Compression) (*Writer, error) {
	if c == nil {
		c = codec.Default
	}
	cw, err := comp.compressor(w)
	if err != nil {
		return nil, err
	}
	return &Writer{
		comp:  cw,
		codec: c,
		crc:   crc32.New(castagnoli),
		roots: roaring.New(),
		cname: comp.String(),
	}, nil
}

// Write appends one record.
func (w *Writer) Write(rec Record) error {
	payload, err := w.codec.Marshal(rec)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(w.scratch[:], uint32(len(payload)))
	if _, err := w.comp.Write(w.scratch[:]); err != nil {
		return err
	}
	if _, err := w.comp.Write(payload); err != nil {
		return err
	}
	w.crc.Write(w.scratch[:])
	w.crc.Write(payload)
	w.records++
	return nil
}

// RootDone marks a root's search as fully emitted into this sink.
func (w *Writer) RootDone(root int) {
	w.roots.Add(uint32(root))
}

// Close flushes the compressor. The Writer must not be used after.
func (w *Writer) Close() error {
	return w.comp.Close()
}

// Manifest returns the completeness manifest for everything written so
// far. Call it after Close.
func (w *Writer) Manifest() (Manifest, error) {
	roots, err := encodeRoots(w.roots)
	if err != nil {
		return Manifest{}, err
	}
	return Manifest{
		Codec:       w.codec.Name(),
		Compression: w.cname,
		Records:     w.records,
		Checksum:    w.crc.Sum32(),
		Roots:       roots,
	}, nil
}
