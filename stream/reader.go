package stream

import (
	"encoding/binary"
	"fmt"
	"hash"
	"hash/crc32"
	"io"

	"github.com/evz/greenland/codec"
)

// Reader iterates the records of one sink, accumulating the same
// running CRC the Writer computed so the stream can be verified
// against its manifest once drained.
type Reader struct {
	r       io.ReadCloser
	codec   codec.Codec
	crc     hash.Hash32
	records int64
	scratch [4]byte
	payload []byte
}

// NewReader creates a Reader over r using the codec and compression
// the sink's manifest names.
func NewReader(r io.Reader, c codec.Codec, comp Compression) (*Reader, error) {
	if c == nil {
		c = codec.Default
	}
	dr, err := comp.decompressor(r)
	if err != nil {
		return nil, err
	}
	return &Reader{
		r:     dr,
		codec: c,
		crc:   crc32.New(castagnoli),
	}, nil
}

// Next returns the next record, or io.EOF at the end of the stream.
func (r *Reader) Next() (Record, error) {
	if _, err := io.ReadFull(r.r, r.scratch[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return Record{}, fmt.Errorf("stream: truncated frame header: %w", io.ErrUnexpectedEOF)
		}
		return Record{}, err
	}
	size := binary.LittleEndian.Uint32(r.scratch[:])
	if size > maxFrameSize {
		return Record{}, ErrRecordTooLarge
	}
	if cap(r.payload) < int(size) {
		r.payload = make([]byte, size)
	}
	r.payload = r.payload[:size]
	if _, err := io.ReadFull(r.r, r.payload); err != nil {
		return Record{}, fmt.Errorf("stream: truncated frame payload: %w", err)
	}

	r.crc.Write(r.scratch[:])
	r.crc.Write(r.payload)
	r.records++

	var rec Record
	if err := r.codec.Unmarshal(r.payload, &rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Close releases decompressor resources. It does not close the
// underlying sink.
func (r *Reader) Close() error {
	return r.r.Close()
}

// Verify checks the fully drained stream against its manifest. It is
// only meaningful after Next has returned io.EOF.
func (r *Reader) Verify(m Manifest) error {
	if r.records != m.Records {
		return fmt.Errorf("%w: manifest %d, stream %d", ErrRecordCount, m.Records, r.records)
	}
	if r.crc.Sum32() != m.Checksum {
		return fmt.Errorf("%w: manifest %08x, stream %08x", ErrChecksum, m.Checksum, r.crc.Sum32())
	}
	return nil
}
