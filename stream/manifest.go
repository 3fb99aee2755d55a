package stream

import (
	"bytes"
	"encoding/base64"
	"errors"

	"github.com/RoaringBitmap/roaring/v2"
)

var (
	// ErrChecksum indicates a sink whose payload bytes do not match
	// the checksum its manifest recorded.
	ErrChecksum = errors.New("stream: sink checksum mismatch")
	// ErrRecordCount indicates a sink holding a different number of
	// records than its manifest recorded.
	ErrRecordCount = errors.New("stream: sink record count mismatch")
	// ErrRecordTooLarge guards against corrupt frame headers.
	ErrRecordTooLarge = errors.New("stream: record frame exceeds size limit")
)

// Manifest describes one worker's finished sink. It is written as a
// separate blob after the record blob is durable, so a present, valid
// manifest proves the worker completed its whole root group.
type Manifest struct {
	Codec       string `json:"codec"`
	Compression string `json:"compression"`
	Records     int64  `json:"records"`
	Checksum    uint32 `json:"checksum"`
	// Roots is a serialized roaring bitmap of the root indices whose
	// searches this sink covers.
	Roots string `json:"roots"`
}

// RootSet decodes the completed-roots bitmap.
func (m *Manifest) RootSet() (*roaring.Bitmap, error) {
	raw, err := base64.StdEncoding.DecodeString(m.Roots)
	if err != nil {
		return nil, err
	}
	b := roaring.New()
	if _, err := b.ReadFrom(bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	return b, nil
}

func encodeRoots(b *roaring.Bitmap) (string, error) {
	var buf bytes.Buffer
	if _, err := b.WriteTo(&buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
