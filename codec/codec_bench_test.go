package codec

import (
	"testing"
)

// benchRecord mirrors the shape of one result record as it crosses a
// sink: a small struct of numbers and a member-name list.
type benchRecord struct {
	Size    int      `json:"size"`
	Sum     int64    `json:"sum"`
	Percent float64  `json:"percent"`
	Members []string `json:"members"`
}

// benchDocument mirrors the final top-K artifact.
type benchDocument struct {
	Target       float64       `json:"target"`
	Combinations []benchRecord `json:"combinations"`
}

func benchPayload() benchDocument {
	recs := make([]benchRecord, 0, 10)
	for i := 0; i < 10; i++ {
		recs = append(recs, benchRecord{
			Size:    4 + i,
			Sum:     2100000 + int64(i)*12345,
			Percent: 96.5 + float64(i)*0.75,
			Members: []string{"Montana", "Wyoming", "Colorado", "Utah", "Idaho"},
		})
	}
	return benchDocument{Target: 2166086, Combinations: recs}
}

func benchmarkCodecMarshal(b *testing.B, c Codec, v any) {
	b.Helper()
	b.ReportAllocs()

	warm, err := c.Marshal(v)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(warm)))

	var sink []byte
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out, err := c.Marshal(v)
		if err != nil {
			b.Fatal(err)
		}
		sink = out
	}
	_ = sink
}

func benchmarkCodecUnmarshal[T any](b *testing.B, c Codec, data []byte, dst *T) {
	b.Helper()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	var v T
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := c.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
	if dst != nil {
		*dst = v
	}
}

func BenchmarkCodec_Marshal_Document(b *testing.B) {
	payload := benchPayload()
	b.Run("json", func(b *testing.B) { benchmarkCodecMarshal(b, JSON{}, payload) })
}

func BenchmarkCodec_Unmarshal_Document(b *testing.B) {
	data := MustMarshal(JSON{}, benchPayload())

	b.Run("json", func(b *testing.B) {
		var sink benchDocument
		benchmarkCodecUnmarshal(b, JSON{}, data, &sink)
		_ = sink
	})
}
