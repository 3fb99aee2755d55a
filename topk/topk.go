// Package topk reduces an arbitrarily large record stream to the K
// records whose percent-of-target is closest to 100, in O(K) memory.
//
// A bounded max-heap keeps the worst retained record at the root. An
// incoming record only displaces it when strictly closer; on equal
// distance the earlier-seen record wins, with stream arrival order as
// the deterministic tie-break.
package topk

import (
	"container/heap"
	"math"
	"sort"

	"github.com/evz/greenland/stream"
)

// Entry is one retained record with its ranking key.
type Entry struct {
	// Distance is |100 - percent|.
	Distance float64
	// Seq is the record's position in the merged stream, starting at 1.
	Seq uint64
	// Record is the retained record.
	Record stream.Record
}

// Document is the final top-K artifact.
type Document struct {
	Target       float64         `json:"target"`
	Combinations []stream.Record `json:"combinations"`
}

// Selector consumes a record stream and retains the K closest-to-target
// records. Not safe for concurrent use; the merged stream has a single
// consumer.
type Selector struct {
	k   int
	h   entryHeap
	seq uint64
}

// New creates a Selector retaining at most k records. k < 1 retains
// nothing.
func New(k int) *Selector {
	if k < 0 {
		k = 0
	}
	return &Selector{
		k: k,
		h: make(entryHeap, 0, k),
	}
}

// Add offers one record to the selector.
func (s *Selector) Add(rec stream.Record) {
	s.seq++
	if s.k <= 0 {
		return
	}
	e := Entry{
		Distance: math.Abs(100 - rec.Percent),
		Seq:      s.seq,
		Record:   rec,
	}

	if len(s.h) < s.k {
		heap.Push(&s.h, e)
		return
	}

	// Full: replace the worst only on strict improvement, so equal
	// distances keep the earlier arrival.
	if e.Distance < s.h[0].Distance {
		s.h[0] = e
		heap.Fix(&s.h, 0)
	}
}

// Seen returns how many records the selector has consumed.
func (s *Selector) Seen() uint64 {
	return s.seq
}

// Results drains the selector, returning retained entries sorted
// ascending by distance, then by arrival order. The selector is empty
// afterwards.
func (s *Selector) Results() []Entry {
	out := make([]Entry, len(s.h))
	copy(out, s.h)
	s.h = s.h[:0]
	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Seq < out[j].Seq
	})
	return out
}

// Document drains the selector into the final artifact for the given
// target.
func (s *Selector) Document(target float64) *Document {
	entries := s.Results()
	doc := &Document{
		Target:       target,
		Combinations: make([]stream.Record, len(entries)),
	}
	for i, e := range entries {
		doc.Combinations[i] = e.Record
	}
	return doc
}

// entryHeap keeps the farthest retained record at the root,
// earliest-seen among equals, so it is the first to go when a closer
// record arrives.
type entryHeap []Entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].Distance != h[j].Distance {
		return h[i].Distance > h[j].Distance
	}
	return h[i].Seq < h[j].Seq
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) {
	*h = append(*h, x.(Entry))
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
