package topk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evz/greenland/stream"
	"github.com/evz/greenland/topk"
)

// pathRecords are the fixture results for the path graph under band
// [20,25] with target 22.
func pathRecords() []stream.Record {
	return []stream.Record{
		{Size: 2, Sum: 22, Percent: 100.0, Members: []string{"A", "B"}},
		{Size: 2, Sum: 20, Percent: 90.909, Members: []string{"B", "C"}},
		{Size: 2, Sum: 23, Percent: 104.545, Members: []string{"C", "D"}},
	}
}

func TestSelector_ClosestTwo(t *testing.T) {
	s := topk.New(2)
	for _, rec := range pathRecords() {
		s.Add(rec)
	}

	got := s.Results()
	require.Len(t, got, 2)
	assert.Equal(t, []string{"A", "B"}, got[0].Record.Members)
	assert.Equal(t, 0.0, got[0].Distance)
	assert.Equal(t, []string{"C", "D"}, got[1].Record.Members)
	assert.InDelta(t, 4.545, got[1].Distance, 1e-9)
}

func TestSelector_Saturation(t *testing.T) {
	s := topk.New(10)
	for _, rec := range pathRecords() {
		s.Add(rec)
	}

	got := s.Results()
	require.Len(t, got, 3)
	assert.Equal(t, []string{"A", "B"}, got[0].Record.Members)
	assert.Equal(t, []string{"C", "D"}, got[1].Record.Members)
	assert.Equal(t, []string{"B", "C"}, got[2].Record.Members)
}

func TestSelector_TieKeepsEarlier(t *testing.T) {
	s := topk.New(1)
	s.Add(stream.Record{Sum: 99, Percent: 99, Members: []string{"first"}})
	s.Add(stream.Record{Sum: 101, Percent: 101, Members: []string{"second"}})

	got := s.Results()
	require.Len(t, got, 1)
	assert.Equal(t, []string{"first"}, got[0].Record.Members)
	assert.Equal(t, uint64(1), got[0].Seq)
}

func TestSelector_TieOrderInOutput(t *testing.T) {
	s := topk.New(5)
	s.Add(stream.Record{Percent: 101, Members: []string{"late-tie"}})
	s.Add(stream.Record{Percent: 100, Members: []string{"exact"}})
	s.Add(stream.Record{Percent: 99, Members: []string{"early-tie"}})

	got := s.Results()
	require.Len(t, got, 3)
	assert.Equal(t, []string{"exact"}, got[0].Record.Members)
	// Equal distances come out in arrival order.
	assert.Equal(t, []string{"late-tie"}, got[1].Record.Members)
	assert.Equal(t, []string{"early-tie"}, got[2].Record.Members)
}

func TestSelector_TiedWorstEvictsEarliest(t *testing.T) {
	s := topk.New(2)
	s.Add(stream.Record{Percent: 95, Members: []string{"tied-early"}})
	s.Add(stream.Record{Percent: 105, Members: []string{"tied-late"}})
	s.Add(stream.Record{Percent: 100, Members: []string{"exact"}})

	// Both retained records sit at distance 5 when the closer one
	// arrives; the earliest-seen of the tied pair makes room.
	got := s.Results()
	require.Len(t, got, 2)
	assert.Equal(t, []string{"exact"}, got[0].Record.Members)
	assert.Equal(t, []string{"tied-late"}, got[1].Record.Members)
	assert.Equal(t, uint64(2), got[1].Seq)
}

func TestSelector_BoundedMemory(t *testing.T) {
	s := topk.New(3)
	for i := 0; i < 10000; i++ {
		s.Add(stream.Record{Sum: int64(i), Percent: float64(i % 200)})
	}
	assert.Equal(t, uint64(10000), s.Seen())
	assert.Len(t, s.Results(), 3)
}

func TestSelector_Document(t *testing.T) {
	s := topk.New(2)
	for _, rec := range pathRecords() {
		s.Add(rec)
	}

	doc := s.Document(22)
	assert.Equal(t, 22.0, doc.Target)
	require.Len(t, doc.Combinations, 2)
	assert.Equal(t, []string{"A", "B"}, doc.Combinations[0].Members)
	assert.Equal(t, []string{"C", "D"}, doc.Combinations[1].Members)
}
