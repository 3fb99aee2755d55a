package greenland

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/evz/greenland/enum"
)

func TestBasicMetricsCollector_Snapshot(t *testing.T) {
	var b BasicMetricsCollector

	b.RecordEncode(4, time.Millisecond, nil)
	b.RecordEnumerate(0, enum.Stats{Frames: 7, Emitted: 3}, 2*time.Millisecond, nil)
	b.RecordEnumerate(1, enum.Stats{Frames: 5, Emitted: 2}, 3*time.Millisecond, errors.New("boom"))
	b.RecordMerge(5, time.Millisecond, nil)
	b.RecordSelect(2, 3*time.Millisecond, nil)
	b.RecordSelect(2, 4*time.Millisecond, errors.New("boom"))

	stats := b.GetStats()
	assert.Equal(t, int64(1), stats.EncodeCount)
	assert.Equal(t, int64(0), stats.EncodeErrors)
	assert.Equal(t, int64(2), stats.WorkerCount)
	assert.Equal(t, int64(1), stats.WorkerErrors)
	assert.Equal(t, int64(12), stats.FramesExplored)
	assert.Equal(t, int64(5), stats.SubsetsEmitted)
	assert.Equal(t, (5 * time.Millisecond).Nanoseconds(), stats.EnumerateNanos)
	assert.Equal(t, int64(5), stats.MergedRecords)
	assert.Equal(t, int64(2), stats.SelectCount)
	assert.Equal(t, int64(1), stats.SelectErrors)
	assert.Equal(t, (7 * time.Millisecond).Nanoseconds(), stats.SelectTotalNanos)
}
