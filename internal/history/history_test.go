package history

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-signal-analyzer/internal/types"
)

func record(i int) types.AnalysisRecord {
	return types.AnalysisRecord{
		ID:             fmt.Sprintf("rec-%d", i),
		OriginalSignal: types.OriginalSignal{Ticker: "BTCUSDT", BaseConfidence: i},
		Analysis:       types.Verdict{Strengths: []string{"s"}, Concerns: []string{"c"}},
	}
}

func TestAppendEvictsOldest(t *testing.T) {
	r := New(100)
	for i := 0; i < 105; i++ {
		r.Append(record(i))
	}

	require.Equal(t, 100, r.Len())

	all := r.Recent(0)
	require.Len(t, all, 100)
	for i, rec := range all {
		assert.Equal(t, fmt.Sprintf("rec-%d", i+5), rec.ID)
	}
}

func TestRecentLimit(t *testing.T) {
	r := New(10)
	for i := 0; i < 4; i++ {
		r.Append(record(i))
	}

	got := r.Recent(2)
	require.Len(t, got, 2)
	assert.Equal(t, "rec-2", got[0].ID)
	assert.Equal(t, "rec-3", got[1].ID)

	assert.Len(t, r.Recent(50), 4)
	assert.Empty(t, New(5).Recent(20))
}

func TestRecentReturnsCopies(t *testing.T) {
	r := New(3)
	r.Append(record(1))

	got := r.Recent(1)
	got[0].Analysis.Strengths[0] = "mutated"
	got[0].ID = "mutated"

	again := r.Recent(1)
	assert.Equal(t, "rec-1", again[0].ID)
	assert.Equal(t, "s", again[0].Analysis.Strengths[0])
}

func TestDefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultCapacity, New(0).Cap())
	assert.Equal(t, 7, New(7).Cap())
}

func TestConcurrentAppend(t *testing.T) {
	r := New(100)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				r.Append(record(g*1000 + i))
				_ = r.Recent(5)
			}
		}(g)
	}
	wg.Wait()

	assert.Equal(t, 100, r.Len())
	assert.Len(t, r.Recent(0), 100)
}
