package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "memory.json"))
}

func TestStore_MissingFileReadsEmpty(t *testing.T) {
	store := tempStore(t)

	records, err := store.Read()

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStore_AppendMonotonicGrowth(t *testing.T) {
	// GIVEN an empty store
	store := tempStore(t)

	// WHEN appending N records sequentially
	const n = 5
	for i := 0; i < n; i++ {
		err := store.Append(HistoricalRecord{
			PartID:     fmt.Sprintf("P%d", i),
			MachineID:  "M1",
			OperatorID: "O1",
			Success:    i%2 == 0,
			TimeTaken:  1.64,
			Risk:       0.05,
		})
		require.NoError(t, err)
	}

	// THEN Read returns exactly N records in append order
	records, err := store.Read()
	require.NoError(t, err)
	require.Len(t, records, n)
	for i, rec := range records {
		assert.Equal(t, fmt.Sprintf("P%d", i), rec.PartID)
	}
}

func TestStore_RecordsRoundTrip(t *testing.T) {
	store := tempStore(t)
	want := HistoricalRecord{
		PartID:       "P1001",
		MachineID:    "M1",
		OperatorID:   "O1",
		OperatorName: "Ana",
		Success:      true,
		TimeTaken:    1.64,
		Risk:         0.05,
	}

	require.NoError(t, store.Append(want))

	records, err := store.Read()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, want, records[0])
}

func TestStore_CorruptFileAbortsRead(t *testing.T) {
	// A present but undecodable store must error, not silently discard history.
	dir := t.TempDir()
	path := filepath.Join(dir, "memory.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewStore(path)

	_, err := store.Read()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorrupt)

	err = store.Append(HistoricalRecord{PartID: "P1"})
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestStore_ConcurrentAppendsLoseNothing(t *testing.T) {
	// N concurrent appends must yield N records, not fewer.
	store := tempStore(t)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, store.Append(HistoricalRecord{PartID: fmt.Sprintf("P%d", i)}))
		}(i)
	}
	wg.Wait()

	records, err := store.Read()
	require.NoError(t, err)
	assert.Len(t, records, n)
}
