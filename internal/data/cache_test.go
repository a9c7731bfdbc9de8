package data

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDatasetCache_Memoizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "online_retail.csv")
	writeCSV(t, path, mixedCSV())

	cache := NewDatasetCache(NewLoader(LoaderOptions{}))
	first, err := cache.Get(path)
	require.NoError(t, err)
	second, err := cache.Get(path)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, cache.Len())
}

func TestDatasetCache_ReloadsChangedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "online_retail.csv")
	writeCSV(t, path, mixedCSV())

	cache := NewDatasetCache(nil)
	first, err := cache.Get(path)
	require.NoError(t, err)

	writeCSV(t, path, mixedCSV()+"536500,X,EXTRA LANTERN,1,1/5/2011 10:00,3,,UK\n")
	later := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, later, later))

	second, err := cache.Get(path)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.NotEqual(t, first.Hash, second.Hash)
	assert.Len(t, second.Transactions, 3)
	assert.Len(t, first.Transactions, 2)
}

func TestDatasetCache_InvalidateAndClear(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")
	writeCSV(t, a, mixedCSV())
	writeCSV(t, b, mixedCSV())

	cache := NewDatasetCache(nil)
	dsA, err := cache.Get(a)
	require.NoError(t, err)
	dsB, err := cache.Get(b)
	require.NoError(t, err)
	assert.NotSame(t, dsA, dsB)
	assert.Equal(t, dsA.Hash, dsB.Hash)
	assert.Equal(t, 2, cache.Len())

	cache.Invalidate(a)
	assert.Equal(t, 1, cache.Len())
	reloaded, err := cache.Get(a)
	require.NoError(t, err)
	assert.NotSame(t, dsA, reloaded)

	cache.Clear()
	assert.Equal(t, 0, cache.Len())
}

func TestDatasetCache_ConcurrentGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "online_retail.csv")
	writeCSV(t, path, mixedCSV())
	cache := NewDatasetCache(nil)

	const n = 16
	results := make([]*Dataset, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ds, err := cache.Get(path)
			if err == nil {
				results[i] = ds
			}
		}(i)
	}
	wg.Wait()

	final, err := cache.Get(path)
	require.NoError(t, err)
	for _, ds := range results {
		require.NotNil(t, ds)
		assert.Equal(t, final.Hash, ds.Hash)
	}
}

func TestDatasetCache_LoadFailureNotCached(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.csv")
	writeCSV(t, path, header+"536365,85123A,LANTERN,6,yesterday,2.55,17850,United Kingdom\n")

	cache := NewDatasetCache(nil)
	_, err := cache.Get(path)
	require.Error(t, err)
	assert.Equal(t, 0, cache.Len())

	_, err = cache.Get(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
