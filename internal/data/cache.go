package data

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"pricing-simulator/internal/metrics"
)

// DatasetCache memoizes loaded datasets by absolute file path.
//
// An entry stays valid while the file's size and modification time are
// unchanged; a changed file is reloaded on the next Get. Concurrent first
// loads of the same path share one read.
//
// The cache is passed explicitly to whoever needs it; there is no global
// instance. Only the immutable Dataset is shared, never simulation output.
type DatasetCache struct {
	loader *Loader

	mu    sync.RWMutex
	store map[string]*Dataset

	group singleflight.Group
	log   *logrus.Entry
}

func NewDatasetCache(loader *Loader) *DatasetCache {
	if loader == nil {
		loader = NewLoader(LoaderOptions{})
	}
	return &DatasetCache{
		loader: loader,
		store:  make(map[string]*Dataset),
		log:    logrus.WithField("component", "dataset_cache"),
	}
}

// Get returns the dataset for path, loading it on first use or after the
// file changed.
func (c *DatasetCache) Get(path string) (*Dataset, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, "resolve dataset path")
	}
	info, err := os.Stat(key)
	if err != nil {
		return nil, errors.Wrap(err, "stat dataset")
	}

	c.mu.RLock()
	ds, ok := c.store[key]
	c.mu.RUnlock()
	if ok && fresh(ds, info) {
		metrics.DatasetCacheLookups.WithLabelValues("hit").Inc()
		return ds, nil
	}
	if ok {
		metrics.DatasetCacheLookups.WithLabelValues("stale").Inc()
		c.log.WithField("path", key).Info("dataset changed on disk, reloading")
	} else {
		metrics.DatasetCacheLookups.WithLabelValues("miss").Inc()
	}

	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		loaded, err := c.loader.LoadDataset(key)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.store[key] = loaded
		c.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		c.log.WithError(err).WithField("path", key).Error("dataset load failed")
		return nil, err
	}
	if shared {
		c.log.WithField("path", key).Debug("joined in-flight dataset load")
	}
	return v.(*Dataset), nil
}

// Invalidate drops the entry for path, if any.
func (c *DatasetCache) Invalidate(path string) {
	key, err := filepath.Abs(path)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
}

// Clear removes all entries.
func (c *DatasetCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]*Dataset)
}

func (c *DatasetCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

func fresh(ds *Dataset, info os.FileInfo) bool {
	return ds.Size == info.Size() && ds.ModTime.Equal(info.ModTime())
}
