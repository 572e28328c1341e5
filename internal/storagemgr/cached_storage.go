package storagemgr

import (
	"sync/atomic"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/axiomesh/axiom-kit/storage/kv"
)

var (
	kvCacheHitCount  atomic.Int64
	kvCacheMissCount atomic.Int64

	kvCacheHitCounter = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "axiom_staking",
		Subsystem: "storage",
		Name:      "kv_cache_hit_counter_per_commit",
		Help:      "The total number of kv cache hit per commit",
	})

	kvCacheMissCounter = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "axiom_staking",
		Subsystem: "storage",
		Name:      "kv_cache_miss_counter_per_commit",
		Help:      "The total number of kv cache miss per commit",
	})
)

func init() {
	prometheus.MustRegister(kvCacheHitCounter)
	prometheus.MustRegister(kvCacheMissCounter)
}

func ExportCachedStorageMetrics() {
	kvCacheHitCounter.Set(float64(kvCacheHitCount.Load()))
	kvCacheMissCounter.Set(float64(kvCacheMissCount.Load()))
}

func ResetCachedStorageMetrics() {
	kvCacheHitCount.Store(0)
	kvCacheMissCount.Store(0)
}

type CachedStorage struct {
	kv.Storage
	cache *fastcache.Cache
}

func NewCachedStorage(s kv.Storage, megabytesLimit int) kv.Storage {
	if megabytesLimit <= 0 {
		megabytesLimit = 128
	}
	return &CachedStorage{
		Storage: s,
		cache:   fastcache.New(megabytesLimit * 1024 * 1024),
	}
}

func (c *CachedStorage) Get(key []byte) []byte {
	value, ok := c.cache.HasGet(nil, key)
	if ok {
		kvCacheHitCount.Add(1)
		return value
	}
	v := c.Storage.Get(key)
	kvCacheMissCount.Add(1)
	if v != nil {
		c.cache.Set(key, v)
	}
	return v
}

func (c *CachedStorage) Has(key []byte) bool {
	has := c.cache.Has(key)
	if has {
		kvCacheHitCount.Add(1)
		return true
	}
	kvCacheMissCount.Add(1)
	return c.Storage.Has(key)
}

func (c *CachedStorage) Put(key, value []byte) {
	c.Storage.Put(key, value)
	c.cache.Set(key, value)
}

func (c *CachedStorage) Delete(key []byte) {
	c.cache.Del(key)
	c.Storage.Delete(key)
}

func (c *CachedStorage) Close() error {
	c.cache.Reset()
	return c.Storage.Close()
}

func (c *CachedStorage) NewBatch() kv.Batch {
	return &BatchWrapper{
		Batch:      c.Storage.NewBatch(),
		cache:      c.cache,
		finalState: make(map[string][]byte),
	}
}

type BatchWrapper struct {
	kv.Batch
	cache      *fastcache.Cache
	finalState map[string][]byte
}

func (w *BatchWrapper) Put(key, value []byte) {
	w.finalState[string(key)] = value
	w.Batch.Put(key, value)
}

func (w *BatchWrapper) Delete(key []byte) {
	w.finalState[string(key)] = nil
	w.Batch.Delete(key)
}

func (w *BatchWrapper) Commit() {
	w.Batch.Commit()
	for k, v := range w.finalState {
		if v == nil {
			w.cache.Del([]byte(k))
		} else {
			w.cache.Set([]byte(k), v)
		}
	}
}

func (w *BatchWrapper) Reset() {
	w.Batch.Reset()
	w.finalState = make(map[string][]byte)
}
