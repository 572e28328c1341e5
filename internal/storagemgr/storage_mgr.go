package storagemgr

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	pebbledb "github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/bloom"
	"github.com/prometheus/common/model"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/axiomesh/axiom-kit/storage/kv"
	"github.com/axiomesh/axiom-kit/storage/kv/leveldb"
	"github.com/axiomesh/axiom-kit/storage/kv/pebble"
	"github.com/axiomesh/axiom-staking/pkg/loggers"
	"github.com/axiomesh/axiom-staking/pkg/repo"
)

const (
	Ledger = "ledger"
	Events = "events"
)

var globalStorageMgr = &storageMgr{
	storageBuilderMap: make(map[string]func(p string) (kv.Storage, error)),
	storages:          make(map[string]kv.Storage),
	meteredNames:      make(map[string]bool),
	lock:              new(sync.Mutex),
}

func init() {
	memoryBuilder := func(p string) (kv.Storage, error) {
		return kv.NewMemory(), nil
	}

	// only for test
	globalStorageMgr.storageBuilderMap[repo.KVStorageTypeLeveldb] = memoryBuilder
	globalStorageMgr.storageBuilderMap[repo.KVStorageTypePebble] = memoryBuilder
	globalStorageMgr.storageBuilderMap[repo.KVStorageTypeMemory] = memoryBuilder
	globalStorageMgr.storageBuilderMap[""] = memoryBuilder
}

type storageMgr struct {
	storageBuilderMap map[string]func(p string) (kv.Storage, error)
	storages          map[string]kv.Storage
	// pebble gauges register once per name, reopened stores run unmetered
	meteredNames      map[string]bool
	defaultKVType     string
	cacheSize         int
	lock              *sync.Mutex
}

func defaultPebbleOptions(cacheMegabytes int) *pebbledb.Options {
	return &pebbledb.Options{
		Cache:        pebbledb.NewCache(int64(cacheMegabytes * 1024 * 1024)),
		MemTableSize: uint64(cacheMegabytes * 1024 * 1024 / 4),

		// a frozen memory table and another live one, same as leveldb
		MemTableStopWritesThreshold: 2,

		MaxConcurrentCompactions: func() int { return runtime.NumCPU() },

		Levels: []pebbledb.LevelOptions{
			{TargetFileSize: 2 * 1024 * 1024, BlockSize: 32 * 1024, FilterPolicy: bloom.FilterPolicy(10)},
			{TargetFileSize: 2 * 1024 * 1024, BlockSize: 32 * 1024, FilterPolicy: bloom.FilterPolicy(10)},
			{TargetFileSize: 4 * 1024 * 1024, BlockSize: 32 * 1024, FilterPolicy: bloom.FilterPolicy(10)},
			{TargetFileSize: 4 * 1024 * 1024, BlockSize: 32 * 1024, FilterPolicy: bloom.FilterPolicy(10)},
			{TargetFileSize: 8 * 1024 * 1024, BlockSize: 32 * 1024, FilterPolicy: bloom.FilterPolicy(10)},
			{TargetFileSize: 8 * 1024 * 1024, BlockSize: 32 * 1024, FilterPolicy: bloom.FilterPolicy(10)},
			{TargetFileSize: 16 * 1024 * 1024, BlockSize: 32 * 1024, FilterPolicy: bloom.FilterPolicy(10)},
		},
	}
}

// defaultLeveldbOptions splits the cache budget like pebble, half block cache and a quarter memtable.
func defaultLeveldbOptions(cacheMegabytes int) *opt.Options {
	return &opt.Options{
		BlockCacheCapacity: cacheMegabytes / 2 * opt.MiB,
		WriteBuffer:        cacheMegabytes / 4 * opt.MiB,
	}
}

func (m *storageMgr) open(typ string, p string) (kv.Storage, error) {
	builder, ok := m.storageBuilderMap[typ]
	if !ok {
		return nil, fmt.Errorf("unknow kv type %s, expect leveldb, pebble or memory", typ)
	}
	s, err := builder(p)
	if err != nil {
		return nil, err
	}
	return NewCachedStorage(s, m.cacheSize), nil
}

func Initialize(defaultKVType string, defaultKvCacheSize int, sync bool, enableMetrics bool) error {
	logger := loggers.Logger(loggers.Storage)
	globalStorageMgr.lock.Lock()
	defer globalStorageMgr.lock.Unlock()

	globalStorageMgr.storageBuilderMap[repo.KVStorageTypeLeveldb] = func(p string) (kv.Storage, error) {
		return leveldb.New(p, defaultLeveldbOptions(defaultKvCacheSize))
	}
	globalStorageMgr.storageBuilderMap[repo.KVStorageTypePebble] = func(p string) (kv.Storage, error) {
		var metricOpts []pebble.MetricsOption
		metricsPrefixName := filepath.Base(p)
		if enableMetrics && !globalStorageMgr.meteredNames[metricsPrefixName] && model.IsValidMetricName(model.LabelValue(metricsPrefixName)) {
			namespace := "axiom_staking"
			subsystem := "storage"
			metricOpts = append(metricOpts,
				pebble.WithDiskSizeGauge(namespace, subsystem, metricsPrefixName),
				pebble.WithDiskWriteThroughput(namespace, subsystem, metricsPrefixName),
				pebble.WithWalWriteThroughput(namespace, subsystem, metricsPrefixName),
				pebble.WithEffectiveWriteThroughput(namespace, subsystem, metricsPrefixName))
			globalStorageMgr.meteredNames[metricsPrefixName] = true
		}
		return pebble.New(p, defaultPebbleOptions(defaultKvCacheSize), &pebbledb.WriteOptions{Sync: sync}, logger, metricOpts...)
	}
	_, ok := globalStorageMgr.storageBuilderMap[defaultKVType]
	if !ok {
		return fmt.Errorf("unknow kv type %s, expect leveldb, pebble or memory", defaultKVType)
	}
	globalStorageMgr.defaultKVType = defaultKVType
	globalStorageMgr.cacheSize = defaultKvCacheSize
	return nil
}

func Open(p string) (kv.Storage, error) {
	return OpenSpecifyType(globalStorageMgr.defaultKVType, p)
}

func OpenSpecifyType(typ string, p string) (kv.Storage, error) {
	globalStorageMgr.lock.Lock()
	defer globalStorageMgr.lock.Unlock()
	s, ok := globalStorageMgr.storages[p]
	if !ok {
		var err error
		s, err = globalStorageMgr.open(typ, p)
		if err != nil {
			return nil, err
		}
		globalStorageMgr.storages[p] = s
	}
	return s, nil
}

// Close closes every opened storage and forgets it, a later Open reopens the path.
func Close() error {
	globalStorageMgr.lock.Lock()
	defer globalStorageMgr.lock.Unlock()
	var firstErr error
	for p, s := range globalStorageMgr.storages {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(globalStorageMgr.storages, p)
	}
	return firstErr
}

func GetLedgerComponentPath(rep *repo.Repo, component string) string {
	return repo.GetStoragePath(rep.RepoRoot, component)
}
