package ledger

import (
	"bytes"
	"encoding/binary"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/axiom-kit/storage/kv"
	"github.com/axiomesh/axiom-staking/internal/storagemgr"
	"github.com/axiomesh/axiom-staking/pkg/loggers"
)

var (
	storageKeyPrefix = []byte("s")
	accountKeyPrefix = []byte("a")
	versionKey       = []byte("meta_version")
	stateRootKey     = []byte("meta_root")
)

var _ StateLedger = (*StateLedgerImpl)(nil)

// StateLedgerImpl keeps contract storage in a kv store, each Commit folds the written keys into a chained root.
type StateLedgerImpl struct {
	logger     logrus.FieldLogger
	backend    kv.Storage
	stateCache *storagemgr.CacheWrapper

	accounts map[common.Address]*SimpleAccount
	changer  *stateChanger

	version   uint64
	stateRoot common.Hash
}

func NewStateLedger(backend kv.Storage) (StateLedger, error) {
	l := &StateLedgerImpl{
		logger:     loggers.Logger(loggers.Ledger),
		backend:    backend,
		stateCache: storagemgr.NewCacheWrapper(32, true),
		accounts:   make(map[common.Address]*SimpleAccount),
		changer:    newChanger(),
	}

	if raw := backend.Get(versionKey); raw != nil {
		if len(raw) != 8 {
			return nil, errors.Errorf("invalid ledger version data: %x", raw)
		}
		l.version = binary.BigEndian.Uint64(raw)
	}
	if raw := backend.Get(stateRootKey); raw != nil {
		l.stateRoot = common.BytesToHash(raw)
	}
	versionMetric.Set(float64(l.version))
	return l, nil
}

func (l *StateLedgerImpl) GetOrCreateAccount(addr common.Address) IAccount {
	if acc, ok := l.accounts[addr]; ok {
		return acc
	}
	acc := NewAccount(l.backend, l.stateCache, addr, l.changer)
	l.accounts[addr] = acc
	l.changer.append(createObjectChange{account: &acc.Addr})
	return acc
}

func (l *StateLedgerImpl) GetAccount(addr common.Address) IAccount {
	if acc, ok := l.accounts[addr]; ok {
		return acc
	}
	if !l.hasCommittedState(addr) {
		return nil
	}
	acc := NewAccount(l.backend, l.stateCache, addr, l.changer)
	l.accounts[addr] = acc
	return acc
}

func (l *StateLedgerImpl) hasCommittedState(addr common.Address) bool {
	return l.backend.Has(accountKey(addr))
}

func (l *StateLedgerImpl) Snapshot() int {
	return l.changer.length()
}

func (l *StateLedgerImpl) RevertToSnapshot(snapshot int) {
	if snapshot < 0 || snapshot > l.changer.length() {
		l.logger.WithFields(logrus.Fields{"snapshot": snapshot, "length": l.changer.length()}).Warn("revert to invalid snapshot")
		return
	}
	l.changer.revert(l, snapshot)
}

func (l *StateLedgerImpl) Finalise() {
	touched := 0
	for addr := range l.changer.dirties {
		if acc, ok := l.accounts[addr]; ok {
			touched += acc.Finalise()
		}
	}
	l.changer.reset()
	l.logger.Debugf("finalise %d dirty keys", touched)
}

func (l *StateLedgerImpl) Commit() (uint64, common.Hash, error) {
	start := time.Now()
	if l.changer.length() != 0 {
		return 0, common.Hash{}, errors.New("commit with unfinalised changes")
	}

	batch := l.backend.NewBatch()
	journal := make(map[string][]byte)
	for _, acc := range l.accounts {
		if acc.flush(batch, journal) {
			batch.Put(accountKey(acc.Addr), []byte{1})
		}
	}

	version := l.version + 1
	root := foldStateRoot(l.stateRoot, version, journal)
	batch.Put(versionKey, binary.BigEndian.AppendUint64(nil, version))
	batch.Put(stateRootKey, root.Bytes())
	batch.Commit()

	l.version = version
	l.stateRoot = root
	// drop the account views so memory does not grow with every address ever touched
	l.accounts = make(map[common.Address]*SimpleAccount)

	cacheMetrics := l.stateCache.ExportMetrics()
	stateCacheHitCounter.Set(float64(cacheMetrics.CacheHitCounter))
	stateCacheMissCounter.Set(float64(cacheMetrics.CacheMissCounter))
	l.stateCache.ResetCounterMetrics()
	storagemgr.ExportCachedStorageMetrics()
	storagemgr.ResetCachedStorageMetrics()
	versionMetric.Set(float64(version))
	commitDuration.Observe(time.Since(start).Seconds())

	l.logger.WithFields(logrus.Fields{
		"version":  version,
		"root":     root.String(),
		"keys":     len(journal),
		"duration": time.Since(start),
	}).Debug("commit state")
	return version, root, nil
}

func (l *StateLedgerImpl) Version() uint64 {
	return l.version
}

func (l *StateLedgerImpl) StateRoot() common.Hash {
	return l.stateRoot
}

func (l *StateLedgerImpl) Close() {
	if err := l.backend.Close(); err != nil {
		l.logger.WithField("err", err).Warn("close state storage failed")
	}
}

// foldStateRoot hashes the previous root with the sorted writes of one commit.
func foldStateRoot(prev common.Hash, version uint64, journal map[string][]byte) common.Hash {
	keys := make([]string, 0, len(journal))
	for k := range journal {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf := bytes.NewBuffer(nil)
	buf.Write(prev.Bytes())
	buf.Write(binary.BigEndian.AppendUint64(nil, version))
	for _, k := range keys {
		buf.Write(crypto.Keccak256([]byte(k)))
		buf.Write(crypto.Keccak256(journal[k]))
	}
	return crypto.Keccak256Hash(buf.Bytes())
}
