package ledger

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/axiom-kit/storage/kv"
	"github.com/axiomesh/axiom-staking/internal/storagemgr"
	"github.com/axiomesh/axiom-staking/pkg/loggers"
)

var _ IAccount = (*SimpleAccount)(nil)

type bytesLazyLogger struct {
	bytes []byte
}

func (l *bytesLazyLogger) String() string {
	return hexutil.Encode(l.bytes)
}

type SimpleAccount struct {
	logger logrus.FieldLogger
	Addr   common.Address

	// The confirmed state of the previous commit
	originState map[string][]byte

	// Modified state of previous transactions in the current commit
	pendingState map[string][]byte

	// The latest state of the current transaction
	dirtyState map[string][]byte

	backend    kv.Storage
	stateCache *storagemgr.CacheWrapper

	changer *stateChanger
}

func NewMockAccount(addr common.Address) *SimpleAccount {
	return NewAccount(kv.NewMemory(), storagemgr.NewCacheWrapper(1, false), addr, newChanger())
}

func NewAccount(backend kv.Storage, stateCache *storagemgr.CacheWrapper, addr common.Address, changer *stateChanger) *SimpleAccount {
	return &SimpleAccount{
		logger:       loggers.Logger(loggers.Ledger),
		Addr:         addr,
		originState:  make(map[string][]byte),
		pendingState: make(map[string][]byte),
		dirtyState:   make(map[string][]byte),
		backend:      backend,
		stateCache:   stateCache,
		changer:      changer,
	}
}

func (o *SimpleAccount) String() string {
	return fmt.Sprintf("{address: %s, dirty: %d, pending: %d}", o.Addr, len(o.dirtyState), len(o.pendingState))
}

func (o *SimpleAccount) GetAddress() common.Address {
	return o.Addr
}

// GetState Get state from local cache, if not found, then get it from DB
func (o *SimpleAccount) GetState(key []byte) (bool, []byte) {
	if value, exist := o.dirtyState[string(key)]; exist {
		o.logger.Debugf("[GetState] get from dirty, addr: %v, key: %s, state: %v", o.Addr, key, &bytesLazyLogger{bytes: value})
		return value != nil, value
	}

	if value, exist := o.pendingState[string(key)]; exist {
		o.logger.Debugf("[GetState] get from pending, addr: %v, key: %s, state: %v", o.Addr, key, &bytesLazyLogger{bytes: value})
		return value != nil, value
	}

	val := o.GetCommittedState(key)
	return val != nil, val
}

// GetCommittedState skips the uncommitted changes of the current commit.
func (o *SimpleAccount) GetCommittedState(key []byte) []byte {
	if value, exist := o.originState[string(key)]; exist {
		return value
	}

	timer := stateReadTimer()
	defer timer()

	storageKey := compositeStorageKey(o.Addr, key)
	if value, ok := o.stateCache.Get(storageKey); ok {
		o.originState[string(key)] = value
		return value
	}

	val := o.backend.Get(storageKey)
	o.logger.Debugf("[GetCommittedState] get from storage, addr: %v, key: %s, state: %v", o.Addr, key, &bytesLazyLogger{bytes: val})
	o.originState[string(key)] = val
	if val != nil {
		o.stateCache.Set(storageKey, val)
	}
	return val
}

// SetState Set account state
func (o *SimpleAccount) SetState(key []byte, value []byte) {
	prevExist := false
	var prev []byte
	if v, ok := o.dirtyState[string(key)]; ok {
		prevExist = true
		prev = v
	}
	o.changer.append(storageChange{
		account:   &o.Addr,
		key:       key,
		prevalue:  prev,
		prevExist: prevExist,
	})
	o.logger.Debugf("[SetState] addr: %v, key: %s, after state: %v", o.Addr, key, &bytesLazyLogger{bytes: value})
	o.setState(key, value)
}

func (o *SimpleAccount) setState(key []byte, value []byte) {
	o.dirtyState[string(key)] = value
}

// Finalise moves the dirty state into pending, returns the number of touched keys.
func (o *SimpleAccount) Finalise() int {
	n := len(o.dirtyState)
	for key, value := range o.dirtyState {
		o.pendingState[key] = value
	}
	o.dirtyState = make(map[string][]byte)
	return n
}

// flush writes the pending state into the batch and promotes it to origin, returns whether anything was written.
func (o *SimpleAccount) flush(batch kv.Batch, journal map[string][]byte) bool {
	written := len(o.pendingState) != 0
	for key, value := range o.pendingState {
		storageKey := compositeStorageKey(o.Addr, []byte(key))
		if value == nil {
			batch.Delete(storageKey)
			o.stateCache.Del(storageKey)
		} else {
			batch.Put(storageKey, value)
			o.stateCache.Set(storageKey, value)
		}
		journal[string(storageKey)] = value
		o.originState[key] = value
	}
	o.pendingState = make(map[string][]byte)
	return written
}

func accountKey(addr common.Address) []byte {
	return append(append([]byte{}, accountKeyPrefix...), addr.Bytes()...)
}

func compositeStorageKey(addr common.Address, key []byte) []byte {
	ret := make([]byte, 0, 1+common.AddressLength+len(key))
	ret = append(ret, storageKeyPrefix...)
	ret = append(ret, addr.Bytes()...)
	return append(ret, key...)
}
