package common

import (
	"encoding/json"
	"fmt"
	"strconv"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/axiomesh/axiom-staking/internal/ledger"
)

// ErrStateNotExist is returned by MustGet when the slot or map key is absent or deleted.
var ErrStateNotExist = errors.New("state not exist")

// stored values are prefixed by a liveness byte, 0 marks a deleted value
const (
	stateDeleted byte = 0
	stateLive    byte = 1
)

func decodeState[V any](account ledger.IAccount, key []byte) (exist bool, v V, err error) {
	exist, data := account.GetState(key)
	if !exist || len(data) == 0 || data[0] == stateDeleted {
		return false, v, nil
	}
	if err := json.Unmarshal(data[1:], &v); err != nil {
		return false, v, errors.Wrapf(err, "decode state %s", key)
	}
	return true, v, nil
}

func encodeState[V any](account ledger.IAccount, key []byte, v V) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode state %s", key)
	}
	account.SetState(key, append([]byte{stateLive}, data...))
	return nil
}

func AddressKey(addr ethcommon.Address) string {
	return addr.String()
}

func Uint64Key(id uint64) string {
	return strconv.FormatUint(id, 10)
}

type VMMap[K, V any] struct {
	contractAccount ledger.IAccount
	mapName         string
	keyToString     func(key K) string
}

func NewVMMap[K, V any](contractAccount ledger.IAccount, mapName string, keyToString func(key K) string) *VMMap[K, V] {
	return &VMMap[K, V]{
		contractAccount: contractAccount,
		mapName:         mapName,
		keyToString:     keyToString,
	}
}

func (m *VMMap[K, V]) stateKey(key K) []byte {
	return []byte(fmt.Sprintf("%s_%s", m.mapName, m.keyToString(key)))
}

func (m *VMMap[K, V]) Get(k K) (exist bool, v V, err error) {
	return decodeState[V](m.contractAccount, m.stateKey(k))
}

func (m *VMMap[K, V]) MustGet(k K) (v V, err error) {
	exist, v, err := m.Get(k)
	if err != nil {
		return v, err
	}
	if !exist {
		return v, errors.Wrapf(ErrStateNotExist, "system contract[%s] map[%s] key[%s]", m.contractAccount.GetAddress().String(), m.mapName, m.keyToString(k))
	}
	return v, nil
}

// GetOrDefault returns def when the key is absent.
func (m *VMMap[K, V]) GetOrDefault(k K, def V) (V, error) {
	exist, v, err := m.Get(k)
	if err != nil {
		return v, err
	}
	if !exist {
		return def, nil
	}
	return v, nil
}

func (m *VMMap[K, V]) Has(k K) bool {
	exist, data := m.contractAccount.GetState(m.stateKey(k))
	return exist && len(data) != 0 && data[0] != stateDeleted
}

func (m *VMMap[K, V]) Put(k K, v V) error {
	return encodeState(m.contractAccount, m.stateKey(k), v)
}

func (m *VMMap[K, V]) Delete(k K) error {
	m.contractAccount.SetState(m.stateKey(k), []byte{stateDeleted})
	return nil
}

type VMSlot[V any] struct {
	contractAccount ledger.IAccount
	slotName        string
}

func NewVMSlot[V any](contractAccount ledger.IAccount, slotName string) *VMSlot[V] {
	return &VMSlot[V]{
		contractAccount: contractAccount,
		slotName:        slotName,
	}
}

func (s *VMSlot[V]) stateKey() []byte {
	return []byte(s.slotName)
}

func (s *VMSlot[V]) Get() (exist bool, v V, err error) {
	return decodeState[V](s.contractAccount, s.stateKey())
}

func (s *VMSlot[V]) MustGet() (v V, err error) {
	exist, v, err := s.Get()
	if err != nil {
		return v, err
	}
	if !exist {
		return v, errors.Wrapf(ErrStateNotExist, "system contract[%s] slot[%s]", s.contractAccount.GetAddress().String(), s.slotName)
	}
	return v, nil
}

// GetOrDefault returns def when the slot was never written.
func (s *VMSlot[V]) GetOrDefault(def V) (V, error) {
	exist, v, err := s.Get()
	if err != nil {
		return v, err
	}
	if !exist {
		return def, nil
	}
	return v, nil
}

func (s *VMSlot[V]) Has() bool {
	exist, data := s.contractAccount.GetState(s.stateKey())
	return exist && len(data) != 0 && data[0] != stateDeleted
}

func (s *VMSlot[V]) Put(v V) error {
	return encodeState(s.contractAccount, s.stateKey(), v)
}

func (s *VMSlot[V]) Delete() error {
	s.contractAccount.SetState(s.stateKey(), []byte{stateDeleted})
	return nil
}
