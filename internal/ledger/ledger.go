package ledger

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/axiomesh/axiom-kit/storage/kv"
	"github.com/axiomesh/axiom-staking/internal/storagemgr"
	"github.com/axiomesh/axiom-staking/pkg/repo"
)

// IAccount is the contract storage view handed to system contracts.
type IAccount interface {
	GetAddress() common.Address

	GetState(key []byte) (bool, []byte)

	GetCommittedState(key []byte) []byte

	SetState(key []byte, value []byte)
}

type StateLedger interface {
	// GetOrCreateAccount returns the account, creating an empty one when absent
	GetOrCreateAccount(addr common.Address) IAccount

	// GetAccount returns nil if the account was never written
	GetAccount(addr common.Address) IAccount

	// Snapshot returns an identifier for the current journal position
	Snapshot() int

	// RevertToSnapshot undoes every change made after the snapshot was taken
	RevertToSnapshot(snapshot int)

	// Finalise seals the changes of the current transaction, they can no longer be reverted
	Finalise()

	// Commit writes the finalised changes to storage and returns the new version and state root
	Commit() (uint64, common.Hash, error)

	// Version returns the number of commits applied so far
	Version() uint64

	// StateRoot returns the root of the latest commit
	StateRoot() common.Hash

	// Close release resource
	Close()
}

type Ledger struct {
	StateLedger StateLedger
}

func NewLedger(rep *repo.Repo) (*Ledger, error) {
	s, err := storagemgr.Open(storagemgr.GetLedgerComponentPath(rep, storagemgr.Ledger))
	if err != nil {
		return nil, errors.Wrap(err, "create state storage")
	}
	return newLedger(s)
}

// NewMemory returns a ledger backed by an in memory kv store, for tests and dry runs.
func NewMemory(rep *repo.Repo) (*Ledger, error) {
	s, err := storagemgr.OpenSpecifyType(repo.KVStorageTypeMemory, storagemgr.GetLedgerComponentPath(rep, storagemgr.Ledger))
	if err != nil {
		return nil, errors.Wrap(err, "create memory state storage")
	}
	return newLedger(s)
}

func newLedger(s kv.Storage) (*Ledger, error) {
	stateLedger, err := NewStateLedger(s)
	if err != nil {
		return nil, err
	}
	return &Ledger{StateLedger: stateLedger}, nil
}

func (l *Ledger) Close() {
	l.StateLedger.Close()
}
