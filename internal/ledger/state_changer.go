package ledger

import (
	"github.com/ethereum/go-ethereum/common"
)

type stateChange interface {
	// revert undoes the state changes by this entry
	revert(*StateLedgerImpl)

	// dirted returns the address modified by this state entry
	dirtied() *common.Address
}

type stateChanger struct {
	changes []stateChange
	dirties map[common.Address]int // dirty address and the number of changes
}

func newChanger() *stateChanger {
	return &stateChanger{
		dirties: make(map[common.Address]int),
	}
}

func (s *stateChanger) append(change stateChange) {
	s.changes = append(s.changes, change)
	if addr := change.dirtied(); addr != nil {
		s.dirties[*addr]++
	}
}

func (s *stateChanger) revert(ledger *StateLedgerImpl, snapshot int) {
	for i := len(s.changes) - 1; i >= snapshot; i-- {
		s.changes[i].revert(ledger)

		if addr := s.changes[i].dirtied(); addr != nil {
			if s.dirties[*addr]--; s.dirties[*addr] == 0 {
				delete(s.dirties, *addr)
			}
		}
	}

	s.changes = s.changes[:snapshot]
}

func (s *stateChanger) length() int {
	return len(s.changes)
}

func (s *stateChanger) reset() {
	s.changes = []stateChange{}
	s.dirties = make(map[common.Address]int)
}

type (
	createObjectChange struct {
		account *common.Address
	}

	storageChange struct {
		account       *common.Address
		key, prevalue []byte
		prevExist     bool
	}
)

func (ch createObjectChange) revert(l *StateLedgerImpl) {
	delete(l.accounts, *ch.account)
}

func (ch createObjectChange) dirtied() *common.Address {
	return ch.account
}

func (ch storageChange) revert(l *StateLedgerImpl) {
	acc, ok := l.accounts[*ch.account]
	if !ok {
		return
	}
	if ch.prevExist {
		acc.setState(ch.key, ch.prevalue)
	} else {
		delete(acc.dirtyState, string(ch.key))
	}
}

func (ch storageChange) dirtied() *common.Address {
	return ch.account
}
