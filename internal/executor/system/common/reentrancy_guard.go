package common

import (
	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/axiomesh/axiom-staking/pkg/packer"
)

var ErrReentrantCall = packer.NewSentinel("ReentrancyGuardReentrantCall")

// ReentrancyGuard rejects a call into a contract while another of its operations is still running,
// e.g. an asset hook calling back into the staking ledger during custody.
type ReentrancyGuard struct {
	holder string
}

func NewReentrancyGuard() *ReentrancyGuard {
	return &ReentrancyGuard{}
}

// Enter takes the guard for operation, the caller must defer the returned release.
func (rg *ReentrancyGuard) Enter(operation string) (release func(), err error) {
	if rg.holder != "" {
		return nil, ReentrancyGuardReentrantCall(rg.holder)
	}
	rg.holder = operation
	return func() {
		rg.holder = ""
	}, nil
}

// Holder returns the operation holding the guard, empty when free.
func (rg *ReentrancyGuard) Holder() string {
	return rg.holder
}

func ReentrancyGuardReentrantCall(holder string) error {
	return NewRevertError("ReentrancyGuardReentrantCall", abi.Arguments{{Name: "holder", Type: StringType}}, []any{holder})
}
