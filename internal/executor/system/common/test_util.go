package common

import (
	"testing"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"

	"github.com/axiomesh/axiom-staking/internal/ledger"
	"github.com/axiomesh/axiom-staking/pkg/repo"
)

// TestNVM runs contract calls against an in memory ledger with a manual clock.
type TestNVM struct {
	t           testing.TB
	Rep         *repo.Repo
	Ledger      *ledger.Ledger
	StateLedger ledger.StateLedger

	// Now is the unix second timestamp handed to the next transaction
	Now uint64

	// Logs holds the events of the last successful RunSingleTX
	Logs []*ethtypes.Log
}

func NewTestNVM(t testing.TB) *TestNVM {
	rep := repo.MockRepo(t)
	lg, err := ledger.NewMemory(rep)
	assert.Nil(t, err)
	return &TestNVM{
		t:           t,
		Rep:         rep,
		Ledger:      lg,
		StateLedger: lg.StateLedger,
		Now:         uint64(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Unix()),
	}
}

func (nvm *TestNVM) GenesisInit(contracts ...SystemContract) {
	for _, contract := range contracts {
		contract.SetContext(NewVMContextBySystem(nvm.StateLedger, nvm.Now))
		err := contract.GenesisInit(nvm.Rep.GenesisConfig)
		assert.Nil(nvm.t, err)
	}
	nvm.StateLedger.Finalise()
}

func (nvm *TestNVM) AdvanceTime(d time.Duration) {
	nvm.Now += uint64(d / time.Second)
}

type TestNVMRunOption func(ctx *VMContext)

func TestNVMRunOptionCallFromSystem() TestNVMRunOption {
	return func(ctx *VMContext) {
		ctx.CallFromSystem = true
	}
}

// RunSingleTX reverts every change when executor fails, otherwise finalises them.
func (nvm *TestNVM) RunSingleTX(contract SystemContract, from ethcommon.Address, executor func() error, opts ...TestNVMRunOption) {
	snapshot := nvm.StateLedger.Snapshot()
	ctx := NewVMContext(nvm.StateLedger, from, nvm.Now)
	for _, opt := range opts {
		opt(ctx)
	}
	contract.SetContext(ctx)
	if err := executor(); err != nil {
		nvm.StateLedger.RevertToSnapshot(snapshot)
		return
	}
	nvm.Logs = *ctx.Logs
	nvm.StateLedger.Finalise()
}

// Call never keeps the changes made by executor.
func (nvm *TestNVM) Call(contract SystemContract, from ethcommon.Address, executor func()) {
	snapshot := nvm.StateLedger.Snapshot()
	contract.SetContext(NewVMContext(nvm.StateLedger, from, nvm.Now))
	executor()
	nvm.StateLedger.RevertToSnapshot(snapshot)
}
