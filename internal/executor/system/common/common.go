package common

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	ethcommon "github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/axiom-staking/internal/ledger"
	"github.com/axiomesh/axiom-staking/pkg/loggers"
	"github.com/axiomesh/axiom-staking/pkg/packer"
	"github.com/axiomesh/axiom-staking/pkg/repo"
)

const (
	// ZeroAddress is a special address, no one has control
	ZeroAddress = "0x0000000000000000000000000000000000000000"

	// system contract address range 0x1000-0xffff, start from 1000, avoid conflicts with precompiled contracts
	// SystemContractStartAddr is the start address of system contract
	SystemContractStartAddr = "0x0000000000000000000000000000000000001000"

	// AssetContractAddr is the custodied fungible asset
	AssetContractAddr = "0x0000000000000000000000000000000000001000"

	// StakingContractAddr holds the stake entries and the custodied balance
	StakingContractAddr = "0x0000000000000000000000000000000000001001"

	// BadgeTokenContractAddr is the non-transferable badge registry
	BadgeTokenContractAddr = "0x0000000000000000000000000000000000001002"

	// BadgeIssuerContractAddr keeps the per holder streak records
	BadgeIssuerContractAddr = "0x0000000000000000000000000000000000001003"

	// SystemContractEndAddr is the end address of system contract
	SystemContractEndAddr = "0x000000000000000000000000000000000000ffff"
)

var (
	AddressType, _ = abi.NewType("address", "", nil)
	StringType, _  = abi.NewType("string", "", nil)
)

type VMContext struct {
	StateLedger ledger.StateLedger

	// From is the caller of the current call frame
	From ethcommon.Address

	// Timestamp is the unix second clock reading of the transaction, fixed for its whole run
	Timestamp uint64

	CallFromSystem bool

	// Logs collects the events of the transaction in emission order
	Logs *[]*ethtypes.Log
}

func NewVMContext(stateLedger ledger.StateLedger, from ethcommon.Address, timestamp uint64) *VMContext {
	return &VMContext{
		StateLedger: stateLedger,
		From:        from,
		Timestamp:   timestamp,
		Logs:        &[]*ethtypes.Log{},
	}
}

// NewVMContextBySystem is used for genesis and maintenance writes which bypass caller checks.
func NewVMContextBySystem(stateLedger ledger.StateLedger, timestamp uint64) *VMContext {
	ctx := NewVMContext(stateLedger, ethcommon.HexToAddress(ZeroAddress), timestamp)
	ctx.CallFromSystem = true
	return ctx
}

// SystemContract must be implemented by all system contract
type SystemContract interface {
	SetContext(*VMContext)

	GenesisInit(genesis *repo.GenesisConfig) error
}

type SystemContractBase struct {
	Logger       logrus.FieldLogger
	Ctx          *VMContext
	Address      ethcommon.Address
	StateAccount ledger.IAccount
	Abi          *abi.ABI
}

func (s *SystemContractBase) SetContext(ctx *VMContext) {
	s.Ctx = ctx
	s.StateAccount = ctx.StateLedger.GetOrCreateAccount(s.Address)
}

// CrossCallSystemContractContext returns the context for calling another system contract, the callee sees this contract as caller.
func (s *SystemContractBase) CrossCallSystemContractContext() *VMContext {
	return &VMContext{
		StateLedger:    s.Ctx.StateLedger,
		From:           s.Address,
		Timestamp:      s.Ctx.Timestamp,
		CallFromSystem: s.Ctx.CallFromSystem,
		Logs:           s.Ctx.Logs,
	}
}

func (s *SystemContractBase) EmitEvent(event packer.Event) {
	log, err := event.Pack(*s.Abi)
	if err != nil {
		s.Logger.WithField("err", err).Error("pack event failed")
		return
	}
	log.Address = s.Address
	if s.Ctx.Logs == nil {
		s.Ctx.Logs = &[]*ethtypes.Log{}
	}
	log.Index = uint(len(*s.Ctx.Logs))
	*s.Ctx.Logs = append(*s.Ctx.Logs, log)
}

func (s *SystemContractBase) Revert(err packer.Error) error {
	return err.Pack(*s.Abi)
}

type SystemContractBuildConfig[T SystemContract] struct {
	Name        string
	Address     string
	AbiStr      string
	Constructor func(systemContractBase SystemContractBase) T

	once       sync.Once
	abi        *abi.ABI
	abiErr     error
	ethAddress ethcommon.Address
}

func (m *SystemContractBuildConfig[T]) init() {
	m.once.Do(func() {
		m.ethAddress = ethcommon.HexToAddress(m.Address)
		contractABI, err := abi.JSON(strings.NewReader(m.AbiStr))
		if err != nil {
			m.abiErr = err
			return
		}
		m.abi = &contractABI
	})
}

func (m *SystemContractBuildConfig[T]) GetABI() (*abi.ABI, error) {
	m.init()
	return m.abi, m.abiErr
}

func (m *SystemContractBuildConfig[T]) EthAddress() ethcommon.Address {
	m.init()
	return m.ethAddress
}

// Build constructs the contract bound to ctx, a nil ctx leaves it unbound until SetContext.
func (m *SystemContractBuildConfig[T]) Build(ctx *VMContext) T {
	m.init()
	if m.abiErr != nil {
		panic(m.abiErr)
	}
	contract := m.Constructor(SystemContractBase{
		Logger:  loggers.Logger(loggers.SystemContract).WithField("contract", m.Name),
		Address: m.ethAddress,
		Abi:     m.abi,
	})
	if ctx != nil {
		contract.SetContext(ctx)
	}
	return contract
}

func NewRevertError(name string, inputs abi.Arguments, args []any) error {
	abiErr := abi.NewError(name, inputs)
	selector := ethcommon.CopyBytes(abiErr.ID.Bytes()[:4])
	packed, err := inputs.Pack(args...)
	if err != nil {
		return err
	}
	return &packer.RevertError{
		Err:  vm.ErrExecutionReverted,
		Name: name,
		Data: append(selector, packed...),
		Str:  abiErr.String(),
	}
}

func IsZeroAddress(addr ethcommon.Address) bool {
	return addr == ethcommon.Address{}
}

func IsSystemContract(addr ethcommon.Address) bool {
	return addr.Big().Cmp(ethcommon.HexToAddress(SystemContractStartAddr).Big()) >= 0 &&
		addr.Big().Cmp(ethcommon.HexToAddress(SystemContractEndAddr).Big()) <= 0
}
