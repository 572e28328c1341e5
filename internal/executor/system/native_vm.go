package system

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/axiom-staking/internal/executor/system/badge"
	"github.com/axiomesh/axiom-staking/internal/executor/system/common"
	"github.com/axiomesh/axiom-staking/internal/executor/system/staking"
	"github.com/axiomesh/axiom-staking/internal/executor/system/token"
	"github.com/axiomesh/axiom-staking/internal/ledger"
	"github.com/axiomesh/axiom-staking/pkg/loggers"
	"github.com/axiomesh/axiom-staking/pkg/repo"
)

var (
	ErrNotExistSystemContract         = errors.New("not exist this system contract")
	ErrNotExistMethodName             = errors.New("not exist method name of this system contract")
	ErrNotImplementFuncSystemContract = errors.New("not implement the function for this system contract")
)

type deployedContract struct {
	abi      *abi.ABI
	instance common.SystemContract
}

// NativeVM routes abi encoded calls to the deployed system contracts.
type NativeVM struct {
	logger logrus.FieldLogger

	// deploy order, genesis runs in the same order
	addrs     []ethcommon.Address
	contracts map[ethcommon.Address]*deployedContract

	Asset   *token.Asset
	Staking *staking.StakingContract

	// nil when badges are disabled
	BadgeToken *badge.BadgeToken
	Issuer     *badge.Issuer
}

func New(genesis *repo.GenesisConfig) *NativeVM {
	nvm := &NativeVM{
		logger:    loggers.Logger(loggers.SystemContract),
		contracts: make(map[ethcommon.Address]*deployedContract),
		Asset:     token.AssetBuildConfig.Build(nil),
		Staking:   staking.StakingBuildConfig.Build(nil),
	}
	deploy(nvm, token.AssetBuildConfig, nvm.Asset)
	deploy(nvm, staking.StakingBuildConfig, nvm.Staking)

	if genesis.Staking.EnableBadge {
		nvm.BadgeToken = badge.BadgeTokenBuildConfig.Build(nil)
		nvm.Issuer = badge.IssuerBuildConfig.Build(nil)
		deploy(nvm, badge.BadgeTokenBuildConfig, nvm.BadgeToken)
		deploy(nvm, badge.IssuerBuildConfig, nvm.Issuer)
	}
	return nvm
}

func deploy[T common.SystemContract](nvm *NativeVM, cfg *common.SystemContractBuildConfig[T], instance T) {
	contractABI, err := cfg.GetABI()
	if err != nil {
		panic(err)
	}
	nvm.Deploy(cfg.EthAddress(), contractABI, instance)
}

func (nvm *NativeVM) Deploy(addr ethcommon.Address, contractABI *abi.ABI, instance common.SystemContract) {
	if !common.IsSystemContract(addr) {
		panic(fmt.Sprintf("this system contract %s is out of range", addr))
	}
	if _, ok := nvm.contracts[addr]; ok {
		panic("deploy system contract repeated")
	}
	nvm.addrs = append(nvm.addrs, addr)
	nvm.contracts[addr] = &deployedContract{abi: contractABI, instance: instance}
}

// InitGenesisData runs GenesisInit of every deployed contract as system.
func (nvm *NativeVM) InitGenesisData(genesis *repo.GenesisConfig, lg ledger.StateLedger, timestamp uint64) error {
	for _, addr := range nvm.addrs {
		contract := nvm.contracts[addr].instance
		contract.SetContext(common.NewVMContextBySystem(lg, timestamp))
		if err := contract.GenesisInit(genesis); err != nil {
			return errors.Wrapf(err, "genesis init system contract %s", addr)
		}
	}
	return nil
}

func (nvm *NativeVM) IsSystemContract(addr ethcommon.Address) bool {
	_, ok := nvm.contracts[addr]
	return ok
}

func (nvm *NativeVM) GetContractInstance(addr ethcommon.Address) common.SystemContract {
	contract, ok := nvm.contracts[addr]
	if !ok {
		return nil
	}
	return contract.instance
}

func (nvm *NativeVM) GetContractABI(addr ethcommon.Address) (*abi.ABI, error) {
	contract, ok := nvm.contracts[addr]
	if !ok {
		return nil, ErrNotExistSystemContract
	}
	return contract.abi, nil
}

// Run decodes data with the abi of the contract at to, calls the method bound to ctx and packs its outputs.
func (nvm *NativeVM) Run(ctx *common.VMContext, to ethcommon.Address, data []byte) (execResult []byte, execErr error) {
	defer func() {
		if err := recover(); err != nil {
			nvm.logger.Error(err)
			execErr = fmt.Errorf("%s", err)
		}
	}()

	contract, ok := nvm.contracts[to]
	if !ok {
		return nil, ErrNotExistSystemContract
	}
	method, err := nvm.getMethod(contract.abi, data)
	if err != nil {
		return nil, err
	}

	contract.instance.SetContext(ctx)

	// method name may be stake, but we implement Stake
	funcName := method.RawName
	if len(funcName) >= 1 {
		funcName = fmt.Sprintf("%s%s", strings.ToUpper(funcName[:1]), funcName[1:])
	}
	nvm.logger.Debugf("run system contract method name: %s", funcName)
	fn := reflect.ValueOf(contract.instance).MethodByName(funcName)
	if !fn.IsValid() {
		return nil, ErrNotImplementFuncSystemContract
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, errors.Wrapf(err, "unpack args of %s", method.RawName)
	}
	inputs := make([]reflect.Value, 0, len(args))
	for _, arg := range args {
		inputs = append(inputs, reflect.ValueOf(arg))
	}
	// maybe panic when inputs mismatch, but we recover
	results := fn.Call(inputs)

	var returnRes []any
	var returnErr error
	for _, result := range results {
		if isNilable(result.Kind()) && result.IsNil() {
			continue
		}
		if err, ok := result.Interface().(error); ok {
			returnErr = err
			break
		}
		returnRes = append(returnRes, result.Interface())
	}

	nvm.logger.Debugf("Contract addr: %s, method name: %s, return result: %+v, return error: %v", to, method.RawName, returnRes, returnErr)

	if returnErr != nil {
		return nil, returnErr
	}
	if len(method.Outputs) == 0 {
		return nil, nil
	}
	return method.Outputs.Pack(returnRes...)
}

func isNilable(kind reflect.Kind) bool {
	switch kind {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return true
	default:
		return false
	}
}

// getMethod looks the method up by the 4 byte selector.
func (nvm *NativeVM) getMethod(contractABI *abi.ABI, data []byte) (*abi.Method, error) {
	if len(data) < 4 {
		return nil, ErrNotExistMethodName
	}
	method, err := contractABI.MethodById(data[:4])
	if err != nil {
		return nil, errors.Wrap(ErrNotExistMethodName, err.Error())
	}
	return method, nil
}

// UnpackOutputArgs unpack the output arguments by method name
func (nvm *NativeVM) UnpackOutputArgs(addr ethcommon.Address, methodName string, packed []byte) ([]any, error) {
	contract, ok := nvm.contracts[addr]
	if !ok {
		return nil, ErrNotExistSystemContract
	}
	method, ok := contract.abi.Methods[methodName]
	if !ok {
		return nil, errors.Wrapf(ErrNotExistMethodName, "system contract abi: could not locate named method: %s", methodName)
	}
	return method.Outputs.Unpack(packed)
}
