package token

import (
	"fmt"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/axiomesh/axiom-staking/internal/executor/system/common"
	"github.com/axiomesh/axiom-staking/internal/executor/system/token/solidity/asset"
	"github.com/axiomesh/axiom-staking/pkg/repo"
)

var (
	ErrTotalSupply         = errors.New("total supply below zero")
	ErrValue               = errors.New("input value below zero")
	ErrInsufficientBalance = errors.New("value exceeds balance")
	ErrEmptyAccount        = errors.New("account is empty")
	ErrNotEnoughAllowance  = errors.New("not enough allowance")
)

const (
	NameKey        = "name"
	SymbolKey      = "symbol"
	DecimalsKey    = "decimals"
	TotalSupplyKey = "totalSupply"

	// BalancesKey is a map stores balance, mapping(address => uint256)
	BalancesKey = "balances"

	// AllowancesKey is a map stores allowance, mapping(owner => mapping(spender => uint256))
	AllowancesKey = "allowances"
)

var AssetBuildConfig = &common.SystemContractBuildConfig[*Asset]{
	Name:    "token_asset",
	Address: common.AssetContractAddr,
	AbiStr:  asset.ABI,
	Constructor: func(systemContractBase common.SystemContractBase) *Asset {
		return &Asset{
			SystemContractBase: systemContractBase,
		}
	},
}

type AllowanceKey struct {
	Owner   ethcommon.Address
	Spender ethcommon.Address
}

// Asset is the fungible asset registry custodied by the staking ledger.
type Asset struct {
	common.SystemContractBase

	name        *common.VMSlot[string]
	symbol      *common.VMSlot[string]
	decimals    *common.VMSlot[uint8]
	totalSupply *common.VMSlot[*big.Int]

	balances   *common.VMMap[ethcommon.Address, *big.Int]
	allowances *common.VMMap[AllowanceKey, *big.Int]
}

func (a *Asset) SetContext(context *common.VMContext) {
	a.SystemContractBase.SetContext(context)

	a.name = common.NewVMSlot[string](a.StateAccount, NameKey)
	a.symbol = common.NewVMSlot[string](a.StateAccount, SymbolKey)
	a.decimals = common.NewVMSlot[uint8](a.StateAccount, DecimalsKey)
	a.totalSupply = common.NewVMSlot[*big.Int](a.StateAccount, TotalSupplyKey)
	a.balances = common.NewVMMap[ethcommon.Address, *big.Int](a.StateAccount, BalancesKey, common.AddressKey)
	a.allowances = common.NewVMMap[AllowanceKey, *big.Int](a.StateAccount, AllowancesKey, func(key AllowanceKey) string {
		return fmt.Sprintf("%s_%s", key.Owner, key.Spender)
	})
}

// GenesisInit mints the total supply to the asset contract and hands out the account balances from it.
func (a *Asset) GenesisInit(genesis *repo.GenesisConfig) error {
	totalSupply, ok := new(big.Int).SetString(genesis.Asset.TotalSupply, 10)
	if !ok {
		return errors.Errorf("invalid total supply: %s", genesis.Asset.TotalSupply)
	}
	if err := a.name.Put(genesis.Asset.Name); err != nil {
		return err
	}
	if err := a.symbol.Put(genesis.Asset.Symbol); err != nil {
		return err
	}
	if err := a.decimals.Put(genesis.Asset.Decimals); err != nil {
		return err
	}
	if err := a.Mint(totalSupply); err != nil {
		return err
	}

	for _, account := range genesis.Accounts {
		balance, ok := new(big.Int).SetString(account.Balance, 10)
		if !ok {
			return errors.Errorf("invalid balance %s for account %s", account.Balance, account.Address)
		}
		if err := a.transfer(a.Address, ethcommon.HexToAddress(account.Address), balance); err != nil {
			return errors.Wrapf(err, "init balance for %s", account.Address)
		}
	}
	return nil
}

func (a *Asset) Name() (string, error) {
	return a.name.GetOrDefault("")
}

func (a *Asset) Symbol() (string, error) {
	return a.symbol.GetOrDefault("")
}

func (a *Asset) Decimals() (uint8, error) {
	return a.decimals.GetOrDefault(0)
}

func (a *Asset) TotalSupply() (*big.Int, error) {
	return a.totalSupply.GetOrDefault(big.NewInt(0))
}

func (a *Asset) BalanceOf(account ethcommon.Address) (*big.Int, error) {
	return a.balances.GetOrDefault(account, big.NewInt(0))
}

func (a *Asset) Allowance(owner, spender ethcommon.Address) (*big.Int, error) {
	return a.allowances.GetOrDefault(AllowanceKey{Owner: owner, Spender: spender}, big.NewInt(0))
}

// Mint credits the asset contract itself, only the system may call it.
func (a *Asset) Mint(amount *big.Int) error {
	if !a.Ctx.CallFromSystem {
		return errors.New("mint is only allowed from system")
	}
	if err := checkValue(amount); err != nil {
		return err
	}
	balance, err := a.BalanceOf(a.Address)
	if err != nil {
		return err
	}
	if err := a.balances.Put(a.Address, new(big.Int).Add(balance, amount)); err != nil {
		return err
	}
	totalSupply, err := a.TotalSupply()
	if err != nil {
		return err
	}
	if err := a.totalSupply.Put(new(big.Int).Add(totalSupply, amount)); err != nil {
		return err
	}
	a.EmitEvent(&asset.EventTransfer{From: ethcommon.Address{}, To: a.Address, Value: amount})
	return nil
}

func (a *Asset) Approve(spender ethcommon.Address, value *big.Int) error {
	return a.approve(a.Ctx.From, spender, value)
}

func (a *Asset) approve(owner, spender ethcommon.Address, value *big.Int) error {
	if err := checkValue(value); err != nil {
		return err
	}
	if common.IsZeroAddress(spender) {
		return ErrEmptyAccount
	}
	if err := a.allowances.Put(AllowanceKey{Owner: owner, Spender: spender}, value); err != nil {
		return err
	}
	a.EmitEvent(&asset.EventApproval{Owner: owner, Spender: spender, Value: value})
	return nil
}

func (a *Asset) Transfer(recipient ethcommon.Address, value *big.Int) error {
	return a.transfer(a.Ctx.From, recipient, value)
}

// TransferFrom moves value from sender using the allowance sender granted to the caller.
func (a *Asset) TransferFrom(sender, recipient ethcommon.Address, value *big.Int) error {
	if err := checkValue(value); err != nil {
		return err
	}
	allowance, err := a.Allowance(sender, a.Ctx.From)
	if err != nil {
		return err
	}
	if allowance.Cmp(value) < 0 {
		return ErrNotEnoughAllowance
	}

	if err := a.transfer(sender, recipient, value); err != nil {
		return err
	}

	return a.allowances.Put(AllowanceKey{Owner: sender, Spender: a.Ctx.From}, new(big.Int).Sub(allowance, value))
}

func (a *Asset) transfer(sender, recipient ethcommon.Address, value *big.Int) error {
	if err := checkValue(value); err != nil {
		return err
	}
	if common.IsZeroAddress(sender) || common.IsZeroAddress(recipient) {
		return ErrEmptyAccount
	}

	senderBalance, err := a.BalanceOf(sender)
	if err != nil {
		return err
	}
	if senderBalance.Cmp(value) < 0 {
		return ErrInsufficientBalance
	}
	if err := a.balances.Put(sender, new(big.Int).Sub(senderBalance, value)); err != nil {
		return err
	}

	recipientBalance, err := a.BalanceOf(recipient)
	if err != nil {
		return err
	}
	if err := a.balances.Put(recipient, new(big.Int).Add(recipientBalance, value)); err != nil {
		return err
	}

	a.EmitEvent(&asset.EventTransfer{From: sender, To: recipient, Value: value})
	return nil
}

func checkValue(value *big.Int) error {
	if value == nil || value.Sign() < 0 {
		return ErrValue
	}
	return nil
}
