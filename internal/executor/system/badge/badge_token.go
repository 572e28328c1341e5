package badge

import (
	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/axiomesh/axiom-staking/internal/executor/system/badge/solidity/badge_token"
	"github.com/axiomesh/axiom-staking/internal/executor/system/common"
	"github.com/axiomesh/axiom-staking/pkg/packer"
	"github.com/axiomesh/axiom-staking/pkg/repo"
)

var (
	ErrTransferRejected       = packer.NewSentinel("TransferRejected")
	ErrUnknownOwnershipRecord = packer.NewSentinel("UnknownOwnershipRecord")
	ErrUnauthorized           = packer.NewSentinel("Unauthorized")
)

const (
	BadgeName   = "Axiomesh Staking Badge"
	BadgeSymbol = "ASB"

	nameStorageKey        = "name"
	symbolStorageKey      = "symbol"
	nextTokenIDStorageKey = "nextTokenID"
	recordsStorageKey     = "records"
	balancesStorageKey    = "balances"
)

var BadgeTokenBuildConfig = &common.SystemContractBuildConfig[*BadgeToken]{
	Name:    "badge_token",
	Address: common.BadgeTokenContractAddr,
	AbiStr:  badge_token.BindingContractMetaData.ABI,
	Constructor: func(systemContractBase common.SystemContractBase) *BadgeToken {
		return &BadgeToken{
			SystemContractBase: systemContractBase,
		}
	},
}

// OwnershipRecord is kept after invalidation, only Valid flips.
type OwnershipRecord struct {
	Owner ethcommon.Address
	Valid bool
}

// BadgeToken is a registry of holder bound records that can never change owner.
type BadgeToken struct {
	common.SystemContractBase

	name        *common.VMSlot[string]
	symbol      *common.VMSlot[string]
	nextTokenID *common.VMSlot[uint64]
	records     *common.VMMap[uint64, *OwnershipRecord]
	balances    *common.VMMap[ethcommon.Address, uint64]
}

func (b *BadgeToken) SetContext(ctx *common.VMContext) {
	b.SystemContractBase.SetContext(ctx)

	b.name = common.NewVMSlot[string](b.StateAccount, nameStorageKey)
	b.symbol = common.NewVMSlot[string](b.StateAccount, symbolStorageKey)
	b.nextTokenID = common.NewVMSlot[uint64](b.StateAccount, nextTokenIDStorageKey)
	b.records = common.NewVMMap[uint64, *OwnershipRecord](b.StateAccount, recordsStorageKey, common.Uint64Key)
	b.balances = common.NewVMMap[ethcommon.Address, uint64](b.StateAccount, balancesStorageKey, common.AddressKey)
}

func (b *BadgeToken) GenesisInit(genesis *repo.GenesisConfig) error {
	if err := b.name.Put(BadgeName); err != nil {
		return err
	}
	if err := b.symbol.Put(BadgeSymbol); err != nil {
		return err
	}
	return b.nextTokenID.Put(1)
}

func (b *BadgeToken) checkMinter() error {
	if b.Ctx.CallFromSystem || b.Ctx.From == ethcommon.HexToAddress(common.BadgeIssuerContractAddr) {
		return nil
	}
	return b.Revert(&badge_token.ErrorUnauthorized{Caller: b.Ctx.From})
}

// InternalMint creates a valid record for owner under the next token id.
func (b *BadgeToken) InternalMint(owner ethcommon.Address) (uint64, error) {
	if err := b.checkMinter(); err != nil {
		return 0, err
	}
	tokenID, err := b.nextTokenID.GetOrDefault(1)
	if err != nil {
		return 0, err
	}
	if err := b.nextTokenID.Put(tokenID + 1); err != nil {
		return 0, err
	}
	if err := b.records.Put(tokenID, &OwnershipRecord{Owner: owner, Valid: true}); err != nil {
		return 0, err
	}
	balance, err := b.BalanceOf(owner)
	if err != nil {
		return 0, err
	}
	if err := b.balances.Put(owner, balance+1); err != nil {
		return 0, err
	}
	b.EmitEvent(&badge_token.EventTransfer{From: ethcommon.Address{}, To: owner, TokenId: tokenID})
	return tokenID, nil
}

// InternalInvalidate makes the record unresolvable, the token id is never handed out again.
func (b *BadgeToken) InternalInvalidate(tokenID uint64) error {
	if err := b.checkMinter(); err != nil {
		return err
	}
	owner, err := b.OwnerOf(tokenID)
	if err != nil {
		return err
	}
	if err := b.records.Put(tokenID, &OwnershipRecord{Owner: owner, Valid: false}); err != nil {
		return err
	}
	balance, err := b.BalanceOf(owner)
	if err != nil {
		return err
	}
	if err := b.balances.Put(owner, balance-1); err != nil {
		return err
	}
	b.EmitEvent(&badge_token.EventTransfer{From: owner, To: ethcommon.Address{}, TokenId: tokenID})
	return nil
}

func (b *BadgeToken) OwnerOf(tokenID uint64) (ethcommon.Address, error) {
	exist, record, err := b.records.Get(tokenID)
	if err != nil {
		return ethcommon.Address{}, err
	}
	if !exist || !record.Valid {
		return ethcommon.Address{}, b.Revert(&badge_token.ErrorUnknownOwnershipRecord{TokenId: tokenID})
	}
	return record.Owner, nil
}

// BalanceOf counts the valid records of owner.
func (b *BadgeToken) BalanceOf(owner ethcommon.Address) (uint64, error) {
	return b.balances.GetOrDefault(owner, 0)
}

// TotalMinted counts every token id ever minted, invalidated ones included.
func (b *BadgeToken) TotalMinted() (uint64, error) {
	next, err := b.nextTokenID.GetOrDefault(1)
	if err != nil {
		return 0, err
	}
	return next - 1, nil
}

func (b *BadgeToken) Name() (string, error) {
	return b.name.GetOrDefault("")
}

func (b *BadgeToken) Symbol() (string, error) {
	return b.symbol.GetOrDefault("")
}

func (b *BadgeToken) TransferFrom(from, to ethcommon.Address, tokenID uint64) error {
	return b.Revert(&badge_token.ErrorTransferRejected{})
}

func (b *BadgeToken) SafeTransferFrom(from, to ethcommon.Address, tokenID uint64, data []byte) error {
	return b.Revert(&badge_token.ErrorTransferRejected{})
}

func (b *BadgeToken) Approve(to ethcommon.Address, tokenID uint64) error {
	return b.Revert(&badge_token.ErrorTransferRejected{})
}

func (b *BadgeToken) SetApprovalForAll(operator ethcommon.Address, approved bool) error {
	return b.Revert(&badge_token.ErrorTransferRejected{})
}
