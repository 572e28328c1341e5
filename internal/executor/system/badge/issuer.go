package badge

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/axiom-staking/internal/executor/system/badge/solidity/badge_issuer"
	"github.com/axiomesh/axiom-staking/internal/executor/system/common"
	"github.com/axiomesh/axiom-staking/internal/executor/system/staking"
	"github.com/axiomesh/axiom-staking/pkg/repo"
)

const badgesStorageKey = "badges"

var IssuerBuildConfig = &common.SystemContractBuildConfig[*Issuer]{
	Name:    "badge_issuer",
	Address: common.BadgeIssuerContractAddr,
	AbiStr:  badge_issuer.BindingContractMetaData.ABI,
	Constructor: func(systemContractBase common.SystemContractBase) *Issuer {
		return &Issuer{
			SystemContractBase: systemContractBase,
			ledger:             staking.StakingBuildConfig.Build(nil),
			registry:           BadgeTokenBuildConfig.Build(nil),
		}
	},
}

type BadgeRecord struct {
	Level       uint64
	StreakCount uint64
	OwnerToken  uint64
}

// Issuer forwards stake calls to the staking ledger and keeps one valid badge per caller.
type Issuer struct {
	common.SystemContractBase

	ledger   *staking.StakingContract
	registry *BadgeToken

	badges *common.VMMap[ethcommon.Address, *BadgeRecord]
}

// SetContext binds the ledger to the same caller, the registry sees the issuer as caller.
func (i *Issuer) SetContext(ctx *common.VMContext) {
	i.SystemContractBase.SetContext(ctx)
	i.ledger.SetContext(ctx)
	i.registry.SetContext(i.CrossCallSystemContractContext())

	i.badges = common.NewVMMap[ethcommon.Address, *BadgeRecord](i.StateAccount, badgesStorageKey, common.AddressKey)
}

// GenesisInit has nothing to store, the ledger and registry are initialised as contracts of their own.
func (i *Issuer) GenesisInit(genesis *repo.GenesisConfig) error {
	return nil
}

// Ledger returns the wrapped staking ledger, bound to the current context.
func (i *Issuer) Ledger() *staking.StakingContract {
	return i.ledger
}

func (i *Issuer) Registry() *BadgeToken {
	return i.registry
}

func (i *Issuer) Stake(amount *big.Int, data []byte) (uint64, error) {
	stakeID, err := i.ledger.Stake(amount, data)
	if err != nil {
		return 0, err
	}
	if err := i.issue(i.Ctx.From); err != nil {
		return 0, err
	}
	return stakeID, nil
}

// StakeFor credits beneficiary with the stake, the badge goes to the caller.
func (i *Issuer) StakeFor(beneficiary ethcommon.Address, amount *big.Int, data []byte) (uint64, error) {
	stakeID, err := i.ledger.StakeFor(beneficiary, amount, data)
	if err != nil {
		return 0, err
	}
	if err := i.issue(i.Ctx.From); err != nil {
		return 0, err
	}
	return stakeID, nil
}

// Unstake leaves the badge untouched, a streak is never reset.
func (i *Issuer) Unstake(stakeID uint64, data []byte) error {
	return i.ledger.Unstake(stakeID, data)
}

func (i *Issuer) UnstakeNext(amount *big.Int, data []byte) error {
	return i.ledger.UnstakeNext(amount, data)
}

func (i *Issuer) issue(holder ethcommon.Address) error {
	exist, prev, err := i.badges.Get(holder)
	if err != nil {
		return err
	}
	level := uint64(1)
	if exist {
		level = prev.Level + 1
	}

	tokenID, err := i.registry.InternalMint(holder)
	if err != nil {
		return err
	}
	if exist {
		if err := i.registry.InternalInvalidate(prev.OwnerToken); err != nil {
			return err
		}
	}
	if err := i.badges.Put(holder, &BadgeRecord{
		Level:       level,
		StreakCount: level,
		OwnerToken:  tokenID,
	}); err != nil {
		return err
	}

	i.EmitEvent(&badge_issuer.EventBadgeIssued{Holder: holder, TokenId: tokenID, Level: level})
	i.Logger.WithFields(logrus.Fields{
		"holder":   holder,
		"token_id": tokenID,
		"level":    level,
	}).Debug("badge issued")
	return nil
}

// GetBadge returns zero level and streak for a holder that never staked through the issuer.
func (i *Issuer) GetBadge(holder ethcommon.Address) (level uint64, streakCount uint64, err error) {
	record, err := i.badges.GetOrDefault(holder, &BadgeRecord{})
	if err != nil {
		return 0, 0, err
	}
	return record.Level, record.StreakCount, nil
}

// GetBadgeRecord reports false when the holder has no badge.
func (i *Issuer) GetBadgeRecord(holder ethcommon.Address) (bool, *BadgeRecord, error) {
	return i.badges.Get(holder)
}

func (i *Issuer) GetTotalBadges() (uint64, error) {
	return i.registry.TotalMinted()
}

func (i *Issuer) OwnerOf(tokenID uint64) (ethcommon.Address, error) {
	return i.registry.OwnerOf(tokenID)
}
