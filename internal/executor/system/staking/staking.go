package staking

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/axiom-staking/internal/executor/system/common"
	"github.com/axiomesh/axiom-staking/internal/executor/system/custody"
	"github.com/axiomesh/axiom-staking/internal/executor/system/staking/solidity/staking_ledger"
	"github.com/axiomesh/axiom-staking/pkg/packer"
	"github.com/axiomesh/axiom-staking/pkg/repo"
)

var (
	ErrInvalidAmount  = packer.NewSentinel("InvalidAmount")
	ErrUnknownStake   = packer.NewSentinel("UnknownStake")
	ErrNotBeneficiary = packer.NewSentinel("NotBeneficiary")
	ErrStillLocked    = packer.NewSentinel("StillLocked")
	ErrAmountMismatch = packer.NewSentinel("AmountMismatch")
)

const (
	lockDurationStorageKey   = "lockDuration"
	assetStorageKey          = "asset"
	nextStakeIDStorageKey    = "nextStakeID"
	totalStakedStorageKey    = "totalStaked"
	totalStakedForStorageKey = "totalStakedFor"
	stakesStorageKey         = "stakes"

	// personalStakesStorageKey maps a beneficiary to its active stake ids in creation order
	personalStakesStorageKey = "personalStakes"
)

var StakingBuildConfig = &common.SystemContractBuildConfig[*StakingContract]{
	Name:    "staking_ledger",
	Address: common.StakingContractAddr,
	AbiStr:  staking_ledger.BindingContractMetaData.ABI,
	Constructor: func(systemContractBase common.SystemContractBase) *StakingContract {
		return &StakingContract{
			SystemContractBase: systemContractBase,
			guard:              common.NewReentrancyGuard(),
			custodyBuilder: func(ctx *common.VMContext, handle ethcommon.Address) custody.Adapter {
				return custody.NewTokenCustody(ctx, handle)
			},
		}
	},
}

type StakeEntry struct {
	ID         uint64   `json:"id" abi:"id"`
	UnlockTime uint64   `json:"unlock_time" abi:"unlockTime"`
	Amount     *big.Int `json:"amount" abi:"amount"`

	// Beneficiary is credited with the amount, Funder paid it
	Beneficiary ethcommon.Address `json:"beneficiary" abi:"beneficiary"`
	Funder      ethcommon.Address `json:"funder" abi:"funder"`
}

// StakingContract custodies one asset and records time locked stakes against it.
type StakingContract struct {
	common.SystemContractBase

	guard          *common.ReentrancyGuard
	custodyBuilder func(ctx *common.VMContext, handle ethcommon.Address) custody.Adapter

	lockDuration   *common.VMSlot[uint64]
	asset          *common.VMSlot[ethcommon.Address]
	nextStakeID    *common.VMSlot[uint64]
	totalStaked    *common.VMSlot[*big.Int]
	totalStakedFor *common.VMMap[ethcommon.Address, *big.Int]
	stakes         *common.VMMap[uint64, *StakeEntry]
	personalStakes *common.VMMap[ethcommon.Address, []uint64]
}

func (s *StakingContract) SetContext(ctx *common.VMContext) {
	s.SystemContractBase.SetContext(ctx)

	s.lockDuration = common.NewVMSlot[uint64](s.StateAccount, lockDurationStorageKey)
	s.asset = common.NewVMSlot[ethcommon.Address](s.StateAccount, assetStorageKey)
	s.nextStakeID = common.NewVMSlot[uint64](s.StateAccount, nextStakeIDStorageKey)
	s.totalStaked = common.NewVMSlot[*big.Int](s.StateAccount, totalStakedStorageKey)
	s.totalStakedFor = common.NewVMMap[ethcommon.Address, *big.Int](s.StateAccount, totalStakedForStorageKey, common.AddressKey)
	s.stakes = common.NewVMMap[uint64, *StakeEntry](s.StateAccount, stakesStorageKey, common.Uint64Key)
	s.personalStakes = common.NewVMMap[ethcommon.Address, []uint64](s.StateAccount, personalStakesStorageKey, common.AddressKey)
}

// SetCustodyBuilder replaces how the contract reaches the custodied asset.
func (s *StakingContract) SetCustodyBuilder(builder func(ctx *common.VMContext, handle ethcommon.Address) custody.Adapter) {
	s.custodyBuilder = builder
}

func (s *StakingContract) GenesisInit(genesis *repo.GenesisConfig) error {
	lockDuration := genesis.Staking.LockDuration.ToDuration()
	if lockDuration < 0 {
		return errors.Errorf("invalid lock duration: %s", lockDuration)
	}
	if err := s.lockDuration.Put(uint64(lockDuration.Seconds())); err != nil {
		return err
	}
	if err := s.asset.Put(ethcommon.HexToAddress(common.AssetContractAddr)); err != nil {
		return err
	}
	if err := s.nextStakeID.Put(1); err != nil {
		return err
	}
	return s.totalStaked.Put(big.NewInt(0))
}

func (s *StakingContract) custody() (custody.Adapter, error) {
	handle, err := s.asset.MustGet()
	if err != nil {
		return nil, errors.Wrap(err, "staking asset not initialized")
	}
	return s.custodyBuilder(s.CrossCallSystemContractContext(), handle), nil
}

// Stake locks amount of the caller for the caller.
func (s *StakingContract) Stake(amount *big.Int, data []byte) (uint64, error) {
	return s.StakeFor(s.Ctx.From, amount, data)
}

// StakeFor locks amount of the caller on behalf of beneficiary and returns the new stake id.
func (s *StakingContract) StakeFor(beneficiary ethcommon.Address, amount *big.Int, data []byte) (uint64, error) {
	release, err := s.guard.Enter("stakeFor")
	if err != nil {
		return 0, err
	}
	defer release()

	if amount == nil || amount.Sign() <= 0 {
		return 0, s.Revert(&staking_ledger.ErrorInvalidAmount{Amount: lo.Ternary(amount == nil, big.NewInt(0), amount)})
	}

	c, err := s.custody()
	if err != nil {
		return 0, err
	}
	if err := c.Pull(s.Ctx.From, amount); err != nil {
		return 0, packer.WithCause(s.Revert(&staking_ledger.ErrorInvalidAmount{Amount: amount}), err)
	}

	stakeID, err := s.nextStakeID.MustGet()
	if err != nil {
		return 0, err
	}
	if err := s.nextStakeID.Put(stakeID + 1); err != nil {
		return 0, err
	}
	lockDuration, err := s.lockDuration.MustGet()
	if err != nil {
		return 0, err
	}

	entry := &StakeEntry{
		ID:          stakeID,
		UnlockTime:  s.Ctx.Timestamp + lockDuration,
		Amount:      new(big.Int).Set(amount),
		Beneficiary: beneficiary,
		Funder:      s.Ctx.From,
	}
	if err := s.stakes.Put(stakeID, entry); err != nil {
		return 0, err
	}
	ids, err := s.personalStakes.GetOrDefault(beneficiary, nil)
	if err != nil {
		return 0, err
	}
	if err := s.personalStakes.Put(beneficiary, append(ids, stakeID)); err != nil {
		return 0, err
	}

	total, err := s.addTotal(beneficiary, amount)
	if err != nil {
		return 0, err
	}

	s.EmitEvent(&staking_ledger.EventStaked{
		User:   beneficiary,
		Amount: amount,
		Total:  total,
		Data:   data,
	})
	stakeCounter.Inc()
	s.Logger.WithFields(logrus.Fields{
		"id":          stakeID,
		"funder":      entry.Funder,
		"beneficiary": beneficiary,
		"amount":      amount,
		"unlock_time": entry.UnlockTime,
	}).Debug("stake created")
	return stakeID, nil
}

// Unstake releases the stake to its beneficiary once unlocked.
func (s *StakingContract) Unstake(stakeID uint64, data []byte) error {
	release, err := s.guard.Enter("unstake")
	if err != nil {
		return err
	}
	defer release()

	exist, entry, err := s.stakes.Get(stakeID)
	if err != nil {
		return err
	}
	if !exist {
		return s.Revert(&staking_ledger.ErrorUnknownStake{StakeID: stakeID})
	}
	return s.unstake(entry, data)
}

// UnstakeNext releases the oldest active stake of the caller, amount must equal the stake amount.
func (s *StakingContract) UnstakeNext(amount *big.Int, data []byte) error {
	release, err := s.guard.Enter("unstakeNext")
	if err != nil {
		return err
	}
	defer release()

	ids, err := s.personalStakes.GetOrDefault(s.Ctx.From, nil)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return s.Revert(&staking_ledger.ErrorUnknownStake{StakeID: 0})
	}
	entry, err := s.stakes.MustGet(ids[0])
	if err != nil {
		return err
	}
	if amount == nil || entry.Amount.Cmp(amount) != 0 {
		return s.Revert(&staking_ledger.ErrorAmountMismatch{Expected: entry.Amount, Actual: lo.Ternary(amount == nil, big.NewInt(0), amount)})
	}
	return s.unstake(entry, data)
}

func (s *StakingContract) unstake(entry *StakeEntry, data []byte) error {
	if entry.Beneficiary != s.Ctx.From {
		return s.Revert(&staking_ledger.ErrorNotBeneficiary{StakeID: entry.ID, Caller: s.Ctx.From})
	}
	if s.Ctx.Timestamp < entry.UnlockTime {
		return s.Revert(&staking_ledger.ErrorStillLocked{StakeID: entry.ID, UnlockTime: entry.UnlockTime})
	}

	if err := s.stakes.Delete(entry.ID); err != nil {
		return err
	}
	ids, err := s.personalStakes.GetOrDefault(entry.Beneficiary, nil)
	if err != nil {
		return err
	}
	if err := s.personalStakes.Put(entry.Beneficiary, lo.Without(ids, entry.ID)); err != nil {
		return err
	}
	total, err := s.addTotal(entry.Beneficiary, new(big.Int).Neg(entry.Amount))
	if err != nil {
		return err
	}

	c, err := s.custody()
	if err != nil {
		return err
	}
	if err := c.Push(s.Ctx.From, entry.Amount); err != nil {
		return err
	}

	s.EmitEvent(&staking_ledger.EventUnstaked{
		User:   s.Ctx.From,
		Amount: entry.Amount,
		Total:  total,
		Data:   data,
	})
	unstakeCounter.Inc()
	s.Logger.WithFields(logrus.Fields{
		"id":          entry.ID,
		"beneficiary": entry.Beneficiary,
		"amount":      entry.Amount,
	}).Debug("stake released")
	return nil
}

// addTotal applies delta to both aggregates and returns the new total of the holder.
func (s *StakingContract) addTotal(holder ethcommon.Address, delta *big.Int) (*big.Int, error) {
	totalStaked, err := s.TotalStaked()
	if err != nil {
		return nil, err
	}
	totalStaked = new(big.Int).Add(totalStaked, delta)
	if err := s.totalStaked.Put(totalStaked); err != nil {
		return nil, err
	}

	holderTotal, err := s.TotalStakedFor(holder)
	if err != nil {
		return nil, err
	}
	holderTotal = new(big.Int).Add(holderTotal, delta)
	if holderTotal.Sign() == 0 {
		if err := s.totalStakedFor.Delete(holder); err != nil {
			return nil, err
		}
	} else if err := s.totalStakedFor.Put(holder, holderTotal); err != nil {
		return nil, err
	}

	totalStakedGauge.Set(float64FromBig(totalStaked))
	return holderTotal, nil
}

func (s *StakingContract) TotalStaked() (*big.Int, error) {
	return s.totalStaked.GetOrDefault(big.NewInt(0))
}

func (s *StakingContract) TotalStakedFor(addr ethcommon.Address) (*big.Int, error) {
	return s.totalStakedFor.GetOrDefault(addr, big.NewInt(0))
}

// DefaultLockInDuration returns the lock applied to new stakes in seconds.
func (s *StakingContract) DefaultLockInDuration() (uint64, error) {
	return s.lockDuration.GetOrDefault(0)
}

// Token returns the handle of the custodied asset.
func (s *StakingContract) Token() (ethcommon.Address, error) {
	return s.asset.GetOrDefault(ethcommon.Address{})
}

// SupportsHistory is always false, no historical totals are kept.
func (s *StakingContract) SupportsHistory() bool {
	return false
}

func (s *StakingContract) GetStake(stakeID uint64) (*StakeEntry, error) {
	exist, entry, err := s.stakes.Get(stakeID)
	if err != nil {
		return nil, err
	}
	if !exist {
		return nil, s.Revert(&staking_ledger.ErrorUnknownStake{StakeID: stakeID})
	}
	return entry, nil
}

// GetPersonalStakes returns the active stakes of the beneficiary in creation order.
func (s *StakingContract) GetPersonalStakes(addr ethcommon.Address) ([]*StakeEntry, error) {
	ids, err := s.personalStakes.GetOrDefault(addr, nil)
	if err != nil {
		return nil, err
	}
	entries := make([]*StakeEntry, 0, len(ids))
	for _, id := range ids {
		entry, err := s.stakes.MustGet(id)
		if err != nil {
			return nil, errors.Wrapf(err, "load stake %d", id)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *StakingContract) GetPersonalStakeIDs(addr ethcommon.Address) ([]uint64, error) {
	return s.personalStakes.GetOrDefault(addr, []uint64{})
}

func (s *StakingContract) GetPersonalStakeUnlockedTimestamps(addr ethcommon.Address) ([]uint64, error) {
	entries, err := s.GetPersonalStakes(addr)
	if err != nil {
		return nil, err
	}
	return lo.Map(entries, func(entry *StakeEntry, _ int) uint64 {
		return entry.UnlockTime
	}), nil
}

func (s *StakingContract) GetPersonalStakeForAddresses(addr ethcommon.Address) ([]ethcommon.Address, error) {
	entries, err := s.GetPersonalStakes(addr)
	if err != nil {
		return nil, err
	}
	return lo.Map(entries, func(entry *StakeEntry, _ int) ethcommon.Address {
		return entry.Funder
	}), nil
}

func (s *StakingContract) GetPersonalStakeActualAmounts(addr ethcommon.Address) ([]*big.Int, error) {
	entries, err := s.GetPersonalStakes(addr)
	if err != nil {
		return nil, err
	}
	return lo.Map(entries, func(entry *StakeEntry, _ int) *big.Int {
		return entry.Amount
	}), nil
}

// CustodiedBalance returns the asset balance held by the contract, never below TotalStaked.
func (s *StakingContract) CustodiedBalance() (*big.Int, error) {
	c, err := s.custody()
	if err != nil {
		return nil, err
	}
	return c.Balance()
}
