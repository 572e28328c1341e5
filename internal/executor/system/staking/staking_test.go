package staking

import (
	"math/big"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/axiomesh/axiom-staking/internal/executor/system/common"
	"github.com/axiomesh/axiom-staking/internal/executor/system/custody"
	"github.com/axiomesh/axiom-staking/internal/executor/system/custody/mock_custody"
	"github.com/axiomesh/axiom-staking/internal/executor/system/token"
	"github.com/axiomesh/axiom-staking/pkg/repo"
)

type testSuite struct {
	nvm     *common.TestNVM
	asset   *token.Asset
	staking *StakingContract
}

func prepareTest(t *testing.T) *testSuite {
	nvm := common.NewTestNVM(t)
	s := &testSuite{
		nvm:     nvm,
		asset:   token.AssetBuildConfig.Build(nil),
		staking: StakingBuildConfig.Build(nil),
	}
	nvm.GenesisInit(s.asset, s.staking)
	return s
}

func (s *testSuite) approve(t *testing.T, owner ethcommon.Address, amount int64) {
	var err error
	s.nvm.RunSingleTX(s.asset, owner, func() error {
		err = s.asset.Approve(s.staking.Address, big.NewInt(amount))
		return err
	})
	require.Nil(t, err)
}

func (s *testSuite) stake(from, beneficiary ethcommon.Address, amount int64, data []byte) (uint64, error) {
	var id uint64
	var err error
	s.nvm.RunSingleTX(s.staking, from, func() error {
		id, err = s.staking.StakeFor(beneficiary, big.NewInt(amount), data)
		return err
	})
	return id, err
}

func (s *testSuite) unstake(from ethcommon.Address, id uint64) error {
	var err error
	s.nvm.RunSingleTX(s.staking, from, func() error {
		err = s.staking.Unstake(id, nil)
		return err
	})
	return err
}

func (s *testSuite) totals(t *testing.T, addr ethcommon.Address) (total, holder int64) {
	s.nvm.Call(s.staking, addr, func() {
		totalStaked, err := s.staking.TotalStaked()
		require.Nil(t, err)
		holderStaked, err := s.staking.TotalStakedFor(addr)
		require.Nil(t, err)
		total, holder = totalStaked.Int64(), holderStaked.Int64()
	})
	return
}

func (s *testSuite) balance(t *testing.T, addr ethcommon.Address) *big.Int {
	var balance *big.Int
	s.nvm.Call(s.asset, addr, func() {
		var err error
		balance, err = s.asset.BalanceOf(addr)
		require.Nil(t, err)
	})
	return balance
}

var (
	userA = ethcommon.HexToAddress(repo.DefaultAccountAddrs[0])
	userB = ethcommon.HexToAddress(repo.DefaultAccountAddrs[1])
)

func TestStaking_GenesisInit(t *testing.T) {
	s := prepareTest(t)
	s.nvm.Call(s.staking, userA, func() {
		lock, err := s.staking.DefaultLockInDuration()
		assert.Nil(t, err)
		assert.EqualValues(t, repo.DefaultLockDuration/time.Second, lock)

		handle, err := s.staking.Token()
		assert.Nil(t, err)
		assert.Equal(t, ethcommon.HexToAddress(common.AssetContractAddr), handle)

		assert.False(t, s.staking.SupportsHistory())
	})
}

func TestStaking_Stake(t *testing.T) {
	s := prepareTest(t)
	s.approve(t, userA, 1)

	id, err := s.stake(userA, userA, 1, []byte{0xab})
	require.Nil(t, err)
	assert.EqualValues(t, 1, id)

	total, holder := s.totals(t, userA)
	assert.EqualValues(t, 1, total)
	assert.EqualValues(t, 1, holder)

	require.Len(t, s.nvm.Logs, 2)
	stakedLog := s.nvm.Logs[1]
	assert.Equal(t, s.staking.Address, stakedLog.Address)
	assert.Equal(t, s.staking.Abi.Events["Staked"].ID, stakedLog.Topics[0])
	assert.Equal(t, ethcommon.BytesToHash(userA.Bytes()), stakedLog.Topics[1])
	values, err := s.staking.Abi.Events["Staked"].Inputs.NonIndexed().Unpack(stakedLog.Data)
	require.Nil(t, err)
	assert.EqualValues(t, 1, values[0].(*big.Int).Int64())
	assert.EqualValues(t, 1, values[1].(*big.Int).Int64())
	assert.Equal(t, []byte{0xab}, values[2].([]byte))
}

func TestStaking_StakeInvalidAmount(t *testing.T) {
	s := prepareTest(t)
	s.approve(t, userA, 5)

	testCases := []struct {
		name   string
		amount *big.Int
		cause  error
	}{
		{name: "nil", amount: nil},
		{name: "zero", amount: big.NewInt(0)},
		{name: "negative", amount: big.NewInt(-1)},
		{name: "exceeds allowance", amount: big.NewInt(6), cause: token.ErrNotEnoughAllowance},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var err error
			s.nvm.RunSingleTX(s.staking, userA, func() error {
				_, err = s.staking.Stake(tc.amount, nil)
				return err
			})
			assert.ErrorIs(t, err, ErrInvalidAmount)
			assert.ErrorIs(t, err, vm.ErrExecutionReverted)
			if tc.cause != nil {
				assert.ErrorIs(t, err, tc.cause)
			}
		})
	}

	total, holder := s.totals(t, userA)
	assert.Zero(t, total)
	assert.Zero(t, holder)
}

func TestStaking_StakeInsufficientBalance(t *testing.T) {
	s := prepareTest(t)
	poor := ethcommon.HexToAddress("0x2000000000000000000000000000000000000001")
	s.approve(t, poor, 10)

	_, err := s.stake(poor, poor, 10, nil)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.ErrorIs(t, err, token.ErrInsufficientBalance)
}

func TestStaking_UnstakeStillLocked(t *testing.T) {
	s := prepareTest(t)
	s.approve(t, userA, 10)
	id, err := s.stake(userA, userA, 10, nil)
	require.Nil(t, err)

	s.nvm.AdvanceTime(repo.DefaultLockDuration - time.Second)
	err = s.unstake(userA, id)
	assert.ErrorIs(t, err, ErrStillLocked)

	total, holder := s.totals(t, userA)
	assert.EqualValues(t, 10, total)
	assert.EqualValues(t, 10, holder)
	s.nvm.Call(s.staking, userA, func() {
		entry, err := s.staking.GetStake(id)
		assert.Nil(t, err)
		assert.EqualValues(t, 10, entry.Amount.Int64())
	})
}

func TestStaking_Unstake(t *testing.T) {
	s := prepareTest(t)
	s.approve(t, userA, 10)
	before := s.balance(t, userA)

	id, err := s.stake(userA, userA, 10, nil)
	require.Nil(t, err)

	s.nvm.AdvanceTime(repo.DefaultLockDuration)
	require.Nil(t, s.unstake(userA, id))

	total, holder := s.totals(t, userA)
	assert.Zero(t, total)
	assert.Zero(t, holder)
	assert.Equal(t, before, s.balance(t, userA))

	s.nvm.Call(s.staking, userA, func() {
		ids, err := s.staking.GetPersonalStakeIDs(userA)
		assert.Nil(t, err)
		assert.Empty(t, ids)

		_, err = s.staking.GetStake(id)
		assert.ErrorIs(t, err, ErrUnknownStake)
	})

	// already removed
	assert.ErrorIs(t, s.unstake(userA, id), ErrUnknownStake)
	assert.ErrorIs(t, s.unstake(userA, 100), ErrUnknownStake)
}

func TestStaking_StakeFor(t *testing.T) {
	s := prepareTest(t)
	s.approve(t, userA, 1)

	id, err := s.stake(userA, userB, 1, nil)
	require.Nil(t, err)

	_, holderA := s.totals(t, userA)
	assert.Zero(t, holderA)
	_, holderB := s.totals(t, userB)
	assert.EqualValues(t, 1, holderB)

	s.nvm.Call(s.staking, userB, func() {
		funders, err := s.staking.GetPersonalStakeForAddresses(userB)
		assert.Nil(t, err)
		assert.Equal(t, []ethcommon.Address{userA}, funders)

		entries, err := s.staking.GetPersonalStakes(userA)
		assert.Nil(t, err)
		assert.Empty(t, entries)
	})

	s.nvm.AdvanceTime(repo.DefaultLockDuration)
	err = s.unstake(userA, id)
	assert.ErrorIs(t, err, ErrNotBeneficiary)

	beforeB := s.balance(t, userB)
	require.Nil(t, s.unstake(userB, id))
	assert.Equal(t, new(big.Int).Add(beforeB, big.NewInt(1)), s.balance(t, userB))
}

func TestStaking_StakeIDsNeverReused(t *testing.T) {
	s := prepareTest(t)
	s.approve(t, userA, 100)

	first, err := s.stake(userA, userA, 1, nil)
	require.Nil(t, err)
	s.nvm.AdvanceTime(repo.DefaultLockDuration)
	require.Nil(t, s.unstake(userA, first))

	second, err := s.stake(userA, userA, 1, nil)
	require.Nil(t, err)
	third, err := s.stake(userA, userA, 2, nil)
	require.Nil(t, err)
	assert.EqualValues(t, 2, second)
	assert.EqualValues(t, 3, third)

	s.nvm.Call(s.staking, userA, func() {
		ids, err := s.staking.GetPersonalStakeIDs(userA)
		assert.Nil(t, err)
		assert.Equal(t, []uint64{2, 3}, ids)

		amounts, err := s.staking.GetPersonalStakeActualAmounts(userA)
		assert.Nil(t, err)
		assert.Equal(t, []*big.Int{big.NewInt(1), big.NewInt(2)}, amounts)

		unlocks, err := s.staking.GetPersonalStakeUnlockedTimestamps(userA)
		assert.Nil(t, err)
		lock := uint64(repo.DefaultLockDuration / time.Second)
		assert.Equal(t, []uint64{s.nvm.Now + lock, s.nvm.Now + lock}, unlocks)
	})
}

func TestStaking_UnstakeNext(t *testing.T) {
	s := prepareTest(t)
	s.approve(t, userA, 100)

	var err error
	s.nvm.RunSingleTX(s.staking, userA, func() error {
		err = s.staking.UnstakeNext(big.NewInt(1), nil)
		return err
	})
	assert.ErrorIs(t, err, ErrUnknownStake)

	_, err = s.stake(userA, userA, 3, nil)
	require.Nil(t, err)
	s.nvm.AdvanceTime(time.Hour)
	_, err = s.stake(userA, userA, 5, nil)
	require.Nil(t, err)

	s.nvm.RunSingleTX(s.staking, userA, func() error {
		err = s.staking.UnstakeNext(big.NewInt(5), nil)
		return err
	})
	assert.ErrorIs(t, err, ErrAmountMismatch)

	s.nvm.RunSingleTX(s.staking, userA, func() error {
		err = s.staking.UnstakeNext(big.NewInt(3), nil)
		return err
	})
	assert.ErrorIs(t, err, ErrStillLocked)

	s.nvm.AdvanceTime(repo.DefaultLockDuration - time.Hour)
	s.nvm.RunSingleTX(s.staking, userA, func() error {
		err = s.staking.UnstakeNext(big.NewInt(3), []byte("bye"))
		return err
	})
	assert.Nil(t, err)

	total, holder := s.totals(t, userA)
	assert.EqualValues(t, 5, total)
	assert.EqualValues(t, 5, holder)

	// the second stake was created one hour later
	s.nvm.RunSingleTX(s.staking, userA, func() error {
		err = s.staking.UnstakeNext(big.NewInt(5), nil)
		return err
	})
	assert.ErrorIs(t, err, ErrStillLocked)
}

func TestStaking_CustodyFailure(t *testing.T) {
	s := prepareTest(t)
	ctrl := gomock.NewController(t)
	mockCustody := mock_custody.NewMockAdapter(ctrl)
	s.staking.SetCustodyBuilder(func(ctx *common.VMContext, handle ethcommon.Address) custody.Adapter {
		return mockCustody
	})

	pullErr := errors.New("pull failed")
	mockCustody.EXPECT().Pull(userA, big.NewInt(7)).Return(pullErr).Times(1)
	_, err := s.stake(userA, userA, 7, nil)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.ErrorIs(t, err, pullErr)
	total, _ := s.totals(t, userA)
	assert.Zero(t, total)

	mockCustody.EXPECT().Pull(userA, big.NewInt(7)).Return(nil).Times(1)
	id, err := s.stake(userA, userA, 7, nil)
	require.Nil(t, err)

	s.nvm.AdvanceTime(repo.DefaultLockDuration)
	pushErr := errors.New("push failed")
	mockCustody.EXPECT().Push(userA, big.NewInt(7)).Return(pushErr).Times(1)
	err = s.unstake(userA, id)
	assert.ErrorIs(t, err, pushErr)
	assert.NotErrorIs(t, err, ErrInvalidAmount)

	total, holder := s.totals(t, userA)
	assert.EqualValues(t, 7, total)
	assert.EqualValues(t, 7, holder)
	s.nvm.Call(s.staking, userA, func() {
		_, err := s.staking.GetStake(id)
		assert.Nil(t, err)
	})

	mockCustody.EXPECT().Balance().Return(big.NewInt(7), nil).Times(1)
	s.nvm.Call(s.staking, userA, func() {
		balance, err := s.staking.CustodiedBalance()
		assert.Nil(t, err)
		assert.EqualValues(t, 7, balance.Int64())
	})
}

func TestStaking_ReentrantCustody(t *testing.T) {
	s := prepareTest(t)
	ctrl := gomock.NewController(t)
	mockCustody := mock_custody.NewMockAdapter(ctrl)
	s.staking.SetCustodyBuilder(func(ctx *common.VMContext, handle ethcommon.Address) custody.Adapter {
		return mockCustody
	})

	// an asset hook that stakes again while the first stake is pulling funds
	mockCustody.EXPECT().Pull(userA, big.NewInt(5)).DoAndReturn(func(from ethcommon.Address, amount *big.Int) error {
		_, err := s.staking.StakeFor(userB, big.NewInt(1), nil)
		return err
	}).Times(1)
	_, err := s.stake(userA, userA, 5, nil)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.ErrorIs(t, err, common.ErrReentrantCall)
	total, _ := s.totals(t, userA)
	assert.Zero(t, total)
	_, holderB := s.totals(t, userB)
	assert.Zero(t, holderB)

	// the guard is released after the failed call
	mockCustody.EXPECT().Pull(userA, big.NewInt(5)).Return(nil).Times(1)
	id, err := s.stake(userA, userA, 5, nil)
	require.Nil(t, err)

	s.nvm.AdvanceTime(repo.DefaultLockDuration)
	mockCustody.EXPECT().Push(userA, big.NewInt(5)).DoAndReturn(func(to ethcommon.Address, amount *big.Int) error {
		return s.staking.Unstake(id, nil)
	}).Times(1)
	err = s.unstake(userA, id)
	assert.ErrorIs(t, err, common.ErrReentrantCall)
	s.nvm.Call(s.staking, userA, func() {
		entry, err := s.staking.GetStake(id)
		require.Nil(t, err)
		assert.EqualValues(t, 5, entry.Amount.Int64())
	})

	mockCustody.EXPECT().Push(userA, big.NewInt(5)).Return(nil).Times(1)
	require.Nil(t, s.unstake(userA, id))
	total, _ = s.totals(t, userA)
	assert.Zero(t, total)
}

func TestStaking_Conservation(t *testing.T) {
	s := prepareTest(t)
	faker := gofakeit.New(20240101)
	users := []ethcommon.Address{
		ethcommon.HexToAddress(repo.DefaultAccountAddrs[0]),
		ethcommon.HexToAddress(repo.DefaultAccountAddrs[1]),
		ethcommon.HexToAddress(repo.DefaultAccountAddrs[2]),
		ethcommon.HexToAddress(repo.DefaultAccountAddrs[3]),
	}
	for _, user := range users {
		s.approve(t, user, 1_000_000_000)
	}

	seen := make(map[uint64]bool)
	var created []uint64
	for i := 0; i < 200; i++ {
		switch faker.IntRange(0, 2) {
		case 0:
			from := users[faker.IntRange(0, len(users)-1)]
			beneficiary := users[faker.IntRange(0, len(users)-1)]
			id, err := s.stake(from, beneficiary, int64(faker.IntRange(0, 1000)), nil)
			if err == nil {
				assert.False(t, seen[id], "stake id %d reused", id)
				seen[id] = true
				created = append(created, id)
			} else {
				assert.ErrorIs(t, err, ErrInvalidAmount)
			}
		case 1:
			if len(created) == 0 {
				continue
			}
			from := users[faker.IntRange(0, len(users)-1)]
			_ = s.unstake(from, created[faker.IntRange(0, len(created)-1)])
		case 2:
			s.nvm.AdvanceTime(time.Duration(faker.IntRange(0, 30)) * 24 * time.Hour)
		}

		s.nvm.Call(s.staking, users[0], func() {
			totalStaked, err := s.staking.TotalStaked()
			require.Nil(t, err)

			sumFor := big.NewInt(0)
			sumEntries := big.NewInt(0)
			for _, user := range users {
				holderTotal, err := s.staking.TotalStakedFor(user)
				require.Nil(t, err)
				sumFor.Add(sumFor, holderTotal)

				amounts, err := s.staking.GetPersonalStakeActualAmounts(user)
				require.Nil(t, err)
				for _, amount := range amounts {
					sumEntries.Add(sumEntries, amount)
				}
			}
			assert.Equal(t, 0, totalStaked.Cmp(sumFor))
			assert.Equal(t, 0, totalStaked.Cmp(sumEntries))

			custodied, err := s.staking.CustodiedBalance()
			require.Nil(t, err)
			assert.Equal(t, 0, custodied.Cmp(totalStaked))
		})
	}
}
