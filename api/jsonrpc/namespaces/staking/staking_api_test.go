package staking

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axiomesh/axiom-staking/internal/executor"
	syscommon "github.com/axiomesh/axiom-staking/internal/executor/system/common"
	"github.com/axiomesh/axiom-staking/internal/executor/system/staking"
	"github.com/axiomesh/axiom-staking/internal/ledger"
	"github.com/axiomesh/axiom-staking/internal/ledger/genesis"
	"github.com/axiomesh/axiom-staking/pkg/packer"
	"github.com/axiomesh/axiom-staking/pkg/repo"
)

var (
	userA       = common.HexToAddress(repo.DefaultAccountAddrs[0])
	userB       = common.HexToAddress(repo.DefaultAccountAddrs[1])
	stakingAddr = common.HexToAddress(syscommon.StakingContractAddr)
)

func newTestAPI(t *testing.T) (*StakingAPI, *time.Time) {
	rep := repo.MockRepo(t)
	lg, err := ledger.NewMemory(rep)
	require.Nil(t, err)
	require.Nil(t, genesis.Initialize(rep.GenesisConfig, lg))

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	exec := executor.New(rep, lg, executor.WithClock(func() time.Time {
		return now
	}))
	require.Nil(t, exec.Start())
	t.Cleanup(func() {
		assert.Nil(t, exec.Stop())
	})
	return NewStakingAPI(rep, exec, logrus.New()), &now
}

func hexBig(v int64) *hexutil.Big {
	return (*hexutil.Big)(big.NewInt(v))
}

func TestStakingAPI_StakeAndUnstake(t *testing.T) {
	api, now := newTestAPI(t)
	ctx := context.Background()

	_, err := api.Approve(ctx, userA, stakingAddr, hexBig(100))
	require.Nil(t, err)

	data := hexutil.Bytes("memo")
	res, err := api.Stake(ctx, userA, hexBig(100), &data)
	require.Nil(t, err)
	assert.EqualValues(t, 1, res.StakeID)
	assert.NotEmpty(t, res.Receipt.Logs)

	total, err := api.TotalStaked(ctx)
	require.Nil(t, err)
	assert.EqualValues(t, 100, total.ToInt().Int64())
	totalFor, err := api.TotalStakedFor(ctx, userA)
	require.Nil(t, err)
	assert.EqualValues(t, 100, totalFor.ToInt().Int64())

	stake, err := api.GetStake(ctx, 1)
	require.Nil(t, err)
	assert.Equal(t, userA, stake.Beneficiary)
	assert.Equal(t, userA, stake.Funder)
	lock, err := api.DefaultLockInDuration(ctx)
	require.Nil(t, err)
	assert.EqualValues(t, uint64(now.Unix())+uint64(lock), uint64(stake.UnlockTime))

	stakes, err := api.GetPersonalStakes(ctx, userA)
	require.Nil(t, err)
	require.Len(t, stakes, 1)

	badge, err := api.GetBadge(ctx, userA)
	require.Nil(t, err)
	assert.EqualValues(t, 1, badge.Level)
	assert.EqualValues(t, 1, badge.StreakCount)
	badges, err := api.GetTotalBadges(ctx)
	require.Nil(t, err)
	assert.EqualValues(t, 1, badges)
	owner, err := api.BadgeOwnerOf(ctx, 1)
	require.Nil(t, err)
	assert.Equal(t, userA, owner)

	_, err = api.Unstake(ctx, userA, 1, nil)
	assert.True(t, errors.Is(err, staking.ErrStillLocked))
	var revertErr *packer.RevertError
	require.True(t, errors.As(err, &revertErr))
	assert.Equal(t, 3, revertErr.ErrorCode())

	*now = now.Add(time.Duration(lock) * time.Second)
	receipt, err := api.Unstake(ctx, userA, 1, nil)
	require.Nil(t, err)
	assert.NotEmpty(t, receipt.Logs)

	total, err = api.TotalStaked(ctx)
	require.Nil(t, err)
	assert.EqualValues(t, 0, total.ToInt().Int64())
	_, err = api.GetStake(ctx, 1)
	assert.True(t, errors.Is(err, staking.ErrUnknownStake))
}

func TestStakingAPI_StakeFor(t *testing.T) {
	api, _ := newTestAPI(t)
	ctx := context.Background()

	_, err := api.Approve(ctx, userA, stakingAddr, hexBig(50))
	require.Nil(t, err)
	res, err := api.StakeFor(ctx, userA, userB, hexBig(50), nil)
	require.Nil(t, err)

	stake, err := api.GetStake(ctx, res.StakeID)
	require.Nil(t, err)
	assert.Equal(t, userB, stake.Beneficiary)
	assert.Equal(t, userA, stake.Funder)

	_, err = api.UnstakeNext(ctx, userB, hexBig(49), nil)
	assert.True(t, errors.Is(err, staking.ErrAmountMismatch))
}

func TestStakingAPI_InvalidAmount(t *testing.T) {
	api, _ := newTestAPI(t)
	ctx := context.Background()

	_, err := api.Stake(ctx, userA, nil, nil)
	assert.True(t, errors.Is(err, staking.ErrInvalidAmount))
	assert.True(t, errors.Is(err, vm.ErrExecutionReverted))

	_, err = api.Stake(ctx, userA, hexBig(0), nil)
	assert.True(t, errors.Is(err, staking.ErrInvalidAmount))

	status := api.Status()
	assert.True(t, status.EnableBadge)
	assert.EqualValues(t, 1, status.Version)
}

func TestStakingAPI_Transfer(t *testing.T) {
	api, _ := newTestAPI(t)
	ctx := context.Background()

	before, err := api.BalanceOf(ctx, userB)
	require.Nil(t, err)
	_, err = api.Transfer(ctx, userA, userB, hexBig(7))
	require.Nil(t, err)
	after, err := api.BalanceOf(ctx, userB)
	require.Nil(t, err)
	assert.EqualValues(t, 7, new(big.Int).Sub(after.ToInt(), before.ToInt()).Int64())

	_, err = api.Approve(ctx, userA, userB, hexBig(3))
	require.Nil(t, err)
	allowance, err := api.Allowance(ctx, userA, userB)
	require.Nil(t, err)
	assert.EqualValues(t, 3, allowance.ToInt().Int64())

	token, err := api.Token(ctx)
	require.Nil(t, err)
	assert.Equal(t, common.HexToAddress(syscommon.AssetContractAddr), token)
}

func TestRPCError(t *testing.T) {
	plain := errors.New("plain")
	assert.Equal(t, plain, rpcError(plain))

	var revertErr *packer.RevertError
	wrapped := errors.Wrap(&packer.RevertError{Err: vm.ErrExecutionReverted, Name: "X"}, "ctx")
	unwrapped := rpcError(wrapped)
	assert.True(t, errors.As(unwrapped, &revertErr))
	assert.Equal(t, revertErr, unwrapped)
}
