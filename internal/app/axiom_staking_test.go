package app

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	syscommon "github.com/axiomesh/axiom-staking/internal/executor/system/common"
	"github.com/axiomesh/axiom-staking/pkg/repo"
)

func newTestRepo(t *testing.T) *repo.Repo {
	rep := repo.MockRepo(t)
	rep.Config.Storage.KvType = repo.KVStorageTypeLeveldb
	rep.Config.Port.JsonRpc = 0
	return rep
}

func TestAxiomStaking_Restart(t *testing.T) {
	rep := newTestRepo(t)
	userA := common.HexToAddress(repo.DefaultAccountAddrs[0])
	stakingAddr := common.HexToAddress(syscommon.StakingContractAddr)

	ctx, cancel := context.WithCancel(context.Background())
	axm, err := NewAxiomStaking(rep, ctx, cancel)
	require.Nil(t, err)
	require.Nil(t, axm.Start())
	assert.EqualValues(t, 1, axm.Executor.Version())

	_, err = axm.Executor.Approve(ctx, userA, stakingAddr, big.NewInt(5))
	require.Nil(t, err)
	id, _, err := axm.Executor.Stake(ctx, userA, big.NewInt(5), nil)
	require.Nil(t, err)
	root := axm.Executor.StateRoot()
	version := axm.Executor.Version()
	require.Nil(t, axm.Stop())

	// genesis edits after the first start are ignored
	rep.GenesisConfig.Staking.LockDuration = 0

	ctx2, cancel2 := context.WithCancel(context.Background())
	axm2, err := NewAxiomStaking(rep, ctx2, cancel2)
	require.Nil(t, err)
	require.Nil(t, axm2.Start())
	defer func() {
		assert.Nil(t, axm2.Stop())
	}()

	assert.Equal(t, version, axm2.Executor.Version())
	assert.Equal(t, root, axm2.Executor.StateRoot())
	assert.EqualValues(t, repo.DefaultLockDuration.Seconds(), rep.GenesisConfig.Staking.LockDuration.ToDuration().Seconds())

	stake, err := axm2.Executor.GetStake(ctx2, id)
	require.Nil(t, err)
	assert.EqualValues(t, 5, stake.Amount.Int64())
	lock, err := axm2.Executor.DefaultLockInDuration(ctx2)
	require.Nil(t, err)
	assert.EqualValues(t, repo.DefaultLockDuration.Seconds(), lock)
}

func TestLoadEventNames(t *testing.T) {
	names, err := loadEventNames()
	require.Nil(t, err)
	values := make(map[string]bool)
	for _, name := range names {
		values[name] = true
	}
	for _, name := range []string{"Transfer", "Approval", "Staked", "Unstaked", "BadgeIssued"} {
		assert.True(t, values[name], name)
	}
}
