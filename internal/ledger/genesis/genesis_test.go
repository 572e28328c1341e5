package genesis

import (
	"math/big"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axiomesh/axiom-staking/internal/executor/system/badge"
	"github.com/axiomesh/axiom-staking/internal/executor/system/common"
	"github.com/axiomesh/axiom-staking/internal/executor/system/staking"
	"github.com/axiomesh/axiom-staking/internal/executor/system/token"
	"github.com/axiomesh/axiom-staking/internal/ledger"
	"github.com/axiomesh/axiom-staking/pkg/repo"
)

func TestInitialize(t *testing.T) {
	rep := repo.MockRepo(t)
	lg, err := ledger.NewMemory(rep)
	require.Nil(t, err)

	cfg, err := GetGenesisConfig(lg)
	assert.Nil(t, err)
	assert.Nil(t, cfg)

	require.Nil(t, Initialize(rep.GenesisConfig, lg))
	assert.EqualValues(t, 1, lg.StateLedger.Version())

	cfg, err = GetGenesisConfig(lg)
	require.Nil(t, err)
	assert.Equal(t, rep.GenesisConfig.Asset, cfg.Asset)
	assert.Equal(t, rep.GenesisConfig.Staking.LockDuration, cfg.Staking.LockDuration)
	assert.Len(t, cfg.Accounts, len(rep.GenesisConfig.Accounts))

	ctx := common.NewVMContext(lg.StateLedger, ethcommon.Address{}, 0)
	asset := token.AssetBuildConfig.Build(ctx)
	balance, err := asset.BalanceOf(ethcommon.HexToAddress(repo.DefaultAccountAddrs[0]))
	assert.Nil(t, err)
	assert.Equal(t, repo.DefaultAccountBalance, balance.String())

	stakingContract := staking.StakingBuildConfig.Build(ctx)
	lock, err := stakingContract.DefaultLockInDuration()
	assert.Nil(t, err)
	assert.EqualValues(t, rep.GenesisConfig.Staking.LockDuration.ToDuration().Seconds(), lock)
	totalStaked, err := stakingContract.TotalStaked()
	assert.Nil(t, err)
	assert.Zero(t, totalStaked.Sign())

	registry := badge.BadgeTokenBuildConfig.Build(ctx)
	name, err := registry.Name()
	assert.Nil(t, err)
	assert.Equal(t, badge.BadgeName, name)
}

func TestInitialize_DisableBadge(t *testing.T) {
	rep := repo.MockRepo(t)
	rep.GenesisConfig.Staking.EnableBadge = false
	lg, err := ledger.NewMemory(rep)
	require.Nil(t, err)
	require.Nil(t, Initialize(rep.GenesisConfig, lg))

	assert.Nil(t, lg.StateLedger.GetAccount(ethcommon.HexToAddress(common.BadgeTokenContractAddr)))
}

func TestInitialize_InvalidGenesis(t *testing.T) {
	rep := repo.MockRepo(t)
	rep.GenesisConfig.Accounts = append(rep.GenesisConfig.Accounts, &repo.Account{
		Address: "0x1000000000000000000000000000000000000009",
		Balance: new(big.Int).Lsh(big.NewInt(1), 128).String(),
	})
	lg, err := ledger.NewMemory(rep)
	require.Nil(t, err)
	assert.ErrorContains(t, Initialize(rep.GenesisConfig, lg), "exceed total supply")
}
