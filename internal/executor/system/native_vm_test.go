package system

import (
	"math/big"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axiomesh/axiom-staking/internal/executor/system/badge"
	"github.com/axiomesh/axiom-staking/internal/executor/system/common"
	"github.com/axiomesh/axiom-staking/internal/executor/system/token"
	"github.com/axiomesh/axiom-staking/internal/ledger"
	"github.com/axiomesh/axiom-staking/pkg/repo"
)

func prepareNativeVM(t *testing.T, enableBadge bool) (*NativeVM, ledger.StateLedger, *repo.Repo) {
	rep := repo.MockRepo(t)
	rep.GenesisConfig.Staking.EnableBadge = enableBadge
	lg, err := ledger.NewMemory(rep)
	require.Nil(t, err)

	nvm := New(rep.GenesisConfig)
	require.Nil(t, nvm.InitGenesisData(rep.GenesisConfig, lg.StateLedger, 0))
	lg.StateLedger.Finalise()
	return nvm, lg.StateLedger, rep
}

func TestNativeVM_Deploy(t *testing.T) {
	nvm, _, _ := prepareNativeVM(t, true)

	for _, addr := range []string{common.AssetContractAddr, common.StakingContractAddr, common.BadgeTokenContractAddr, common.BadgeIssuerContractAddr} {
		assert.True(t, nvm.IsSystemContract(ethcommon.HexToAddress(addr)))
		assert.NotNil(t, nvm.GetContractInstance(ethcommon.HexToAddress(addr)))
	}
	assert.Nil(t, nvm.GetContractInstance(ethcommon.Address{}))

	contractABI, err := nvm.GetContractABI(ethcommon.HexToAddress(common.AssetContractAddr))
	require.Nil(t, err)
	assert.Panics(t, func() {
		nvm.Deploy(ethcommon.HexToAddress(common.AssetContractAddr), contractABI, token.AssetBuildConfig.Build(nil))
	})
	assert.Panics(t, func() {
		nvm.Deploy(ethcommon.HexToAddress("0x0100000000000000000000000000000000000000"), contractABI, token.AssetBuildConfig.Build(nil))
	})

	withoutBadge, _, _ := prepareNativeVM(t, false)
	assert.Nil(t, withoutBadge.Issuer)
	assert.False(t, withoutBadge.IsSystemContract(ethcommon.HexToAddress(common.BadgeIssuerContractAddr)))
}

func TestNativeVM_Run(t *testing.T) {
	nvm, stateLedger, _ := prepareNativeVM(t, true)
	assetAddr := ethcommon.HexToAddress(common.AssetContractAddr)
	user := ethcommon.HexToAddress(repo.DefaultAccountAddrs[0])
	assetABI, err := nvm.GetContractABI(assetAddr)
	require.Nil(t, err)

	data, err := assetABI.Pack("symbol")
	require.Nil(t, err)
	ret, err := nvm.Run(common.NewVMContext(stateLedger, user, 0), assetAddr, data)
	require.Nil(t, err)
	out, err := nvm.UnpackOutputArgs(assetAddr, "symbol", ret)
	require.Nil(t, err)
	assert.Equal(t, repo.DefaultAssetSymbol, out[0])

	data, err = assetABI.Pack("transfer", ethcommon.HexToAddress("0x3000000000000000000000000000000000000001"), big.NewInt(3))
	require.Nil(t, err)
	ret, err = nvm.Run(common.NewVMContext(stateLedger, user, 0), assetAddr, data)
	require.Nil(t, err)
	assert.Nil(t, ret)

	data, err = assetABI.Pack("transfer", ethcommon.Address{}, big.NewInt(3))
	require.Nil(t, err)
	_, err = nvm.Run(common.NewVMContext(stateLedger, user, 0), assetAddr, data)
	assert.ErrorIs(t, err, token.ErrEmptyAccount)

	issuerAddr := ethcommon.HexToAddress(common.BadgeIssuerContractAddr)
	issuerABI, err := nvm.GetContractABI(issuerAddr)
	require.Nil(t, err)
	data, err = issuerABI.Pack("getBadge", user)
	require.Nil(t, err)
	ret, err = nvm.Run(common.NewVMContext(stateLedger, user, 0), issuerAddr, data)
	require.Nil(t, err)
	out, err = nvm.UnpackOutputArgs(issuerAddr, "getBadge", ret)
	require.Nil(t, err)
	assert.Equal(t, []any{uint64(0), uint64(0)}, out)

	registryAddr := ethcommon.HexToAddress(common.BadgeTokenContractAddr)
	registryABI, err := nvm.GetContractABI(registryAddr)
	require.Nil(t, err)
	data, err = registryABI.Pack("transferFrom", user, ethcommon.Address{1}, uint64(1))
	require.Nil(t, err)
	_, err = nvm.Run(common.NewVMContext(stateLedger, user, 0), registryAddr, data)
	assert.ErrorIs(t, err, badge.ErrTransferRejected)

	_, err = nvm.Run(common.NewVMContext(stateLedger, user, 0), assetAddr, []byte{1})
	assert.ErrorIs(t, err, ErrNotExistMethodName)
	_, err = nvm.Run(common.NewVMContext(stateLedger, user, 0), ethcommon.Address{}, data)
	assert.ErrorIs(t, err, ErrNotExistSystemContract)
	_, err = nvm.UnpackOutputArgs(assetAddr, "unknown", nil)
	assert.ErrorIs(t, err, ErrNotExistMethodName)
}
