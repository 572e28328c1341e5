package token

import (
	"math/big"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axiomesh/axiom-staking/internal/executor/system/common"
	"github.com/axiomesh/axiom-staking/pkg/repo"
)

func prepareAsset(t *testing.T) (*common.TestNVM, *Asset) {
	nvm := common.NewTestNVM(t)
	a := AssetBuildConfig.Build(nil)
	nvm.GenesisInit(a)
	return nvm, a
}

func TestAsset_GenesisInit(t *testing.T) {
	nvm, a := prepareAsset(t)

	nvm.Call(a, ethcommon.Address{}, func() {
		name, err := a.Name()
		assert.Nil(t, err)
		assert.Equal(t, repo.DefaultAssetName, name)

		symbol, err := a.Symbol()
		assert.Nil(t, err)
		assert.Equal(t, repo.DefaultAssetSymbol, symbol)

		decimals, err := a.Decimals()
		assert.Nil(t, err)
		assert.EqualValues(t, repo.DefaultAssetDecimals, decimals)

		totalSupply, err := a.TotalSupply()
		assert.Nil(t, err)
		assert.Equal(t, repo.DefaultAssetTotalSupply, totalSupply.String())

		accountBalance, _ := new(big.Int).SetString(repo.DefaultAccountBalance, 10)
		assigned := big.NewInt(0)
		for _, addr := range repo.DefaultAccountAddrs {
			balance, err := a.BalanceOf(ethcommon.HexToAddress(addr))
			assert.Nil(t, err)
			assert.Equal(t, accountBalance, balance)
			assigned.Add(assigned, balance)
		}

		remain, err := a.BalanceOf(a.Address)
		assert.Nil(t, err)
		assert.Equal(t, totalSupply, new(big.Int).Add(remain, assigned))
	})
}

func TestAsset_GenesisInitInvalidSupply(t *testing.T) {
	nvm := common.NewTestNVM(t)
	nvm.Rep.GenesisConfig.Asset.TotalSupply = "abc"
	a := AssetBuildConfig.Build(common.NewVMContextBySystem(nvm.StateLedger, nvm.Now))
	assert.ErrorContains(t, a.GenesisInit(nvm.Rep.GenesisConfig), "invalid total supply")
}

func TestAsset_Mint(t *testing.T) {
	nvm, a := prepareAsset(t)

	var err error
	nvm.RunSingleTX(a, ethcommon.Address{}, func() error {
		err = a.Mint(big.NewInt(1))
		return err
	})
	assert.ErrorContains(t, err, "only allowed from system")

	var before *big.Int
	nvm.Call(a, ethcommon.Address{}, func() {
		before, _ = a.TotalSupply()
	})
	nvm.RunSingleTX(a, ethcommon.Address{}, func() error {
		err = a.Mint(big.NewInt(100))
		return err
	}, common.TestNVMRunOptionCallFromSystem())
	assert.Nil(t, err)
	nvm.Call(a, ethcommon.Address{}, func() {
		after, _ := a.TotalSupply()
		assert.Equal(t, new(big.Int).Add(before, big.NewInt(100)), after)
	})
}

func TestAsset_Transfer(t *testing.T) {
	nvm, a := prepareAsset(t)
	sender := ethcommon.HexToAddress(repo.DefaultAccountAddrs[0])
	recipient := ethcommon.HexToAddress("0x1000000000000000000000000000000000000001")

	testCases := []struct {
		name      string
		recipient ethcommon.Address
		value     *big.Int
		err       error
	}{
		{name: "negative value", recipient: recipient, value: big.NewInt(-1), err: ErrValue},
		{name: "nil value", recipient: recipient, value: nil, err: ErrValue},
		{name: "zero recipient", recipient: ethcommon.Address{}, value: big.NewInt(1), err: ErrEmptyAccount},
		{name: "exceeds balance", recipient: recipient, value: new(big.Int).Lsh(big.NewInt(1), 200), err: ErrInsufficientBalance},
		{name: "ok", recipient: recipient, value: big.NewInt(1000)},
		{name: "zero value", recipient: recipient, value: big.NewInt(0)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var err error
			nvm.RunSingleTX(a, sender, func() error {
				err = a.Transfer(tc.recipient, tc.value)
				return err
			})
			assert.ErrorIs(t, err, tc.err)
		})
	}

	nvm.Call(a, sender, func() {
		balance, err := a.BalanceOf(recipient)
		assert.Nil(t, err)
		assert.EqualValues(t, 1000, balance.Int64())
	})
}

func TestAsset_TransferEmitsEvent(t *testing.T) {
	nvm, a := prepareAsset(t)
	sender := ethcommon.HexToAddress(repo.DefaultAccountAddrs[0])
	recipient := ethcommon.HexToAddress(repo.DefaultAccountAddrs[1])

	nvm.RunSingleTX(a, sender, func() error {
		return a.Transfer(recipient, big.NewInt(7))
	})
	require.Len(t, nvm.Logs, 1)
	assert.Equal(t, a.Address, nvm.Logs[0].Address)
	assert.Equal(t, a.Abi.Events["Transfer"].ID, nvm.Logs[0].Topics[0])
	assert.Equal(t, ethcommon.BytesToHash(sender.Bytes()), nvm.Logs[0].Topics[1])
	assert.Equal(t, ethcommon.BytesToHash(recipient.Bytes()), nvm.Logs[0].Topics[2])
	assert.Equal(t, big.NewInt(7), new(big.Int).SetBytes(nvm.Logs[0].Data))
}

func TestAsset_ApproveAndTransferFrom(t *testing.T) {
	nvm, a := prepareAsset(t)
	owner := ethcommon.HexToAddress(repo.DefaultAccountAddrs[0])
	spender := ethcommon.HexToAddress(repo.DefaultAccountAddrs[1])
	recipient := ethcommon.HexToAddress("0x1000000000000000000000000000000000000002")

	var err error
	nvm.RunSingleTX(a, owner, func() error {
		err = a.Approve(ethcommon.Address{}, big.NewInt(1))
		return err
	})
	assert.ErrorIs(t, err, ErrEmptyAccount)

	nvm.RunSingleTX(a, owner, func() error {
		err = a.Approve(spender, big.NewInt(100))
		return err
	})
	assert.Nil(t, err)

	nvm.RunSingleTX(a, spender, func() error {
		err = a.TransferFrom(owner, recipient, big.NewInt(101))
		return err
	})
	assert.ErrorIs(t, err, ErrNotEnoughAllowance)

	nvm.RunSingleTX(a, spender, func() error {
		err = a.TransferFrom(owner, recipient, big.NewInt(60))
		return err
	})
	assert.Nil(t, err)

	nvm.Call(a, spender, func() {
		allowance, err := a.Allowance(owner, spender)
		assert.Nil(t, err)
		assert.EqualValues(t, 40, allowance.Int64())

		balance, err := a.BalanceOf(recipient)
		assert.Nil(t, err)
		assert.EqualValues(t, 60, balance.Int64())
	})
}

func TestAsset_TransferFromInsufficientBalance(t *testing.T) {
	nvm, a := prepareAsset(t)
	owner := ethcommon.HexToAddress("0x1000000000000000000000000000000000000003")
	spender := ethcommon.HexToAddress(repo.DefaultAccountAddrs[1])

	var err error
	nvm.RunSingleTX(a, owner, func() error {
		return a.Approve(spender, big.NewInt(100))
	})
	nvm.RunSingleTX(a, spender, func() error {
		err = a.TransferFrom(owner, spender, big.NewInt(10))
		return err
	})
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	nvm.Call(a, spender, func() {
		allowance, err := a.Allowance(owner, spender)
		assert.Nil(t, err)
		assert.EqualValues(t, 100, allowance.Int64())
	})
}
