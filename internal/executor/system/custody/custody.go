package custody

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/axiomesh/axiom-staking/internal/executor/system/common"
	"github.com/axiomesh/axiom-staking/internal/executor/system/token"
)

var ErrUnknownAsset = errors.New("unknown asset")

//go:generate mockgen -destination mock_custody/mock_custody.go -package mock_custody -source custody.go -typed
type Adapter interface {
	// Pull moves amount from the account into custody, spending the allowance granted to the holder.
	Pull(from ethcommon.Address, amount *big.Int) error

	// Push moves amount out of custody to the account.
	Push(to ethcommon.Address, amount *big.Int) error

	// Balance returns the custodied balance of the holder.
	Balance() (*big.Int, error)

	AssetHandle() ethcommon.Address
}

var _ Adapter = (*TokenCustody)(nil)

// TokenCustody keeps the asset of the holder in the asset system contract.
type TokenCustody struct {
	holder ethcommon.Address
	handle ethcommon.Address
	asset  *token.Asset
}

// NewTokenCustody binds the custody to ctx, ctx.From is the holder of the custodied balance.
func NewTokenCustody(ctx *common.VMContext, handle ethcommon.Address) *TokenCustody {
	c := &TokenCustody{
		holder: ctx.From,
		handle: handle,
	}
	if handle == token.AssetBuildConfig.EthAddress() {
		c.asset = token.AssetBuildConfig.Build(ctx)
	}
	return c
}

func (c *TokenCustody) Pull(from ethcommon.Address, amount *big.Int) error {
	if c.asset == nil {
		return errors.Wrap(ErrUnknownAsset, c.handle.String())
	}
	return c.asset.TransferFrom(from, c.holder, amount)
}

func (c *TokenCustody) Push(to ethcommon.Address, amount *big.Int) error {
	if c.asset == nil {
		return errors.Wrap(ErrUnknownAsset, c.handle.String())
	}
	return c.asset.Transfer(to, amount)
}

func (c *TokenCustody) Balance() (*big.Int, error) {
	if c.asset == nil {
		return nil, errors.Wrap(ErrUnknownAsset, c.handle.String())
	}
	return c.asset.BalanceOf(c.holder)
}

func (c *TokenCustody) AssetHandle() ethcommon.Address {
	return c.handle
}
