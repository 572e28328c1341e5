package executor

import (
	"context"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"

	"github.com/axiomesh/axiom-staking/internal/executor/system/staking"
)

// Receipt describes a committed transaction.
type Receipt struct {
	TxHash    ethcommon.Hash    `json:"txHash"`
	From      ethcommon.Address `json:"from"`
	Method    string            `json:"method"`
	Version   uint64            `json:"version"`
	StateRoot ethcommon.Hash    `json:"stateRoot"`
	Timestamp uint64            `json:"timestamp"`
	Logs      []*ethtypes.Log   `json:"logs"`

	// Ret is the abi encoded result of a raw call
	Ret []byte `json:"ret,omitempty"`
}

type Executor interface {
	Start() error

	Stop() error

	Stake(ctx context.Context, from ethcommon.Address, amount *big.Int, data []byte) (uint64, *Receipt, error)

	StakeFor(ctx context.Context, from, beneficiary ethcommon.Address, amount *big.Int, data []byte) (uint64, *Receipt, error)

	Unstake(ctx context.Context, from ethcommon.Address, stakeID uint64, data []byte) (*Receipt, error)

	UnstakeNext(ctx context.Context, from ethcommon.Address, amount *big.Int, data []byte) (*Receipt, error)

	Approve(ctx context.Context, from, spender ethcommon.Address, amount *big.Int) (*Receipt, error)

	Transfer(ctx context.Context, from, to ethcommon.Address, amount *big.Int) (*Receipt, error)

	// SendRaw executes abi encoded data against the system contract at to and commits it
	SendRaw(ctx context.Context, from, to ethcommon.Address, data []byte) (*Receipt, error)

	// CallRaw executes abi encoded data without keeping any change
	CallRaw(ctx context.Context, from, to ethcommon.Address, data []byte) ([]byte, error)

	TotalStaked(ctx context.Context) (*big.Int, error)

	TotalStakedFor(ctx context.Context, addr ethcommon.Address) (*big.Int, error)

	DefaultLockInDuration(ctx context.Context) (uint64, error)

	Token(ctx context.Context) (ethcommon.Address, error)

	GetStake(ctx context.Context, stakeID uint64) (*staking.StakeEntry, error)

	GetPersonalStakes(ctx context.Context, addr ethcommon.Address) ([]*staking.StakeEntry, error)

	GetBadge(ctx context.Context, holder ethcommon.Address) (level uint64, streakCount uint64, err error)

	GetTotalBadges(ctx context.Context) (uint64, error)

	BadgeOwnerOf(ctx context.Context, tokenID uint64) (ethcommon.Address, error)

	BalanceOf(ctx context.Context, addr ethcommon.Address) (*big.Int, error)

	Allowance(ctx context.Context, owner, spender ethcommon.Address) (*big.Int, error)

	Version() uint64

	StateRoot() ethcommon.Hash

	SubscribeReceiptEvent(ch chan<- *Receipt) event.Subscription

	SubscribeLogsEvent(ch chan<- []*ethtypes.Log) event.Subscription
}
