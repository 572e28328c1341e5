package staking

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/axiom-staking/internal/executor"
	"github.com/axiomesh/axiom-staking/pkg/packer"
	"github.com/axiomesh/axiom-staking/pkg/repo"
)

// StakingAPI exposes the staking ledger and the badge issuer under the staking namespace.
// Write methods take the caller address explicitly, the node is operated locally.
type StakingAPI struct {
	rep    *repo.Repo
	exec   executor.Executor
	logger logrus.FieldLogger
}

func NewStakingAPI(rep *repo.Repo, exec executor.Executor, logger logrus.FieldLogger) *StakingAPI {
	return &StakingAPI{rep: rep, exec: exec, logger: logger}
}

func (api *StakingAPI) Stake(ctx context.Context, from common.Address, amount *hexutil.Big, data *hexutil.Bytes) (*StakeResult, error) {
	api.logger.Debugf("staking_stake, from: %s, amount: %s", from, amount)
	id, receipt, err := api.exec.Stake(ctx, from, (*big.Int)(amount), bytesOrEmpty(data))
	if err != nil {
		return nil, rpcError(err)
	}
	return &StakeResult{StakeID: hexutil.Uint64(id), Receipt: NewRPCReceipt(receipt)}, nil
}

func (api *StakingAPI) StakeFor(ctx context.Context, from common.Address, beneficiary common.Address, amount *hexutil.Big, data *hexutil.Bytes) (*StakeResult, error) {
	api.logger.Debugf("staking_stakeFor, from: %s, beneficiary: %s, amount: %s", from, beneficiary, amount)
	id, receipt, err := api.exec.StakeFor(ctx, from, beneficiary, (*big.Int)(amount), bytesOrEmpty(data))
	if err != nil {
		return nil, rpcError(err)
	}
	return &StakeResult{StakeID: hexutil.Uint64(id), Receipt: NewRPCReceipt(receipt)}, nil
}

func (api *StakingAPI) Unstake(ctx context.Context, from common.Address, stakeID hexutil.Uint64, data *hexutil.Bytes) (*RPCReceipt, error) {
	api.logger.Debugf("staking_unstake, from: %s, id: %d", from, stakeID)
	receipt, err := api.exec.Unstake(ctx, from, uint64(stakeID), bytesOrEmpty(data))
	if err != nil {
		return nil, rpcError(err)
	}
	return NewRPCReceipt(receipt), nil
}

func (api *StakingAPI) UnstakeNext(ctx context.Context, from common.Address, amount *hexutil.Big, data *hexutil.Bytes) (*RPCReceipt, error) {
	api.logger.Debugf("staking_unstakeNext, from: %s, amount: %s", from, amount)
	receipt, err := api.exec.UnstakeNext(ctx, from, (*big.Int)(amount), bytesOrEmpty(data))
	if err != nil {
		return nil, rpcError(err)
	}
	return NewRPCReceipt(receipt), nil
}

func (api *StakingAPI) Approve(ctx context.Context, from common.Address, spender common.Address, amount *hexutil.Big) (*RPCReceipt, error) {
	receipt, err := api.exec.Approve(ctx, from, spender, (*big.Int)(amount))
	if err != nil {
		return nil, rpcError(err)
	}
	return NewRPCReceipt(receipt), nil
}

func (api *StakingAPI) Transfer(ctx context.Context, from common.Address, to common.Address, amount *hexutil.Big) (*RPCReceipt, error) {
	receipt, err := api.exec.Transfer(ctx, from, to, (*big.Int)(amount))
	if err != nil {
		return nil, rpcError(err)
	}
	return NewRPCReceipt(receipt), nil
}

// SendRaw executes abi encoded call data against a system contract and commits it.
func (api *StakingAPI) SendRaw(ctx context.Context, from common.Address, to common.Address, data hexutil.Bytes) (*RPCReceipt, error) {
	receipt, err := api.exec.SendRaw(ctx, from, to, data)
	if err != nil {
		return nil, rpcError(err)
	}
	return NewRPCReceipt(receipt), nil
}

// Call executes abi encoded call data against a system contract and drops every change.
func (api *StakingAPI) Call(ctx context.Context, from common.Address, to common.Address, data hexutil.Bytes) (hexutil.Bytes, error) {
	ret, err := api.exec.CallRaw(ctx, from, to, data)
	if err != nil {
		return nil, rpcError(err)
	}
	return ret, nil
}

func (api *StakingAPI) TotalStaked(ctx context.Context) (*hexutil.Big, error) {
	total, err := api.exec.TotalStaked(ctx)
	if err != nil {
		return nil, rpcError(err)
	}
	return (*hexutil.Big)(total), nil
}

func (api *StakingAPI) TotalStakedFor(ctx context.Context, addr common.Address) (*hexutil.Big, error) {
	total, err := api.exec.TotalStakedFor(ctx, addr)
	if err != nil {
		return nil, rpcError(err)
	}
	return (*hexutil.Big)(total), nil
}

func (api *StakingAPI) DefaultLockInDuration(ctx context.Context) (hexutil.Uint64, error) {
	lock, err := api.exec.DefaultLockInDuration(ctx)
	if err != nil {
		return 0, rpcError(err)
	}
	return hexutil.Uint64(lock), nil
}

func (api *StakingAPI) Token(ctx context.Context) (common.Address, error) {
	handle, err := api.exec.Token(ctx)
	if err != nil {
		return common.Address{}, rpcError(err)
	}
	return handle, nil
}

func (api *StakingAPI) GetStake(ctx context.Context, stakeID hexutil.Uint64) (*RPCStake, error) {
	entry, err := api.exec.GetStake(ctx, uint64(stakeID))
	if err != nil {
		return nil, rpcError(err)
	}
	return NewRPCStake(entry), nil
}

func (api *StakingAPI) GetPersonalStakes(ctx context.Context, addr common.Address) ([]*RPCStake, error) {
	entries, err := api.exec.GetPersonalStakes(ctx, addr)
	if err != nil {
		return nil, rpcError(err)
	}
	return newRPCStakes(entries), nil
}

func (api *StakingAPI) GetBadge(ctx context.Context, holder common.Address) (*RPCBadge, error) {
	level, streak, err := api.exec.GetBadge(ctx, holder)
	if err != nil {
		return nil, rpcError(err)
	}
	return &RPCBadge{Holder: holder, Level: hexutil.Uint64(level), StreakCount: hexutil.Uint64(streak)}, nil
}

func (api *StakingAPI) GetTotalBadges(ctx context.Context) (hexutil.Uint64, error) {
	total, err := api.exec.GetTotalBadges(ctx)
	if err != nil {
		return 0, rpcError(err)
	}
	return hexutil.Uint64(total), nil
}

func (api *StakingAPI) BadgeOwnerOf(ctx context.Context, tokenID hexutil.Uint64) (common.Address, error) {
	owner, err := api.exec.BadgeOwnerOf(ctx, uint64(tokenID))
	if err != nil {
		return common.Address{}, rpcError(err)
	}
	return owner, nil
}

func (api *StakingAPI) BalanceOf(ctx context.Context, addr common.Address) (*hexutil.Big, error) {
	balance, err := api.exec.BalanceOf(ctx, addr)
	if err != nil {
		return nil, rpcError(err)
	}
	return (*hexutil.Big)(balance), nil
}

func (api *StakingAPI) Allowance(ctx context.Context, owner common.Address, spender common.Address) (*hexutil.Big, error) {
	allowance, err := api.exec.Allowance(ctx, owner, spender)
	if err != nil {
		return nil, rpcError(err)
	}
	return (*hexutil.Big)(allowance), nil
}

func (api *StakingAPI) Status() *Status {
	return &Status{
		Version:     hexutil.Uint64(api.exec.Version()),
		StateRoot:   api.exec.StateRoot(),
		EnableBadge: api.rep.GenesisConfig.Staking.EnableBadge,
	}
}

// rpcError surfaces the revert error itself, the rpc server only reads code and data from the top level error.
func rpcError(err error) error {
	var revertErr *packer.RevertError
	if errors.As(err, &revertErr) {
		return revertErr
	}
	return err
}

func bytesOrEmpty(data *hexutil.Bytes) []byte {
	if data == nil {
		return []byte{}
	}
	return *data
}
