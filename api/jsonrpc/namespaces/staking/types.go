package staking

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/samber/lo"

	"github.com/axiomesh/axiom-staking/internal/executor"
	"github.com/axiomesh/axiom-staking/internal/executor/system/staking"
)

type RPCStake struct {
	ID          hexutil.Uint64 `json:"id"`
	UnlockTime  hexutil.Uint64 `json:"unlockTime"`
	Amount      *hexutil.Big   `json:"amount"`
	Beneficiary common.Address `json:"beneficiary"`
	Funder      common.Address `json:"funder"`
}

func NewRPCStake(entry *staking.StakeEntry) *RPCStake {
	return &RPCStake{
		ID:          hexutil.Uint64(entry.ID),
		UnlockTime:  hexutil.Uint64(entry.UnlockTime),
		Amount:      (*hexutil.Big)(entry.Amount),
		Beneficiary: entry.Beneficiary,
		Funder:      entry.Funder,
	}
}

type RPCBadge struct {
	Holder      common.Address `json:"holder"`
	Level       hexutil.Uint64 `json:"level"`
	StreakCount hexutil.Uint64 `json:"streakCount"`
}

type RPCReceipt struct {
	TxHash    common.Hash     `json:"txHash"`
	From      common.Address  `json:"from"`
	Method    string          `json:"method"`
	Version   hexutil.Uint64  `json:"version"`
	StateRoot common.Hash     `json:"stateRoot"`
	Timestamp hexutil.Uint64  `json:"timestamp"`
	Logs      []*ethtypes.Log `json:"logs"`
	Ret       hexutil.Bytes   `json:"ret,omitempty"`
}

func NewRPCReceipt(receipt *executor.Receipt) *RPCReceipt {
	logs := receipt.Logs
	if logs == nil {
		logs = []*ethtypes.Log{}
	}
	return &RPCReceipt{
		TxHash:    receipt.TxHash,
		From:      receipt.From,
		Method:    receipt.Method,
		Version:   hexutil.Uint64(receipt.Version),
		StateRoot: receipt.StateRoot,
		Timestamp: hexutil.Uint64(receipt.Timestamp),
		Logs:      logs,
		Ret:       receipt.Ret,
	}
}

// StakeResult is returned by stake and stakeFor.
type StakeResult struct {
	StakeID hexutil.Uint64 `json:"stakeId"`
	Receipt *RPCReceipt    `json:"receipt"`
}

type Status struct {
	Version     hexutil.Uint64 `json:"version"`
	StateRoot   common.Hash    `json:"stateRoot"`
	EnableBadge bool           `json:"enableBadge"`
}

func newRPCStakes(entries []*staking.StakeEntry) []*RPCStake {
	return lo.Map(entries, func(entry *staking.StakeEntry, _ int) *RPCStake {
		return NewRPCStake(entry)
	})
}
