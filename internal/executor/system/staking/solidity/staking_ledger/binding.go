package staking_ledger

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/axiomesh/axiom-staking/pkg/packer"
)

// BindingContractMetaData contains all meta data concerning the BindingContract contract.
var BindingContractMetaData = struct {
	ABI string
}{
	ABI: `[
	{"anonymous":false,"inputs":[{"indexed":true,"internalType":"address","name":"user","type":"address"},{"indexed":false,"internalType":"uint256","name":"amount","type":"uint256"},{"indexed":false,"internalType":"uint256","name":"total","type":"uint256"},{"indexed":false,"internalType":"bytes","name":"data","type":"bytes"}],"name":"Staked","type":"event"},
	{"anonymous":false,"inputs":[{"indexed":true,"internalType":"address","name":"user","type":"address"},{"indexed":false,"internalType":"uint256","name":"amount","type":"uint256"},{"indexed":false,"internalType":"uint256","name":"total","type":"uint256"},{"indexed":false,"internalType":"bytes","name":"data","type":"bytes"}],"name":"Unstaked","type":"event"},
	{"inputs":[{"internalType":"uint256","name":"amount","type":"uint256"}],"name":"InvalidAmount","type":"error"},
	{"inputs":[{"internalType":"uint64","name":"stakeID","type":"uint64"}],"name":"UnknownStake","type":"error"},
	{"inputs":[{"internalType":"uint64","name":"stakeID","type":"uint64"},{"internalType":"address","name":"caller","type":"address"}],"name":"NotBeneficiary","type":"error"},
	{"inputs":[{"internalType":"uint64","name":"stakeID","type":"uint64"},{"internalType":"uint64","name":"unlockTime","type":"uint64"}],"name":"StillLocked","type":"error"},
	{"inputs":[{"internalType":"uint256","name":"expected","type":"uint256"},{"internalType":"uint256","name":"actual","type":"uint256"}],"name":"AmountMismatch","type":"error"},
	{"inputs":[{"internalType":"uint256","name":"amount","type":"uint256"},{"internalType":"bytes","name":"data","type":"bytes"}],"name":"stake","outputs":[{"internalType":"uint64","name":"","type":"uint64"}],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"internalType":"address","name":"user","type":"address"},{"internalType":"uint256","name":"amount","type":"uint256"},{"internalType":"bytes","name":"data","type":"bytes"}],"name":"stakeFor","outputs":[{"internalType":"uint64","name":"","type":"uint64"}],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"internalType":"uint64","name":"stakeID","type":"uint64"},{"internalType":"bytes","name":"data","type":"bytes"}],"name":"unstake","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"internalType":"uint256","name":"amount","type":"uint256"},{"internalType":"bytes","name":"data","type":"bytes"}],"name":"unstakeNext","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[],"name":"totalStaked","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"address","name":"addr","type":"address"}],"name":"totalStakedFor","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"defaultLockInDuration","outputs":[{"internalType":"uint64","name":"","type":"uint64"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"token","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"uint64","name":"stakeID","type":"uint64"}],"name":"getStake","outputs":[{"components":[{"internalType":"uint64","name":"id","type":"uint64"},{"internalType":"uint64","name":"unlockTime","type":"uint64"},{"internalType":"uint256","name":"amount","type":"uint256"},{"internalType":"address","name":"beneficiary","type":"address"},{"internalType":"address","name":"funder","type":"address"}],"internalType":"struct StakeEntry","name":"","type":"tuple"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"address","name":"addr","type":"address"}],"name":"getPersonalStakeIDs","outputs":[{"internalType":"uint64[]","name":"","type":"uint64[]"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"address","name":"addr","type":"address"}],"name":"getPersonalStakeUnlockedTimestamps","outputs":[{"internalType":"uint64[]","name":"","type":"uint64[]"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"address","name":"addr","type":"address"}],"name":"getPersonalStakeForAddresses","outputs":[{"internalType":"address[]","name":"","type":"address[]"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"address","name":"addr","type":"address"}],"name":"getPersonalStakeActualAmounts","outputs":[{"internalType":"uint256[]","name":"","type":"uint256[]"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"supportsHistory","outputs":[{"internalType":"bool","name":"","type":"bool"}],"stateMutability":"pure","type":"function"}
]`,
}

// EventStaked represents a Staked event raised by the BindingContract contract.
type EventStaked struct {
	User   common.Address
	Amount *big.Int
	Total  *big.Int
	Data   []byte
}

func (_event *EventStaked) Pack(abi abi.ABI) (log *types.Log, err error) {
	return packer.PackEvent(_event, abi.Events["Staked"])
}

// EventUnstaked represents a Unstaked event raised by the BindingContract contract.
type EventUnstaked struct {
	User   common.Address
	Amount *big.Int
	Total  *big.Int
	Data   []byte
}

func (_event *EventUnstaked) Pack(abi abi.ABI) (log *types.Log, err error) {
	return packer.PackEvent(_event, abi.Events["Unstaked"])
}

// ErrorInvalidAmount represents a InvalidAmount error raised by the BindingContract contract.
type ErrorInvalidAmount struct {
	Amount *big.Int
}

func (_error *ErrorInvalidAmount) Pack(abi abi.ABI) error {
	return packer.PackError(_error, abi.Errors["InvalidAmount"])
}

// ErrorUnknownStake represents a UnknownStake error raised by the BindingContract contract.
type ErrorUnknownStake struct {
	StakeID uint64
}

func (_error *ErrorUnknownStake) Pack(abi abi.ABI) error {
	return packer.PackError(_error, abi.Errors["UnknownStake"])
}

// ErrorNotBeneficiary represents a NotBeneficiary error raised by the BindingContract contract.
type ErrorNotBeneficiary struct {
	StakeID uint64
	Caller  common.Address
}

func (_error *ErrorNotBeneficiary) Pack(abi abi.ABI) error {
	return packer.PackError(_error, abi.Errors["NotBeneficiary"])
}

// ErrorStillLocked represents a StillLocked error raised by the BindingContract contract.
type ErrorStillLocked struct {
	StakeID    uint64
	UnlockTime uint64
}

func (_error *ErrorStillLocked) Pack(abi abi.ABI) error {
	return packer.PackError(_error, abi.Errors["StillLocked"])
}

// ErrorAmountMismatch represents a AmountMismatch error raised by the BindingContract contract.
type ErrorAmountMismatch struct {
	Expected *big.Int
	Actual   *big.Int
}

func (_error *ErrorAmountMismatch) Pack(abi abi.ABI) error {
	return packer.PackError(_error, abi.Errors["AmountMismatch"])
}
