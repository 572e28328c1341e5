package badge_token

import (
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
	{"anonymous":false,"inputs":[{"indexed":true,"internalType":"address","name":"from","type":"address"},{"indexed":true,"internalType":"address","name":"to","type":"address"},{"indexed":true,"internalType":"uint64","name":"tokenId","type":"uint64"}],"name":"Transfer","type":"event"},
	{"inputs":[],"name":"TransferRejected","type":"error"},
	{"inputs":[{"internalType":"uint64","name":"tokenId","type":"uint64"}],"name":"UnknownOwnershipRecord","type":"error"},
	{"inputs":[{"internalType":"address","name":"caller","type":"address"}],"name":"Unauthorized","type":"error"},
	{"inputs":[],"name":"name","outputs":[{"internalType":"string","name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"symbol","outputs":[{"internalType":"string","name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"address","name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"internalType":"uint64","name":"","type":"uint64"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"uint64","name":"tokenId","type":"uint64"}],"name":"ownerOf","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"totalMinted","outputs":[{"internalType":"uint64","name":"","type":"uint64"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"address","name":"from","type":"address"},{"internalType":"address","name":"to","type":"address"},{"internalType":"uint64","name":"tokenId","type":"uint64"}],"name":"transferFrom","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"internalType":"address","name":"from","type":"address"},{"internalType":"address","name":"to","type":"address"},{"internalType":"uint64","name":"tokenId","type":"uint64"},{"internalType":"bytes","name":"data","type":"bytes"}],"name":"safeTransferFrom","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"internalType":"address","name":"to","type":"address"},{"internalType":"uint64","name":"tokenId","type":"uint64"}],"name":"approve","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"internalType":"address","name":"operator","type":"address"},{"internalType":"bool","name":"approved","type":"bool"}],"name":"setApprovalForAll","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`,
}

// EventTransfer represents a Transfer event raised by the BindingContract contract.
type EventTransfer struct {
	From    common.Address
	To      common.Address
	TokenId uint64
}

func (_event *EventTransfer) Pack(abi abi.ABI) (log *types.Log, err error) {
	return packer.PackEvent(_event, abi.Events["Transfer"])
}

// ErrorTransferRejected represents a TransferRejected error raised by the BindingContract contract.
type ErrorTransferRejected struct {
}

func (_error *ErrorTransferRejected) Pack(abi abi.ABI) error {
	return packer.PackError(_error, abi.Errors["TransferRejected"])
}

// ErrorUnknownOwnershipRecord represents a UnknownOwnershipRecord error raised by the BindingContract contract.
type ErrorUnknownOwnershipRecord struct {
	TokenId uint64
}

func (_error *ErrorUnknownOwnershipRecord) Pack(abi abi.ABI) error {
	return packer.PackError(_error, abi.Errors["UnknownOwnershipRecord"])
}

// ErrorUnauthorized represents a Unauthorized error raised by the BindingContract contract.
type ErrorUnauthorized struct {
	Caller common.Address
}

func (_error *ErrorUnauthorized) Pack(abi abi.ABI) error {
	return packer.PackError(_error, abi.Errors["Unauthorized"])
}
