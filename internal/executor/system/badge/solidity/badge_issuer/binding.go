package badge_issuer

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
	{"anonymous":false,"inputs":[{"indexed":true,"internalType":"address","name":"holder","type":"address"},{"indexed":true,"internalType":"uint64","name":"tokenId","type":"uint64"},{"indexed":false,"internalType":"uint64","name":"level","type":"uint64"}],"name":"BadgeIssued","type":"event"},
	{"inputs":[{"internalType":"uint256","name":"amount","type":"uint256"},{"internalType":"bytes","name":"data","type":"bytes"}],"name":"stake","outputs":[{"internalType":"uint64","name":"","type":"uint64"}],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"internalType":"address","name":"user","type":"address"},{"internalType":"uint256","name":"amount","type":"uint256"},{"internalType":"bytes","name":"data","type":"bytes"}],"name":"stakeFor","outputs":[{"internalType":"uint64","name":"","type":"uint64"}],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"internalType":"uint64","name":"stakeID","type":"uint64"},{"internalType":"bytes","name":"data","type":"bytes"}],"name":"unstake","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"internalType":"uint256","name":"amount","type":"uint256"},{"internalType":"bytes","name":"data","type":"bytes"}],"name":"unstakeNext","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"internalType":"address","name":"holder","type":"address"}],"name":"getBadge","outputs":[{"internalType":"uint64","name":"level","type":"uint64"},{"internalType":"uint64","name":"streakCount","type":"uint64"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"getTotalBadges","outputs":[{"internalType":"uint64","name":"","type":"uint64"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"uint64","name":"tokenId","type":"uint64"}],"name":"ownerOf","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"}
]`,
}

// EventBadgeIssued represents a BadgeIssued event raised by the BindingContract contract.
type EventBadgeIssued struct {
	Holder  common.Address
	TokenId uint64
	Level   uint64
}

func (_event *EventBadgeIssued) Pack(abi abi.ABI) (log *types.Log, err error) {
	return packer.PackEvent(_event, abi.Events["BadgeIssued"])
}
