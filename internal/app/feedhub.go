package app

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/axiom-staking/internal/executor"
	"github.com/axiomesh/axiom-staking/internal/executor/system/badge/solidity/badge_issuer"
	"github.com/axiomesh/axiom-staking/internal/executor/system/badge/solidity/badge_token"
	"github.com/axiomesh/axiom-staking/internal/executor/system/staking/solidity/staking_ledger"
	"github.com/axiomesh/axiom-staking/internal/executor/system/token/solidity/asset"
)

func (axm *AxiomStaking) start() {
	go axm.listenReceipts()
}

// listenReceipts reports every committed transaction with the names of the events it emitted.
func (axm *AxiomStaking) listenReceipts() {
	receiptCh := make(chan *executor.Receipt, 64)
	sub := axm.Executor.SubscribeReceiptEvent(receiptCh)
	defer sub.Unsubscribe()

	for {
		select {
		case <-axm.Ctx.Done():
			return
		case <-sub.Err():
			return
		case receipt := <-receiptCh:
			axm.logger.WithFields(logrus.Fields{
				"tx":      receipt.TxHash,
				"from":    receipt.From,
				"method":  receipt.Method,
				"version": receipt.Version,
				"events":  strings.Join(axm.eventsOf(receipt), ","),
			}).Info("Receipt committed")
		}
	}
}

func (axm *AxiomStaking) eventsOf(receipt *executor.Receipt) []string {
	return lo.FilterMap(receipt.Logs, func(log *ethtypes.Log, _ int) (string, bool) {
		if len(log.Topics) == 0 {
			return "", false
		}
		name, ok := axm.eventNames[log.Topics[0].Hex()]
		if !ok {
			return log.Topics[0].Hex(), true
		}
		return name, true
	})
}

// loadEventNames indexes the events of every system contract by topic.
func loadEventNames() (map[string]string, error) {
	names := make(map[string]string)
	for _, raw := range []string{
		asset.ABI,
		staking_ledger.BindingContractMetaData.ABI,
		badge_token.BindingContractMetaData.ABI,
		badge_issuer.BindingContractMetaData.ABI,
	} {
		contractABI, err := abi.JSON(strings.NewReader(raw))
		if err != nil {
			return nil, err
		}
		for _, event := range contractABI.Events {
			names[event.ID.Hex()] = event.Name
		}
	}
	return names, nil
}
