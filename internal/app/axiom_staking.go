package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/axiomesh/axiom-staking/api/jsonrpc"
	"github.com/axiomesh/axiom-staking/internal/executor"
	"github.com/axiomesh/axiom-staking/internal/ledger"
	"github.com/axiomesh/axiom-staking/internal/ledger/genesis"
	"github.com/axiomesh/axiom-staking/internal/storagemgr"
	"github.com/axiomesh/axiom-staking/pkg/loggers"
	"github.com/axiomesh/axiom-staking/pkg/repo"
)

type AxiomStaking struct {
	Ctx      context.Context
	Cancel   context.CancelFunc
	Repo     *repo.Repo
	logger   logrus.FieldLogger
	Ledger   *ledger.Ledger
	Executor executor.Executor
	Jsonrpc  *jsonrpc.StakingBrokerService

	eventNames map[string]string
}

func PrepareAxiomStaking(rep *repo.Repo) error {
	if err := storagemgr.Initialize(rep.Config.Storage.KvType, rep.Config.Storage.KvCacheSize, rep.Config.Storage.Sync, rep.Config.Monitor.Enable); err != nil {
		return fmt.Errorf("storagemgr initialize: %w", err)
	}
	return nil
}

// OpenLedger opens the persistent ledger and applies the genesis on first start,
// afterwards the genesis stored in the ledger replaces the one read from the repo.
func OpenLedger(rep *repo.Repo) (*ledger.Ledger, error) {
	logger := loggers.Logger(loggers.App)
	lg, err := ledger.NewLedger(rep)
	if err != nil {
		return nil, fmt.Errorf("create ledger: %w", err)
	}

	genesisCfg, err := genesis.GetGenesisConfig(lg)
	if err != nil {
		_ = storagemgr.Close()
		return nil, err
	}
	if genesisCfg == nil {
		if err := genesis.Initialize(rep.GenesisConfig, lg); err != nil {
			_ = storagemgr.Close()
			return nil, err
		}
		logger.WithFields(logrus.Fields{
			"version":    lg.StateLedger.Version(),
			"state_root": lg.StateLedger.StateRoot(),
		}).Info("Initialize genesis")
		return lg, nil
	}
	rep.GenesisConfig = genesisCfg
	return lg, nil
}

func NewAxiomStaking(rep *repo.Repo, ctx context.Context, cancel context.CancelFunc) (*AxiomStaking, error) {
	if err := PrepareAxiomStaking(rep); err != nil {
		return nil, err
	}

	lg, err := OpenLedger(rep)
	if err != nil {
		return nil, err
	}
	return newAxiomStaking(rep, lg, ctx, cancel)
}

func newAxiomStaking(rep *repo.Repo, lg *ledger.Ledger, ctx context.Context, cancel context.CancelFunc) (*AxiomStaking, error) {
	exec := executor.New(rep, lg)
	cbs, err := jsonrpc.NewStakingBrokerService(exec, rep)
	if err != nil {
		return nil, fmt.Errorf("create json-rpc service: %w", err)
	}

	eventNames, err := loadEventNames()
	if err != nil {
		return nil, err
	}

	return &AxiomStaking{
		Ctx:        ctx,
		Cancel:     cancel,
		Repo:       rep,
		logger:     loggers.Logger(loggers.App),
		Ledger:     lg,
		Executor:   exec,
		Jsonrpc:    cbs,
		eventNames: eventNames,
	}, nil
}

func (axm *AxiomStaking) Start() error {
	if err := axm.Executor.Start(); err != nil {
		return fmt.Errorf("executor start: %w", err)
	}

	axm.start()

	if err := axm.Jsonrpc.Start(); err != nil {
		return fmt.Errorf("json-rpc start: %w", err)
	}

	axm.logger.WithFields(logrus.Fields{
		"version":    axm.Executor.Version(),
		"state_root": axm.Executor.StateRoot(),
	}).Infof("%s started", repo.AppName)
	return nil
}

func (axm *AxiomStaking) Stop() error {
	if err := axm.Jsonrpc.Stop(); err != nil {
		return fmt.Errorf("json-rpc stop: %w", err)
	}
	if err := axm.Executor.Stop(); err != nil {
		return fmt.Errorf("executor stop: %w", err)
	}
	axm.Cancel()
	if err := storagemgr.Close(); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}

	axm.logger.Infof("%s stopped", repo.AppName)
	return nil
}
