package main

import (
	"fmt"
	"os"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/axiomesh/axiom-kit/fileutil"
	"github.com/axiomesh/axiom-staking/cmd/axiom-staking/common"
	"github.com/axiomesh/axiom-staking/internal/app"
	"github.com/axiomesh/axiom-staking/internal/executor"
	"github.com/axiomesh/axiom-staking/internal/storagemgr"
	"github.com/axiomesh/axiom-staking/pkg/repo"
)

var ledgerStakesArgs = struct {
	Address string
}{}

var ledgerCMD = &cli.Command{
	Name:  "ledger",
	Usage: "The ledger manage commands(offline, the node must be stopped)",
	Subcommands: []*cli.Command{
		{
			Name:   "info",
			Usage:  "Show the local ledger version, state root and staking totals",
			Action: ledgerInfo,
		},
		{
			Name:   "stakes",
			Usage:  "List the active stakes of an address from the local ledger",
			Action: ledgerStakes,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:        "address",
					Aliases:     []string{"a"},
					Destination: &ledgerStakesArgs.Address,
					Required:    true,
				},
			},
		},
		{
			Name:   "clear",
			Usage:  "Remove the local ledger, genesis is applied again on next start",
			Action: ledgerClear,
		},
	},
}

func prepareExecutor(ctx *cli.Context) (executor.Executor, error) {
	r, err := common.PrepareRepo(ctx)
	if err != nil {
		return nil, err
	}
	lg, err := app.OpenLedger(r)
	if err != nil {
		return nil, err
	}
	return executor.New(r, lg), nil
}

func ledgerInfo(ctx *cli.Context) error {
	exec, err := prepareExecutor(ctx)
	if err != nil {
		return err
	}
	defer storagemgr.Close()

	total, err := exec.TotalStaked(ctx.Context)
	if err != nil {
		return err
	}
	lock, err := exec.DefaultLockInDuration(ctx.Context)
	if err != nil {
		return err
	}
	token, err := exec.Token(ctx.Context)
	if err != nil {
		return err
	}
	return common.Pretty(map[string]any{
		"version":               exec.Version(),
		"state_root":            exec.StateRoot().Hex(),
		"token":                 token.Hex(),
		"total_staked":          total.String(),
		"default_lock_duration": lock,
	})
}

func ledgerStakes(ctx *cli.Context) error {
	if !ethcommon.IsHexAddress(ledgerStakesArgs.Address) {
		return errors.New("invalid address")
	}
	exec, err := prepareExecutor(ctx)
	if err != nil {
		return err
	}
	defer storagemgr.Close()

	stakes, err := exec.GetPersonalStakes(ctx.Context, ethcommon.HexToAddress(ledgerStakesArgs.Address))
	if err != nil {
		return err
	}
	return common.Pretty(stakes)
}

func ledgerClear(ctx *cli.Context) error {
	p, err := common.GetRootPath(ctx)
	if err != nil {
		return err
	}
	storagePath := repo.GetStoragePath(p, storagemgr.Ledger)
	if !fileutil.Exist(storagePath) {
		fmt.Println("ledger not exist")
		return nil
	}
	fmt.Printf("remove %s? (y/n)\n", storagePath)
	if err := common.WaitUserConfirm(); err != nil {
		return err
	}
	if err := os.RemoveAll(storagePath); err != nil {
		return errors.Wrap(err, "remove ledger")
	}
	fmt.Println("ledger removed")
	return nil
}
