package sys_contract

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"

	"github.com/axiomesh/axiom-staking/api/jsonrpc/namespaces/staking"
	"github.com/axiomesh/axiom-staking/cmd/axiom-staking/common"
)

var StakingCMDStakeArgs = struct {
	Beneficiary string
	Amount      string
	Data        string
}{}

var StakingCMDUnstakeArgs = struct {
	StakeID uint64
	Data    string
}{}

var StakingCMDUnstakeNextArgs = struct {
	Amount string
	Data   string
}{}

var StakingCMDQueryArgs = struct {
	Address string
	StakeID uint64
}{}

func dataFlag(dest *string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "data",
		Usage:       "auxiliary data echoed in the event, utf8 string",
		Destination: dest,
		Required:    false,
	}
}

var StakingCMD = &cli.Command{
	Name:  "staking",
	Usage: "The staking ledger commands",
	Flags: []cli.Flag{
		rpcFlag,
	},
	Subcommands: []*cli.Command{
		{
			Name:   "stake",
			Usage:  "Lock an amount for the sender, the staking contract must be approved first",
			Action: StakingActions{}.stake,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:        "amount",
					Destination: &StakingCMDStakeArgs.Amount,
					Required:    true,
				},
				dataFlag(&StakingCMDStakeArgs.Data),
				senderFlag,
			},
		},
		{
			Name:   "stake-for",
			Usage:  "Lock an amount of the sender for a beneficiary",
			Action: StakingActions{}.stakeFor,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:        "beneficiary",
					Destination: &StakingCMDStakeArgs.Beneficiary,
					Required:    true,
				},
				&cli.StringFlag{
					Name:        "amount",
					Destination: &StakingCMDStakeArgs.Amount,
					Required:    true,
				},
				dataFlag(&StakingCMDStakeArgs.Data),
				senderFlag,
			},
		},
		{
			Name:   "unstake",
			Usage:  "Release an unlocked stake by id",
			Action: StakingActions{}.unstake,
			Flags: []cli.Flag{
				&cli.Uint64Flag{
					Name:        "stake-id",
					Destination: &StakingCMDUnstakeArgs.StakeID,
					Required:    true,
				},
				dataFlag(&StakingCMDUnstakeArgs.Data),
				senderFlag,
			},
		},
		{
			Name:   "unstake-next",
			Usage:  "Release the oldest stake of the sender, amount must match it exactly",
			Action: StakingActions{}.unstakeNext,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:        "amount",
					Destination: &StakingCMDUnstakeNextArgs.Amount,
					Required:    true,
				},
				dataFlag(&StakingCMDUnstakeNextArgs.Data),
				senderFlag,
			},
		},
		{
			Name:   "info",
			Usage:  "Show staking totals and config",
			Action: StakingActions{}.info,
		},
		{
			Name:   "stakes",
			Usage:  "List the active stakes of an address",
			Action: StakingActions{}.stakes,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:        "address",
					Aliases:     []string{"a"},
					Destination: &StakingCMDQueryArgs.Address,
					Required:    true,
				},
			},
		},
		{
			Name:   "stake-info",
			Usage:  "Show a stake by id",
			Action: StakingActions{}.stakeInfo,
			Flags: []cli.Flag{
				&cli.Uint64Flag{
					Name:        "stake-id",
					Destination: &StakingCMDQueryArgs.StakeID,
					Required:    true,
				},
			},
		},
		{
			Name:   "badge",
			Usage:  "Show the badge level and streak of an address",
			Action: StakingActions{}.badge,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:        "address",
					Aliases:     []string{"a"},
					Destination: &StakingCMDQueryArgs.Address,
					Required:    true,
				},
			},
		},
	},
}

type StakingActions struct {
}

func (a StakingActions) stake(ctx *cli.Context) error {
	from, err := senderAddress()
	if err != nil {
		return err
	}
	amount, err := parseAmount(StakingCMDStakeArgs.Amount)
	if err != nil {
		return err
	}
	client, err := dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	var res staking.StakeResult
	data := hexutil.Bytes(StakingCMDStakeArgs.Data)
	if err := send(ctx.Context, client, &res, "staking_stake", from, (*hexutil.Big)(amount), data); err != nil {
		return err
	}
	printReceipt(res.Receipt)
	fmt.Printf("stake id: %d\n", uint64(res.StakeID))
	return nil
}

func (a StakingActions) stakeFor(ctx *cli.Context) error {
	from, err := senderAddress()
	if err != nil {
		return err
	}
	beneficiary, err := parseAddress("beneficiary", StakingCMDStakeArgs.Beneficiary)
	if err != nil {
		return err
	}
	amount, err := parseAmount(StakingCMDStakeArgs.Amount)
	if err != nil {
		return err
	}
	client, err := dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	var res staking.StakeResult
	data := hexutil.Bytes(StakingCMDStakeArgs.Data)
	if err := send(ctx.Context, client, &res, "staking_stakeFor", from, beneficiary, (*hexutil.Big)(amount), data); err != nil {
		return err
	}
	printReceipt(res.Receipt)
	fmt.Printf("stake id: %d\n", uint64(res.StakeID))
	return nil
}

func (a StakingActions) unstake(ctx *cli.Context) error {
	from, err := senderAddress()
	if err != nil {
		return err
	}
	client, err := dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	var receipt staking.RPCReceipt
	data := hexutil.Bytes(StakingCMDUnstakeArgs.Data)
	if err := send(ctx.Context, client, &receipt, "staking_unstake", from, hexutil.Uint64(StakingCMDUnstakeArgs.StakeID), data); err != nil {
		return err
	}
	printReceipt(&receipt)
	return nil
}

func (a StakingActions) unstakeNext(ctx *cli.Context) error {
	from, err := senderAddress()
	if err != nil {
		return err
	}
	amount, err := parseAmount(StakingCMDUnstakeNextArgs.Amount)
	if err != nil {
		return err
	}
	client, err := dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	var receipt staking.RPCReceipt
	data := hexutil.Bytes(StakingCMDUnstakeNextArgs.Data)
	if err := send(ctx.Context, client, &receipt, "staking_unstakeNext", from, (*hexutil.Big)(amount), data); err != nil {
		return err
	}
	printReceipt(&receipt)
	return nil
}

func (a StakingActions) info(ctx *cli.Context) error {
	client, err := dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	var (
		total  hexutil.Big
		lock   hexutil.Uint64
		status staking.Status
		token  string
	)
	if err := query(ctx.Context, client, &total, "staking_totalStaked"); err != nil {
		return err
	}
	if err := query(ctx.Context, client, &lock, "staking_defaultLockInDuration"); err != nil {
		return err
	}
	if err := query(ctx.Context, client, &token, "staking_token"); err != nil {
		return err
	}
	if err := query(ctx.Context, client, &status, "staking_status"); err != nil {
		return err
	}
	return common.Pretty(map[string]any{
		"total_staked":          total.ToInt().String(),
		"default_lock_duration": uint64(lock),
		"token":                 token,
		"enable_badge":          status.EnableBadge,
		"version":               uint64(status.Version),
		"state_root":            status.StateRoot.Hex(),
	})
}

func (a StakingActions) stakes(ctx *cli.Context) error {
	addr, err := parseAddress("query", StakingCMDQueryArgs.Address)
	if err != nil {
		return err
	}
	client, err := dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	var (
		stakes []*staking.RPCStake
		total  hexutil.Big
	)
	if err := query(ctx.Context, client, &stakes, "staking_getPersonalStakes", addr); err != nil {
		return err
	}
	if err := query(ctx.Context, client, &total, "staking_totalStakedFor", addr); err != nil {
		return err
	}
	fmt.Printf("total staked for %s: %s\n", addr.Hex(), total.ToInt().String())
	return common.Pretty(stakes)
}

func (a StakingActions) stakeInfo(ctx *cli.Context) error {
	client, err := dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	var stake staking.RPCStake
	if err := query(ctx.Context, client, &stake, "staking_getStake", hexutil.Uint64(StakingCMDQueryArgs.StakeID)); err != nil {
		return err
	}
	return common.Pretty(stake)
}

func (a StakingActions) badge(ctx *cli.Context) error {
	addr, err := parseAddress("query", StakingCMDQueryArgs.Address)
	if err != nil {
		return err
	}
	client, err := dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	var (
		badge staking.RPCBadge
		total hexutil.Uint64
	)
	if err := query(ctx.Context, client, &badge, "staking_getBadge", addr); err != nil {
		return err
	}
	if err := query(ctx.Context, client, &total, "staking_getTotalBadges"); err != nil {
		return err
	}
	fmt.Printf("total badges issued: %d\n", uint64(total))
	return common.Pretty(badge)
}
