package sys_contract

import (
	"fmt"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"

	"github.com/axiomesh/axiom-staking/api/jsonrpc/namespaces/staking"
	syscommon "github.com/axiomesh/axiom-staking/internal/executor/system/common"
)

var AssetCMDArgs = struct {
	To      string
	Spender string
	Amount  string
	Address string
}{}

var AssetCMD = &cli.Command{
	Name:  "asset",
	Usage: "The staked asset commands",
	Flags: []cli.Flag{
		rpcFlag,
	},
	Subcommands: []*cli.Command{
		{
			Name:   "approve",
			Usage:  "Approve a spender, the staking contract by default",
			Action: AssetActions{}.approve,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:        "spender",
					Destination: &AssetCMDArgs.Spender,
					Value:       syscommon.StakingContractAddr,
					Required:    false,
				},
				&cli.StringFlag{
					Name:        "amount",
					Destination: &AssetCMDArgs.Amount,
					Required:    true,
				},
				senderFlag,
			},
		},
		{
			Name:   "transfer",
			Usage:  "Transfer asset to an address",
			Action: AssetActions{}.transfer,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:        "to",
					Destination: &AssetCMDArgs.To,
					Required:    true,
				},
				&cli.StringFlag{
					Name:        "amount",
					Destination: &AssetCMDArgs.Amount,
					Required:    true,
				},
				senderFlag,
			},
		},
		{
			Name:   "balance",
			Usage:  "Show the asset balance of an address",
			Action: AssetActions{}.balance,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:        "address",
					Aliases:     []string{"a"},
					Destination: &AssetCMDArgs.Address,
					Required:    true,
				},
			},
		},
	},
}

type AssetActions struct {
}

func (a AssetActions) approve(ctx *cli.Context) error {
	from, err := senderAddress()
	if err != nil {
		return err
	}
	spender, err := parseAddress("spender", AssetCMDArgs.Spender)
	if err != nil {
		return err
	}
	amount, err := parseAmount(AssetCMDArgs.Amount)
	if err != nil {
		return err
	}
	client, err := dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	var receipt staking.RPCReceipt
	if err := send(ctx.Context, client, &receipt, "staking_approve", from, spender, (*hexutil.Big)(amount)); err != nil {
		return err
	}
	printReceipt(&receipt)
	return nil
}

func (a AssetActions) transfer(ctx *cli.Context) error {
	from, err := senderAddress()
	if err != nil {
		return err
	}
	to, err := parseAddress("receiver", AssetCMDArgs.To)
	if err != nil {
		return err
	}
	amount, err := parseAmount(AssetCMDArgs.Amount)
	if err != nil {
		return err
	}
	client, err := dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	var receipt staking.RPCReceipt
	if err := send(ctx.Context, client, &receipt, "staking_transfer", from, to, (*hexutil.Big)(amount)); err != nil {
		return err
	}
	printReceipt(&receipt)
	return nil
}

func (a AssetActions) balance(ctx *cli.Context) error {
	addr, err := parseAddress("query", AssetCMDArgs.Address)
	if err != nil {
		return err
	}
	client, err := dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	var balance hexutil.Big
	if err := query(ctx.Context, client, &balance, "staking_balanceOf", addr); err != nil {
		return err
	}
	var allowance hexutil.Big
	stakingAddr := ethcommon.HexToAddress(syscommon.StakingContractAddr)
	if err := query(ctx.Context, client, &allowance, "staking_allowance", addr, stakingAddr); err != nil {
		return err
	}
	fmt.Printf("balance: %s\nallowance to staking: %s\n", balance.ToInt().String(), allowance.ToInt().String())
	return nil
}
