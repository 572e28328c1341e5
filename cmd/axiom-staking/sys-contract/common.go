package sys_contract

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/Rican7/retry"
	"github.com/Rican7/retry/strategy"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/axiomesh/axiom-staking/api/jsonrpc/namespaces/staking"
	"github.com/axiomesh/axiom-staking/pkg/repo"
)

var rpcAddr = "http://127.0.0.1:8881"

var rpcFlag = &cli.StringFlag{
	Name:        "rpc",
	Aliases:     []string{"r"},
	Destination: &rpcAddr,
	Usage:       "rpc server addr",
	Required:    false,
	DefaultText: "http://127.0.0.1:8881",
}

var sender = repo.DefaultAccountAddrs[0]

var senderFlag = &cli.StringFlag{
	Name:        "sender",
	Aliases:     []string{"s"},
	Destination: &sender,
	Usage:       "caller address",
	Required:    false,
	DefaultText: repo.DefaultAccountAddrs[0],
}

const (
	maxQueryRetry   = 3
	queryRetryDelay = 500 * time.Millisecond
)

func dial(ctx *cli.Context) (*rpc.Client, error) {
	if rpcAddr == "" {
		rpcAddr = "http://127.0.0.1:8881"
	}
	client, err := rpc.DialContext(ctx.Context, rpcAddr)
	if err != nil {
		return nil, errors.Wrap(err, "dial rpc failed")
	}
	return client, nil
}

// query calls a read only method, it is retried on transport errors.
func query(ctx context.Context, client *rpc.Client, result any, method string, args ...any) error {
	var callErr error
	if err := retry.Retry(func(attempt uint) error {
		callErr = client.CallContext(ctx, result, method, args...)
		var rpcErr rpc.Error
		if callErr != nil && errors.As(callErr, &rpcErr) {
			// the server answered, retrying can not change the result
			return nil
		}
		return callErr
	}, strategy.Limit(maxQueryRetry), strategy.Wait(queryRetryDelay)); err != nil {
		return errors.Wrapf(err, "%s failed", method)
	}
	return callErr
}

// send calls a state changing method exactly once.
func send(ctx context.Context, client *rpc.Client, result any, method string, args ...any) error {
	if err := client.CallContext(ctx, result, method, args...); err != nil {
		return errors.Wrapf(err, "%s failed", method)
	}
	return nil
}

func senderAddress() (ethcommon.Address, error) {
	if !ethcommon.IsHexAddress(sender) {
		return ethcommon.Address{}, errors.Errorf("invalid sender address %s", sender)
	}
	return ethcommon.HexToAddress(sender), nil
}

func parseAddress(name string, s string) (ethcommon.Address, error) {
	if !ethcommon.IsHexAddress(s) {
		return ethcommon.Address{}, errors.Errorf("invalid %s address %s", name, s)
	}
	return ethcommon.HexToAddress(s), nil
}

// parseAmount accepts a decimal or 0x prefixed hex integer in the smallest asset unit.
func parseAmount(s string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(strings.TrimSpace(s), 0)
	if !ok {
		return nil, errors.Errorf("invalid amount %s", s)
	}
	if amount.Sign() <= 0 {
		return nil, errors.New("amount must be positive")
	}
	return amount, nil
}

func printReceipt(receipt *staking.RPCReceipt) {
	fmt.Printf("tx %s committed, version: %d, events: %d\n", receipt.TxHash.Hex(), uint64(receipt.Version), len(receipt.Logs))
}
