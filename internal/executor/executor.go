package executor

import (
	"context"
	"encoding/binary"
	"math/big"
	"sync"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/axiom-staking/internal/executor/system"
	sys_common "github.com/axiomesh/axiom-staking/internal/executor/system/common"
	"github.com/axiomesh/axiom-staking/internal/executor/system/staking"
	"github.com/axiomesh/axiom-staking/internal/ledger"
	"github.com/axiomesh/axiom-staking/pkg/loggers"
	"github.com/axiomesh/axiom-staking/pkg/repo"
)

var ErrBadgeDisabled = errors.New("badge issuance is disabled")

var _ Executor = (*StakingExecutor)(nil)

type Option func(exec *StakingExecutor)

// WithClock replaces the wall clock read at the start of every transaction.
func WithClock(clock func() time.Time) Option {
	return func(exec *StakingExecutor) {
		exec.clock = clock
	}
}

// StakingExecutor runs one transaction at a time against the state ledger.
type StakingExecutor struct {
	ledger *ledger.Ledger
	logger logrus.FieldLogger
	rep    *repo.Repo
	nvm    *system.NativeVM
	clock  func() time.Time
	lock   *sync.Mutex

	receiptFeed event.Feed
	logsFeed    event.Feed
	scope       event.SubscriptionScope
}

// New creates executor instance, the ledger must already hold the genesis state.
func New(rep *repo.Repo, lg *ledger.Ledger, opts ...Option) *StakingExecutor {
	exec := &StakingExecutor{
		ledger: lg,
		logger: loggers.Logger(loggers.Executor),
		rep:    rep,
		nvm:    system.New(rep.GenesisConfig),
		clock:  time.Now,
		lock:   &sync.Mutex{},
	}
	for _, opt := range opts {
		opt(exec)
	}
	return exec
}

func (exec *StakingExecutor) Start() error {
	exec.logger.WithFields(logrus.Fields{
		"version": exec.ledger.StateLedger.Version(),
		"root":    exec.ledger.StateLedger.StateRoot().String(),
		"badge":   exec.nvm.Issuer != nil,
	}).Info("Executor started")
	return nil
}

func (exec *StakingExecutor) Stop() error {
	exec.scope.Close()
	exec.logger.Info("Executor stopped")
	return nil
}

func (exec *StakingExecutor) SubscribeReceiptEvent(ch chan<- *Receipt) event.Subscription {
	return exec.scope.Track(exec.receiptFeed.Subscribe(ch))
}

func (exec *StakingExecutor) SubscribeLogsEvent(ch chan<- []*ethtypes.Log) event.Subscription {
	return exec.scope.Track(exec.logsFeed.Subscribe(ch))
}

func (exec *StakingExecutor) Version() uint64 {
	exec.lock.Lock()
	defer exec.lock.Unlock()
	return exec.ledger.StateLedger.Version()
}

func (exec *StakingExecutor) StateRoot() ethcommon.Hash {
	exec.lock.Lock()
	defer exec.lock.Unlock()
	return exec.ledger.StateLedger.StateRoot()
}

// execute runs fn as one transaction: any error reverts every change fn made, success commits them.
func (exec *StakingExecutor) execute(ctx context.Context, from ethcommon.Address, method string, fn func(vmCtx *sys_common.VMContext) ([]byte, error)) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	exec.lock.Lock()
	defer exec.lock.Unlock()

	start := time.Now()
	defer func() {
		executeTxDuration.Observe(time.Since(start).Seconds())
	}()

	stateLedger := exec.ledger.StateLedger
	snapshot := stateLedger.Snapshot()
	vmCtx := sys_common.NewVMContext(stateLedger, from, uint64(exec.clock().Unix()))
	ret, err := fn(vmCtx)
	if err != nil {
		stateLedger.RevertToSnapshot(snapshot)
		txCounter.WithLabelValues(method, "reverted").Inc()
		exec.logger.WithFields(logrus.Fields{
			"from":   from,
			"method": method,
			"err":    err,
		}).Warn("Transaction reverted")
		return nil, err
	}

	stateLedger.Finalise()
	version, root, err := stateLedger.Commit()
	if err != nil {
		txCounter.WithLabelValues(method, "failed").Inc()
		return nil, errors.Wrapf(err, "commit transaction %s", method)
	}

	receipt := &Receipt{
		TxHash:    txHash(from, method, version, root),
		From:      from,
		Method:    method,
		Version:   version,
		StateRoot: root,
		Timestamp: vmCtx.Timestamp,
		Logs:      *vmCtx.Logs,
		Ret:       ret,
	}
	for _, log := range receipt.Logs {
		log.TxHash = receipt.TxHash
		log.BlockNumber = version
	}
	txCounter.WithLabelValues(method, "committed").Inc()
	exec.logger.WithFields(logrus.Fields{
		"from":    from,
		"method":  method,
		"version": version,
		"logs":    len(receipt.Logs),
		"elapse":  time.Since(start),
	}).Info("Transaction committed")

	if len(receipt.Logs) != 0 {
		exec.logsFeed.Send(receipt.Logs)
	}
	exec.receiptFeed.Send(receipt)
	return receipt, nil
}

// call runs fn against the current state and always drops its changes.
func (exec *StakingExecutor) call(ctx context.Context, from ethcommon.Address, fn func(vmCtx *sys_common.VMContext) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	exec.lock.Lock()
	defer exec.lock.Unlock()

	stateLedger := exec.ledger.StateLedger
	snapshot := stateLedger.Snapshot()
	defer stateLedger.RevertToSnapshot(snapshot)
	return fn(sys_common.NewVMContext(stateLedger, from, uint64(exec.clock().Unix())))
}

func txHash(from ethcommon.Address, method string, version uint64, root ethcommon.Hash) ethcommon.Hash {
	return crypto.Keccak256Hash(from.Bytes(), []byte(method), binary.BigEndian.AppendUint64(nil, version), root.Bytes())
}

// stakingTarget routes stake calls through the badge issuer when badges are enabled.
type stakingTarget interface {
	sys_common.SystemContract
	Stake(amount *big.Int, data []byte) (uint64, error)
	StakeFor(beneficiary ethcommon.Address, amount *big.Int, data []byte) (uint64, error)
	Unstake(stakeID uint64, data []byte) error
	UnstakeNext(amount *big.Int, data []byte) error
}

func (exec *StakingExecutor) stakingTarget(vmCtx *sys_common.VMContext) stakingTarget {
	if exec.nvm.Issuer != nil {
		exec.nvm.Issuer.SetContext(vmCtx)
		return exec.nvm.Issuer
	}
	exec.nvm.Staking.SetContext(vmCtx)
	return exec.nvm.Staking
}

func (exec *StakingExecutor) stakingView(vmCtx *sys_common.VMContext) *staking.StakingContract {
	exec.nvm.Staking.SetContext(vmCtx)
	return exec.nvm.Staking
}

func (exec *StakingExecutor) Stake(ctx context.Context, from ethcommon.Address, amount *big.Int, data []byte) (uint64, *Receipt, error) {
	var stakeID uint64
	receipt, err := exec.execute(ctx, from, "stake", func(vmCtx *sys_common.VMContext) ([]byte, error) {
		var err error
		stakeID, err = exec.stakingTarget(vmCtx).Stake(amount, data)
		return nil, err
	})
	if err != nil {
		return 0, nil, err
	}
	return stakeID, receipt, nil
}

func (exec *StakingExecutor) StakeFor(ctx context.Context, from, beneficiary ethcommon.Address, amount *big.Int, data []byte) (uint64, *Receipt, error) {
	var stakeID uint64
	receipt, err := exec.execute(ctx, from, "stakeFor", func(vmCtx *sys_common.VMContext) ([]byte, error) {
		var err error
		stakeID, err = exec.stakingTarget(vmCtx).StakeFor(beneficiary, amount, data)
		return nil, err
	})
	if err != nil {
		return 0, nil, err
	}
	return stakeID, receipt, nil
}

func (exec *StakingExecutor) Unstake(ctx context.Context, from ethcommon.Address, stakeID uint64, data []byte) (*Receipt, error) {
	return exec.execute(ctx, from, "unstake", func(vmCtx *sys_common.VMContext) ([]byte, error) {
		return nil, exec.stakingTarget(vmCtx).Unstake(stakeID, data)
	})
}

func (exec *StakingExecutor) UnstakeNext(ctx context.Context, from ethcommon.Address, amount *big.Int, data []byte) (*Receipt, error) {
	return exec.execute(ctx, from, "unstakeNext", func(vmCtx *sys_common.VMContext) ([]byte, error) {
		return nil, exec.stakingTarget(vmCtx).UnstakeNext(amount, data)
	})
}

func (exec *StakingExecutor) Approve(ctx context.Context, from, spender ethcommon.Address, amount *big.Int) (*Receipt, error) {
	return exec.execute(ctx, from, "approve", func(vmCtx *sys_common.VMContext) ([]byte, error) {
		exec.nvm.Asset.SetContext(vmCtx)
		return nil, exec.nvm.Asset.Approve(spender, amount)
	})
}

func (exec *StakingExecutor) Transfer(ctx context.Context, from, to ethcommon.Address, amount *big.Int) (*Receipt, error) {
	return exec.execute(ctx, from, "transfer", func(vmCtx *sys_common.VMContext) ([]byte, error) {
		exec.nvm.Asset.SetContext(vmCtx)
		return nil, exec.nvm.Asset.Transfer(to, amount)
	})
}

func (exec *StakingExecutor) SendRaw(ctx context.Context, from, to ethcommon.Address, data []byte) (*Receipt, error) {
	return exec.execute(ctx, from, "raw", func(vmCtx *sys_common.VMContext) ([]byte, error) {
		return exec.nvm.Run(vmCtx, to, data)
	})
}

func (exec *StakingExecutor) CallRaw(ctx context.Context, from, to ethcommon.Address, data []byte) (ret []byte, err error) {
	err = exec.call(ctx, from, func(vmCtx *sys_common.VMContext) error {
		var err error
		ret, err = exec.nvm.Run(vmCtx, to, data)
		return err
	})
	return ret, err
}

func (exec *StakingExecutor) TotalStaked(ctx context.Context) (total *big.Int, err error) {
	err = exec.call(ctx, ethcommon.Address{}, func(vmCtx *sys_common.VMContext) error {
		var err error
		total, err = exec.stakingView(vmCtx).TotalStaked()
		return err
	})
	return total, err
}

func (exec *StakingExecutor) TotalStakedFor(ctx context.Context, addr ethcommon.Address) (total *big.Int, err error) {
	err = exec.call(ctx, ethcommon.Address{}, func(vmCtx *sys_common.VMContext) error {
		var err error
		total, err = exec.stakingView(vmCtx).TotalStakedFor(addr)
		return err
	})
	return total, err
}

func (exec *StakingExecutor) DefaultLockInDuration(ctx context.Context) (lock uint64, err error) {
	err = exec.call(ctx, ethcommon.Address{}, func(vmCtx *sys_common.VMContext) error {
		var err error
		lock, err = exec.stakingView(vmCtx).DefaultLockInDuration()
		return err
	})
	return lock, err
}

func (exec *StakingExecutor) Token(ctx context.Context) (handle ethcommon.Address, err error) {
	err = exec.call(ctx, ethcommon.Address{}, func(vmCtx *sys_common.VMContext) error {
		var err error
		handle, err = exec.stakingView(vmCtx).Token()
		return err
	})
	return handle, err
}

func (exec *StakingExecutor) GetStake(ctx context.Context, stakeID uint64) (entry *staking.StakeEntry, err error) {
	err = exec.call(ctx, ethcommon.Address{}, func(vmCtx *sys_common.VMContext) error {
		var err error
		entry, err = exec.stakingView(vmCtx).GetStake(stakeID)
		return err
	})
	return entry, err
}

func (exec *StakingExecutor) GetPersonalStakes(ctx context.Context, addr ethcommon.Address) (entries []*staking.StakeEntry, err error) {
	err = exec.call(ctx, ethcommon.Address{}, func(vmCtx *sys_common.VMContext) error {
		var err error
		entries, err = exec.stakingView(vmCtx).GetPersonalStakes(addr)
		return err
	})
	return entries, err
}

func (exec *StakingExecutor) GetBadge(ctx context.Context, holder ethcommon.Address) (level uint64, streakCount uint64, err error) {
	if exec.nvm.Issuer == nil {
		return 0, 0, ErrBadgeDisabled
	}
	err = exec.call(ctx, ethcommon.Address{}, func(vmCtx *sys_common.VMContext) error {
		var err error
		exec.nvm.Issuer.SetContext(vmCtx)
		level, streakCount, err = exec.nvm.Issuer.GetBadge(holder)
		return err
	})
	return level, streakCount, err
}

func (exec *StakingExecutor) GetTotalBadges(ctx context.Context) (total uint64, err error) {
	if exec.nvm.Issuer == nil {
		return 0, ErrBadgeDisabled
	}
	err = exec.call(ctx, ethcommon.Address{}, func(vmCtx *sys_common.VMContext) error {
		var err error
		exec.nvm.Issuer.SetContext(vmCtx)
		total, err = exec.nvm.Issuer.GetTotalBadges()
		return err
	})
	return total, err
}

func (exec *StakingExecutor) BadgeOwnerOf(ctx context.Context, tokenID uint64) (owner ethcommon.Address, err error) {
	if exec.nvm.Issuer == nil {
		return ethcommon.Address{}, ErrBadgeDisabled
	}
	err = exec.call(ctx, ethcommon.Address{}, func(vmCtx *sys_common.VMContext) error {
		var err error
		exec.nvm.Issuer.SetContext(vmCtx)
		owner, err = exec.nvm.Issuer.OwnerOf(tokenID)
		return err
	})
	return owner, err
}

func (exec *StakingExecutor) BalanceOf(ctx context.Context, addr ethcommon.Address) (balance *big.Int, err error) {
	err = exec.call(ctx, ethcommon.Address{}, func(vmCtx *sys_common.VMContext) error {
		var err error
		exec.nvm.Asset.SetContext(vmCtx)
		balance, err = exec.nvm.Asset.BalanceOf(addr)
		return err
	})
	return balance, err
}

func (exec *StakingExecutor) Allowance(ctx context.Context, owner, spender ethcommon.Address) (allowance *big.Int, err error) {
	err = exec.call(ctx, ethcommon.Address{}, func(vmCtx *sys_common.VMContext) error {
		var err error
		exec.nvm.Asset.SetContext(vmCtx)
		allowance, err = exec.nvm.Asset.Allowance(owner, spender)
		return err
	})
	return allowance, err
}
