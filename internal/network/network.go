// Package network implements the per-chain façade binding a
// ChainClient to a token contract and a relay contract: it produces
// the confirmed TransferStream and AnchorStream, and exposes the
// ProcessWithdrawal/Anchor submitters invoked by the peer chain's
// consumer.
package network

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ava-labs/erc20-bridge-relay/internal/chainclient"
	"github.com/ava-labs/erc20-bridge-relay/internal/chaintypes"
	"github.com/ava-labs/erc20-bridge-relay/internal/confirm"
	"github.com/ava-labs/erc20-bridge-relay/internal/metrics"
	"github.com/ava-labs/erc20-bridge-relay/internal/queue"
	"github.com/ava-labs/erc20-bridge-relay/internal/relayerrors"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// Network owns a chain transport, the token and relay contract
// references, and the confirmation depth / anchor cadence governing
// what it emits. Invariant: 0 < Confirmations < AnchorFrequency.
type Network struct {
	networkType chaintypes.NetworkType
	client      chainclient.ChainClient
	waiter      *confirm.Waiter
	logger      *zap.Logger
	metrics     *metrics.Collector

	tokenAddress common.Address
	relayAddress common.Address
	tokenABI     abi.ABI
	relayABI     abi.ABI

	account  common.Address
	password string

	confirmations   uint64
	anchorFrequency uint64

	onActivity func(chaintypes.NetworkType, time.Time)
}

// Config bundles the construction parameters for a Network.
type Config struct {
	Type            chaintypes.NetworkType
	Client          chainclient.ChainClient
	TokenAddress    string
	RelayAddress    string
	Account         string
	Password        string
	Confirmations   uint64
	AnchorFrequency uint64
	Logger          *zap.Logger
	Metrics         *metrics.Collector

	// OnActivity, if set, is called whenever a log or head event is
	// observed, for liveness tracking (see internal/healthz).
	OnActivity func(chaintypes.NetworkType, time.Time)

	// PollInterval overrides the confirmation poll cadence; zero means
	// confirm.DefaultPollInterval.
	PollInterval time.Duration
}

// New validates cfg and constructs a Network.
func New(cfg Config) (*Network, error) {
	if err := relayerrors.ValidateCadence(cfg.Confirmations, cfg.AnchorFrequency); err != nil {
		return nil, err
	}

	tokenAddr, err := chaintypes.ParseAddress(cfg.TokenAddress)
	if err != nil {
		return nil, err
	}
	relayAddr, err := chaintypes.ParseAddress(cfg.RelayAddress)
	if err != nil {
		return nil, err
	}
	account, err := chaintypes.ParseAddress(cfg.Account)
	if err != nil {
		return nil, err
	}

	tokenABI, err := parseABI(erc20ABI)
	if err != nil {
		return nil, relayerrors.InvalidContractAbi(err)
	}
	relayABI, err := parseABI(erc20RelayABI)
	if err != nil {
		return nil, relayerrors.InvalidContractAbi(err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	n := &Network{
		networkType:     cfg.Type,
		client:          cfg.Client,
		logger:          logger.With(zap.String("network", cfg.Type.String())),
		metrics:         cfg.Metrics,
		tokenAddress:    tokenAddr,
		relayAddress:    relayAddr,
		tokenABI:        tokenABI,
		relayABI:        relayABI,
		account:         account,
		password:        cfg.Password,
		confirmations:   cfg.Confirmations,
		anchorFrequency: cfg.AnchorFrequency,
		onActivity:      cfg.OnActivity,
	}
	n.waiter = confirm.New(cfg.Client, n.logger, cfg.PollInterval)
	return n, nil
}

// NetworkType returns Home or Side, for logging and identification.
func (n *Network) NetworkType() chaintypes.NetworkType {
	return n.networkType
}

// TransferStream builds the Transfer log filter, subscribes to it, and
// returns a channel that yields confirmed Transfer records until the
// subscription errors or ctx is cancelled. Per-log confirmation
// subtasks run concurrently; records are delivered in completion
// order, not log arrival order.
func (n *Network) TransferStream(ctx context.Context) (<-chan chaintypes.Transfer, error) {
	filter := ethereum.FilterQuery{
		Addresses: []common.Address{n.tokenAddress},
		Topics: [][]common.Hash{
			{chaintypes.TransferEventSignature},
			nil,
			{n.relayAddress.Hash()},
		},
	}

	logs := make(chan types.Log)
	sub, err := n.client.SubscribeLogs(ctx, filter, logs)
	if err != nil {
		return nil, relayerrors.Transport(err)
	}

	out := queue.NewUnbounded[chaintypes.Transfer]()

	go func() {
		defer sub.Unsubscribe()
		defer out.Close()

		var wg sync.WaitGroup
		defer wg.Wait()

		for {
			select {
			case <-ctx.Done():
				return
			case err := <-sub.Err():
				if err != nil {
					n.logger.Error("error in transfer stream", zap.Error(err))
				}
				return
			case lg, ok := <-logs:
				if !ok {
					return
				}
				if n.onActivity != nil {
					n.onActivity(n.networkType, time.Now())
				}
				n.handleTransferLog(ctx, lg, out, &wg)
			}
		}
	}()

	return out.Out(), nil
}

func (n *Network) handleTransferLog(ctx context.Context, lg types.Log, out *queue.Unbounded[chaintypes.Transfer], wg *sync.WaitGroup) {
	if lg.Removed {
		n.logger.Warn("received removed log, revoke votes", zap.String("txHash", lg.TxHash.Hex()))
		return
	}
	if lg.TxHash == (common.Hash{}) {
		n.logger.Warn("log missing transaction hash")
		return
	}
	if len(lg.Topics) < 3 || lg.Topics[0] != chaintypes.TransferEventSignature || lg.Topics[2] != n.relayAddress.Hash() {
		return
	}
	if len(lg.Data) != 32 {
		n.logger.Warn("log data is not exactly 32 bytes", zap.Int("length", len(lg.Data)))
		return
	}
	amount, err := chaintypes.U256FromBigEndian(lg.Data)
	if err != nil {
		n.logger.Warn("failed to decode transfer amount", zap.Error(err))
		return
	}

	destination := common.BytesToAddress(lg.Topics[2].Bytes())
	txHash := lg.TxHash

	n.logger.Debug("received transfer event, waiting for confirmations", zap.String("txHash", txHash.Hex()))

	wg.Add(1)
	go func() {
		defer wg.Done()
		start := time.Now()
		receipt, err := n.waiter.Wait(ctx, txHash, n.confirmations)
		if n.metrics != nil {
			n.metrics.ConfirmationLatency.WithLabelValues(n.networkType.String()).Observe(time.Since(start).Seconds())
		}
		if err != nil {
			n.logger.Error("error waiting for transfer confirmations", zap.Error(err))
			return
		}
		transfer := chaintypes.Transfer{
			Destination: destination,
			Amount:      *amount,
			TxHash:      txHash,
			BlockHash:   receipt.BlockHash,
			BlockNumber: *new(chaintypes.U256).SetUint64(receipt.BlockNumber.Uint64()),
		}
		n.logger.Debug("transfer event confirmed, approving", zap.String("txHash", txHash.Hex()))
		if n.metrics != nil {
			n.metrics.TransfersEmitted.WithLabelValues(n.networkType.String()).Inc()
		}
		out.Push(transfer)
	}()
}

// AnchorStream subscribes to new heads and returns a channel that
// yields an Anchor for every positive block height that is a multiple
// of AnchorFrequency (block 0 is never anchored), once head height
// reaches that block plus Confirmations.
func (n *Network) AnchorStream(ctx context.Context) (<-chan chaintypes.Anchor, error) {
	heads := make(chan *types.Header)
	sub, err := n.client.SubscribeNewHead(ctx, heads)
	if err != nil {
		return nil, relayerrors.Transport(err)
	}

	out := queue.NewUnbounded[chaintypes.Anchor]()

	go func() {
		defer sub.Unsubscribe()
		defer out.Close()

		var wg sync.WaitGroup
		defer wg.Wait()

		for {
			select {
			case <-ctx.Done():
				return
			case err := <-sub.Err():
				if err != nil {
					n.logger.Error("error in anchor stream", zap.Error(err))
				}
				return
			case head, ok := <-heads:
				if !ok {
					return
				}
				if n.onActivity != nil {
					n.onActivity(n.networkType, time.Now())
				}
				n.handleHead(ctx, head, out, &wg)
			}
		}
	}()

	return out.Out(), nil
}

func (n *Network) handleHead(ctx context.Context, head *types.Header, out *queue.Unbounded[chaintypes.Anchor], wg *sync.WaitGroup) {
	if head == nil || head.Number == nil {
		n.logger.Warn("no block number in block head event")
		return
	}
	blockNumber := head.Number.Uint64()
	if blockNumber < n.anchorFrequency+n.confirmations || blockNumber%n.anchorFrequency != n.confirmations {
		return
	}
	targetHeight := blockNumber - n.confirmations

	wg.Add(1)
	go func() {
		defer wg.Done()
		target, err := n.client.HeaderByNumber(ctx, new(big.Int).SetUint64(targetHeight))
		if err != nil {
			n.logger.Error("error fetching anchor block", zap.Error(err))
			return
		}
		if target.Number == nil {
			n.logger.Warn("no block number in anchor block")
			return
		}
		anchor := chaintypes.Anchor{
			BlockHash:   target.Hash(),
			BlockNumber: *new(chaintypes.U256).SetUint64(target.Number.Uint64()),
		}
		n.logger.Debug("anchor block confirmed, anchoring", zap.Uint64("blockNumber", target.Number.Uint64()))
		if n.metrics != nil {
			n.metrics.AnchorsEmitted.WithLabelValues(n.networkType.String()).Inc()
		}
		out.Push(anchor)
	}()
}

// ProcessWithdrawal unlocks the verifier account and submits
// relay.processWithdrawal(tx_hash, destination, amount) for a Transfer
// observed on the opposite chain. Failures are logged; they do not
// tear down the stream.
func (n *Network) ProcessWithdrawal(ctx context.Context, transfer chaintypes.Transfer) {
	n.logger.Debug("processing withdrawal", zap.String("txHash", transfer.TxHash.Hex()))

	if err := n.client.UnlockAccount(ctx, n.account, n.password, chainclient.DefaultUnlockDuration); err != nil {
		n.logger.Error("failed to unlock account", zap.Error(err))
		n.recordFailure("processWithdrawal")
		return
	}

	amount := transfer.Amount.ToBig()
	data, err := n.relayABI.Pack("processWithdrawal", transfer.TxHash, transfer.Destination, amount)
	if err != nil {
		n.logger.Error("failed to encode processWithdrawal call", zap.Error(err))
		n.recordFailure("processWithdrawal")
		return
	}

	txHash, err := n.client.SubmitContractCall(ctx, n.account, n.relayAddress, data)
	if err != nil {
		n.logger.Error("failed to submit processWithdrawal", zap.Error(err))
		n.recordFailure("processWithdrawal")
		return
	}
	n.logger.Info("submitted processWithdrawal", zap.String("txHash", txHash.Hex()))
}

// Anchor unlocks the verifier account and submits
// relay.anchor(block_hash, block_number) for an Anchor observed on the
// opposite chain.
func (n *Network) Anchor(ctx context.Context, anchor chaintypes.Anchor) {
	n.logger.Debug("anchoring block", zap.String("blockHash", anchor.BlockHash.Hex()))

	if err := n.client.UnlockAccount(ctx, n.account, n.password, chainclient.DefaultUnlockDuration); err != nil {
		n.logger.Error("failed to unlock account", zap.Error(err))
		n.recordFailure("anchor")
		return
	}

	blockNumber := anchor.BlockNumber.ToBig()
	data, err := n.relayABI.Pack("anchor", anchor.BlockHash, blockNumber)
	if err != nil {
		n.logger.Error("failed to encode anchor call", zap.Error(err))
		n.recordFailure("anchor")
		return
	}

	txHash, err := n.client.SubmitContractCall(ctx, n.account, n.relayAddress, data)
	if err != nil {
		n.logger.Error("failed to submit anchor", zap.Error(err))
		n.recordFailure("anchor")
		return
	}
	n.logger.Info("submitted anchor", zap.String("txHash", txHash.Hex()))
}

func (n *Network) recordFailure(kind string) {
	if n.metrics != nil {
		n.metrics.SubmissionFailures.WithLabelValues(n.networkType.String(), kind).Inc()
	}
}
