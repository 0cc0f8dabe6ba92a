// Package confirm implements the ConfirmationWaiter: given a
// transaction hash and a required confirmation depth, it polls the
// chain client until that many blocks have been built atop the
// transaction's block, then yields the receipt.
package confirm

import (
	"context"
	"errors"
	"time"

	"github.com/ava-labs/erc20-bridge-relay/internal/chainclient"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"
)

// DefaultPollInterval is the polling cadence used when none is given.
const DefaultPollInterval = time.Second

// inFlightCacheSize bounds the LRU used to suppress duplicate
// "already confirming" log lines for a tx hash seen more than once
// (e.g. a resubmitted subscription after a transient disconnect).
const inFlightCacheSize = 1024

// Waiter polls a ChainClient for a transaction receipt and for chain
// head height, resolving once the transaction has accumulated the
// required confirmation depth. It makes no attempt to detect that the
// receipt's block has since been orphaned; this is an accepted
// limitation (see the anchor/transfer confirmation default of 12).
type Waiter struct {
	client       chainclient.ChainClient
	logger       *zap.Logger
	pollInterval time.Duration

	seen *lru.Cache[common.Hash, struct{}]
}

// New constructs a Waiter polling client at pollInterval (defaulting
// to one second when pollInterval is zero).
func New(client chainclient.ChainClient, logger *zap.Logger, pollInterval time.Duration) *Waiter {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	cache, _ := lru.New[common.Hash, struct{}](inFlightCacheSize)
	return &Waiter{client: client, logger: logger, pollInterval: pollInterval, seen: cache}
}

// Wait blocks until the transaction txHash has been mined and buried
// by at least depth subsequent blocks, then returns its receipt.
// Transient RPC errors are retried; ctx cancellation and permanent
// errors abort the wait.
func (w *Waiter) Wait(ctx context.Context, txHash common.Hash, depth uint64) (*types.Receipt, error) {
	if _, ok := w.seen.Get(txHash); ok {
		w.logger.Debug("already confirming transaction", zap.String("txHash", txHash.Hex()))
	} else {
		w.seen.Add(txHash, struct{}{})
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	var receipt *types.Receipt
	for {
		if receipt == nil {
			r, err := w.client.TransactionReceipt(ctx, txHash)
			switch {
			case err == nil:
				receipt = r
			case errors.Is(err, ethereum.NotFound):
				// pending; retry after interval
			case isPermanentRPCError(err):
				return nil, err
			default:
				w.logger.Warn("transient error fetching transaction receipt, retrying", zap.Error(err))
			}
		}

		if receipt != nil {
			head, err := w.client.BlockNumber(ctx)
			switch {
			case err == nil:
				if head >= receipt.BlockNumber.Uint64()+depth {
					return receipt, nil
				}
			case isPermanentRPCError(err):
				return nil, err
			default:
				w.logger.Warn("transient error fetching block number, retrying", zap.Error(err))
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// isPermanentRPCError reports whether err is a JSON-RPC application
// error returned by the node (e.g. a rejected method or malformed
// request), which will not resolve itself by retrying. Network-level
// failures (connection reset, timeout, EOF) are treated as transient
// and retried at the next poll interval instead.
func isPermanentRPCError(err error) bool {
	var rpcErr rpc.Error
	return errors.As(err, &rpcErr)
}
