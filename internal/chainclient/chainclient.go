// Package chainclient defines the opaque duplex transport boundary the
// core streams against: log subscriptions, new-head subscriptions,
// receipt/block lookups, account unlock, and contract-call submission.
// Concrete transaction construction, signing, and receipt handling are
// delegated to the implementation; the core only needs the seven
// operations below.
package chainclient

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ChainClient is the boundary capability a Network is built on. It is
// satisfied by an Ethereum-compatible WebSocket JSON-RPC client, and
// by FakeChainClient and MockChainClient in this package for unit tests.
type ChainClient interface {
	// SubscribeLogs opens an eth_subscribe("logs", filter) stream and
	// forwards matching logs to ch until the subscription errs or is
	// unsubscribed.
	SubscribeLogs(ctx context.Context, q ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error)

	// SubscribeNewHead opens an eth_subscribe("newHeads") stream and
	// forwards new block headers to ch.
	SubscribeNewHead(ctx context.Context, ch chan<- *types.Header) (ethereum.Subscription, error)

	// TransactionReceipt fetches eth_getTransactionReceipt; it returns
	// ethereum.NotFound when the transaction is still pending.
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)

	// BlockNumber fetches the current head height.
	BlockNumber(ctx context.Context) (uint64, error)

	// HeaderByNumber fetches eth_getBlockByNumber(number, false).
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)

	// UnlockAccount calls personal_unlockAccount(account, password,
	// duration) on the node.
	UnlockAccount(ctx context.Context, account common.Address, password string, duration uint64) error

	// SubmitContractCall submits an eth_sendTransaction from the
	// unlocked verifier account to `to` with the given ABI-encoded
	// call data, returning the resulting transaction hash.
	SubmitContractCall(ctx context.Context, from, to common.Address, data []byte) (common.Hash, error)
}

// DefaultUnlockDuration is the bounded unlock window used when
// unlocking the verifier account before a submission.
const DefaultUnlockDuration uint64 = 0xffff
