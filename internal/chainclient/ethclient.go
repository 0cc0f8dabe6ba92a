package chainclient

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// EthClient backs ChainClient with a real WebSocket JSON-RPC
// connection to an Ethereum-compatible node. It wraps both the
// high-level ethclient.Client (for typed subscriptions and lookups)
// and the underlying *rpc.Client (for the personal_* namespace, which
// ethclient does not expose).
type EthClient struct {
	eth *ethclient.Client
	rpc *rpc.Client
}

// Dial opens a WebSocket JSON-RPC connection to uri.
func Dial(ctx context.Context, uri string) (*EthClient, error) {
	rc, err := rpc.DialContext(ctx, uri)
	if err != nil {
		return nil, err
	}
	return &EthClient{eth: ethclient.NewClient(rc), rpc: rc}, nil
}

func (c *EthClient) SubscribeLogs(ctx context.Context, q ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error) {
	return c.eth.SubscribeFilterLogs(ctx, q, ch)
}

func (c *EthClient) SubscribeNewHead(ctx context.Context, ch chan<- *types.Header) (ethereum.Subscription, error) {
	return c.eth.SubscribeNewHead(ctx, ch)
}

func (c *EthClient) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	return c.eth.TransactionReceipt(ctx, txHash)
}

func (c *EthClient) BlockNumber(ctx context.Context) (uint64, error) {
	return c.eth.BlockNumber(ctx)
}

func (c *EthClient) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	return c.eth.HeaderByNumber(ctx, number)
}

func (c *EthClient) UnlockAccount(ctx context.Context, account common.Address, password string, duration uint64) error {
	return c.rpc.CallContext(ctx, nil, "personal_unlockAccount", account, password, duration)
}

func (c *EthClient) SubmitContractCall(ctx context.Context, from, to common.Address, data []byte) (common.Hash, error) {
	args := map[string]interface{}{
		"from": from,
		"to":   to,
		"data": hexutil.Bytes(data),
	}
	var txHash common.Hash
	if err := c.rpc.CallContext(ctx, &txHash, "eth_sendTransaction", args); err != nil {
		return common.Hash{}, err
	}
	return txHash, nil
}

func (c *EthClient) Close() {
	c.eth.Close()
}
