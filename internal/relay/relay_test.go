package relay

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ava-labs/erc20-bridge-relay/internal/chainclient"
	"github.com/ava-labs/erc20-bridge-relay/internal/chaintypes"
	"github.com/ava-labs/erc20-bridge-relay/internal/network"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newNetwork(t *testing.T, typ chaintypes.NetworkType, client *chainclient.FakeChainClient) *network.Network {
	t.Helper()
	client.LogSub = chainclient.NewFakeSubscription()
	client.HeadSub = chainclient.NewFakeSubscription()
	n, err := network.New(network.Config{
		Type:            typ,
		Client:          client,
		TokenAddress:    "0x000000000000000000000000000000000000000a",
		RelayAddress:    "0x000000000000000000000000000000000000000b",
		Account:         "0x000000000000000000000000000000000000000c",
		Confirmations:   1,
		AnchorFrequency: 5,
		PollInterval:    5 * time.Millisecond,
	})
	require.NoError(t, err)
	return n
}

func TestRelay_DeliversTransferAcrossChains(t *testing.T) {
	homeClient := chainclient.NewFakeChainClient()
	sideClient := chainclient.NewFakeChainClient()

	home := newNetwork(t, chaintypes.Home, homeClient)
	side := newNetwork(t, chaintypes.Side, sideClient)

	r := New(home, side, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- r.Listen(ctx) }()

	txHash := common.HexToHash("0x1234")
	homeClient.Receipts[txHash] = &types.Receipt{BlockNumber: big.NewInt(1), BlockHash: common.HexToHash("0xb1")}
	homeClient.SetHeadNumber(2)

	relayAddr := common.HexToAddress("0x000000000000000000000000000000000000000b")
	lg := types.Log{
		Topics: []common.Hash{
			chaintypes.TransferEventSignature,
			common.HexToHash("0xaa"),
			relayAddr.Hash(),
		},
		Data:   amountBytes(42),
		TxHash: txHash,
	}
	go homeClient.LogSub.Deliver(lg)

	require.Eventually(t, func() bool {
		return len(sideClient.SubmitCalls) == 1
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("relay did not shut down after cancellation")
	}
}

func amountBytes(v uint64) []byte {
	data := make([]byte, 32)
	for i := 0; i < 8; i++ {
		data[31-i] = byte(v >> (8 * i))
	}
	return data
}
