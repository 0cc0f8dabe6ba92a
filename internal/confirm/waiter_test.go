package confirm

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ava-labs/erc20-bridge-relay/internal/chainclient"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWaiter_WaitsForDepth(t *testing.T) {
	client := chainclient.NewFakeChainClient()
	txHash := common.HexToHash("0xaaaa")
	client.Receipts[txHash] = &types.Receipt{BlockNumber: big.NewInt(10), BlockHash: common.HexToHash("0xb10")}
	client.SetHeadNumber(10)

	w := New(client, zap.NewNop(), 5*time.Millisecond)

	done := make(chan *types.Receipt, 1)
	go func() {
		r, err := w.Wait(context.Background(), txHash, 3)
		require.NoError(t, err)
		done <- r
	}()

	// Not yet confirmed: depth requires head >= 13.
	select {
	case <-done:
		t.Fatal("resolved before confirmation depth was reached")
	case <-time.After(30 * time.Millisecond):
	}

	client.SetHeadNumber(13)

	select {
	case r := <-done:
		require.EqualValues(t, 10, r.BlockNumber.Uint64())
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for confirmation")
	}
}

func TestWaiter_PendingReceiptRetries(t *testing.T) {
	client := chainclient.NewFakeChainClient()
	txHash := common.HexToHash("0xbbbb")
	client.SetHeadNumber(5)

	w := New(client, zap.NewNop(), 5*time.Millisecond)

	done := make(chan *types.Receipt, 1)
	go func() {
		r, err := w.Wait(context.Background(), txHash, 0)
		require.NoError(t, err)
		done <- r
	}()

	select {
	case <-done:
		t.Fatal("resolved before receipt was mined")
	case <-time.After(20 * time.Millisecond):
	}

	client.Receipts[txHash] = &types.Receipt{BlockNumber: big.NewInt(5), BlockHash: common.HexToHash("0xb5")}

	select {
	case r := <-done:
		require.EqualValues(t, 5, r.BlockNumber.Uint64())
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for confirmation")
	}
}

func TestWaiter_CtxCancelAborts(t *testing.T) {
	client := chainclient.NewFakeChainClient()
	w := New(client, zap.NewNop(), 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := w.Wait(ctx, common.HexToHash("0xcccc"), 1)
	require.Error(t, err)
}
