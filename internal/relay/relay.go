// Package relay implements the coordinator that owns the home and
// side Networks and composes their transfer/anchor streams into three
// concurrent long-running activities sharing one cancellation scope.
package relay

import (
	"context"
	"fmt"

	"github.com/ava-labs/erc20-bridge-relay/internal/chaintypes"
	"github.com/ava-labs/erc20-bridge-relay/internal/network"

	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Relay holds shared references to the home and side Networks; the
// coordinator crosses them so each Network is driven by its own
// producer activity and consumed by its peer's consumer activity.
type Relay struct {
	homechain *network.Network
	sidechain *network.Network
	logger    *zap.Logger

	shuttingDown atomic.Bool
}

// New constructs a Relay over the given homechain and sidechain
// Networks.
func New(homechain, sidechain *network.Network, logger *zap.Logger) *Relay {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Relay{homechain: homechain, sidechain: sidechain, logger: logger}
}

// Listen runs the three concurrent activities (home->side transfer,
// side->home transfer, side->home anchor) until ctx is cancelled or
// any one activity's underlying stream terminates with an error, at
// which point the others are cancelled and Listen returns that error.
func (r *Relay) Listen(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.transferActivity(gctx, r.homechain, r.sidechain)
	})
	g.Go(func() error {
		return r.transferActivity(gctx, r.sidechain, r.homechain)
	})
	g.Go(func() error {
		return r.anchorActivity(gctx, r.sidechain, r.homechain)
	})

	err := g.Wait()
	r.shuttingDown.Store(true)
	return err
}

// ShuttingDown reports whether Listen has begun returning after a
// terminal error or cancellation.
func (r *Relay) ShuttingDown() bool {
	return r.shuttingDown.Load()
}

func (r *Relay) transferActivity(ctx context.Context, source, dest *network.Network) error {
	stream, err := source.TransferStream(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case transfer, ok := <-stream:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("%s transfer stream terminated", source.NetworkType())
			}
			r.logDelivery(source.NetworkType(), dest.NetworkType(), transfer)
			dest.ProcessWithdrawal(ctx, transfer)
		}
	}
}

func (r *Relay) anchorActivity(ctx context.Context, source, dest *network.Network) error {
	stream, err := source.AnchorStream(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case anchor, ok := <-stream:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("%s anchor stream terminated", source.NetworkType())
			}
			dest.Anchor(ctx, anchor)
		}
	}
}

func (r *Relay) logDelivery(from, to chaintypes.NetworkType, transfer chaintypes.Transfer) {
	r.logger.Info("delivering transfer",
		zap.String("from", from.String()),
		zap.String("to", to.String()),
		zap.String("txHash", transfer.TxHash.Hex()),
	)
}
