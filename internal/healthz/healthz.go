// Package healthz exposes a small HTTP endpoint reporting reactor
// liveness: each Network's last-seen-head timestamp.
package healthz

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/ava-labs/erc20-bridge-relay/internal/chaintypes"

	"github.com/alexliesenfeld/health"
)

// HeadTracker records the last time a head/log event was observed on
// a network, so the health checker can flag a stalled reactor.
type HeadTracker struct {
	mu       sync.Mutex
	lastSeen map[chaintypes.NetworkType]time.Time
	stale    time.Duration
}

// NewHeadTracker constructs a tracker that considers a network stale
// if it has not reported activity within staleAfter.
func NewHeadTracker(staleAfter time.Duration) *HeadTracker {
	return &HeadTracker{lastSeen: make(map[chaintypes.NetworkType]time.Time), stale: staleAfter}
}

// Touch records activity for the network at the current time. It
// matches the signature network.Config.OnActivity expects.
func (t *HeadTracker) Touch(network chaintypes.NetworkType, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastSeen[network] = at
}

func (t *HeadTracker) checkerFor(network chaintypes.NetworkType) health.CheckFunc {
	return func(ctx context.Context) error {
		t.mu.Lock()
		last, ok := t.lastSeen[network]
		t.mu.Unlock()
		if !ok {
			// Not yet observed anything; treat as healthy during startup.
			return nil
		}
		if time.Since(last) > t.stale {
			return errStale(network.String())
		}
		return nil
	}
}

type errStale string

func (e errStale) Error() string {
	return "network " + string(e) + " has not reported activity recently"
}

// Handler builds an HTTP handler exposing /healthz, checking the
// given networks against tracker.
func Handler(tracker *HeadTracker, networks ...chaintypes.NetworkType) http.Handler {
	checks := make([]health.CheckerOption, 0, len(networks))
	for _, n := range networks {
		checks = append(checks, health.WithCheck(health.Check{
			Name:    n.String(),
			Check:   tracker.checkerFor(n),
			Timeout: 2 * time.Second,
		}))
	}
	checker := health.NewChecker(checks...)
	return health.NewHandler(checker)
}
