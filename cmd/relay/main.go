// Command relay runs a single two-way ERC20 bridge relay verifier
// process: it subscribes to token-transfer and block-head events on a
// homechain and a sidechain, and votes to release mirrored assets and
// anchor sidechain state once confirmation depth is reached.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ava-labs/erc20-bridge-relay/internal/chainclient"
	"github.com/ava-labs/erc20-bridge-relay/internal/chaintypes"
	"github.com/ava-labs/erc20-bridge-relay/internal/config"
	"github.com/ava-labs/erc20-bridge-relay/internal/healthz"
	"github.com/ava-labs/erc20-bridge-relay/internal/metrics"
	"github.com/ava-labs/erc20-bridge-relay/internal/network"
	"github.com/ava-labs/erc20-bridge-relay/internal/relay"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := pflag.NewFlagSet("relay", pflag.ContinueOnError)
	showVersion := flags.Bool("version", false, "print the version and exit")
	healthAddr := flags.String("health-addr", ":8080", "address to serve /healthz on")
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		fmt.Println(version)
		return 0
	}
	if flags.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: relay <config-file>")
		return 2
	}
	configPath := flags.Arg(0)

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to build logger:", err)
		return 1
	}
	defer logger.Sync()

	settings, err := config.Load(configPath)
	if err != nil {
		logger.Error("failed to load configuration", zap.Error(err))
		return 1
	}
	logger.Info("loaded configuration",
		zap.String("account", settings.Relay.Account),
		zap.Uint64("confirmations", settings.Relay.Confirmations),
		zap.Uint64("anchorFrequency", settings.Relay.AnchorFrequency),
		zap.String("homechainWSURI", settings.Relay.Homechain.WSURI),
		zap.String("sidechainWSURI", settings.Relay.Sidechain.WSURI),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutdown requested")
		cancel()
	}()

	registry := prometheus.NewRegistry()
	metricsCollector := metrics.New(registry)
	tracker := healthz.NewHeadTracker(30 * time.Second)

	homeClient, err := chainclient.Dial(ctx, settings.Relay.Homechain.WSURI)
	if err != nil {
		logger.Error("failed to dial homechain", zap.Error(err))
		return 1
	}
	defer homeClient.Close()

	sideClient, err := chainclient.Dial(ctx, settings.Relay.Sidechain.WSURI)
	if err != nil {
		logger.Error("failed to dial sidechain", zap.Error(err))
		return 1
	}
	defer sideClient.Close()

	homechain, err := network.New(network.Config{
		Type:            chaintypes.Home,
		Client:          homeClient,
		TokenAddress:    settings.Relay.Homechain.Token,
		RelayAddress:    settings.Relay.Homechain.Relay,
		Account:         settings.Relay.Account,
		Password:        settings.Relay.Password,
		Confirmations:   settings.Relay.Confirmations,
		AnchorFrequency: settings.Relay.AnchorFrequency,
		Logger:          logger,
		Metrics:         metricsCollector,
		OnActivity:      tracker.Touch,
	})
	if err != nil {
		logger.Error("failed to construct homechain network", zap.Error(err))
		return 1
	}

	sidechain, err := network.New(network.Config{
		Type:            chaintypes.Side,
		Client:          sideClient,
		TokenAddress:    settings.Relay.Sidechain.Token,
		RelayAddress:    settings.Relay.Sidechain.Relay,
		Account:         settings.Relay.Account,
		Password:        settings.Relay.Password,
		Confirmations:   settings.Relay.Confirmations,
		AnchorFrequency: settings.Relay.AnchorFrequency,
		Logger:          logger,
		Metrics:         metricsCollector,
		OnActivity:      tracker.Touch,
	})
	if err != nil {
		logger.Error("failed to construct sidechain network", zap.Error(err))
		return 1
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.Handle("/healthz", healthz.Handler(tracker, chaintypes.Home, chaintypes.Side))
	healthSrv := &http.Server{Addr: *healthAddr, Handler: mux}
	go func() {
		if err := healthSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Warn("health server stopped", zap.Error(err))
		}
	}()
	defer healthSrv.Close()

	r := relay.New(homechain, sidechain, logger)
	if err := r.Listen(ctx); err != nil && ctx.Err() == nil {
		logger.Error("relay terminated with error", zap.Error(err))
		return 1
	}

	logger.Info("relay shut down cleanly")
	return 0
}
