package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gabapcia/orchwatch/internal/handlers/cli"
	"github.com/gabapcia/orchwatch/internal/infra/ledger/ethereum"
	"github.com/gabapcia/orchwatch/internal/infra/notifier/telegram"
	"github.com/gabapcia/orchwatch/internal/infra/storage/pebble"
	"github.com/gabapcia/orchwatch/internal/infra/storage/redis"
	"github.com/gabapcia/orchwatch/internal/pkg/config"
	"github.com/gabapcia/orchwatch/internal/pkg/logger"
	"github.com/gabapcia/orchwatch/internal/pkg/resilience/retry"
	"github.com/gabapcia/orchwatch/internal/pkg/telemetry"
	transporthttp "github.com/gabapcia/orchwatch/internal/pkg/transport/http"
	"github.com/gabapcia/orchwatch/internal/rewardwatch"
	"github.com/gabapcia/orchwatch/internal/subscription"
)

const (
	serviceName    = "orchwatch"
	serviceVersion = "0.1.0"
)

// store is implemented by both storage backends.
type store interface {
	subscription.Storage
	rewardwatch.CheckpointStorage
	rewardwatch.AccumulatorStorage
	io.Closer
}

func openStore(ctx context.Context, cfg config.Storage) (store, error) {
	switch cfg.Driver {
	case "pebble":
		return pebble.Open(cfg.PebbleDir)
	default:
		return redis.NewClient(ctx, cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword, cfg.RedisDB)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	shutdownTelemetry := telemetry.ShutdownFunc(telemetry.Noop)
	if cfg.TelemetryEnabled {
		if shutdownTelemetry, err = telemetry.Init(ctx, serviceName, serviceVersion); err != nil {
			return fmt.Errorf("init telemetry: %w", err)
		}
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := shutdownTelemetry(ctx); err != nil {
			logger.Error(ctx, "failed to shutdown telemetry", "error", err)
		}
	}()

	st, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Storage.Driver, err)
	}
	defer st.Close()

	var (
		contracts = rewardwatch.Contracts{
			BondingManager: common.HexToAddress(cfg.Ledger.BondingManager),
			RoundsManager:  common.HexToAddress(cfg.Ledger.RoundsManager),
			TicketBroker:   common.HexToAddress(cfg.Ledger.TicketBroker),
		}
		ledgerRetry = retry.New(retry.WithAttempts(cfg.Ledger.RetryAttempts), retry.WithDelay(cfg.Ledger.RetryDelay))
		rpcClient   = transporthttp.NewClient(transporthttp.WithRetryLogging()).StandardClient()
	)

	source, err := ethereum.Dial(ctx, cfg.Ledger.SourceRPCURL, rpcClient, contracts, ledgerRetry)
	if err != nil {
		return fmt.Errorf("connect source chain: %w", err)
	}

	secondary, err := ethereum.Dial(ctx, cfg.Ledger.SecondaryRPCURL, rpcClient, rewardwatch.Contracts{}, ledgerRetry)
	if err != nil {
		return fmt.Errorf("connect secondary chain: %w", err)
	}

	notifier := telegram.NewClient(
		transporthttp.NewClient(transporthttp.WithTimeout(cfg.Telegram.Timeout), transporthttp.WithRetryLogging()),
		cfg.Telegram.APIURL,
		cfg.Telegram.BotToken,
	)

	watcher := rewardwatch.New(
		rewardwatch.Dependencies{
			Ledger:        source,
			Secondary:     secondary,
			Contracts:     contracts,
			Subscriptions: st,
			Checkpoints:   st,
			Accumulators:  st,
			Notifier:      notifier,
		},
		rewardwatch.WithPollInterval(cfg.Watcher.PollInterval),
		rewardwatch.WithLagThreshold(cfg.Watcher.LagThreshold),
		rewardwatch.WithRoundLength(cfg.Watcher.RoundLength),
		rewardwatch.WithSendPause(cfg.Watcher.SendPause),
		rewardwatch.WithExplorerURL(cfg.Watcher.ExplorerURL),
		rewardwatch.WithOperator(cfg.Telegram.OperatorChatID),
	)

	subscriptions := subscription.New(st, subscription.WithRegistrationChecker(source))

	return cli.Run(ctx, watcher, subscriptions, st)
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
