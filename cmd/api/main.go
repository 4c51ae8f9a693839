package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fastprodman/playereconomy/internal/adapters/placeholder"
	"github.com/fastprodman/playereconomy/internal/adapters/provider"
	"github.com/fastprodman/playereconomy/internal/api"
	"github.com/fastprodman/playereconomy/internal/infra/logging"
	"github.com/fastprodman/playereconomy/internal/infra/pgutils"
	"github.com/fastprodman/playereconomy/internal/metrics"
	"github.com/fastprodman/playereconomy/internal/notify"
	"github.com/fastprodman/playereconomy/internal/notify/kafka"
	"github.com/fastprodman/playereconomy/internal/repos/accounts"
	"github.com/fastprodman/playereconomy/internal/repos/accounts/memory"
	pgaccounts "github.com/fastprodman/playereconomy/internal/repos/accounts/postgres"
	"github.com/fastprodman/playereconomy/internal/scheduler"
	"github.com/fastprodman/playereconomy/internal/services/interest"
	"github.com/fastprodman/playereconomy/internal/services/leaderboard"
	"github.com/fastprodman/playereconomy/internal/services/ledger"
	"github.com/fastprodman/playereconomy/pkg/envconf"
	"github.com/fastprodman/playereconomy/pkg/shutdownqueue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

//nolint:funlen
func run(ctx context.Context) (retErr error) {
	// A missing .env file is fine; the real environment wins.
	_ = godotenv.Load()

	cfg := new(apiConfig)

	err := envconf.Load(cfg)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	err = cfg.validate()
	if err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	logging.SetupJSON(cfg.LogLevel)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := shutdownqueue.Shutdown(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	// --- Metrics ---
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m, err := metrics.New(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	// --- Infra ---
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	var notifier interest.Notifier = notify.NewLogNotifier(slog.Default())

	if len(cfg.Kafka.Brokers) > 0 {
		pub := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		notifier = pub

		shutdownqueue.Add("kafka publisher", func(context.Context) error {
			return pub.Close()
		})

		slog.Info("interest notifications go to kafka", "topic", cfg.Kafka.Topic)
	}

	// --- Services ---
	eco := cfg.Economy

	led := ledger.New(store, ledger.Settings{
		InitialCash:    eco.InitialCash,
		MinDeposit:     eco.MinDeposit,
		MaxBankBalance: eco.MaxBankBalance,
		CurrencySymbol: eco.CurrencySymbol,
	}, slog.Default(), m)

	board := leaderboard.New(store, eco.LeaderboardDisplayCount, slog.Default(), m)

	jobs := []scheduler.Job{{
		Name:       "leaderboard_refresh",
		Interval:   eco.LeaderboardInterval,
		RunAtStart: true,
		Fn:         board.Refresh,
	}}

	if eco.InterestEnabled {
		engine := interest.New(store, led, notifier, interest.Settings{
			Rate: eco.InterestRate,
			Max:  eco.MaxInterest,
		}, slog.Default(), m)

		jobs = append(jobs, scheduler.Job{
			Name:     "interest_distribution",
			Interval: eco.InterestInterval,
			Fn: func(ctx context.Context) error {
				_, derr := engine.Distribute(ctx)
				return derr
			},
		})
	}

	jobsCtx, stopJobs := context.WithCancel(ctx)
	jobsDone := make(chan error, 1)

	go func() {
		jobsDone <- scheduler.Run(jobsCtx, slog.Default(), jobs...)
	}()

	shutdownqueue.Add("scheduler", func(c context.Context) error {
		stopJobs()

		select {
		case err := <-jobsDone:
			return err
		case <-c.Done():
			return c.Err()
		}
	})

	// --- HTTP server ---
	srv := api.NewServer(cfg.Port, api.Deps{
		Ledger:      led,
		Leaderboard: board,
		Provider:    provider.New(led, eco.CurrencyName),
		Placeholder: placeholder.New(led, board),
		BankEnabled: eco.BankEnabled,
		Metrics:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	// Register HTTP server graceful shutdown
	shutdownqueue.Add("http server", func(c context.Context) error {
		slog.Info("Shut down server")

		err := srv.Shutdown(c)
		if err != nil {
			return fmt.Errorf("shutdown srv: %w", err)
		}

		return nil
	})

	// Run server
	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("API started", "port", cfg.Port, "storage", cfg.Storage)

	// --- Wait until either context cancels or server errors out ---
	select {
	case <-ctx.Done():
		// graceful path; deferred shutdownqueue.Shutdown will run
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}

func openStore(ctx context.Context, cfg *apiConfig) (accounts.Store, error) {
	if cfg.Storage == storageMemory {
		slog.Warn("accounts are kept in memory and lost on restart")
		return memory.New(), nil
	}

	db, err := pgutils.OpenDB(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	shutdownqueue.Add("postgres", func(context.Context) error {
		return db.Close()
	})

	return pgaccounts.New(db), nil
}
