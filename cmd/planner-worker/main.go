package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"planner/internal/amqp"
	"planner/internal/cli"
	"planner/internal/core"
	"planner/internal/ledger"
	"planner/internal/log"
	"planner/internal/sheets"
	gsheet "planner/internal/sheets/google"
	mem "planner/internal/sheets/memory"
	"planner/internal/snapshot"
	"planner/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("Starting planner-worker")

	store, closeStore := cli.OpenKV(logger, cfg)
	defer func() { _ = closeStore() }()

	snapshots := snapshot.NewManager(store)
	budget := ledger.NewStore(store, core.UUIDGenerator{})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Mirror destination: a spreadsheet when configured, otherwise an
	// in-memory mirror so local runs still exercise the full path.
	var mirror sheets.RollupWriter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		mirror = client
		logger.Info("Google Sheets mirror initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		mirror = mem.New()
		logger.Info("Google Sheets disabled - mirroring in memory only")
	}

	syncWorker := worker.NewSyncWorker(snapshots, budget, mirror)

	g, ctx := errgroup.WithContext(ctx)

	if cfg.AMQPURL != "" {
		g.Go(func() error {
			err := amqp.ConsumeWithReconnect(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, func(msg *amqp.SnapshotSyncMessage) error {
				return syncWorker.HandleSyncMessage(ctx, msg)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	} else {
		logger.Info("AMQP disabled - relying on periodic sync only")
	}

	g.Go(func() error {
		err := syncWorker.RunPeriodicSync(ctx, cfg.SyncInterval)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}
