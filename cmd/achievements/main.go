// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command achievements is the operator tool for the achievement engine:
// seeding definitions, editing tiers and running calculations outside the
// HTTP server (cron jobs, backfills).
//
// Calculation commands take the same Redis lock as the HTTP triggers, so a
// scheduled run and an admin request never overlap.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/mediatrack/internal/achievement"
	"github.com/taibuivan/mediatrack/internal/activity"
	"github.com/taibuivan/mediatrack/internal/media"
	"github.com/taibuivan/mediatrack/internal/platform/config"
	"github.com/taibuivan/mediatrack/internal/platform/constants"
	"github.com/taibuivan/mediatrack/internal/platform/migration"
	pgstore "github.com/taibuivan/mediatrack/internal/platform/postgres"
	redisstore "github.com/taibuivan/mediatrack/internal/platform/redis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run parses the command, wires its dependencies and executes it.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd, err := parseCommand(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName), slog.String("command", cmd.name))
	slog.SetDefault(log)

	if cmd.name == "migrate" {
		return migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log)
	}

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	rdb, err := redisstore.NewClient(ctx, cfg.RedisURL, log)
	if err != nil {
		return err
	}
	defer rdb.Close()

	calculators, err := achievement.NewCalculatorRegistry(media.NewRegistry())
	if err != nil {
		return err
	}

	repository := achievement.NewPostgresRepository(pool)
	engine := achievement.NewEngine(
		repository,
		achievement.NewPostgresProgressStore(pool, cfg.InsertChunkSize),
		calculators,
		activity.NewTracker(activity.NewRedisStore(rdb), log, activity.Options{}),
		log,
		achievement.EngineOptions{Workers: cfg.AchievementWorkers, ActivityWindow: cfg.ActivityWindow},
	)

	a := &app{
		service: achievement.NewService(repository, engine, calculators, log),
		lock:    redisstore.NewLocker(rdb, cfg.CalculationLockTTL),
		stdout:  stdout,
		stderr:  stderr,
	}
	return execute(ctx, cmd, a)
}

// execute runs cmd, holding its lock when it names one.
func execute(ctx context.Context, cmd command, a *app) error {
	if cmd.lock != "" && a.lock != nil {
		release, err := a.lock.Acquire(ctx, cmd.lock)
		if errors.Is(err, redisstore.ErrLocked) {
			return fmt.Errorf("%s: another calculation is running", cmd.name)
		}
		if err != nil {
			return err
		}
		defer release()
	}
	return cmd.run(ctx, a)
}
