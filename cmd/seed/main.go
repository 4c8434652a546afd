package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"profile-match/internal/app"
	"profile-match/internal/config"
	"profile-match/internal/database/migration"
	"profile-match/internal/database/seeder"
	"profile-match/internal/logger"
)

func main() {
	migrationsDir := flag.String("migrations", "migrations", "migrations directory")
	skipSeed := flag.Bool("skip-seed", false, "run migrations only")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.App.Environment)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	c, err := app.NewContainer(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to init container", zap.Error(err))
	}
	defer func() { _ = c.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := (migration.Runner{Dir: *migrationsDir}).Run(ctx, c.DB); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}
	zlog.Info("migrations applied")

	if *skipSeed {
		return
	}

	if err := seeder.Default().Run(ctx, c.DB); err != nil {
		zlog.Fatal("seeding failed", zap.Error(err))
	}
	zlog.Info("catalog seeded")
}
