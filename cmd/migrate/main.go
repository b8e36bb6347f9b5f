package main

import (
	"context"
	"flag"

	"teapos/internal/config"
	"teapos/internal/db"
	"teapos/internal/logging"
	"teapos/internal/migrate"
)

func main() {
	down := flag.Bool("down", false, "Roll back every migration instead of applying them")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		logging.New("migrate", "info").WithError(err).Fatal("load config")
	}
	logger := logging.New("migrate", cfg.LogLevel)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBPool())
	if err != nil {
		logger.WithError(err).Fatal("connect db")
	}
	defer pool.Close()

	if *down {
		if err := migrate.Down(ctx, pool); err != nil {
			logger.WithError(err).Fatal("roll back migrations")
		}
		logger.Info("migrations rolled back")
		return
	}

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.WithError(err).Fatal("apply migrations")
	}
	version, dirty, err := migrate.Version(ctx, pool)
	if err != nil {
		logger.WithError(err).Warn("read schema version")
	}
	logger.WithField("version", version).WithField("dirty", dirty).Info("migrations applied")
}
