package main

import (
	"context"

	"teapos/internal/config"
	"teapos/internal/db"
	"teapos/internal/logging"
	categoryrepo "teapos/internal/repository/category"
	menuitemrepo "teapos/internal/repository/menuitem"
	modifierrepo "teapos/internal/repository/modifier"
	"teapos/internal/seed"
	"teapos/internal/service/catalog"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		logging.New("seed", "info").WithError(err).Fatal("load config")
	}
	logger := logging.New("seed", cfg.LogLevel)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBPool())
	if err != nil {
		logger.WithError(err).Fatal("connect db")
	}
	defer pool.Close()

	res, err := seed.Apply(ctx,
		categoryrepo.NewPostgres(pool),
		menuitemrepo.NewPostgres(pool, logger),
		modifierrepo.NewPostgres(pool),
		catalog.BuiltIn(),
	)
	if err != nil {
		logger.WithError(err).Fatal("seed apply")
	}

	logger.WithFields(logrus.Fields{
		"categories": res.Categories,
		"menu_items": res.MenuItems,
		"sizes":      res.Sizes,
		"toppings":   res.Toppings,
	}).Info("seed applied")
}
