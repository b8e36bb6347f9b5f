package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"teapos/internal/config"
	"teapos/internal/db"
	"teapos/internal/importer"
	"teapos/internal/logging"
	categoryrepo "teapos/internal/repository/category"
	menuitemrepo "teapos/internal/repository/menuitem"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to a menu CSV with category,name,price[,image_url] columns")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		logging.New("importer", "info").WithError(err).Fatal("load config")
	}
	logger := logging.New("importer", cfg.LogLevel)
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBPool())
	if err != nil {
		logger.WithError(err).Fatal("connect db")
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		logger.WithError(err).Fatal("open file")
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, categoryrepo.NewPostgres(pool), menuitemrepo.NewPostgres(pool, logger))

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		logger.WithError(err).WithField("imported", count).Fatal("import failed")
	}

	fmt.Printf("Imported %d menu items in %s\n", count, time.Since(start).Truncate(time.Millisecond))
}
