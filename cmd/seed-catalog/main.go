package main

import (
	"context"
	"fmt"
	"os"

	"go-pos-cart/internal/catalog"
	"go-pos-cart/internal/config"
	"go-pos-cart/internal/model"
	"go-pos-cart/internal/repository"
	"go-pos-cart/pkg/database"
	"go-pos-cart/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// 1. Load Env
	cfg, loaded, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()
	if !loaded {
		log.Warn(".env file not found, relying on process environment")
	}
	if !cfg.Database.Enabled() {
		log.Fatal("DATABASE_URL or DB_HOST must be set")
	}

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.Database.DSN(), log.Named("db"))
	if err != nil {
		log.Fatal("connect database", zap.Error(err))
	}
	if err := db.AutoMigrate(&model.Product{}); err != nil {
		log.Fatal("migrate products", zap.Error(err))
	}

	// 3. Upsert the demo catalog
	items := catalog.DefaultItems()
	repo := repository.NewProductRepo(db)
	n, err := repo.Seed(context.Background(), items)
	if err != nil {
		log.Fatal("seed catalog", zap.Error(err))
	}

	log.Info("catalog seeded", zap.Int("items", n))
}
