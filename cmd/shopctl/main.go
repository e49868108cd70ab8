package main

import (
	"context"
	"fmt"
	"os"

	"go-shop-backoffice/internal/config"
	"go-shop-backoffice/internal/machine"
	"go-shop-backoffice/internal/model"
	"go-shop-backoffice/internal/repository"
	"go-shop-backoffice/pkg/database"
	"go-shop-backoffice/pkg/logger"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(logger.Config{Level: "warn", Development: true})
	if err != nil {
		log = logger.Nop()
	}

	open := func(ctx context.Context) (repository.ShopRepository, error) {
		db, err := database.ConnectDB(database.Options{DSN: cfg.DSN(), TablePrefix: cfg.TablePrefix(), Log: log})
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		if err := db.WithContext(ctx).AutoMigrate(&model.Shop{}); err != nil {
			return nil, fmt.Errorf("migrate shops: %w", err)
		}
		return repository.NewShopRepo(db), nil
	}

	root := NewRootCmd(cfg.ShopName, func() string { return machine.Code(cfg.MachineCode) }, open)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
