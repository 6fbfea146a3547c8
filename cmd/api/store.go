package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"support-desk/internal/adapter/repository/gormdb"
	"support-desk/internal/adapter/repository/memory"
	"support-desk/internal/config"
	"support-desk/internal/infrastructure/db"
	"support-desk/internal/seed"
)

// store bundles the repositories of the selected backend with its lifecycle.
type store struct {
	repos seed.Repos
	ping  func(ctx context.Context) error
	close func() error
}

func openStore(cfg *config.Config, log *zap.Logger) (*store, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		s := memory.NewStore()
		return &store{
			repos: seed.Repos{Users: s.Users(), Customers: s.Customers(), Branches: s.Branches(), Loans: s.Loans()},
			ping:  func(context.Context) error { return nil },
			close: s.Close,
		}, nil
	case config.StoreSQLite:
		gdb, err := db.OpenSQLite(cfg.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		return sqlStore(gdb)
	case config.StoreMySQL:
		gdb, err := db.OpenMySQL(cfg.MySQLDSN(), log)
		if err != nil {
			return nil, err
		}
		return sqlStore(gdb)
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func sqlStore(gdb *gorm.DB) (*store, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	if err := gormdb.AutoMigrate(gdb); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	r := gormdb.NewRepositories(gdb)
	return &store{
		repos: seed.Repos{Users: r.Users, Customers: r.Customers, Branches: r.Branches, Loans: r.Loans},
		ping:  sqlDB.PingContext,
		close: sqlDB.Close,
	}, nil
}
