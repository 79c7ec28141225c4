package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/iliyamo/galeragate-ledger/internal/auth"
	"github.com/iliyamo/galeragate-ledger/internal/catalog"
	"github.com/iliyamo/galeragate-ledger/internal/config"
	"github.com/iliyamo/galeragate-ledger/internal/console"
	"github.com/iliyamo/galeragate-ledger/internal/database"
	"github.com/iliyamo/galeragate-ledger/internal/logger"
	"github.com/iliyamo/galeragate-ledger/internal/repository"
	"github.com/iliyamo/galeragate-ledger/internal/service"
)

// app owns everything a command needs: configuration, the logger, the
// database handle and the services built on it.
type app struct {
	cfg      config.Config
	db       *database.DB
	svc      console.Services
	closeLog func()
}

// bootstrap loads configuration, starts logging, opens the database and
// creates the schema if it does not exist yet.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	closeLog, err := logger.Init(cfg.Env, cfg.LogFile)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.DB)
	if err != nil {
		closeLog()
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		closeLog()
		return nil, err
	}
	zap.L().Info("database ready", zap.String("driver", cfg.DB.Driver))

	svc, err := wire(cfg, db)
	if err != nil {
		_ = db.Close()
		closeLog()
		return nil, err
	}
	return &app{cfg: cfg, db: db, svc: svc, closeLog: closeLog}, nil
}

func wire(cfg config.Config, db *database.DB) (console.Services, error) {
	visitorRepo := repository.NewVisitorRepo(db)
	selectionRepo := repository.NewSelectionRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)

	var publisher service.EventPublisher = service.NopPublisher{}
	if cfg.Events.Enabled {
		publisher = service.NewAMQPPublisher(cfg.Events.URL, cfg.Events.Queue)
	}

	var limiter auth.Limiter
	if rdb := config.NewRedisClient(); rdb != nil {
		rl := auth.NewRedisLimiter(rdb, cfg.Login)
		zap.L().Info("login limiter backed by redis", zap.Stringer("limiter", rl))
		limiter = rl
	} else {
		limiter = auth.NewMemoryLimiter(cfg.Login)
	}

	if cfg.AdminPasswordHash == "" {
		zap.L().Warn("ADMIN_PASSWORD_HASH is not set; admin login is disabled")
	} else if err := auth.CheckHash(cfg.AdminPasswordHash, cfg.BcryptCost); err != nil {
		zap.L().Warn("ADMIN_PASSWORD_HASH looks wrong", zap.Error(err))
	}
	admin, err := service.NewAdminService(repository.NewAdminRepo(db),
		auth.NewBcryptVerifier(cfg.AdminEmail, cfg.AdminPasswordHash),
		limiter, cfg.JWTSecret, cfg.AdminSessionTTL)
	if err != nil {
		return console.Services{}, fmt.Errorf("service.NewAdminService -> %w", err)
	}

	receipts := service.NewReceiptService(visitorRepo, selectionRepo, paymentRepo)
	return console.Services{
		Visitors:   service.NewVisitorService(visitorRepo, selectionRepo),
		Selections: service.NewSelectionService(selectionRepo, catalog.Default()),
		Receipts:   receipts,
		Payments:   service.NewPaymentService(paymentRepo, receipts, publisher, cfg.Currency),
		Admin:      admin,
	}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		zap.L().Warn("closing database", zap.Error(err))
	}
	a.closeLog()
}
