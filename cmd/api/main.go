package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "support-desk/internal/adapter/http"
	"support-desk/internal/adapter/middleware"
	"support-desk/internal/config"
	"support-desk/internal/infrastructure/cache"
	"support-desk/internal/logger"
	"support-desk/internal/metrics"
	"support-desk/internal/seed"
	ucApproval "support-desk/internal/usecase/approval"
	ucLoan "support-desk/internal/usecase/loan"
)

func main() {
	cfg, err := config.Load(".env")
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		logger.New(nil).Fatal("config", zap.Error(err))
	}

	lc := logger.DefaultConfig()
	lc.Level = cfg.LogLevel
	lc.Format = cfg.LogFormat
	log := logger.New(lc).With(zap.String("env", cfg.AppEnv))
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(); err != nil {
			log.Warn("store close", zap.Error(err))
		}
	}()
	log.Info("store ready", zap.String("driver", cfg.StoreDriver))

	if cfg.SeedEnabled {
		opts := seed.Options{OperatorUsername: cfg.SeedOperatorUsername, OperatorPassword: cfg.SeedOperatorPassword}
		if _, err := seed.Load(ctx, st.repos, opts, log); err != nil {
			return err
		}
	}

	checks := map[string]httpadp.Check{"store": st.ping}
	var idem echo.MiddlewareFunc
	if cfg.RedisAddr != "" {
		rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer rdb.Close()
		idem = middleware.Idempotency(rdb, cfg.IdempotencyTTL())
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	} else {
		log.Info("idempotency disabled: REDIS_ADDR not set")
	}

	m := metrics.New()
	loans := ucLoan.NewUsecase(st.repos.Loans, st.repos.Customers, st.repos.Branches, m)
	approvals := ucApproval.NewUsecase(st.repos.Loans, ucApproval.WithMetrics(m))

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.RequestLogger(log, m), echomw.Recover())

	httpadp.Router{
		Health:      httpadp.NewHandler(checks),
		Loans:       httpadp.NewLoanHandler(loans, log),
		Approvals:   httpadp.NewApprovalHandler(approvals, log),
		Metrics:     m.Handler(),
		Idempotency: idem,
	}.Register(e)

	addr := ":" + cfg.AppPort
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
