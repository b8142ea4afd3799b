package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/dwikikusuma/coffee-order/internal/catalog/infra/memory"
	loyalty "github.com/dwikikusuma/coffee-order/internal/loyalty/domain"
	"github.com/dwikikusuma/coffee-order/internal/session"
	"github.com/dwikikusuma/coffee-order/internal/session/httpapi"
	"github.com/dwikikusuma/coffee-order/pkg/clock"
	"github.com/dwikikusuma/coffee-order/pkg/config"
	"github.com/dwikikusuma/coffee-order/pkg/logger"
	"github.com/dwikikusuma/coffee-order/pkg/shutdown"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "gateway",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
		Session:   uuid.NewString(),
	})

	root := context.Background()
	ctx, cancel := shutdown.WithSignals(root, log)
	defer cancel()

	products, err := loadCatalog(cfg.CatalogFile)
	if err != nil {
		log.Error("catalog load failed", slog.Any("err", err), slog.String("file", cfg.CatalogFile))
		os.Exit(1)
	}

	app := session.New(session.Options{
		Clock:             clock.New(),
		Products:          products,
		OrderTickInterval: cfg.OrderTickInterval,
		FlipDelay:         cfg.MemoryFlipDelay,
		QuickTapSeconds:   cfg.QuickTapSeconds,
		InitialLoyalty:    loyalty.State{BeverageCount: cfg.StartBeverages, Points: cfg.StartPoints},
		Logger:            log,
	})
	defer app.Close()

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           httpapi.NewRouter(app, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("gateway stopped with error", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("bye")
}

func loadCatalog(path string) (*memory.ProductRepo, error) {
	if path == "" {
		return memory.NewDefaultProductRepo()
	}
	return memory.LoadFile(path)
}
