// Command server boots the matching engine behind the REST and
// WebSocket adapters, running both under an errgroup so that either
// one dying, or a signal, brings the whole process down cleanly.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"lob/internal/config"
	"lob/internal/engine"
	transporthttp "lob/internal/transport/http"
	"lob/internal/transport/ws"
)

func main() {
	opts, err := config.Parse(os.Args[1:])
	if err != nil {
		os.Exit(1)
	}

	logger, err := newLogger(opts.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	book := engine.NewBook(logger)
	registry := prometheus.NewRegistry()
	book.RegisterMetrics(registry)

	if opts.Seed {
		seedBook(book, logger)
	}

	hub := ws.NewHub(logger)
	api := transporthttp.NewServer(book, logger, func(trades []engine.Trade) {
		hub.BroadcastTrades(trades)
		hub.BroadcastDepth(book.SnapshotBids(), book.SnapshotAsks())
	}, registry)

	httpSrv := &http.Server{Addr: opts.HTTPAddr, Handler: api.Routes()}
	wsSrv := &http.Server{Addr: opts.WSAddr, Handler: hub.Routes()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", zap.String("addr", opts.HTTPAddr))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		logger.Info("ws server listening", zap.String("addr", opts.WSAddr))
		if err := wsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
		_ = wsSrv.Shutdown(shutdownCtx)
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server exited with error", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// seedBook reproduces the sample book the original trading API built
// at startup, for operators who want a non-empty book to demo against
// (spec §9 Open Question: seeding is opt-in via --seed, not automatic,
// since a production boot should start from an empty book).
func seedBook(book *engine.Book, logger *zap.Logger) {
	now := timeNowNano()
	orders := []*engine.Order{
		newSeedOrder(1, engine.Buy, "99.50", 100, "client1", now),
		newSeedOrder(2, engine.Buy, "99.00", 200, "client2", now),
		newSeedOrder(3, engine.Sell, "100.50", 150, "client3", now),
		newSeedOrder(4, engine.Sell, "101.00", 300, "client4", now),
	}
	for _, o := range orders {
		if err := book.AddOrder(o); err != nil {
			logger.Warn("seed order rejected", zap.Error(err))
		}
	}
	book.MatchOrders()
}

func timeNowNano() int64 {
	return time.Now().UnixNano()
}

func newSeedOrder(id uint64, side engine.Side, price string, qty int64, clientID string, ts int64) *engine.Order {
	p, _ := decimal.NewFromString(price)
	return &engine.Order{OrderID: id, Side: side, Quantity: qty, Price: p, ClientID: clientID, Timestamp: ts}
}
