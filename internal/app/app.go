package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/wordcard-backend/internal/config"
	"github.com/heartmarshall/wordcard-backend/internal/service/lookup"
	"github.com/heartmarshall/wordcard-backend/internal/transport/middleware"
	"github.com/heartmarshall/wordcard-backend/internal/transport/rest"
)

const rateLimitSweep = time.Minute

// Run wires the application and serves HTTP until ctx is canceled. When the
// lookup queue is enabled, the queue worker runs alongside the server.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting application",
		slog.String("build", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("database", cfg.Database.Path),
		slog.String("dictionary", cfg.Dictionary.Provider),
		slog.Bool("queue", cfg.Queue.Enabled),
	)

	c, err := Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Error("close database", slog.String("error", err.Error()))
		}
	}()

	if v, err := c.Store.SchemaVersion(ctx); err == nil {
		logger.Info("database ready", slog.Int64("schema_version", v))
	}

	var recordLimit middleware.Middleware
	if cfg.RateLimit.RecordPerMinute > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RecordPerMinute, cfg.RateLimit.Burst, rateLimitSweep)
		defer limiter.Stop()
		recordLimit = limiter.Limit()
	}

	words := rest.NewWordHandler(logger, c.Vocab, nil)
	if cfg.Queue.Enabled {
		words = rest.NewWordHandler(logger, c.Vocab, c.Lookup)
	}
	health := rest.NewHealthHandler(c.DB, c.Store, BuildVersion())
	router := rest.NewRouter(words, health, recordLimit)

	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(router)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	if cfg.Queue.Enabled {
		worker := lookup.NewWorker(logger, c.Lookup, c.Vocab, cfg.Queue.Interval, cfg.Queue.BatchSize)
		g.Go(func() error {
			return worker.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("application stopped")
	return nil
}
