// Command cleanup removes finished lookup queue items older than the
// configured retention period. It is intended to be invoked by an external
// cron job, not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/wordcard-backend/internal/app"
	"github.com/heartmarshall/wordcard-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	c, err := app.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer c.Close()

	deleted, err := c.Lookup.Prune(ctx, cfg.Queue.Retention)
	if err != nil {
		logger.Error("prune lookup queue failed",
			slog.String("error", err.Error()),
			slog.Duration("retention", cfg.Queue.Retention),
		)
		c.Close()
		os.Exit(1)
	}

	logger.Info("prune lookup queue completed",
		slog.Int("deleted", deleted),
		slog.Duration("retention", cfg.Queue.Retention),
	)
}
