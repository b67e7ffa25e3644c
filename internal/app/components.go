package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/wordcard-backend/internal/adapter/provider/freedict"
	"github.com/heartmarshall/wordcard-backend/internal/adapter/provider/oxford"
	"github.com/heartmarshall/wordcard-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/wordcard-backend/internal/adapter/sqlite/lookupqueue"
	"github.com/heartmarshall/wordcard-backend/internal/adapter/sqlite/wordstore"
	"github.com/heartmarshall/wordcard-backend/internal/config"
	"github.com/heartmarshall/wordcard-backend/internal/provider"
	"github.com/heartmarshall/wordcard-backend/internal/service/lookup"
	"github.com/heartmarshall/wordcard-backend/internal/service/vocabulary"
)

type dictionary interface {
	FetchEntry(ctx context.Context, word string) (*provider.DictionaryResult, error)
}

// Components holds the wired storage and services shared by the server and
// the maintenance commands.
type Components struct {
	DB     *sql.DB
	Store  *wordstore.Store
	Vocab  *vocabulary.Service
	Lookup *lookup.Service
}

// Open connects to the database, applies migrations and wires the services.
// The caller must Close the returned Components.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	db, err := sqlite.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	store := wordstore.New(db, logger)
	tx := sqlite.NewTxManager(db)

	dict, err := newDictionary(cfg.Dictionary, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	queue := lookupqueue.New(db)

	return &Components{
		DB:     db,
		Store:  store,
		Vocab:  vocabulary.NewService(logger, store, dict, tx),
		Lookup: lookup.NewService(logger, queue, tx),
	}, nil
}

// Close releases the database.
func (c *Components) Close() error {
	return c.DB.Close()
}

func newDictionary(cfg config.DictionaryConfig, logger *slog.Logger) (dictionary, error) {
	switch cfg.Provider {
	case config.ProviderFreeDict:
		return freedict.NewProvider(cfg, logger), nil
	case config.ProviderOxford:
		return oxford.NewProvider(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown dictionary provider %q", cfg.Provider)
	}
}
