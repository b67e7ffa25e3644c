// Package freedict looks words up in the FreeDictionary API (dictionaryapi.dev).
package freedict

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/heartmarshall/wordcard-backend/internal/config"
	"github.com/heartmarshall/wordcard-backend/internal/domain"
	"github.com/heartmarshall/wordcard-backend/internal/provider"
)

// Provider fetches dictionary data from the FreeDictionary API.
type Provider struct {
	client *resty.Client
	lang   string
	log    *slog.Logger
}

// NewProvider creates a Provider from the dictionary settings. Requests are
// retried RetryCount times on 5xx or network errors.
func NewProvider(cfg config.DictionaryConfig, logger *slog.Logger) *Provider {
	log := logger.With("adapter", "freedict")

	client := resty.New().
		SetBaseURL(cfg.ResolvedBaseURL()).
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(500 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				log.Warn("freedict retry", slog.String("reason", err.Error()))
				return true
			}
			if r != nil && r.StatusCode() >= http.StatusInternalServerError {
				log.Warn("freedict retry", slog.Int("status", r.StatusCode()))
				return true
			}
			return false
		})

	return &Provider{client: client, lang: cfg.ResolvedLang(), log: log}
}

// FetchEntry fetches a dictionary entry for the given word.
// Returns nil, nil if the word is not found (HTTP 404).
func (p *Provider) FetchEntry(ctx context.Context, word string) (*provider.DictionaryResult, error) {
	p.log.DebugContext(ctx, "freedict request", slog.String("word", word))

	resp, err := p.client.R().
		SetContext(ctx).
		Get("/" + url.PathEscape(p.lang) + "/" + url.PathEscape(word))
	if err != nil {
		p.log.ErrorContext(ctx, "freedict request failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, fmt.Errorf("freedict: request failed: %w: %w", domain.ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		var nf apiNotFound
		if err := json.Unmarshal(resp.Body(), &nf); err == nil && nf.Title != "" {
			p.log.DebugContext(ctx, "freedict no entry", slog.String("word", word), slog.String("title", nf.Title))
		}
		return nil, nil
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("freedict: unexpected status %d: %w", resp.StatusCode(), domain.ErrUpstreamUnavailable)
	}

	var entries []apiEntry
	if err := json.Unmarshal(resp.Body(), &entries); err != nil {
		return nil, fmt.Errorf("freedict: decode json: %w: %w", domain.ErrUpstreamUnavailable, err)
	}

	result := mapAPIResponse(entries)

	p.log.DebugContext(ctx, "freedict response",
		slog.String("word", word),
		slog.Int("status", resp.StatusCode()),
		slog.Int("senses", len(result.Senses)),
	)

	return result, nil
}
