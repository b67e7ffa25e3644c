// Package oxford looks words up in the Oxford Dictionaries API v2.
package oxford

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/heartmarshall/wordcard-backend/internal/config"
	"github.com/heartmarshall/wordcard-backend/internal/domain"
	"github.com/heartmarshall/wordcard-backend/internal/provider"
)

// Provider fetches definitions from the Oxford Dictionaries API.
type Provider struct {
	client *resty.Client
	lang   string
	log    *slog.Logger
}

// NewProvider creates a Provider authenticated with cfg.AppID and cfg.AppKey.
func NewProvider(cfg config.DictionaryConfig, logger *slog.Logger) *Provider {
	log := logger.With("adapter", "oxford")

	client := resty.New().
		SetBaseURL(cfg.ResolvedBaseURL()).
		SetHeader("Accept", "application/json").
		SetHeader("app_id", cfg.AppID).
		SetHeader("app_key", cfg.AppKey).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(500 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				log.Warn("oxford retry", slog.String("reason", err.Error()))
				return true
			}
			if r != nil && r.StatusCode() >= http.StatusInternalServerError {
				log.Warn("oxford retry", slog.Int("status", r.StatusCode()))
				return true
			}
			return false
		})

	return &Provider{client: client, lang: cfg.ResolvedLang(), log: log}
}

// FetchEntry fetches the definitions of word. The API is case-sensitive on
// lemma ids, so the word is lowercased first.
// Returns nil, nil if the word is not found (HTTP 404).
func (p *Provider) FetchEntry(ctx context.Context, word string) (*provider.DictionaryResult, error) {
	query := strings.ToLower(word)
	p.log.DebugContext(ctx, "oxford request", slog.String("word", query))

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("fields", "definitions").
		Get("/entries/" + url.PathEscape(p.lang) + "/" + url.PathEscape(query))
	if err != nil {
		p.log.ErrorContext(ctx, "oxford request failed", slog.String("word", query), slog.String("error", err.Error()))
		return nil, fmt.Errorf("oxford: request failed: %w: %w", domain.ErrUpstreamUnavailable, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("oxford: unexpected status %d: %w", resp.StatusCode(), domain.ErrUpstreamUnavailable)
	}

	var body apiResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("oxford: decode json: %w: %w", domain.ErrUpstreamUnavailable, err)
	}

	result := mapAPIResponse(body, query)

	p.log.DebugContext(ctx, "oxford response",
		slog.String("word", query),
		slog.Int("senses", len(result.Senses)),
	)

	return result, nil
}

// mapAPIResponse flattens results → lexical entries → entries → senses.
// Every definition string of a sense becomes its own SenseResult under the
// lexical category text.
func mapAPIResponse(body apiResponse, fallback string) *provider.DictionaryResult {
	result := &provider.DictionaryResult{
		Word:   firstNonEmpty(body.ID, body.Word, fallback),
		Senses: []provider.SenseResult{},
	}

	for _, res := range body.Results {
		for _, lex := range res.LexicalEntries {
			category := lex.LexicalCategory.Text
			for _, entry := range lex.Entries {
				result.Senses = appendSenses(result.Senses, category, entry.Senses)
			}
		}
	}
	return result
}

func appendSenses(dst []provider.SenseResult, category string, senses []apiSense) []provider.SenseResult {
	for _, s := range senses {
		for _, def := range s.Definitions {
			if def == "" {
				continue
			}
			dst = append(dst, provider.SenseResult{Category: category, Definition: def})
		}
		dst = appendSenses(dst, category, s.Subsenses)
	}
	return dst
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
