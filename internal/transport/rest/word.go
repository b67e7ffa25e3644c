package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/wordcard-backend/internal/domain"
	"github.com/heartmarshall/wordcard-backend/internal/service/vocabulary"
)

const (
	maxRecordBody  = 64 << 10
	maxRecordsBody = 32 << 20
)

type vocabularyService interface {
	RecordWord(ctx context.Context, in vocabulary.RecordInput) (*vocabulary.RecordResult, error)
	ListWords(ctx context.Context) ([]string, error)
	GetRecord(ctx context.Context, word string) (*domain.Record, error)
	MarkMastered(ctx context.Context, word string, mastered bool) error
	DeleteWord(ctx context.Context, word string) error
	Export(ctx context.Context) ([]domain.Record, error)
	Import(ctx context.Context, records []domain.Record) (*vocabulary.ImportResult, error)
}

type lookupQueue interface {
	Enqueue(ctx context.Context, in vocabulary.RecordInput) ([]int64, error)
}

// WordHandler serves the /v1 word endpoints.
type WordHandler struct {
	log   *slog.Logger
	vocab vocabularyService
	queue lookupQueue
}

// NewWordHandler creates a WordHandler. When queue is non-nil, submissions
// are queued and answered with 202 instead of being looked up in-request.
func NewWordHandler(logger *slog.Logger, vocab vocabularyService, queue lookupQueue) *WordHandler {
	return &WordHandler{
		log:   logger.With("handler", "word"),
		vocab: vocab,
		queue: queue,
	}
}

// contextList accepts either a single sentence or a list of sentences.
type contextList []string

func (c *contextList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*c = nil
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = contextList{s}
		return nil
	default:
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("context: want string or list of strings: %w", err)
		}
		*c = list
		return nil
	}
}

type recordRequest struct {
	Word    string      `json:"word"`
	Context contextList `json:"context"`
}

type recordResponse struct {
	Word        string  `json:"word"`
	Created     bool    `json:"created"`
	Definitions int     `json:"definitions"`
	Queued      []int64 `json:"queued,omitempty"`
}

// List handles GET /v1/word.
func (h *WordHandler) List(w http.ResponseWriter, r *http.Request) {
	words, err := h.vocab.ListWords(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeOK(w, "", words)
}

// Record handles POST /v1/word with body {"word": ..., "context": ...}.
func (h *WordHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRecordBody)).Decode(&req); err != nil {
		h.log.DebugContext(r.Context(), "decode record request", slog.String("error", err.Error()))
		invalidParameters(w, nil)
		return
	}
	in := vocabulary.RecordInput{Word: req.Word, Contexts: req.Context}

	if h.queue != nil {
		ids, err := h.queue.Enqueue(r.Context(), in)
		if err != nil {
			writeError(w, r, h.log, err)
			return
		}
		writeEnvelope(w, http.StatusAccepted, msgQueued, recordResponse{Word: domain.NormalizeText(req.Word), Queued: ids})
		return
	}

	res, err := h.vocab.RecordWord(r.Context(), in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeOK(w, msgRecorded, recordResponse{Word: res.Word, Created: res.Created, Definitions: res.Definitions})
}

// Delete handles DELETE /v1/word?word=.
func (h *WordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	word := r.FormValue("word")
	if word == "" {
		invalidParameters(w, nil)
		return
	}
	if err := h.vocab.DeleteWord(r.Context(), word); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeOK(w, msgDeleted, nil)
}

// Define handles GET /v1/define?word=.
func (h *WordHandler) Define(w http.ResponseWriter, r *http.Request) {
	word := r.FormValue("word")
	if word == "" {
		invalidParameters(w, nil)
		return
	}
	rec, err := h.vocab.GetRecord(r.Context(), word)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeOK(w, "", rec)
}

// Master handles PUT /v1/master?word=&mastered=. mastered defaults to true.
func (h *WordHandler) Master(w http.ResponseWriter, r *http.Request) {
	word := r.FormValue("word")
	if word == "" {
		invalidParameters(w, nil)
		return
	}
	mastered := true
	if v := r.FormValue("mastered"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			invalidParameters(w, nil)
			return
		}
		mastered = b
	}
	if err := h.vocab.MarkMastered(r.Context(), word, mastered); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeOK(w, "", map[string]any{"word": domain.NormalizeText(word), "mastered": mastered})
}

// Dump handles GET /v1/records.
func (h *WordHandler) Dump(w http.ResponseWriter, r *http.Request) {
	records, err := h.vocab.Export(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeOK(w, "", records)
}

// Migrate handles POST /v1/records with a JSON array of records.
func (h *WordHandler) Migrate(w http.ResponseWriter, r *http.Request) {
	var records []domain.Record
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRecordsBody)).Decode(&records); err != nil {
		h.log.DebugContext(r.Context(), "decode records", slog.String("error", err.Error()))
		invalidParameters(w, nil)
		return
	}
	res, err := h.vocab.Import(r.Context(), records)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeOK(w, msgMigrated, map[string]int{"imported": res.Imported, "total": res.Total})
}
