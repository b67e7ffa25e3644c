package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/wordcard-backend/internal/domain"
)

// Response messages shared by the v1 endpoints.
const (
	msgRecorded       = "Record Successfully"
	msgQueued         = "Record queued"
	msgDeleted        = "Delete Successfully"
	msgMigrated       = "Migrate Successfully"
	msgInvalid        = "Invalid Parameters"
	msgNoSuchWord     = "No such word"
	msgUpstream       = "Dictionary Unavailable"
	msgInternal       = "Internal Error"
	msgNotFound       = "Not Found"
	msgMethodNotAllow = "Method Not Allowed"
)

// Envelope is the body of every v1 response.
type Envelope struct {
	Msg  string `json:"msg"`
	Data any    `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeEnvelope(w http.ResponseWriter, status int, msg string, data any) {
	writeJSON(w, status, Envelope{Msg: msg, Data: data})
}

func writeOK(w http.ResponseWriter, msg string, data any) {
	writeEnvelope(w, http.StatusOK, msg, data)
}

func invalidParameters(w http.ResponseWriter, data any) {
	writeEnvelope(w, http.StatusBadRequest, msgInvalid, data)
}

// writeError maps a service error onto a status code and envelope.
// Unexpected errors are logged; their text never reaches the client.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		invalidParameters(w, ve.Errors)
	case errors.Is(err, domain.ErrValidation):
		invalidParameters(w, nil)
	case errors.Is(err, domain.ErrNotFound):
		writeEnvelope(w, http.StatusNotFound, msgNoSuchWord, nil)
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		log.WarnContext(r.Context(), "dictionary unavailable", slog.String("error", err.Error()))
		writeEnvelope(w, http.StatusBadGateway, msgUpstream, nil)
	default:
		log.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeEnvelope(w, http.StatusInternalServerError, msgInternal, nil)
	}
}
