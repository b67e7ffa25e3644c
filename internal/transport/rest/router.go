package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/heartmarshall/wordcard-backend/internal/transport/middleware"
)

// NewRouter registers the health checks and the /v1 API. recordLimit, when non-nil,
// wraps only POST /v1/word since that is the route that reaches the
// external dictionary.
func NewRouter(words *WordHandler, health *HealthHandler, recordLimit middleware.Middleware) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusNotFound, msgNotFound, nil)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusMethodNotAllowed, msgMethodNotAllow, nil)
	})

	r.HandleFunc("/live", health.Live).Methods(http.MethodGet)
	r.HandleFunc("/ready", health.Ready).Methods(http.MethodGet)
	r.HandleFunc("/health", health.Health).Methods(http.MethodGet)

	var record http.Handler = http.HandlerFunc(words.Record)
	if recordLimit != nil {
		record = recordLimit(record)
	}

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/word", words.List).Methods(http.MethodGet)
	v1.Handle("/word", record).Methods(http.MethodPost)
	v1.HandleFunc("/word", words.Delete).Methods(http.MethodDelete)
	v1.HandleFunc("/define", words.Define).Methods(http.MethodGet)
	v1.HandleFunc("/master", words.Master).Methods(http.MethodPut)
	v1.HandleFunc("/records", words.Dump).Methods(http.MethodGet)
	v1.HandleFunc("/records", words.Migrate).Methods(http.MethodPost)

	return r
}
