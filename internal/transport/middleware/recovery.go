package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/heartmarshall/wordcard-backend/pkg/ctxutil"
)

// internalErrorBody is the {msg, data} envelope the REST layer sends for
// unexpected failures. It is spelled out here because rest imports this
// package.
var internalErrorBody, _ = json.Marshal(struct {
	Msg  string `json:"msg"`
	Data any    `json:"data"`
}{Msg: "Internal Error"})

// Recovery returns middleware that recovers from panics, logs the error
// with a stack trace and the request id, and answers 500 with the
// "Internal Error" envelope. http.ErrAbortHandler is re-raised so net/http
// can abort the connection.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(r.Context(), "panic recovered",
					slog.Any("error", rec),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write(append(internalErrorBody, '\n'))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
