package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"github.com/mashkanta-plus/leads-api/internal/leads"
	"github.com/mashkanta-plus/leads-api/pkg/logging"
)

// Recoverer turns a handler panic into the same generic JSON failure the API
// returns for any other internal error, instead of an empty 500. The cause
// and stack stay server-side.
func Recoverer(logger *logging.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
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
				logger.Error("panic recovered",
					"panic", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"success": false,
					"message": leads.MsgGenericError,
				})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
