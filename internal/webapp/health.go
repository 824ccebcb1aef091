package webapp

import (
	"context"
	"net/http"
	"time"

	"github.com/andrebq/bolulista/internal/logutil"
	"github.com/andrebq/bolulista/internal/webresult"
)

type (
	Pinger interface {
		Ping(ctx context.Context) error
	}

	healthResponse struct {
		Status  string `json:"status"`
		DB      string `json:"db,omitempty"`
		Message string `json:"message,omitempty"`
	}
)

// Healthcheck reports 503 when the database cannot be reached.
func Healthcheck(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			log := logutil.GetOrDefault(ctx)
			log.Error().Err(err).Msg("Database ping failed")
			webresult.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{
				Status:  "error",
				DB:      "disconnected",
				Message: "database unavailable",
			})
			return
		}
		webresult.OK(w, healthResponse{Status: "ok"})
	})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	webresult.WriteJSON(w, http.StatusNotFound, webresult.Result{Error: "not found"})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	webresult.WriteJSON(w, http.StatusMethodNotAllowed, webresult.Result{Error: "method not allowed"})
}
