package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/log"
)

const healthcheckTimeout = 2 * time.Second

// Pinger checks that a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthcheckHandler answers 200 with the server time while the database
// responds, 503 otherwise. A nil db skips the database check.
func HealthcheckHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{
			"time":     time.Now().UTC().Format(time.RFC3339),
			"database": "skipped",
		}

		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthcheckTimeout)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				log.FromContext(r.Context()).WithError(err).Warn("healthcheck: database unreachable")
				status["database"] = "down"
				writeJSON(w, http.StatusServiceUnavailable, status)
				return
			}
			status["database"] = "up"
		}

		writeJSON(w, http.StatusOK, status)
	})
}
