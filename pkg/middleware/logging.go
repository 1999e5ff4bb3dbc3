package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/apiErrors"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/log"
	"github.com/sirupsen/logrus"
)

const slowRequestThreshold = 500 * time.Millisecond

// LoggingMiddleware tags each request with a correlation id and logs one line
// when it finishes. An X-Correlation-ID header holding a UUID is reused, and
// the id is echoed back in the response. compact leaves the client details
// out of the line.
func LoggingMiddleware(compact bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, correlationID := log.WithCorrelationID(r.Context(), inboundCorrelationID(r))
			r = r.WithContext(ctx)
			w.Header().Set(log.CorrelationIDHeader, correlationID)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			fields := logrus.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": rec.status,
				"duration_ms": elapsed.Milliseconds(),
			}
			if !compact {
				fields["remote_addr"] = r.RemoteAddr
				fields["query"] = r.URL.RawQuery
				fields["user_agent"] = r.UserAgent()
				fields["bytes"] = rec.bytes
			}
			if elapsed > slowRequestThreshold {
				fields["slow"] = true
			}

			log.FromContext(ctx).WithFields(fields).Log(levelForStatus(rec.status), "request finished")
		})
	}
}

func inboundCorrelationID(r *http.Request) string {
	id := r.Header.Get(log.CorrelationIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		return ""
	}
	return id
}

func levelForStatus(status int) logrus.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return logrus.ErrorLevel
	case status >= http.StatusBadRequest:
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// LogPanicMiddleware recovers handler panics, logs them with their stack and
// answers 500.
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if recovered := recover(); recovered != nil {
					log.FromContext(r.Context()).WithFields(logrus.Fields{
						"panic":  recovered,
						"method": r.Method,
						"path":   r.URL.Path,
						"stack":  string(debug.Stack()),
					}).Error("unhandled panic")

					apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Internal server error", nil)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
