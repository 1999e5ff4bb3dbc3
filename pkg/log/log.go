// Package log ties logrus entries to the correlation id of the HTTP request
// or scheduler pass that produced them.
package log

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	CorrelationIDField  = "correlation_id"
	CorrelationIDHeader = "X-Correlation-ID"
)

type correlationKey struct{}

// WithCorrelationID returns a context carrying id. An empty id is replaced
// by a fresh UUID.
func WithCorrelationID(ctx context.Context, id string) (context.Context, string) {
	if id == "" {
		id = uuid.NewString()
	}
	return context.WithValue(ctx, correlationKey{}, id), id
}

// CorrelationID returns the id carried by ctx, or "" when there is none.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// FromContext returns a standard logger entry tagged with the correlation id
// of ctx.
func FromContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(logrus.StandardLogger())
	if id := CorrelationID(ctx); id != "" {
		return entry.WithField(CorrelationIDField, id)
	}
	return entry
}
