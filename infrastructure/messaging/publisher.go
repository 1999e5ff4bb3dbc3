package messaging

import (
	"context"
	"time"

	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/config"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/domain"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks

const EventTypeScheduleExecuted = "schedule.executed"

// ScheduleExecutedEvent is emitted after a schedule run has been recorded.
type ScheduleExecutedEvent struct {
	Type               string    `json:"type"`
	ScheduleID         string    `json:"scheduleId"`
	AccountID          string    `json:"accountId"`
	AdsClientID        string    `json:"adsClientId"`
	ActionType         string    `json:"actionType"`
	Trigger            string    `json:"trigger"`
	ExecutedAt         time.Time `json:"executedAt"`
	Success            bool      `json:"success"`
	Message            string    `json:"message"`
	AffectedAdGroupIDs []string  `json:"affectedAdGroupIds"`
	Error              *string   `json:"error,omitempty"`
}

func NewScheduleExecutedEvent(schedule *domain.Schedule, entry domain.ExecutionLogEntry, trigger string) ScheduleExecutedEvent {
	return ScheduleExecutedEvent{
		Type:               EventTypeScheduleExecuted,
		ScheduleID:         schedule.ID,
		AccountID:          schedule.AccountID,
		AdsClientID:        schedule.AdsClientID,
		ActionType:         string(schedule.Action.Type),
		Trigger:            trigger,
		ExecutedAt:         entry.Timestamp,
		Success:            entry.Success,
		Message:            entry.Message,
		AffectedAdGroupIDs: entry.AffectedAdGroupIDs,
		Error:              entry.Error,
	}
}

type EventPublisher interface {
	Publish(ctx context.Context, event ScheduleExecutedEvent) error
	Close() error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, ScheduleExecutedEvent) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}

// NewPublisher connects to the broker when messaging is enabled. A broker that
// cannot be reached degrades to the no-op publisher so schedules keep running.
func NewPublisher(cfg *config.Config) EventPublisher {
	if !cfg.Messaging.Enabled {
		logrus.Info("AMQP publishing disabled")
		return NoopPublisher{}
	}

	publisher, err := NewAMQPPublisher(cfg.Messaging)
	if err != nil {
		logrus.WithError(err).Warn("could not connect to AMQP broker, execution events will not be published")
		return NoopPublisher{}
	}

	return publisher
}
