package messaging

import (
	"context"
	"fmt"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// AMQPPublisher publishes events to a durable topic exchange. A channel is not
// safe for concurrent publishing, so publishes are serialized.
type AMQPPublisher struct {
	mu         sync.Mutex
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	routingKey string
}

func NewAMQPPublisher(cfg config.Messaging) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to AMQP broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open AMQP channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		amqp.ExchangeTopic,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	logrus.WithField("exchange", cfg.Exchange).Info("AMQP publisher ready")

	return &AMQPPublisher{
		conn:       conn,
		channel:    ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
	}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, event ScheduleExecutedEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := buildPublishing(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.channel.Publish(p.exchange, p.routingKey, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}

	return nil
}

func buildPublishing(event ScheduleExecutedEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to encode event: %w", err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         event.Type,
		MessageId:    event.ScheduleID + "@" + event.ExecutedAt.UTC().Format("20060102T150405Z"),
		Timestamp:    event.ExecutedAt,
		Body:         body,
	}, nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.channel.Close(); err != nil {
		logrus.WithError(err).Warn("failed to close AMQP channel")
	}
	return p.conn.Close()
}
