package fanout

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/teranga/cagnotte/pkg/config"
	"github.com/teranga/cagnotte/pkg/notification"
)

// AMQP publishes intents as JSON messages to a RabbitMQ exchange, from which
// the external delivery pipeline consumes them. Persistent delivery mode plus
// the retried sweep gives the at-least-once hand-off the contract asks for.
type AMQP struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	routingKey string
	logger     *slog.Logger
}

// NewAMQP dials the broker and declares the notification exchange.
func NewAMQP(cfg *config.AMQP, logger *slog.Logger) (*AMQP, error) {
	conn, err := amqp.Dial(cfg.Url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to AMQP broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close() //nolint:errcheck
		return nil, fmt.Errorf("failed to open AMQP channel: %w", err)
	}
	if err := ch.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		conn.Close() //nolint:errcheck
		return nil, fmt.Errorf("failed to declare exchange %q: %w", cfg.Exchange, err)
	}
	return &AMQP{
		conn:       conn,
		channel:    ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		logger:     logger.With("fanout", "amqp"),
	}, nil
}

// Publish implements notification.Fanout. The first failed intent aborts the
// batch; the caller's transaction rolls back and the next sweep republishes.
func (a *AMQP) Publish(ctx context.Context, intents ...notification.Intent) error {
	for _, intent := range intents {
		body, err := json.Marshal(intent)
		if err != nil {
			return fmt.Errorf("failed to marshal intent: %w", err)
		}
		err = a.channel.PublishWithContext(ctx,
			a.exchange,
			a.routingKey+"."+string(intent.Type),
			false, // mandatory
			false, // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Timestamp:    time.Now(),
				Body:         body,
			},
		)
		if err != nil {
			return fmt.Errorf("failed to publish %s intent: %w", intent.Type, err)
		}
		a.logger.Debug("intent published",
			"type", intent.Type,
			"recipient_id", intent.RecipientID,
			"fund_id", intent.FundID,
		)
	}
	return nil
}

// Close releases the channel and connection.
func (a *AMQP) Close() error {
	if err := a.channel.Close(); err != nil {
		return err
	}
	return a.conn.Close()
}

var _ notification.Fanout = (*AMQP)(nil)
