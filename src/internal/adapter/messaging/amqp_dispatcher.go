package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/global-remit/teller-desk/src/internal/domain"
	"github.com/global-remit/teller-desk/src/internal/logger"
)

const publishTimeout = 5 * time.Second

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// AMQPDispatcher hands persisted transfers to the payout side over a durable
// direct exchange. The routing key is the queue name.
type AMQPDispatcher struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	publisher    publisher
	exchangeName string
	queueName    string
}

func NewAMQPDispatcher(url, exchangeName, queueName string) (*AMQPDispatcher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	d := &AMQPDispatcher{
		conn:         conn,
		channel:      channel,
		publisher:    channel,
		exchangeName: exchangeName,
		queueName:    queueName,
	}

	if err := d.setup(); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	logger.Info("amqp dispatcher connected", logger.Fields{
		"exchange": exchangeName,
		"queue":    queueName,
	})

	return d, nil
}

func (d *AMQPDispatcher) setup() error {
	if err := d.channel.ExchangeDeclare(d.exchangeName, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := d.channel.QueueDeclare(d.queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := d.channel.QueueBind(d.queueName, d.queueName, d.exchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

func (d *AMQPDispatcher) Dispatch(ctx context.Context, msg domain.TransferDispatchMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal dispatch message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = d.publisher.PublishWithContext(
		ctx,
		d.exchangeName,
		d.queueName,
		false,
		false,
		amqp091.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp091.Persistent,
			MessageId:     fmt.Sprintf("%s-%d", msg.Reference, msg.Attempt),
			CorrelationId: msg.Reference,
			Timestamp:     msg.Timestamp,
			Body:          body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish dispatch message: %w", err)
	}

	logger.Info("amqp dispatcher published transfer", logger.Fields{
		"reference": msg.Reference,
		"attempt":   msg.Attempt,
		"exchange":  d.exchangeName,
		"queue":     d.queueName,
	})

	return nil
}

func (d *AMQPDispatcher) Close() error {
	if d.channel != nil {
		_ = d.channel.Close()
	}
	if d.conn != nil {
		return d.conn.Close()
	}
	return nil
}
