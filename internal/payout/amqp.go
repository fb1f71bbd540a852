package payout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Renal37/dress-settlement/internal/logger"
	"github.com/Renal37/dress-settlement/internal/models"
	"github.com/hashicorp/go-multierror"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const PayoutRequestedEvent = "payout.requested"

var ErrSinkClosed = errors.New("payout sink is closed")

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error

	Close() error
}

type dialFunc func() (io.Closer, publisher, <-chan *amqp.Error, error)

// AMQPSink publishes payout requests to a durable RabbitMQ queue.
// The message id is the order id so consumers can drop redeliveries.
// A lost connection is dialed again on the next Send.
type AMQPSink struct {
	mu      sync.Mutex
	conn    io.Closer
	channel publisher
	dial    dialFunc
	closed  bool
	queue   string
	now     func() time.Time
}

func NewAMQPSink(url, queue string) (*AMQPSink, error) {
	s := &AMQPSink{
		dial:  brokerDialer(url, queue),
		queue: queue,
		now:   time.Now,
	}

	if err := s.connect(); err != nil {
		return nil, err
	}

	return s, nil
}

func brokerDialer(url, queue string) dialFunc {
	return func() (io.Closer, publisher, <-chan *amqp.Error, error) {
		conn, err := amqp.Dial(url)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to broker: %w", err)
		}

		ch, err := conn.Channel()
		if err != nil {
			conn.Close()
			return nil, nil, nil, fmt.Errorf("failed to open channel: %w", err)
		}

		_, err = ch.QueueDeclare(
			queue,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			conn.Close()
			return nil, nil, nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
		}

		return conn, ch, conn.NotifyClose(make(chan *amqp.Error, 1)), nil
	}
}

// connect must be called with mu held or before the sink is shared.
func (s *AMQPSink) connect() error {
	conn, ch, notify, err := s.dial()
	if err != nil {
		return err
	}

	s.conn = conn
	s.channel = ch
	go s.watch(conn, notify)

	return nil
}

// watch forgets conn once the broker closes it. A graceful Close delivers nothing.
func (s *AMQPSink) watch(conn io.Closer, notify <-chan *amqp.Error) {
	reason, ok := <-notify
	if !ok || reason == nil {
		return
	}

	logger.Log.Warn("broker connection closed",
		zap.Int("code", reason.Code),
		zap.String("reason", reason.Reason),
		zap.Bool("recoverable", reason.Recover),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == conn {
		s.conn = nil
		s.channel = nil
	}
}

func (s *AMQPSink) currentChannel() (publisher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSinkClosed
	}

	if s.channel == nil {
		if err := s.connect(); err != nil {
			return nil, err
		}
		logger.Log.Info("reconnected to broker", zap.String("queue", s.queue))
	}

	return s.channel, nil
}

func (s *AMQPSink) forget(ch publisher) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.channel == ch {
		s.channel = nil
		if s.conn != nil {
			s.conn.Close()
			s.conn = nil
		}
	}
}

func (s *AMQPSink) Send(ctx context.Context, payout models.Payout) error {
	body, err := json.Marshal(payout)
	if err != nil {
		return fmt.Errorf("failed to marshal payout: %w", err)
	}

	ch, err := s.currentChannel()
	if err != nil {
		return fmt.Errorf("failed to publish payout for order %s: %w", payout.OrderID, err)
	}

	err = ch.PublishWithContext(ctx,
		"",
		s.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    payout.OrderID,
			Type:         PayoutRequestedEvent,
			Timestamp:    s.now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		if errors.Is(err, amqp.ErrClosed) {
			s.forget(ch)
		}
		return fmt.Errorf("failed to publish payout for order %s: %w", payout.OrderID, err)
	}

	return nil
}

func (s *AMQPSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true

	var result error

	if s.channel != nil {
		if err := s.channel.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("failed to close channel: %w", err))
		}
		s.channel = nil
	}

	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("failed to close connection: %w", err))
		}
		s.conn = nil
	}

	return result
}
