package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"restaurant-backend/internal/core/domain/types"
	"restaurant-backend/pkg/config"
	"restaurant-backend/pkg/logger"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const (
	initialBackoff = 1 * time.Second
	maxBackoff     = 30 * time.Second
)

var ErrNotConfigured = errors.New("RABBITMQ_URL is not set")

// Connection wraps an AMQP connection and re-dials it when the broker drops it.
type Connection struct {
	log       logger.Logger
	url       string
	mu        sync.RWMutex
	conn      *amqp091.Connection
	channel   *amqp091.Channel
	closed    bool
	reconnect chan struct{}
}

func NewConnection(ctx context.Context, cfg config.RabbitMQConfig, log logger.Logger) (*Connection, error) {
	if cfg.URL == "" {
		return nil, ErrNotConfigured
	}

	connection := &Connection{
		log:       log,
		url:       cfg.URL,
		reconnect: make(chan struct{}, 1),
	}

	if err := connection.connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	go connection.handleReconnect(ctx)

	return connection, nil
}

func (c *Connection) connect(ctx context.Context) error {
	c.log.Info(ctx, types.ActionRabbitMQConnecting, "connecting to RabbitMQ")

	conn, err := amqp091.Dial(c.url)
	if err != nil {
		return fmt.Errorf("failed to dial: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create channel: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.channel = channel
	c.mu.Unlock()

	connClosed := conn.NotifyClose(make(chan *amqp091.Error, 1))
	go func() {
		select {
		case <-ctx.Done():
			return
		case err := <-connClosed:
			if c.isClosed() {
				c.log.Info(ctx, types.ActionRabbitMQDisconnected, "connection closed gracefully")
				return
			}
			c.log.Error(ctx, types.ActionRabbitMQDisconnected, "connection closed unexpectedly", err)
			select {
			case c.reconnect <- struct{}{}:
			default:
			}
		}
	}()

	c.log.Info(ctx, types.ActionRabbitMQConnected, "successfully connected to RabbitMQ")
	return nil
}

func (c *Connection) handleReconnect(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.reconnect:
			if c.isClosed() {
				return
			}

			backoff := initialBackoff
			for {
				recordReconnect()
				c.log.Info(ctx, types.ActionRabbitMQReconnecting,
					"attempting to reconnect to RabbitMQ",
					"backoff", backoff.String(),
				)

				c.closeCurrent()

				err := c.connect(ctx)
				if err == nil {
					c.log.Info(ctx, types.ActionRabbitMQReconnected, "successfully reconnected to RabbitMQ")
					break
				}

				c.log.Error(ctx, types.ActionRabbitMQReconnectFailed, "failed to reconnect", err,
					"next_attempt", backoff.String(),
				)

				select {
				case <-ctx.Done():
					return
				case <-time.After(backoff):
					backoff = nextBackoff(backoff)
				}
			}
		}
	}
}

// nextBackoff doubles d, capped at maxBackoff.
func nextBackoff(d time.Duration) time.Duration {
	d *= 2
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

func (c *Connection) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

func (c *Connection) closeCurrent() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
}

// Channel returns the current channel; it changes after a reconnect.
func (c *Connection) Channel() *amqp091.Channel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.channel
}

func (c *Connection) PublishWithContext(ctx context.Context, exchange, routingKey string, mandatory, immediate bool, msg amqp091.Publishing) error {
	err := c.Channel().PublishWithContext(ctx, exchange, routingKey, mandatory, immediate, msg)
	recordPublish(err == nil)
	return err
}

func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true

	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			return fmt.Errorf("error closing channel: %w", err)
		}
	}

	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			return fmt.Errorf("error closing connection: %w", err)
		}
	}

	return nil
}
