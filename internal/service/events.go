package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/yt-harvest/youtube-warehouse-go/internal/config"
	"github.com/yt-harvest/youtube-warehouse-go/pkg/logger"
)

// AMQPReportPublisher fans harvest reports out to a RabbitMQ topic exchange
// so downstream consumers (dashboards, alerting) can watch ingestion runs
// without polling the warehouse.
type AMQPReportPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	config  *config.RabbitMQConfig
	mu      sync.RWMutex
}

// NewAMQPReportPublisher connects to the broker and declares the report
// topology (durable topic exchange plus a bound, bounded queue).
func NewAMQPReportPublisher(cfg *config.RabbitMQConfig) (*AMQPReportPublisher, error) {
	p := &AMQPReportPublisher{
		config: cfg,
	}

	if err := p.connect(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *AMQPReportPublisher) connect() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	connURL := fmt.Sprintf("amqp://%s:%s@%s:%d/",
		p.config.User, p.config.Password, p.config.Host, p.config.Port)

	conn, err := amqp.Dial(connURL)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	// Enable publisher confirms
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	if err := ch.ExchangeDeclare(
		p.config.Exchange, // name
		"topic",           // type
		true,              // durable
		false,             // auto-deleted
		false,             // internal
		false,             // no-wait
		nil,               // arguments
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = ch.QueueDeclare(
		p.config.Queue, // name
		true,           // durable
		false,          // delete when unused
		false,          // exclusive
		false,          // no-wait
		amqp.Table{
			"x-message-ttl": 86400000, // 24 hours
			"x-max-length":  100000,   // max 100k messages
		},
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(
		p.config.Queue,      // queue name
		p.config.RoutingKey, // routing key
		p.config.Exchange,   // exchange
		false,
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	p.conn = conn
	p.channel = ch

	logger.Log.Info("Connected to RabbitMQ",
		zap.String("exchange", p.config.Exchange),
		zap.String("queue", p.config.Queue),
	)

	return nil
}

// PublishReport sends a finished channel report as a persistent JSON message
// and waits for the broker's confirmation.
func (p *AMQPReportPublisher) PublishReport(ctx context.Context, report *ChannelReport) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.channel == nil {
		return fmt.Errorf("channel is not initialized")
	}

	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	confirms := p.channel.NotifyPublish(make(chan amqp.Confirmation, 1))

	err = p.channel.PublishWithContext(
		ctx,
		p.config.Exchange,   // exchange
		p.config.RoutingKey, // routing key
		true,                // mandatory
		false,               // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			MessageId:    report.RunID.String(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	// Wait for confirmation with timeout
	select {
	case confirm := <-confirms:
		if !confirm.Ack {
			return fmt.Errorf("message was not acknowledged by broker")
		}
	case <-time.After(5 * time.Second):
		return fmt.Errorf("timeout waiting for publish confirmation")
	case <-ctx.Done():
		return ctx.Err()
	}

	logger.Log.Debug("Published harvest report to RabbitMQ",
		zap.String("runId", report.RunID.String()),
		zap.String("channelId", report.ChannelID),
		zap.String("routingKey", p.config.RoutingKey),
	)

	return nil
}

// Close shuts the channel and connection down.
func (p *AMQPReportPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing publisher: %v", errs)
	}

	logger.Log.Info("RabbitMQ publisher closed")
	return nil
}

// IsHealthy reports whether the broker connection is up.
func (p *AMQPReportPublisher) IsHealthy() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.conn != nil && !p.conn.IsClosed() && p.channel != nil
}
