package messaging

import (
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// ErrConnectionClosed la conexión con el broker se perdió.
var ErrConnectionClosed = errors.New("rabbitmq: conexión cerrada")

// RabbitMQ conexión y canal hacia el broker de eventos.
type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	log     *logger.Logger
	mu      sync.RWMutex
}

// Dial abre la conexión y un canal.
func Dial(cfg config.AMQPConfig, log *logger.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	log.Info().Str("exchange", cfg.Exchange).Msg("conectado a RabbitMQ")
	return &RabbitMQ{conn: conn, channel: ch, log: log}, nil
}

// Channel canal actual.
func (r *RabbitMQ) Channel() *amqp.Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.channel
}

// DeclareExchange declara un exchange topic durable.
func (r *RabbitMQ) DeclareExchange(name string) error {
	return r.Channel().ExchangeDeclare(
		name,    // name
		"topic", // type
		true,    // durable
		false,   // auto-deleted
		false,   // internal
		false,   // no-wait
		nil,     // arguments
	)
}

// Healthy indica si la conexión sigue abierta.
func (r *RabbitMQ) Healthy() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.conn != nil && !r.conn.IsClosed()
}

// Close cierra canal y conexión.
func (r *RabbitMQ) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.channel != nil {
		if err := r.channel.Close(); err != nil {
			r.log.Warn().Err(err).Msg("error cerrando canal")
		}
	}
	if r.conn != nil {
		if err := r.conn.Close(); err != nil {
			return fmt.Errorf("close rabbitmq: %w", err)
		}
	}
	r.log.Info().Msg("conexión RabbitMQ cerrada")
	return nil
}
