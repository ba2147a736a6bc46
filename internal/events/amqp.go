package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// session is one connection plus the channel events are published on.
type session interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

type amqpSession struct {
	conn *amqp.Connection
	*amqp.Channel
}

func (s amqpSession) IsClosed() bool {
	return s.conn.IsClosed() || s.Channel.IsClosed()
}

func (s amqpSession) Close() error {
	if err := s.Channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		s.conn.Close()
		return err
	}
	if err := s.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		return err
	}
	return nil
}

// AMQPPublisher publishes events to a durable topic exchange, routed by
// event type. A session lost to a broker restart is re-dialed on the next
// publish.
type AMQPPublisher struct {
	exchange string
	dial     func() (session, error)

	mu   sync.Mutex
	sess session
}

func DialAMQP(url, exchange string) (*AMQPPublisher, error) {
	return newPublisher(exchange, func() (session, error) {
		return dialSession(url, exchange)
	})
}

func newPublisher(exchange string, dial func() (session, error)) (*AMQPPublisher, error) {
	sess, err := dial()
	if err != nil {
		return nil, err
	}
	return &AMQPPublisher{exchange: exchange, dial: dial, sess: sess}, nil
}

func dialSession(url, exchange string) (session, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return amqpSession{conn: conn, Channel: ch}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, evt Event) error {
	msg, err := publishing(evt)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ensureSession(); err != nil {
		return fmt.Errorf("publish %s: %w", evt.Type, err)
	}
	err = p.sess.PublishWithContext(ctx,
		p.exchange, // exchange
		evt.Type,   // routing key
		false,      // mandatory
		false,      // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", evt.Type, err)
	}
	return nil
}

// ensureSession must be called with p.mu held.
func (p *AMQPPublisher) ensureSession() error {
	if p.sess != nil && !p.sess.IsClosed() {
		return nil
	}
	if p.sess != nil {
		p.sess.Close()
		p.sess = nil
	}
	sess, err := p.dial()
	if err != nil {
		return err
	}
	log.Info().Str("exchange", p.exchange).Msg("Reconnected to AMQP broker")
	p.sess = sess
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sess == nil {
		return nil
	}
	err := p.sess.Close()
	p.sess = nil
	return err
}

func publishing(evt Event) (amqp.Publishing, error) {
	body, err := json.Marshal(evt)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("encode event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    evt.OccurredAt,
		Type:         evt.Type,
		Body:         body,
	}, nil
}
