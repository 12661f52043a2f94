package broker

import (
	"time"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"taskflow-app/taskflow/config"
	"taskflow-app/taskflow/models"
)

// Producer publishes raw payloads on a subject.
type Producer interface {
	PublishMessage(subject string, data []byte) error
	Close()
}

// NatsProducer publishes on a NATS connection.
type NatsProducer struct {
	conn *nats.Conn
}

func NewNatsProducer(conn *nats.Conn) *NatsProducer {
	return &NatsProducer{conn: conn}
}

func (p *NatsProducer) PublishMessage(subject string, data []byte) error {
	return p.conn.Publish(subject, data)
}

func (p *NatsProducer) Close() {
	if p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		log.Warnf("Failed to drain NATS connection: %v", err)
		p.conn.Close()
	}
}

type noopProducer struct{}

func (noopProducer) PublishMessage(subject string, data []byte) error {
	log.WithField("subject", subject).Debug("broker disabled, dropping message")
	return nil
}

func (noopProducer) Close() {}

// NoopProducer discards every message. It stands in when no broker is reachable.
var NoopProducer Producer = noopProducer{}

// DefaultProducer is never nil; InitProducer replaces it on success.
var DefaultProducer Producer = NoopProducer

// InitProducer connects to NATS and installs the connection as DefaultProducer.
func InitProducer(cfg config.Config) (Producer, error) {
	conn, err := nats.Connect(cfg.NatsURL,
		nats.Name("taskflow"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warnf("NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Infof("NATS reconnected to %s", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return NoopProducer, err
	}

	producer := NewNatsProducer(conn)
	DefaultProducer = producer
	log.Infof("NATS producer connected to %s", conn.ConnectedUrl())
	return producer, nil
}

// PublishEvent encodes event and publishes it on the subject for its type.
// Delivery is best effort: failures are logged and returned, never retried.
func PublishEvent(p Producer, event *models.Event) error {
	if p == nil {
		p = DefaultProducer
	}
	data, err := event.ToJSON()
	if err != nil {
		return err
	}
	subject := Subject(EventType(event.Event))
	if err := p.PublishMessage(subject, data); err != nil {
		log.WithFields(log.Fields{
			"subject":  subject,
			"event_id": event.ID.String(),
		}).Errorf("Failed to publish event: %v", err)
		return err
	}
	return nil
}
