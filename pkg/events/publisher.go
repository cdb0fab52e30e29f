// Package events broadcasts feedback activity over NATS core subjects.
// Delivery is best effort; a failed publish never fails the caller.
package events

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	TypeRatingSubmitted = "rating.submitted"
	TypeReviewCreated   = "review.created"
	TypeReviewDeleted   = "review.deleted"
)

// Conn is the subset of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
}

type Event struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

type RatingSubmitted struct {
	MovieID  uuid.UUID `json:"movie_id"`
	Identity string    `json:"identity"`
	Star     int       `json:"star"`
}

type ReviewCreated struct {
	ReviewID uuid.UUID  `json:"review_id"`
	MovieID  uuid.UUID  `json:"movie_id"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

type ReviewDeleted struct {
	ReviewID uuid.UUID `json:"review_id"`
	Deleted  int64     `json:"deleted"`
}

// Publisher is safe to use as a nil pointer; every method is then a no-op.
type Publisher struct {
	conn   Conn
	prefix string
	log    *zap.Logger
}

func NewPublisher(conn Conn, prefix string, log *zap.Logger) *Publisher {
	prefix = strings.Trim(strings.TrimSpace(prefix), ".")
	if prefix == "" {
		prefix = "movies"
	}
	return &Publisher{
		conn:   conn,
		prefix: prefix,
		log:    log.With(zap.String("component", "events")),
	}
}

// Connect dials NATS. An empty url returns (nil, nil) and events are dropped.
func Connect(url, name string, log *zap.Logger) (*nats.Conn, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		log.Warn("NATS_URL not set, feedback events will not be published")
		return nil, nil
	}

	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("NATS disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("NATS reconnected", zap.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect %s: %w", url, err)
	}

	log.Info("NATS connected", zap.String("url", url))
	return nc, nil
}

// Subject returns the full subject for an event type.
func (p *Publisher) Subject(eventType string) string {
	return p.prefix + "." + eventType
}

func (p *Publisher) RatingSubmitted(evt RatingSubmitted) {
	p.publish(TypeRatingSubmitted, evt)
}

func (p *Publisher) ReviewCreated(evt ReviewCreated) {
	p.publish(TypeReviewCreated, evt)
}

func (p *Publisher) ReviewDeleted(evt ReviewDeleted) {
	p.publish(TypeReviewDeleted, evt)
}

func (p *Publisher) publish(eventType string, data any) {
	if p == nil || p.conn == nil {
		return
	}

	evt := Event{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		p.log.Warn("Failed to encode event", zap.String("event_type", eventType), zap.Error(err))
		return
	}

	subject := p.Subject(eventType)
	if err := p.conn.Publish(subject, payload); err != nil {
		p.log.Warn("Failed to publish event",
			zap.String("subject", subject),
			zap.String("event_id", evt.EventID),
			zap.Error(err),
		)
		return
	}

	p.log.Debug("Event published",
		zap.String("subject", subject),
		zap.String("event_id", evt.EventID),
	)
}
