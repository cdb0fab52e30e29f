package events

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

type recordingConn struct {
	mu   sync.Mutex
	msgs map[string][]byte
	err  error
}

func (c *recordingConn) Publish(subject string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	if c.msgs == nil {
		c.msgs = map[string][]byte{}
	}
	c.msgs[subject] = data
	return nil
}

func TestPublisher_NilIsNoop(t *testing.T) {
	var p *Publisher
	p.RatingSubmitted(RatingSubmitted{MovieID: uuid.New(), Star: 3})

	p = NewPublisher(nil, "", zaptest.NewLogger(t))
	p.ReviewCreated(ReviewCreated{ReviewID: uuid.New()})
}

func TestPublisher_SubjectAndPayload(t *testing.T) {
	conn := &recordingConn{}
	p := NewPublisher(conn, "feedback.", zaptest.NewLogger(t))
	movieID := uuid.New()

	p.RatingSubmitted(RatingSubmitted{MovieID: movieID, Identity: "10.0.0.1", Star: 4})

	raw, ok := conn.msgs["feedback.rating.submitted"]
	if !ok {
		t.Fatalf("expected publish on feedback.rating.submitted, got %v", conn.msgs)
	}

	var evt struct {
		EventType string          `json:"event_type"`
		Data      RatingSubmitted `json:"data"`
	}
	if err := json.Unmarshal(raw, &evt); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if evt.EventType != TypeRatingSubmitted || evt.Data.MovieID != movieID || evt.Data.Star != 4 {
		t.Fatalf("unexpected event %+v", evt)
	}
}

func TestPublisher_FailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	p := NewPublisher(&recordingConn{err: errors.New("nats down")}, "movies", zap.New(core))

	p.ReviewDeleted(ReviewDeleted{ReviewID: uuid.New(), Deleted: 2})

	if logs.FilterMessage("Failed to publish event").Len() != 1 {
		t.Fatalf("expected one warning, got %d entries", logs.Len())
	}
}
