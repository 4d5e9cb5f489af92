package services

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/jhasonu12/creator-store-backend/pkg/rabbitmq"
)

// Event names emitted by the auth and storefront flows.
const (
	EventUserRegistered    = "USER_REGISTERED"
	EventCreatorRegistered = "CREATOR_REGISTERED"
	EventLoginSuccess      = "LOGIN_SUCCESS"
	EventTokenRefreshed    = "TOKEN_REFRESHED"
	EventLogout            = "LOGOUT"
	EventStorefrontViewed  = "STOREFRONT_VIEWED"
)

// Event is one analytics record. It carries whoever triggered it plus
// free-form metadata.
type Event struct {
	Type       string                 `json:"type"`
	UserID     string                 `json:"user_id,omitempty"`
	CreatorID  string                 `json:"creator_id,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// EventPublisher is the transport the tracker drains into. *rabbitmq.Client
// satisfies it.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// EventTracker dispatches analytics events without ever blocking or failing
// the request that produced them: Track enqueues onto a bounded channel and
// a background goroutine publishes. When the queue is full the event is
// dropped and logged.
type EventTracker struct {
	publisher EventPublisher
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// NewEventTracker creates a tracker draining into publisher. A nil publisher
// turns the tracker into a logging no-op, which tests rely on.
func NewEventTracker(publisher EventPublisher, buffer int) *EventTracker {
	if buffer <= 0 {
		buffer = 256
	}
	t := &EventTracker{
		publisher: publisher,
		events:    make(chan Event, buffer),
		done:      make(chan struct{}),
	}
	go t.drain()
	return t
}

// Track enqueues an event. It never blocks; a full queue drops the event.
func (t *EventTracker) Track(eventType string, event Event) {
	event.Type = eventType
	event.OccurredAt = time.Now()
	select {
	case t.events <- event:
	default:
		log.Printf("Warning: analytics queue full, dropping event %s", eventType)
	}
}

// Close stops accepting events and waits for the queue to drain.
func (t *EventTracker) Close() {
	t.closeOnce.Do(func() {
		close(t.events)
		<-t.done
	})
}

func (t *EventTracker) drain() {
	defer close(t.done)
	for event := range t.events {
		if t.publisher == nil {
			continue
		}
		body, err := json.Marshal(event)
		if err != nil {
			log.Printf("Failed to marshal analytics event %s: %v", event.Type, err)
			continue
		}
		if err := t.publisher.Publish("", rabbitmq.AnalyticsQueue, body); err != nil {
			log.Printf("Warning: failed to publish analytics event %s: %v", event.Type, err)
		}
	}
}
