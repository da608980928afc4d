// Package events carries flight events from the service to anyone watching,
// over an in-memory watermill pub/sub.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Topic is the single topic all flight events are published on.
const Topic = "flight-events"

// Type identifies what happened to a flight.
type Type string

const (
	TypeSeatsAdded      Type = "seats_added"
	TypePassengerQueued Type = "passenger_queued"
	TypeTicketsSold     Type = "tickets_sold"
	TypeFlightClosed    Type = "flight_closed"
)

// Event is one flight state change in one session. Lines carries the
// directive's output exactly as a transcript would show it.
type Event struct {
	Type      Type     `json:"type"`
	SessionID string   `json:"sessionId"`
	Flight    string   `json:"flight"`
	Lines     []string `json:"lines"`
	Timestamp int64    `json:"timestamp"`
}

// Key identifies the audience of an event.
func (e Event) Key() string {
	return WatchKey(e.SessionID, e.Flight)
}

// WatchKey builds the key clients subscribe under.
func WatchKey(sessionID, flight string) string {
	return sessionID + "/" + flight
}

// Bus publishes and subscribes to flight events.
type Bus struct {
	pubSub *gochannel.GoChannel
}

// NewBus creates an in-memory bus. Events published while nobody subscribes
// are dropped. Publish waits for every subscriber to take the event, which
// keeps events in publish order.
func NewBus(logger watermill.LoggerAdapter) *Bus {
	if logger == nil {
		logger = watermill.NewStdLogger(false, false)
	}
	return &Bus{
		pubSub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer:            256,
			BlockPublishUntilSubscriberAck: true,
		}, logger),
	}
}

// Publish sends ev to every subscriber.
func (b *Bus) Publish(ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := b.pubSub.Publish(Topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Subscribe returns decoded events until ctx is done or the bus closes.
// Undecodable messages are acked and skipped.
func (b *Bus) Subscribe(ctx context.Context) (<-chan Event, error) {
	messages, err := b.pubSub.Subscribe(ctx, Topic)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	out := make(chan Event)
	go func() {
		defer close(out)
		for msg := range messages {
			var ev Event
			err := json.Unmarshal(msg.Payload, &ev)
			msg.Ack()
			if err != nil {
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Close stops the bus and closes every subscription.
func (b *Bus) Close() error {
	return b.pubSub.Close()
}
