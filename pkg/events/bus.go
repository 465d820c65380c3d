// Package events provides the typed publish/subscribe router that connects
// widgets, the page manager, and application code.
//
// The bus is synchronous and single-threaded: Publish runs every handler on
// the caller's stack before returning. Handlers may themselves publish,
// subscribe, or unsubscribe; there is no cycle detection for recursive
// publish chains, so handlers must not republish their own topic
// unconditionally.
package events

import (
	kioskerrors "github.com/go-kiosk/kiosk/pkg/errors"
)

// Event is a message delivered to topic subscribers.
type Event struct {
	// Topic is the string key under which the event was published.
	Topic string
	// Payload carries the publisher's data. Subscribers type-assert it.
	Payload any
}

// Handler receives published events.
type Handler func(Event)

// Subscription identifies one registration on the bus.
// The zero Subscription is invalid and unsubscribing it is a no-op.
type Subscription struct {
	topic string
	id    uint64
}

// Topic returns the topic this subscription is registered under.
func (s Subscription) Topic() string {
	return s.topic
}

// registration pairs a handler with its subscription ID. The removed flag
// lets an in-flight Publish skip handlers unsubscribed during dispatch.
type registration struct {
	id      uint64
	handler Handler
	removed bool
}

// Bus routes events from publishers to subscribers by topic.
//
// Delivery order equals subscription order. The subscriber list is
// snapshotted at the start of each Publish: handlers subscribed during
// dispatch are not invoked until the next Publish, and handlers
// unsubscribed during dispatch (including by themselves) are skipped.
type Bus struct {
	topics map[string][]*registration
	nextID uint64
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{topics: make(map[string][]*registration)}
}

// Subscribe registers a handler for a topic and returns its subscription.
// Multiple independent subscribers per topic are supported; the same
// handler function may be registered more than once.
func (b *Bus) Subscribe(topic string, handler Handler) (Subscription, error) {
	if handler == nil {
		return Subscription{}, kioskerrors.E("events.Subscribe", kioskerrors.KindNullParam, "handler is nil")
	}
	if topic == "" {
		return Subscription{}, kioskerrors.E("events.Subscribe", kioskerrors.KindInvalidParam, "topic is empty")
	}
	b.nextID++
	reg := &registration{id: b.nextID, handler: handler}
	b.topics[topic] = append(b.topics[topic], reg)
	return Subscription{topic: topic, id: reg.id}, nil
}

// Unsubscribe removes one registration. Removing an absent or already
// removed subscription is a no-op, since teardown may legitimately
// unsubscribe twice.
func (b *Bus) Unsubscribe(sub Subscription) {
	regs, ok := b.topics[sub.topic]
	if !ok {
		return
	}
	for i, reg := range regs {
		if reg.id == sub.id {
			reg.removed = true
			b.topics[sub.topic] = append(regs[:i], regs[i+1:]...)
			if len(b.topics[sub.topic]) == 0 {
				delete(b.topics, sub.topic)
			}
			return
		}
	}
}

// Publish synchronously delivers an event to every handler subscribed to
// the topic at call time, in subscription order. A handler unsubscribing
// itself (or a later handler) mid-dispatch does not break the loop.
func (b *Bus) Publish(topic string, payload any) {
	regs := b.topics[topic]
	if len(regs) == 0 {
		return
	}
	// Snapshot so mutations during dispatch don't affect this delivery.
	snapshot := make([]*registration, len(regs))
	copy(snapshot, regs)

	event := Event{Topic: topic, Payload: payload}
	for _, reg := range snapshot {
		if reg.removed {
			continue
		}
		reg.handler(event)
	}
}

// SubscriberCount returns the number of live registrations for a topic.
func (b *Bus) SubscriberCount(topic string) int {
	return len(b.topics[topic])
}
