// Package notify implements the change-notification fan-out as an in-process
// topic broker. A committed status transition is published to the order's
// tracking topic (customer, keyed per order), the store's topic, and, once a
// partner is bound, that partner's topic.
//
// Delivery is best-effort per subscriber and at-least-once overall: the
// outbox relay republishes events whose delivery was never recorded, and
// every message carries the full order snapshot, so subscribers apply
// messages as idempotent overwrites keyed by order id and never need to see
// every intermediate message.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
)

const defaultBufferSize = 16

// Message is one change notification: the transition that happened plus the
// full state of the order after it.
type Message struct {
	EventID    kernel.UUID
	OrderID    kernel.UUID
	OldStatus  order.Status
	NewStatus  order.Status
	OccurredAt time.Time
	Snapshot   *order.Order
}

// CustomerTopic returns the per-order topic the customer's tracking view
// subscribes to.
func CustomerTopic(orderID kernel.UUID) string {
	return fmt.Sprintf("customer:%s", orderID)
}

// StoreTopic returns the topic carrying all of a store's orders.
func StoreTopic(storeID kernel.UUID) string {
	return fmt.Sprintf("store:%s", storeID)
}

// PartnerTopic returns the topic carrying a delivery partner's assignments.
func PartnerTopic(partnerID kernel.UUID) string {
	return fmt.Sprintf("partner:%s", partnerID)
}

type subscriber struct {
	id int
	ch chan Message
}

// Broker is an in-process publish/subscribe hub implementing
// ports.EventPublisher. Publish never blocks: a subscriber whose buffer is
// full misses that message and catches up from the next snapshot.
type Broker struct {
	logger *slog.Logger

	mu     sync.RWMutex
	nextID int
	topics map[string][]subscriber
}

// NewBroker creates an empty broker.
func NewBroker(logger *slog.Logger) *Broker {
	return &Broker{
		logger: logger,
		topics: make(map[string][]subscriber),
	}
}

// Subscribe registers a new subscriber on a topic. The returned cancel
// function removes the subscription and closes the channel; it is safe to
// call more than once.
func (b *Broker) Subscribe(topic string) (<-chan Message, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := subscriber{
		id: b.nextID,
		ch: make(chan Message, defaultBufferSize),
	}
	b.nextID++
	b.topics[topic] = append(b.topics[topic], sub)

	var once sync.Once
	cancel := func() {
		once.Do(func() { b.unsubscribe(topic, sub.id) })
	}
	return sub.ch, cancel
}

// Publish fans a committed transition out to the topics of everyone bound to
// the order. Fire-and-forget: failures are logged, never returned.
func (b *Broker) Publish(_ context.Context, event *order.Event, snapshot *order.Order) {
	if event == nil || snapshot == nil {
		return
	}

	msg := Message{
		EventID:    event.ID(),
		OrderID:    event.OrderID(),
		OldStatus:  event.OldStatus(),
		NewStatus:  event.NewStatus(),
		OccurredAt: event.OccurredAt(),
		Snapshot:   snapshot,
	}

	topics := []string{
		CustomerTopic(event.OrderID()),
		StoreTopic(snapshot.StoreID()),
	}
	if partnerID := snapshot.Partner(); partnerID != nil {
		topics = append(topics, PartnerTopic(*partnerID))
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, topic := range topics {
		for _, sub := range b.topics[topic] {
			select {
			case sub.ch <- msg:
			default:
				b.logger.Warn("subscriber buffer full, dropping notification",
					"topic", topic,
					"order_id", msg.OrderID.String(),
					"event_id", msg.EventID.String(),
				)
			}
		}
	}
}

// SubscriberCount reports how many subscriptions a topic currently has.
func (b *Broker) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}

func (b *Broker) unsubscribe(topic string, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.topics[topic]
	for i, sub := range subs {
		if sub.id == id {
			b.topics[topic] = append(subs[:i:i], subs[i+1:]...)
			close(sub.ch)
			break
		}
	}
	if len(b.topics[topic]) == 0 {
		delete(b.topics, topic)
	}
}
