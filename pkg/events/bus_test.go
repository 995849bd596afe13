package events

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSubscribePublish(t *testing.T) {
	b := NewBus()

	var got []string
	unsub := b.Subscribe(TopicSaleCreated, func(e Event) {
		got = append(got, e.Topic)
	})
	defer unsub()

	b.Publish(Event{Topic: TopicSaleCreated, TenantID: uuid.New(), At: time.Now()})
	b.Publish(Event{Topic: TopicInventoryUpdated, TenantID: uuid.New(), At: time.Now()})

	if len(got) != 1 || got[0] != TopicSaleCreated {
		t.Fatalf("expected exactly one sale-created delivery, got %v", got)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBus()

	calls := 0
	unsub := b.Subscribe(TopicInventoryUpdated, func(Event) { calls++ })

	b.Publish(Event{Topic: TopicInventoryUpdated})
	unsub()
	b.Publish(Event{Topic: TopicInventoryUpdated})
	unsub() // double unsubscribe is harmless

	if calls != 1 {
		t.Fatalf("expected 1 delivery before unsubscribe, got %d", calls)
	}
}

func TestMultipleSubscribers(t *testing.T) {
	b := NewBus()

	a, c := 0, 0
	defer b.Subscribe(TopicSaleCreated, func(Event) { a++ })()
	defer b.Subscribe(TopicSaleCreated, func(Event) { c++ })()

	b.Publish(Event{Topic: TopicSaleCreated})

	if a != 1 || c != 1 {
		t.Fatalf("expected both subscribers called once, got %d and %d", a, c)
	}
}
