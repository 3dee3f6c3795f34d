package notifications

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestHubPublishSubscribe проверяет доставку событий подписчику.
func TestHubPublishSubscribe(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	ch, unsubscribe := hub.Subscribe(userID)
	defer unsubscribe()

	hub.Publish(userID, Event{Type: "test"})

	select {
	case event := <-ch:
		if event.Type != "test" {
			t.Fatalf("expected event type test, got %s", event.Type)
		}
		if event.Timestamp.IsZero() {
			t.Fatal("expected timestamp to be set")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected event to be delivered")
	}
}

// TestHubUnsubscribe проверяет закрытие канала после отписки.
func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	ch, unsubscribe := hub.Subscribe(userID)
	unsubscribe()

	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed")
	}
}

// TestAlertRaisedEvent проверяет структуру события алерта.
func TestAlertRaisedEvent(t *testing.T) {
	babyID := uuid.New()
	event := AlertRaised(babyID, "critical", "Temperature 38.5°C is at or above the fever threshold of 38.0°C")

	if event.Type != EventAlertRaised {
		t.Fatalf("expected type %s, got %s", EventAlertRaised, event.Type)
	}

	data, ok := event.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("expected map data, got %T", event.Data)
	}
	if data["baby_id"] != babyID {
		t.Fatalf("expected baby_id %s, got %v", babyID, data["baby_id"])
	}
	if data["level"] != "critical" {
		t.Fatalf("expected level critical, got %v", data["level"])
	}
}
