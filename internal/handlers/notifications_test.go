package handlers

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"example.com/zaffaf/backend/internal/notifications"
)

// TestPublishBudgetUpdateDelivers проверяет доставку события бюджета подписчику.
func TestPublishBudgetUpdateDelivers(t *testing.T) {
	hub := notifications.NewHub()
	userID := uuid.New()

	ch, unsubscribe := hub.Subscribe(userID)
	defer unsubscribe()

	publishBudgetUpdate(hub, userID, 40000, 60000)

	select {
	case event := <-ch:
		if event.Type != notifications.EventBudgetUpdated {
			t.Fatalf("event type = %s", event.Type)
		}
		data, ok := event.Data.(map[string]interface{})
		if !ok {
			t.Fatalf("unexpected data: %+v", event.Data)
		}
		if data["spent_cents"] != int64(40000) || data["remaining_cents"] != int64(60000) {
			t.Fatalf("totals = %+v", data)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected budget event to be delivered")
	}
}

// TestPublishHelpersNilHub проверяет, что без хаба публикация безопасна.
func TestPublishHelpersNilHub(t *testing.T) {
	userID := uuid.New()

	publishBudgetUpdate(nil, userID, 0, 0)
	publishFavoriteUpdate(nil, userID, "v1", "added")
	publishChecklistUpdate(nil, userID, uuid.New(), "added")
}
