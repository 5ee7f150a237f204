package handlers

import (
	"testing"
	"time"

	"example.com/zaffaf/backend/internal/models"
)

// TestToChecklistInput проверяет маппинг запроса в данные репозитория.
func TestToChecklistInput(t *testing.T) {
	due := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	input := toChecklistInput(ChecklistItemRequest{
		Title:    "Réserver la salle",
		Status:   "in-progress",
		Priority: "high",
		DueDate:  &due,
	})

	if input.Status != models.ChecklistStatusInProgress {
		t.Fatalf("status = %v", input.Status)
	}
	if input.Priority != models.ChecklistPriorityHigh {
		t.Fatalf("priority = %v", input.Priority)
	}
	if input.DueDate == nil || !input.DueDate.Equal(due) {
		t.Fatalf("due date = %v", input.DueDate)
	}
}

// TestNormalizeName проверяет нормализацию имени при регистрации.
func TestNormalizeName(t *testing.T) {
	if normalizeName(nil) != nil {
		t.Fatal("expected nil for nil input")
	}

	empty := "   "
	if normalizeName(&empty) != nil {
		t.Fatal("expected nil for blank input")
	}

	name := "  Amira "
	got := normalizeName(&name)
	if got == nil || *got != "Amira" {
		t.Fatalf("got %v", got)
	}
}
