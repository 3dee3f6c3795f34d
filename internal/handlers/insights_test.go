package handlers

import (
	"testing"

	"github.com/usimeon/BabyLog-sub001/internal/ai"
	"github.com/usimeon/BabyLog-sub001/internal/suggest"
)

// TestToInsightsResponse проверяет маппинг ответа модели в советы.
func TestToInsightsResponse(t *testing.T) {
	aiResponse := ai.InsightsResponse{
		Date: "2026-03-15",
		Suggestions: []ai.InsightSuggestion{
			{ID: "feeding-rhythm", Title: "Feeding rhythm", Detail: "Feeds are evenly spaced."},
			{ID: "hydration-check", Title: "Hydration check", Detail: "Wet diaper count looks healthy."},
		},
	}

	response := toInsightsResponse(aiResponse, "2026-03-15")

	if response.Date != "2026-03-15" {
		t.Fatalf("unexpected date: %s", response.Date)
	}
	if response.Cached {
		t.Fatal("fresh response must not be marked cached")
	}
	if len(response.Suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(response.Suggestions))
	}

	for _, suggestion := range response.Suggestions {
		if suggestion.Source != suggest.SourceAI {
			t.Fatalf("expected ai source, got %s", suggestion.Source)
		}
	}
}

// TestToInsightsResponseEmpty проверяет маппинг пустого ответа.
func TestToInsightsResponseEmpty(t *testing.T) {
	response := toInsightsResponse(ai.InsightsResponse{}, "2026-03-15")

	if response.Suggestions == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(response.Suggestions) != 0 {
		t.Fatalf("expected 0 suggestions, got %d", len(response.Suggestions))
	}
}
