package suggest

import (
	"testing"
)

// TestBuildRuleSuggestionsQuietDay проверяет подсказку по умолчанию при норме.
func TestBuildRuleSuggestionsQuietDay(t *testing.T) {
	snap := DaySnapshot{FeedCount: 7, DiaperCount: 5}

	got := BuildRuleSuggestions(snap, DefaultRuleThresholds())
	if len(got) != 1 {
		t.Fatalf("expected single default suggestion, got %d", len(got))
	}
	if got[0].ID != "routine-ok" {
		t.Fatalf("expected routine-ok, got %s", got[0].ID)
	}
}

// TestBuildRuleSuggestionsPriorityOrder проверяет порядок подсказок по приоритету.
func TestBuildRuleSuggestionsPriorityOrder(t *testing.T) {
	temp := 38.1
	snap := DaySnapshot{
		FeedCount:          2,
		DiaperCount:        1,
		LatestTemperatureC: &temp,
		MedicationCount:    1,
	}

	got := BuildRuleSuggestions(snap, DefaultRuleThresholds())

	wantIDs := []string{"temp-trend", "feed-count", "diaper-count", "med-review"}
	if len(got) != len(wantIDs) {
		t.Fatalf("expected %d suggestions, got %d", len(wantIDs), len(got))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Fatalf("expected %s at %d, got %s", id, i, got[i].ID)
		}
		if got[i].Source != SourceRule {
			t.Fatalf("expected rule source at %d, got %s", i, got[i].Source)
		}
	}
}

// TestBuildRuleSuggestionsTemperatureBelowWatch проверяет порог температуры.
func TestBuildRuleSuggestionsTemperatureBelowWatch(t *testing.T) {
	temp := 36.8
	snap := DaySnapshot{FeedCount: 8, DiaperCount: 6, LatestTemperatureC: &temp}

	got := BuildRuleSuggestions(snap, DefaultRuleThresholds())
	for _, suggestion := range got {
		if suggestion.ID == "temp-trend" {
			t.Fatal("expected no temperature suggestion below watch threshold")
		}
	}
}

// TestBuildRuleSuggestionsDeterministic проверяет стабильность результата.
func TestBuildRuleSuggestionsDeterministic(t *testing.T) {
	snap := DaySnapshot{FeedCount: 3, DiaperCount: 2}

	first := BuildRuleSuggestions(snap, DefaultRuleThresholds())
	second := BuildRuleSuggestions(snap, DefaultRuleThresholds())

	if len(first) != len(second) {
		t.Fatalf("expected stable output, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("expected identical suggestion at %d", i)
		}
	}
}
