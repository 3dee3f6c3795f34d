package suggest

import (
	"reflect"
	"testing"
)

// TestMergeRulesOnly проверяет выдачу rule-подсказок без AI-ответа.
func TestMergeRulesOnly(t *testing.T) {
	rules := []Suggestion{
		{ID: "feed-count", Title: "Feeding frequency", Detail: "Offer a feed"},
		{ID: "diaper-count", Title: "Diaper output check", Detail: "Count wet diapers"},
		{ID: "med-review", Title: "Medication log review", Detail: "Review doses"},
	}

	got := Merge(rules, nil, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(got))
	}

	for i, suggestion := range got {
		if suggestion.Source != SourceRule {
			t.Fatalf("expected rule source at %d, got %s", i, suggestion.Source)
		}
		if suggestion.ID != rules[i].ID {
			t.Fatalf("expected original order, got %s at %d", suggestion.ID, i)
		}
	}
}

// TestMergeEmptyAIBatch проверяет, что пустой AI-ответ равнозначен nil.
func TestMergeEmptyAIBatch(t *testing.T) {
	rules := []Suggestion{
		{ID: "feed-count", Title: "Feeding frequency", Detail: "Offer a feed"},
	}

	got := Merge(rules, &InsightsResponse{Date: "2025-03-01"}, 4)
	if len(got) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(got))
	}
	if got[0].Source != SourceRule {
		t.Fatalf("expected rule source, got %s", got[0].Source)
	}
}

// TestMergeAIWinsTopicTie проверяет подавление rule-подсказки по общей теме.
func TestMergeAIWinsTopicTie(t *testing.T) {
	rules := []Suggestion{
		{ID: "temp-trend", Title: "Temperature trend watch", Detail: "Monitor fever"},
	}
	ai := &InsightsResponse{
		Date: "2025-03-01",
		Suggestions: []Suggestion{
			{ID: "ai-temp", Title: "Temperature check", Detail: "Watch for fever spikes"},
		},
	}

	got := Merge(rules, ai, 4)
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 suggestion, got %d", len(got))
	}
	if got[0].Source != SourceAI {
		t.Fatalf("expected ai source, got %s", got[0].Source)
	}
	if got[0].ID != "ai-temp" {
		t.Fatalf("expected ai suggestion to survive, got %s", got[0].ID)
	}
}

// TestMergeCapsCombinedOutput проверяет ограничение длины при обоих источниках.
func TestMergeCapsCombinedOutput(t *testing.T) {
	rules := []Suggestion{
		{ID: "r1", Title: "Tummy routine", Detail: "Short supervised sessions"},
		{ID: "r2", Title: "Bath preparation", Detail: "Warm water first"},
		{ID: "r3", Title: "Outdoor walk", Detail: "Fresh air before nap"},
		{ID: "r4", Title: "Sleep evening", Detail: "Dim lights early"},
	}
	ai := &InsightsResponse{
		Date: "2025-03-01",
		Suggestions: []Suggestion{
			{ID: "ai-med", Title: "Medication spacing", Detail: "Space paracetamol doses"},
		},
	}

	got := Merge(rules, ai, 4)
	if len(got) != 4 {
		t.Fatalf("expected output capped at 4, got %d", len(got))
	}
	if got[0].ID != "ai-med" || got[0].Source != SourceAI {
		t.Fatalf("expected ai suggestion first, got %s (%s)", got[0].ID, got[0].Source)
	}
	for i, suggestion := range got[1:] {
		if suggestion.Source != SourceRule {
			t.Fatalf("expected rule source at %d, got %s", i+1, suggestion.Source)
		}
	}
}

// TestMergeAllRulesSuppressed проверяет выдачу только AI при полном пересечении тем.
func TestMergeAllRulesSuppressed(t *testing.T) {
	rules := []Suggestion{
		{ID: "feed-count", Title: "Feeding frequency", Detail: "Offer a feed"},
		{ID: "temp-trend", Title: "Temperature trend watch", Detail: "Monitor fever"},
	}
	ai := &InsightsResponse{
		Date: "2025-03-01",
		Suggestions: []Suggestion{
			{ID: "ai-feed", Title: "Feeding rhythm", Detail: "Frequency looks low"},
			{ID: "ai-temp", Title: "Temperature check", Detail: "Watch for fever spikes"},
		},
	}

	got := Merge(rules, ai, 4)
	if len(got) != 2 {
		t.Fatalf("expected only ai suggestions, got %d", len(got))
	}
	for _, suggestion := range got {
		if suggestion.Source != SourceAI {
			t.Fatalf("expected ai source, got %s", suggestion.Source)
		}
	}
}

// TestMergeEmptyInputs проверяет пустой результат без каких-либо подсказок.
func TestMergeEmptyInputs(t *testing.T) {
	got := Merge(nil, nil, 4)
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

// TestMergeInvalidMaxCount проверяет пустой результат при maxCount <= 0.
func TestMergeInvalidMaxCount(t *testing.T) {
	rules := []Suggestion{
		{ID: "feed-count", Title: "Feeding frequency", Detail: "Offer a feed"},
	}

	if got := Merge(rules, nil, 0); len(got) != 0 {
		t.Fatalf("expected empty result for maxCount 0, got %d", len(got))
	}
	if got := Merge(rules, nil, -3); len(got) != 0 {
		t.Fatalf("expected empty result for negative maxCount, got %d", len(got))
	}
}

// TestMergeIdempotent проверяет идентичность результата при повторном вызове.
func TestMergeIdempotent(t *testing.T) {
	rules := []Suggestion{
		{ID: "feed-count", Title: "Feeding frequency", Detail: "Offer a feed"},
		{ID: "diaper-count", Title: "Diaper output check", Detail: "Count wet diapers"},
	}
	ai := &InsightsResponse{
		Date: "2025-03-01",
		Suggestions: []Suggestion{
			{ID: "ai-sleep", Title: "Sleep window", Detail: "Earlier nap may help"},
		},
	}

	first := Merge(rules, ai, 4)
	second := Merge(rules, ai, 4)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %v and %v", first, second)
	}
}
