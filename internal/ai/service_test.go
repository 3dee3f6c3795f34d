package ai

import (
	"strings"
	"testing"
)

// TestExtractJSONFencedOutput проверяет извлечение JSON из блока с ограждением.
func TestExtractJSONFencedOutput(t *testing.T) {
	input := "```json\n{\"suggestions\": []}\n```"

	got := extractJSON(input)
	if got != `{"suggestions": []}` {
		t.Fatalf("unexpected extraction result: %q", got)
	}
}

// TestExtractJSONSurroundingText проверяет извлечение JSON из текста с комментарием.
func TestExtractJSONSurroundingText(t *testing.T) {
	input := "Here are the suggestions: {\"date\": \"2025-03-01\"} hope this helps"

	got := extractJSON(input)
	if got != `{"date": "2025-03-01"}` {
		t.Fatalf("unexpected extraction result: %q", got)
	}
}

// TestExtractJSONMissingObject проверяет пустой результат без JSON-объекта.
func TestExtractJSONMissingObject(t *testing.T) {
	if got := extractJSON("no json here"); got != "" {
		t.Fatalf("expected empty result, got %q", got)
	}
}

// TestNormalizeInsightsResponse проверяет заполнение даты и генерацию id.
func TestNormalizeInsightsResponse(t *testing.T) {
	response := InsightsResponse{
		Suggestions: []InsightSuggestion{
			{Title: "  Feeding rhythm check  ", Detail: " Offer a feed sooner. "},
		},
	}

	normalizeInsightsResponse(&response, "2025-03-01")

	if response.Date != "2025-03-01" {
		t.Fatalf("expected date fallback, got %q", response.Date)
	}
	if response.Suggestions[0].ID != "feeding-rhythm-check" {
		t.Fatalf("expected generated id, got %q", response.Suggestions[0].ID)
	}
	if response.Suggestions[0].Title != "Feeding rhythm check" {
		t.Fatalf("expected trimmed title, got %q", response.Suggestions[0].Title)
	}
}

// TestValidateInsightsResponse проверяет границы валидации ответа.
func TestValidateInsightsResponse(t *testing.T) {
	valid := InsightsResponse{
		Date: "2025-03-01",
		Suggestions: []InsightSuggestion{
			{ID: "feed-rhythm", Title: "Feeding rhythm", Detail: "Offer a feed sooner."},
		},
	}
	if err := validateInsightsResponse(valid); err != nil {
		t.Fatalf("expected valid response, got %v", err)
	}

	empty := InsightsResponse{Date: "2025-03-01"}
	if err := validateInsightsResponse(empty); err == nil {
		t.Fatal("expected error for empty suggestions")
	}

	duplicate := valid
	duplicate.Suggestions = append(duplicate.Suggestions, duplicate.Suggestions[0])
	if err := validateInsightsResponse(duplicate); err == nil {
		t.Fatal("expected error for duplicate ids")
	}

	long := valid
	long.Suggestions = []InsightSuggestion{
		{ID: "x", Title: strings.Repeat("a", maxTitleLength+1), Detail: "ok"},
	}
	if err := validateInsightsResponse(long); err == nil {
		t.Fatal("expected error for too long title")
	}
}

// TestSlugify проверяет генерацию kebab-case идентификаторов.
func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Feeding rhythm check":  "feeding-rhythm-check",
		"  Temp! Watch  ":       "temp-watch",
		"Night (light) routine": "night-light-routine",
	}

	for input, want := range cases {
		if got := slugify(input); got != want {
			t.Fatalf("slugify(%q) = %q, want %q", input, got, want)
		}
	}
}
