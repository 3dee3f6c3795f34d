package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const (
	minSuggestions = 1
	maxSuggestions = 6

	maxTitleLength  = 80
	maxDetailLength = 300
)

type Service struct {
	client Client
}

// NewService создает сервис работы с AI-клиентом.
func NewService(client Client) *Service {
	return &Service{client: client}
}

// DailyInsights запрашивает у AI подсказки по дню ребенка и валидирует ответ.
func (s *Service) DailyInsights(ctx context.Context, input DailyInsightsInput) (InsightsResponse, string, []byte, error) {
	prompt, err := buildInsightsPrompt(input)
	if err != nil {
		return InsightsResponse{}, "", nil, err
	}

	messages := []Message{
		{Role: "system", Content: "You are an infant care assistant. Respond with JSON only, without extra text. Never give medical diagnoses."},
		{Role: "user", Content: prompt},
	}

	content, raw, err := s.client.Chat(ctx, messages)
	if err != nil {
		return InsightsResponse{}, prompt, raw, err
	}

	var response InsightsResponse
	if err := parseJSON(content, &response); err != nil {
		return InsightsResponse{}, prompt, raw, err
	}

	normalizeInsightsResponse(&response, input.Date)
	if err := validateInsightsResponse(response); err != nil {
		return InsightsResponse{}, prompt, raw, err
	}

	return response, prompt, raw, nil
}

func buildInsightsPrompt(input DailyInsightsInput) (string, error) {
	payload, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`Review one day of baby care logs and return gentle, practical suggestions as JSON.

Requirements:
- Output JSON only, no code fences, no extra text.
- Schema:
{
  "date": string,
  "suggestions": [
    {"id": string, "title": string, "detail": string}
  ]
}
- Provide 2-4 suggestions.
- Keep titles short (<= 60 chars) and details to one or two sentences.
- Use stable kebab-case ids derived from the topic.
- Base every suggestion on the supplied logs; do not invent readings.
- Encourage contacting a pediatrician for any concerning temperature; never diagnose.

Input:
%s`, string(payload))

	return prompt, nil
}

func parseJSON(input string, target interface{}) error {
	payload := extractJSON(input)
	if payload == "" {
		return errors.New("ai response does not contain json")
	}

	return json.Unmarshal([]byte(payload), target)
}

func extractJSON(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimPrefix(strings.TrimSpace(trimmed), "json")
		trimmed = strings.TrimSpace(trimmed)
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
		trimmed = strings.TrimSpace(trimmed)
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}

	return trimmed[start : end+1]
}

func normalizeInsightsResponse(response *InsightsResponse, date string) {
	if strings.TrimSpace(response.Date) == "" {
		response.Date = date
	}

	for i := range response.Suggestions {
		suggestion := &response.Suggestions[i]
		suggestion.Title = strings.TrimSpace(suggestion.Title)
		suggestion.Detail = strings.TrimSpace(suggestion.Detail)
		suggestion.ID = strings.TrimSpace(suggestion.ID)
		if suggestion.ID == "" {
			suggestion.ID = slugify(suggestion.Title)
		}
	}
}

func validateInsightsResponse(response InsightsResponse) error {
	count := len(response.Suggestions)
	if count < minSuggestions {
		return errors.New("suggestions are required")
	}
	if count > maxSuggestions {
		return errors.New("too many suggestions")
	}

	seen := make(map[string]struct{}, count)
	for _, suggestion := range response.Suggestions {
		if suggestion.ID == "" {
			return errors.New("suggestion id is required")
		}
		if _, dup := seen[suggestion.ID]; dup {
			return fmt.Errorf("duplicate suggestion id: %s", suggestion.ID)
		}
		seen[suggestion.ID] = struct{}{}

		if suggestion.Title == "" {
			return errors.New("suggestion title is required")
		}
		if len(suggestion.Title) > maxTitleLength {
			return errors.New("suggestion title is too long")
		}
		if suggestion.Detail == "" {
			return errors.New("suggestion detail is required")
		}
		if len(suggestion.Detail) > maxDetailLength {
			return errors.New("suggestion detail is too long")
		}
	}

	return nil
}

func slugify(value string) string {
	var builder strings.Builder
	lastDash := true

	for _, r := range strings.ToLower(value) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			builder.WriteRune(r)
			lastDash = false
		case !lastDash:
			builder.WriteRune('-')
			lastDash = true
		}
	}

	return strings.Trim(builder.String(), "-")
}
