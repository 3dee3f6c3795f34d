package suggest

import "strings"

// Generic words that would make unrelated suggestions look like the same
// topic. The heuristic compares topic-bearing tokens only.
var similarityStopwords = map[string]struct{}{
	"baby":  {},
	"your":  {},
	"today": {},
	"daily": {},
	"more":  {},
	"with":  {},
	"keep":  {},
	"time":  {},
}

// Similar сообщает, относятся ли две подсказки к одной теме.
//
// Two suggestions cover the same topic when any token of length >= 4 from
// the normalized title+detail text of one also appears in the other.
// A deliberately loose keyword heuristic; kept as a standalone predicate so
// the dedup policy can be replaced without touching merge ordering.
func Similar(a, b Suggestion) bool {
	tokensA := topicTokens(a)
	if len(tokensA) == 0 {
		return false
	}

	for _, token := range topicTokensList(b) {
		if _, ok := tokensA[token]; ok {
			return true
		}
	}

	return false
}

func topicTokens(s Suggestion) map[string]struct{} {
	out := make(map[string]struct{})
	for _, token := range topicTokensList(s) {
		out[token] = struct{}{}
	}
	return out
}

func topicTokensList(s Suggestion) []string {
	text := strings.ToLower(s.Title + " " + s.Detail)
	fields := strings.Fields(text)

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		token := strings.Trim(field, ".,;:!?()\"'")
		if len(token) < 4 {
			continue
		}
		if _, skip := similarityStopwords[token]; skip {
			continue
		}
		tokens = append(tokens, token)
	}

	return tokens
}
