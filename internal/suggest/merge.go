package suggest

// Merge собирает единый список подсказок из rule- и AI-источников.
//
// AI suggestions keep their given order and win topic ties; rule suggestions
// that do not repeat an AI topic fill the remaining slots in their original
// order. The result is capped at maxCount. With no usable AI batch the first
// maxCount rule suggestions are returned as-is. maxCount <= 0 yields an
// empty result. The function holds no state: identical inputs produce
// identical output.
func Merge(rules []Suggestion, ai *InsightsResponse, maxCount int) []Suggestion {
	if maxCount <= 0 {
		return []Suggestion{}
	}

	if ai == nil || len(ai.Suggestions) == 0 {
		out := make([]Suggestion, 0, min(maxCount, len(rules)))
		for _, rule := range rules {
			if len(out) == maxCount {
				break
			}
			rule.Source = SourceRule
			out = append(out, rule)
		}
		return out
	}

	out := make([]Suggestion, 0, len(ai.Suggestions)+len(rules))
	for _, suggestion := range ai.Suggestions {
		suggestion.Source = SourceAI
		out = append(out, suggestion)
	}

	for _, rule := range rules {
		if similarToAny(rule, ai.Suggestions) {
			continue
		}
		rule.Source = SourceRule
		out = append(out, rule)
	}

	if len(out) > maxCount {
		out = out[:maxCount]
	}

	return out
}

func similarToAny(rule Suggestion, candidates []Suggestion) bool {
	for _, candidate := range candidates {
		if Similar(rule, candidate) {
			return true
		}
	}

	return false
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
