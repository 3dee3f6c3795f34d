package suggest

import "testing"

// TestSimilarSharedTopicToken проверяет совпадение по общему ключевому слову.
func TestSimilarSharedTopicToken(t *testing.T) {
	rule := Suggestion{Title: "Temperature trend watch", Detail: "Monitor fever"}
	ai := Suggestion{Title: "Temperature check", Detail: "Watch for fever spikes"}

	if !Similar(rule, ai) {
		t.Fatal("expected suggestions to be similar")
	}
}

// TestSimilarCaseInsensitive проверяет нечувствительность к регистру.
func TestSimilarCaseInsensitive(t *testing.T) {
	a := Suggestion{Title: "FEEDING Frequency", Detail: ""}
	b := Suggestion{Title: "feeding rhythm", Detail: ""}

	if !Similar(a, b) {
		t.Fatal("expected case-insensitive match")
	}
}

// TestSimilarDetailText проверяет учет текста detail, а не только заголовка.
func TestSimilarDetailText(t *testing.T) {
	a := Suggestion{Title: "Night routine", Detail: "Track diaper changes overnight"}
	b := Suggestion{Title: "Diaper output check", Detail: "Count wet changes"}

	if !Similar(a, b) {
		t.Fatal("expected match through detail text")
	}
}

// TestNotSimilarDistinctTopics проверяет отсутствие ложного совпадения.
func TestNotSimilarDistinctTopics(t *testing.T) {
	a := Suggestion{Title: "Tummy sessions", Detail: "Short supervised play"}
	b := Suggestion{Title: "Bath preparation", Detail: "Warm water first"}

	if Similar(a, b) {
		t.Fatal("expected suggestions to differ")
	}
}

// TestNotSimilarShortAndStopTokens проверяет игнорирование коротких и общих слов.
func TestNotSimilarShortAndStopTokens(t *testing.T) {
	a := Suggestion{Title: "Nap cue", Detail: "Keep your baby calm"}
	b := Suggestion{Title: "Air out", Detail: "Keep your baby warm"}

	if Similar(a, b) {
		t.Fatal("expected stopwords and short tokens to be ignored")
	}
}
