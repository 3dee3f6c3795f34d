package config

import (
	"reflect"
	"testing"
)

// TestParseCSVEnv проверяет разбор списка email из ENV.
func TestParseCSVEnv(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", " Admin@example.com, ,USER@Example.com ")

	got := parseCSVEnv("ADMIN_EMAILS")
	want := []string{"admin@example.com", "user@example.com"}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

// TestParseCSVEnvMissing проверяет поведение при отсутствии переменной.
func TestParseCSVEnvMissing(t *testing.T) {
	got := parseCSVEnv("MISSING_ENV")
	if got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

// TestParseIntEnvFallback проверяет значение по умолчанию для числовых переменных.
func TestParseIntEnvFallback(t *testing.T) {
	got, err := parseIntEnv("MISSING_INT_ENV", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
}

// TestParseIntEnvRejectsZero проверяет отказ для нулевого значения.
func TestParseIntEnvRejectsZero(t *testing.T) {
	t.Setenv("INSIGHTS_MAX_SUGGESTIONS", "0")

	if _, err := parseIntEnv("INSIGHTS_MAX_SUGGESTIONS", 4); err == nil {
		t.Fatal("expected error for zero value")
	}
}
