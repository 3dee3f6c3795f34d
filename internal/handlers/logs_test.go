package handlers

import (
	"testing"
	"time"

	"github.com/usimeon/BabyLog-sub001/internal/models"
)

// TestMapFeedType проверяет разбор типа кормления.
func TestMapFeedType(t *testing.T) {
	feedType, ok := mapFeedType(" Bottle ")
	if !ok {
		t.Fatal("expected bottle to be valid")
	}
	if feedType != models.FeedTypeBottle {
		t.Fatalf("expected bottle, got %s", feedType)
	}

	if _, ok := mapFeedType("formula"); ok {
		t.Fatal("expected error for unknown feed type")
	}
}

// TestMapDiaperSize проверяет разбор размера подгузника.
func TestMapDiaperSize(t *testing.T) {
	size, ok := mapDiaperSize("LARGE")
	if !ok {
		t.Fatal("expected large to be valid")
	}
	if size != models.DiaperSizeLarge {
		t.Fatalf("expected large, got %s", size)
	}

	if _, ok := mapDiaperSize("huge"); ok {
		t.Fatal("expected error for unknown size")
	}
}

// TestParseDate проверяет разбор даты.
func TestParseDate(t *testing.T) {
	date, err := parseDate(" 2026-03-15 ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if date.Format(dateLayout) != "2026-03-15" {
		t.Fatalf("unexpected date: %s", date.Format(dateLayout))
	}

	if _, err := parseDate("15.03.2026"); err == nil {
		t.Fatal("expected error for invalid format")
	}
}

// TestParseLoggedAt проверяет разбор момента записи.
func TestParseLoggedAt(t *testing.T) {
	loggedAt, err := parseLoggedAt("2026-03-15T10:30:00Z")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !loggedAt.Equal(time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time: %s", loggedAt)
	}

	if _, err := parseLoggedAt("yesterday"); err == nil {
		t.Fatal("expected error for invalid format")
	}

	future := time.Now().UTC().Add(2 * time.Hour).Format(time.RFC3339)
	if _, err := parseLoggedAt(future); err == nil {
		t.Fatal("expected error for future time")
	}
}

// TestParseLoggedAtEmpty проверяет подстановку текущего момента.
func TestParseLoggedAtEmpty(t *testing.T) {
	before := time.Now().UTC()
	loggedAt, err := parseLoggedAt("")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	after := time.Now().UTC()
	if loggedAt.Before(before) || loggedAt.After(after) {
		t.Fatalf("expected logged_at within [%s, %s], got %s", before, after, loggedAt)
	}
}

// TestAgeInDays проверяет расчет возраста в днях.
func TestAgeInDays(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	birthDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	if got := ageInDays(birthDate, now); got != 14 {
		t.Fatalf("expected 14 days, got %d", got)
	}

	if got := ageInDays(now.Add(24*time.Hour), now); got != 0 {
		t.Fatalf("expected 0 for future birth date, got %d", got)
	}
}

// TestNormalizeNote проверяет нормализацию заметок.
func TestNormalizeNote(t *testing.T) {
	if normalizeNote(nil) != nil {
		t.Fatal("expected nil for nil note")
	}

	empty := "   "
	if normalizeNote(&empty) != nil {
		t.Fatal("expected nil for blank note")
	}

	value := "  slept well  "
	got := normalizeNote(&value)
	if got == nil || *got != "slept well" {
		t.Fatalf("expected trimmed note, got %v", got)
	}
}
