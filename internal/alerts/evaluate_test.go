package alerts

import (
	"math"
	"strings"
	"testing"
	"time"
)

func enabledThresholds() Thresholds {
	return Thresholds{
		Enabled:         true,
		FeedGapHours:    4.5,
		DiaperGapHours:  6,
		FeverThresholdC: 38,
		LowFeedsPerDay:  6,
	}
}

func hoursPtr(v float64) *float64 { return &v }

func timePtr(v time.Time) *time.Time { return &v }

// TestEvaluateDisabled проверяет отключение всех проверок мастер-флагом.
func TestEvaluateDisabled(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	temp := 40.0

	in := Input{
		LastFeedAt:         timePtr(now.Add(-20 * time.Hour)),
		LastDiaperAt:       timePtr(now.Add(-20 * time.Hour)),
		LatestTemperatureC: &temp,
		FeedsInLast24h:     0,
	}

	th := enabledThresholds()
	th.Enabled = false

	if got := Evaluate(in, th, now); len(got) != 0 {
		t.Fatalf("expected no alerts when disabled, got %d", len(got))
	}
}

// TestEvaluateFeedGap проверяет предупреждение о перерыве в кормлении.
func TestEvaluateFeedGap(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	in := Input{
		LastFeedAt:     timePtr(now.Add(-5 * time.Hour)),
		FeedsInLast24h: 6,
	}

	got := Evaluate(in, enabledThresholds(), now)
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 alert, got %d", len(got))
	}
	if got[0].Level != LevelWarning {
		t.Fatalf("expected warning, got %s", got[0].Level)
	}
	if !strings.Contains(got[0].Message, "5.0") {
		t.Fatalf("expected message to mention 5.0 hours, got %q", got[0].Message)
	}
}

// TestEvaluateFeedGapBelowThreshold проверяет отсутствие алерта до порога.
func TestEvaluateFeedGapBelowThreshold(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	in := Input{
		LastFeedAt:     timePtr(now.Add(-4 * time.Hour)),
		FeedsInLast24h: 6,
	}

	if got := Evaluate(in, enabledThresholds(), now); len(got) != 0 {
		t.Fatalf("expected no alerts, got %v", got)
	}
}

// TestEvaluateNoFeedHistory проверяет пропуск проверки без истории кормлений.
func TestEvaluateNoFeedHistory(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	in := Input{FeedsInLast24h: 6}

	if got := Evaluate(in, enabledThresholds(), now); len(got) != 0 {
		t.Fatalf("expected no alerts without feed history, got %v", got)
	}
}

// TestEvaluateFever проверяет критический алерт при температуре на пороге и выше.
func TestEvaluateFever(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	temp := 38.2

	in := Input{LatestTemperatureC: &temp, FeedsInLast24h: 6}

	got := Evaluate(in, enabledThresholds(), now)
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 alert, got %d", len(got))
	}
	if got[0].Level != LevelCritical {
		t.Fatalf("expected critical, got %s", got[0].Level)
	}
	if !strings.Contains(got[0].Message, "38.2") {
		t.Fatalf("expected message to mention the reading, got %q", got[0].Message)
	}

	exact := 38.0
	in.LatestTemperatureC = &exact
	if got := Evaluate(in, enabledThresholds(), now); len(got) != 1 {
		t.Fatalf("expected alert at exact threshold, got %d", len(got))
	}
}

// TestEvaluateDiaperGap проверяет предупреждение о перерыве в сменах подгузника.
func TestEvaluateDiaperGap(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	in := Input{
		LastDiaperAt:   timePtr(now.Add(-7 * time.Hour)),
		FeedsInLast24h: 6,
	}

	got := Evaluate(in, enabledThresholds(), now)
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 alert, got %d", len(got))
	}
	if got[0].Level != LevelWarning {
		t.Fatalf("expected warning, got %s", got[0].Level)
	}
	if !strings.Contains(got[0].Message, "7.0") {
		t.Fatalf("expected message to mention 7.0 hours, got %q", got[0].Message)
	}
}

// TestEvaluateLowFeedCount проверяет предупреждение о малом числе кормлений.
func TestEvaluateLowFeedCount(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	in := Input{FeedsInLast24h: 3}

	got := Evaluate(in, enabledThresholds(), now)
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 alert, got %d", len(got))
	}
	if !strings.Contains(got[0].Message, "3") || !strings.Contains(got[0].Message, "6") {
		t.Fatalf("expected count and target in message, got %q", got[0].Message)
	}
}

// TestEvaluateMedicationSpacingFirstViolationOnly проверяет единственный
// алерт по первому нарушению интервала.
func TestEvaluateMedicationSpacingFirstViolationOnly(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	base := now.Add(-10 * time.Hour)

	in := Input{
		FeedsInLast24h: 6,
		Medications: []MedicationDose{
			{Name: "Paracetamol", At: base},
			{Name: "Paracetamol", At: base.Add(2 * time.Hour), MinIntervalHours: hoursPtr(4)},
			{Name: "paracetamol", At: base.Add(3 * time.Hour), MinIntervalHours: hoursPtr(4)},
		},
	}

	got := Evaluate(in, enabledThresholds(), now)
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 spacing alert, got %d", len(got))
	}
	if got[0].Level != LevelCritical {
		t.Fatalf("expected critical, got %s", got[0].Level)
	}
	if !strings.Contains(got[0].Message, "2.0") {
		t.Fatalf("expected first violation gap in message, got %q", got[0].Message)
	}
}

// TestEvaluateMedicationDifferentNames проверяет пропуск пар разных препаратов.
func TestEvaluateMedicationDifferentNames(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	base := now.Add(-5 * time.Hour)

	in := Input{
		FeedsInLast24h: 6,
		Medications: []MedicationDose{
			{Name: "Paracetamol", At: base},
			{Name: "Ibuprofen", At: base.Add(30 * time.Minute), MinIntervalHours: hoursPtr(6)},
		},
	}

	if got := Evaluate(in, enabledThresholds(), now); len(got) != 0 {
		t.Fatalf("expected no spacing alert for different medications, got %v", got)
	}
}

// TestEvaluateMedicationNoInterval проверяет пропуск пар без заданного интервала.
func TestEvaluateMedicationNoInterval(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	base := now.Add(-5 * time.Hour)

	in := Input{
		FeedsInLast24h: 6,
		Medications: []MedicationDose{
			{Name: "Paracetamol", At: base},
			{Name: "Paracetamol", At: base.Add(time.Hour)},
			{Name: "Paracetamol", At: base.Add(2 * time.Hour), MinIntervalHours: hoursPtr(0)},
		},
	}

	if got := Evaluate(in, enabledThresholds(), now); len(got) != 0 {
		t.Fatalf("expected no spacing alert without declared interval, got %v", got)
	}
}

// TestEvaluateIndependentChecks проверяет одновременное срабатывание проверок
// и фиксированный порядок выдачи.
func TestEvaluateIndependentChecks(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	temp := 39.0
	base := now.Add(-10 * time.Hour)

	in := Input{
		LastFeedAt:         timePtr(now.Add(-6 * time.Hour)),
		LastDiaperAt:       timePtr(now.Add(-8 * time.Hour)),
		LatestTemperatureC: &temp,
		FeedsInLast24h:     2,
		Medications: []MedicationDose{
			{Name: "Paracetamol", At: base},
			{Name: "Paracetamol", At: base.Add(time.Hour), MinIntervalHours: hoursPtr(4)},
		},
	}

	got := Evaluate(in, enabledThresholds(), now)
	if len(got) != 5 {
		t.Fatalf("expected all 5 alerts, got %d", len(got))
	}

	wantLevels := []Level{LevelWarning, LevelCritical, LevelWarning, LevelWarning, LevelCritical}
	for i, level := range wantLevels {
		if got[i].Level != level {
			t.Fatalf("expected %s at %d, got %s", level, i, got[i].Level)
		}
	}
}

// TestEvaluateNaNThreshold проверяет, что NaN-порог не срабатывает никогда.
func TestEvaluateNaNThreshold(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	temp := 39.5

	th := enabledThresholds()
	th.FeverThresholdC = math.NaN()

	in := Input{LatestTemperatureC: &temp, FeedsInLast24h: 6}

	if got := Evaluate(in, th, now); len(got) != 0 {
		t.Fatalf("expected no alerts with NaN threshold, got %v", got)
	}
}
