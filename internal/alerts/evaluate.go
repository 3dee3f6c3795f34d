package alerts

import (
	"fmt"
	"strings"
	"time"
)

// Evaluate проверяет пороги по последним логам и возвращает список алертов.
//
// Checks run independently: any subset may fire in one call. Emission order
// is fixed (feed gap, fever, diaper gap, low feed count, medication spacing)
// so output is deterministic. The medication scan reports only the first
// spacing violation found. With Enabled false nothing is evaluated. The
// caller supplies now; the function reads no clock and keeps no state.
func Evaluate(in Input, th Thresholds, now time.Time) []Alert {
	out := make([]Alert, 0, 4)

	if !th.Enabled {
		return out
	}

	if in.LastFeedAt != nil {
		gap := hoursBetween(*in.LastFeedAt, now)
		if gap >= th.FeedGapHours {
			out = append(out, Alert{
				Level:   LevelWarning,
				Message: fmt.Sprintf("No feed for %.1f hours (threshold %.1f hours)", gap, th.FeedGapHours),
			})
		}
	}

	if in.LatestTemperatureC != nil && *in.LatestTemperatureC >= th.FeverThresholdC {
		out = append(out, Alert{
			Level:   LevelCritical,
			Message: fmt.Sprintf("Temperature %.1f°C is at or above the fever threshold of %.1f°C", *in.LatestTemperatureC, th.FeverThresholdC),
		})
	}

	if in.LastDiaperAt != nil {
		gap := hoursBetween(*in.LastDiaperAt, now)
		if gap >= th.DiaperGapHours {
			out = append(out, Alert{
				Level:   LevelWarning,
				Message: fmt.Sprintf("No diaper change for %.1f hours (threshold %.1f hours)", gap, th.DiaperGapHours),
			})
		}
	}

	if in.FeedsInLast24h < th.LowFeedsPerDay {
		out = append(out, Alert{
			Level:   LevelWarning,
			Message: fmt.Sprintf("Only %d feeds in the last 24 hours (target %d)", in.FeedsInLast24h, th.LowFeedsPerDay),
		})
	}

	if alert, ok := firstSpacingViolation(in.Medications); ok {
		out = append(out, alert)
	}

	return out
}

// firstSpacingViolation scans adjacent same-named doses and reports the
// earliest pair given closer together than the later entry's declared
// minimum interval. At most one violation per call.
func firstSpacingViolation(doses []MedicationDose) (Alert, bool) {
	for i := 1; i < len(doses); i++ {
		prev := doses[i-1]
		curr := doses[i]

		if !strings.EqualFold(strings.TrimSpace(prev.Name), strings.TrimSpace(curr.Name)) {
			continue
		}
		if curr.MinIntervalHours == nil || *curr.MinIntervalHours <= 0 {
			continue
		}

		gap := hoursBetween(prev.At, curr.At)
		if gap < *curr.MinIntervalHours {
			return Alert{
				Level:   LevelCritical,
				Message: fmt.Sprintf("%s given %.1f hours after the previous dose (minimum interval %.1f hours)", curr.Name, gap, *curr.MinIntervalHours),
			}, true
		}
	}

	return Alert{}, false
}

// Exact millisecond difference divided out to fractional hours.
func hoursBetween(from, to time.Time) float64 {
	return float64(to.Sub(from).Milliseconds()) / 3_600_000
}
