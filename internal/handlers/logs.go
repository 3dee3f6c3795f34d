package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// dayRange возвращает интервал [00:00, +24h) UTC для query-параметра date.
// Без параметра используется текущий день.
func dayRange(c echo.Context) (time.Time, time.Time, error) {
	value := strings.TrimSpace(c.QueryParam("date"))
	if value == "" {
		start := time.Now().UTC().Truncate(24 * time.Hour)
		return start, start.Add(24 * time.Hour), nil
	}

	day, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid date format")
	}

	start := day.UTC()
	return start, start.Add(24 * time.Hour), nil
}

// parseLoggedAt разбирает момент записи; пустое значение означает "сейчас".
func parseLoggedAt(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Now().UTC(), nil
	}

	loggedAt, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return time.Time{}, errors.New("invalid logged_at format")
	}

	if loggedAt.After(time.Now().UTC().Add(time.Minute)) {
		return time.Time{}, errors.New("logged_at cannot be in the future")
	}

	return loggedAt.UTC(), nil
}

func normalizeNote(note *string) *string {
	if note == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*note)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}
