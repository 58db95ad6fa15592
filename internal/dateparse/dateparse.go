// Package dateparse turns the date expressions accepted on the command line
// into calendar dates.
package dateparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/marcus/nexaflow/internal/models"
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sun":       time.Sunday,
	"mon":       time.Monday,
	"tue":       time.Tuesday,
	"wed":       time.Wednesday,
	"thu":       time.Thursday,
	"fri":       time.Friday,
	"sat":       time.Saturday,
}

// Parse resolves input against today's date.
func Parse(input string) (models.Date, error) {
	return ParseFrom(input, time.Now())
}

// ParseFrom resolves input relative to now.
//
// Supported forms:
//   - Exact dates: "2026-03-01"
//   - Offsets: "+7d", "-1d", "+2w", "+1m"
//   - Day names: "monday" or "mon" (next occurrence, never today)
//   - Keywords: "today", "tomorrow", "yesterday", "next-week", "next-month"
func ParseFrom(input string, now time.Time) (models.Date, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return models.Date{}, fmt.Errorf("empty date input")
	}
	today := models.Today(now)

	if d, err := time.Parse(models.DateLayout, input); err == nil {
		return models.DateOf(d), nil
	}

	switch input {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDays(1), nil
	case "yesterday":
		return today.AddDays(-1), nil
	case "next-week":
		return nextWeekday(today, time.Monday), nil
	case "next-month":
		first := time.Date(today.Year, today.Month+1, 1, 0, 0, 0, 0, time.UTC)
		return models.DateOf(first), nil
	}

	if (input[0] == '+' || input[0] == '-') && len(input) >= 3 {
		n, err := strconv.Atoi(input[1 : len(input)-1])
		if err == nil && n >= 0 {
			if input[0] == '-' {
				n = -n
			}
			switch unit := input[len(input)-1]; unit {
			case 'd':
				return today.AddDays(n), nil
			case 'w':
				return today.AddDays(7 * n), nil
			case 'm':
				return models.DateOf(today.Time().AddDate(0, n, 0)), nil
			default:
				return models.Date{}, fmt.Errorf("unknown relative unit %q in %q (use d, w, or m)", string(unit), input)
			}
		}
	}

	if wd, ok := weekdays[input]; ok {
		return nextWeekday(today, wd), nil
	}

	return models.Date{}, fmt.Errorf("unrecognized date format: %q", input)
}

func nextWeekday(from models.Date, wd time.Weekday) models.Date {
	ahead := (int(wd) - int(from.Time().Weekday()) + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	return from.AddDays(ahead)
}
