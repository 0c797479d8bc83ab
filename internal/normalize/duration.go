package normalize

import (
	"fmt"
	"math"
	"strings"
)

const (
	minutesPerDay = 24 * 60
	daysPerYear   = 365
	daysPerMonth  = 30
)

func FormatMinutes(mins float64) string {
	if math.IsNaN(mins) || math.IsInf(mins, 0) || mins < 0 {
		return "-"
	}
	total := int(math.Round(mins))
	days := total / minutesPerDay
	hours := (total % minutesPerDay) / 60
	minutes := total % 60

	parts := make([]string, 0, 3)
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	return strings.Join(parts, " ")
}

// FormatDays renders a day count as years, months and days using 365-day years
// and 30-day months.
func FormatDays(days float64) string {
	if math.IsNaN(days) || math.IsInf(days, 0) || days <= 0 {
		return "0 d"
	}
	total := int(math.Floor(days))
	years := total / daysPerYear
	rest := total % daysPerYear
	months := rest / daysPerMonth
	remaining := rest % daysPerMonth

	parts := make([]string, 0, 3)
	if years > 0 {
		parts = append(parts, fmt.Sprintf("%d a", years))
	}
	if months > 0 {
		parts = append(parts, fmt.Sprintf("%d m", months))
	}
	if remaining > 0 {
		parts = append(parts, fmt.Sprintf("%d d", remaining))
	}
	if len(parts) == 0 {
		return "0 d"
	}
	return strings.Join(parts, " ")
}
