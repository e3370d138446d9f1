package render

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

const missing = "--"

var (
	weekdayLong  = [...]string{"Chủ Nhật", "Thứ Hai", "Thứ Ba", "Thứ Tư", "Thứ Năm", "Thứ Sáu", "Thứ Bảy"}
	weekdayShort = [...]string{"CN", "T2", "T3", "T4", "T5", "T6", "T7"}
)

// roundHalfUp rounds to the nearest integer, halves toward +Inf.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func formatRounded(v float64) string {
	return strconv.Itoa(roundHalfUp(v))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatLongDate renders t as "Thứ Hai, 19 tháng 10, 2026".
func formatLongDate(t time.Time) string {
	return fmt.Sprintf("%s, %d tháng %d, %d", weekdayLong[t.Weekday()], t.Day(), int(t.Month()), t.Year())
}

// formatDay returns the short weekday and "day/month" for an ISO date.
// Unparseable dates keep their raw text as the short date.
func formatDay(date string) (dayName, shortDate string) {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return "", date
	}
	return weekdayShort[t.Weekday()], fmt.Sprintf("%d/%d", t.Day(), int(t.Month()))
}

func formatTemperature(v *float64) string {
	if v == nil {
		return missing
	}
	return formatRounded(*v) + "°C"
}

func formatPrecipitation(v *float64) string {
	if v == nil {
		return missing
	}
	return formatNumber(*v) + "mm"
}

// formatVisibility converts meters to kilometers with one decimal.
func formatVisibility(meters float64) string {
	return strconv.FormatFloat(meters/1000, 'f', 1, 64) + " km"
}
