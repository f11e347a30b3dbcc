package util

import (
	"time"
)

// InHourWindow reports whether t falls in [startHour, endHour), wrapping past midnight when startHour > endHour
func InHourWindow(t time.Time, startHour int, endHour int) bool {
	hour := t.Hour()

	if startHour <= endHour {
		return hour >= startHour && hour < endHour
	}

	return hour >= startHour || hour < endHour
}
