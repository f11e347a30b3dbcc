package util

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ApproximateMarker is appended to totals that were summed from independently queried legs
const ApproximateMarker = " (+)"

var costPrinter = message.NewPrinter(language.Korean)

func FormatDistance(meters float64) string {
	if meters >= 1000 {
		return fmt.Sprintf("%.2fkm", meters/1000)
	} else if meters < 1 {
		return "1m 미만"
	}

	return fmt.Sprintf("%dm", int(meters))
}

func FormatDuration(minutes int) string {
	if minutes >= 60 {
		hours := minutes / 60
		mins := minutes % 60

		if mins > 0 {
			return fmt.Sprintf("%d시간 %d분", hours, mins)
		}
		return fmt.Sprintf("%d시간", hours)
	} else if minutes <= 0 {
		return "1분 미만"
	}

	return fmt.Sprintf("%d분", minutes)
}

func FormatCost(won int) string {
	return costPrinter.Sprintf("%d원", won)
}

func Approximate(s string) string {
	return s + ApproximateMarker
}
