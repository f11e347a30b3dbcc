package planner

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/transitplanner/pkg/odsay"
	"github.com/travigo/transitplanner/pkg/transforms"
	"github.com/travigo/transitplanner/pkg/util"
	"golang.org/x/exp/slices"
)

const (
	// missingMinutes sorts candidates without a scheduled time last
	missingMinutes = 9999

	nightStartHour = 23
	nightEndHour   = 5
)

func scheduledMinutes(candidate odsay.InterCityCandidate) int {
	minutes, ok := candidate.Minutes()
	if !ok {
		return missingMinutes
	}

	return minutes
}

func candidateEnvironment(candidate odsay.InterCityCandidate, isNight bool) transforms.CandidateEnvironment {
	busClass, _ := candidate.BusClass()
	_, fare := classifyCandidate(candidate)

	return transforms.CandidateEnvironment{
		Group:    string(candidate.Group),
		BusClass: busClass,
		TypeCode: candidate.TypeCode(),
		Minutes:  scheduledMinutes(candidate),
		Fare:     fare,
		Text:     candidate.Text(),
		IsNight:  isNight,
	}
}

func hasTerminals(candidate odsay.InterCityCandidate) bool {
	_, departureOK := candidate.DepartureStation()
	_, arrivalOK := candidate.ArrivalStation()

	return departureOK && arrivalOK
}

// selectCandidates drops unusable and filtered candidates then keeps the limit fastest.
// If the filter rules would remove everything the unfiltered set is used instead.
func selectCandidates(candidates []odsay.InterCityCandidate, now time.Time, limit int) []odsay.InterCityCandidate {
	usable := util.Filter(candidates, hasTerminals)
	if len(usable) < len(candidates) {
		log.Debug().Int("dropped", len(candidates)-len(usable)).Msg("Dropped candidates without terminal coordinates")
	}

	isNight := util.InHourWindow(now, nightStartHour, nightEndHour)

	selected := slices.Clone(util.FilterOrFallback(usable, func(candidate odsay.InterCityCandidate) bool {
		return !transforms.ExcludesCandidate(candidateEnvironment(candidate, isNight))
	}))

	slices.SortStableFunc(selected, func(a odsay.InterCityCandidate, b odsay.InterCityCandidate) int {
		return scheduledMinutes(a) - scheduledMinutes(b)
	})

	if limit > 0 && len(selected) > limit {
		selected = selected[:limit]
	}

	return selected
}
