package planner

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitplanner/pkg/ctdf"
	"github.com/travigo/transitplanner/pkg/odsay"
	"github.com/travigo/transitplanner/pkg/transforms"
	"github.com/travigo/transitplanner/pkg/util"
)

// genericVehicleNames are labels too vague to show, they get refined by brand matching on the whole record
var genericVehicleNames = []string{
	string(ctdf.TransportTypeIntercity),
	string(ctdf.TransportTypeTrain),
	"1",
	"2",
}

// classifyCandidate names the vehicle of a long distance leg and picks the matching fare
func classifyCandidate(candidate odsay.InterCityCandidate) (string, int) {
	trainFare := candidate.TrainFare()
	busFare := candidate.BusFare()

	var name string
	var fare int

	if vehicleType, ok := candidate.VehicleTypeName(); ok {
		name = util.FirstNonEmpty(vehicleType, string(ctdf.TransportTypeTrain))
		fare = trainFare
	} else if busClass, ok := candidate.BusClass(); ok {
		name = util.FirstNonEmpty(busClass, string(ctdf.TransportTypeExpressBus))
		fare = busFare
	} else {
		switch candidate.TypeCode() {
		case 1:
			name, fare = string(ctdf.TransportTypeTrain), trainFare
		case 2:
			name, fare = string(ctdf.TransportTypeExpressBus), busFare
		case 3:
			name, fare = string(ctdf.TransportTypeIntercityBus), busFare
		case 4:
			name, fare = string(ctdf.TransportTypeAir), busFare
		case 5:
			name, fare = string(ctdf.TransportTypeFerry), busFare
		default:
			if candidate.Group.IsTrain() {
				name = string(ctdf.TransportTypeTrain)
			} else {
				name = string(ctdf.TransportTypeIntercity)
			}
			fare = max(trainFare, busFare)
		}
	}

	if util.ContainsString(genericVehicleNames, name) {
		if brand, ok := transforms.IntercityBrand(candidate.Text()); ok {
			name = brand
		}
	}

	return name, fare
}

// mergeCompositeRoute flattens access, the long distance leg and egress into one route.
// The sub routes are deep copied so the result shares no slices with them.
func mergeCompositeRoute(candidate odsay.InterCityCandidate, access *ctdf.Route, egress *ctdf.Route, origin ctdf.Location, destination ctdf.Location) (*ctdf.Route, error) {
	var accessRoute, egressRoute ctdf.Route
	if err := copier.CopyWithOption(&accessRoute, access, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	if err := copier.CopyWithOption(&egressRoute, egress, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}

	departure, _ := candidate.DepartureStation()
	arrival, _ := candidate.ArrivalStation()
	minutes, _ := candidate.Minutes()
	distance := candidate.DistanceMeters()

	vehicleName, fare := classifyCandidate(candidate)
	colour := transforms.IntercityColour(vehicleName)

	mainStep := ctdf.Step{
		Instruction: fmt.Sprintf("%s (%s -> %s)", vehicleName, departure.DisplayAddress, arrival.DisplayAddress),
		Duration:    util.FormatDuration(minutes),
		Distance:    util.FormatDistance(distance),
		TravelMode:  ctdf.TravelModeTransit,
		Transit: &ctdf.TransitDetail{
			LineName:             vehicleName,
			DepartureStop:        departure.DisplayAddress,
			ArrivalStop:          arrival.DisplayAddress,
			DepartureCoordinates: departure.Position(),
			ArrivalCoordinates:   arrival.Position(),
		},
		Colour: colour,
	}
	mainSegment := ctdf.Segment{
		Type:   vehicleName,
		Colour: colour,
		Path:   []ctdf.Position{departure.Position(), arrival.Position()},
	}

	steps := make([]ctdf.Step, 0, len(accessRoute.Steps)+len(egressRoute.Steps)+1)
	steps = append(steps, accessRoute.Steps...)
	steps = append(steps, mainStep)
	steps = append(steps, egressRoute.Steps...)

	segments := make([]ctdf.Segment, 0, len(accessRoute.Segments)+len(egressRoute.Segments)+1)
	segments = append(segments, accessRoute.Segments...)
	segments = append(segments, mainSegment)
	segments = append(segments, egressRoute.Segments...)

	transportSummary := make([]string, 0, len(accessRoute.TransportSummary)+len(egressRoute.TransportSummary)+1)
	transportSummary = append(transportSummary, accessRoute.TransportSummary...)
	transportSummary = append(transportSummary, vehicleName)
	transportSummary = append(transportSummary, egressRoute.TransportSummary...)

	totalMinutes := accessRoute.DurationMinutes + minutes + egressRoute.DurationMinutes
	totalDistance := accessRoute.DistanceMeters + distance + egressRoute.DistanceMeters
	totalCost := accessRoute.CostWon + fare + egressRoute.CostWon

	log.Debug().
		Str("vehicle", vehicleName).
		Str("departure", departure.DisplayAddress).
		Str("arrival", arrival.DisplayAddress).
		Int("minutes", totalMinutes).
		Msg("Composed intercity route")

	return &ctdf.Route{
		Origin:           origin.DisplayAddress,
		Destination:      destination.DisplayAddress,
		Mode:             ctdf.RouteModeTransit,
		Duration:         util.Approximate(util.FormatDuration(totalMinutes)),
		Distance:         util.Approximate(util.FormatDistance(totalDistance)),
		Cost:             util.Approximate(util.FormatCost(totalCost)),
		TransportSummary: transportSummary,
		Steps:            steps,
		Segments:         segments,
		DurationMinutes:  totalMinutes,
		DistanceMeters:   totalDistance,
		CostWon:          totalCost,
		Approximate:      true,
	}, nil
}
