package planner

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/travigo/transitplanner/pkg/ctdf"
	"github.com/travigo/transitplanner/pkg/odsay"
	"github.com/travigo/transitplanner/pkg/transforms"
	"github.com/travigo/transitplanner/pkg/util"
)

var ErrNoParseableLegs = errors.New("path has no parseable legs")

// walkingMetresPerMinute is roughly 4km/h
const walkingMetresPerMinute = 67.0

func subwayLineName(rawName string) string {
	name := strings.ReplaceAll(rawName, "수도권 ", "")
	return strings.ReplaceAll(name, ".", "")
}

func walkingSegment(from ctdf.Position, to ctdf.Position) ctdf.Segment {
	return ctdf.Segment{
		Type:   ctdf.WalkingLabel,
		Colour: transforms.DefaultColour(transforms.ColourWalking),
		Path:   []ctdf.Position{from, to},
	}
}

// stitchSegments joins the transit polylines into one continuous line from origin to destination,
// adding walking connectors wherever two pieces do not touch
func stitchSegments(origin ctdf.Position, destination ctdf.Position, segments []ctdf.Segment) []ctdf.Segment {
	if len(segments) == 0 {
		return []ctdf.Segment{walkingSegment(origin, destination)}
	}

	stitched := make([]ctdf.Segment, 0, len(segments)*2+1)

	if !origin.Equal(segments[0].First()) {
		stitched = append(stitched, walkingSegment(origin, segments[0].First()))
	}

	for i, segment := range segments {
		stitched = append(stitched, segment)

		if i < len(segments)-1 {
			next := segments[i+1]
			if !segment.Last().Equal(next.First()) {
				stitched = append(stitched, walkingSegment(segment.Last(), next.First()))
			}
		}
	}

	last := segments[len(segments)-1].Last()
	if !last.Equal(destination) {
		stitched = append(stitched, walkingSegment(last, destination))
	}

	return stitched
}

// AssembleIntraCityRoute converts one upstream path into a Route. Lanes are consumed in order by the transit legs.
func AssembleIntraCityRoute(path odsay.Path, origin ctdf.Location, destination ctdf.Location, lanes [][]ctdf.Position) (*ctdf.Route, error) {
	var steps []ctdf.Step
	var segments []ctdf.Segment
	transportSummary := []string{}
	laneIndex := 0

	for _, subPath := range path.SubPaths {
		switch subPath.TrafficType {
		case odsay.TrafficTypeWalk:
			steps = append(steps, ctdf.Step{
				Instruction: ctdf.WalkingLabel,
				Duration:    util.FormatDuration(subPath.SectionTime),
				Distance:    util.FormatDistance(subPath.Distance),
				TravelMode:  ctdf.TravelModeWalking,
				Colour:      transforms.DefaultColour(transforms.ColourWalking),
			})
		case odsay.TrafficTypeSubway, odsay.TrafficTypeBus:
			var modeLabel, lineName, colour string
			lane := subPath.FirstLane()

			if subPath.TrafficType == odsay.TrafficTypeSubway {
				modeLabel = ctdf.SubwayLabel
				lineName = subwayLineName(util.FirstNonEmpty(lane.Name, ctdf.SubwayLabel))
				colour = transforms.SubwayLineColour(lineName)
			} else {
				modeLabel = ctdf.BusLabel
				lineName = util.FirstNonEmpty(lane.BusNo, ctdf.BusLabel)
				colour = transforms.DefaultColour(transforms.ColourBus)
			}

			transportSummary = append(transportSummary, lineName)

			steps = append(steps, ctdf.Step{
				Instruction: fmt.Sprintf("%s %s (%s -> %s)", modeLabel, lineName, subPath.StartName, subPath.EndName),
				Duration:    util.FormatDuration(subPath.SectionTime),
				Distance:    util.FormatDistance(subPath.Distance),
				TravelMode:  ctdf.TravelModeTransit,
				Transit: &ctdf.TransitDetail{
					LineName:             lineName,
					DepartureStop:        subPath.StartName,
					ArrivalStop:          subPath.EndName,
					DepartureCoordinates: ctdf.Position{subPath.StartX, subPath.StartY},
					ArrivalCoordinates:   ctdf.Position{subPath.EndX, subPath.EndY},
				},
				Colour: colour,
			})

			if laneIndex < len(lanes) {
				if len(lanes[laneIndex]) > 0 {
					segments = append(segments, ctdf.Segment{
						Type:   lineName,
						Colour: colour,
						Path:   lanes[laneIndex],
					})
				}
				laneIndex++
			}
		}
	}

	if len(steps) == 0 {
		return nil, ErrNoParseableLegs
	}

	return &ctdf.Route{
		Origin:           origin.DisplayAddress,
		Destination:      destination.DisplayAddress,
		Mode:             ctdf.RouteModeTransit,
		Duration:         util.FormatDuration(path.Info.TotalTime),
		Distance:         util.FormatDistance(path.Info.TotalDistance),
		Cost:             util.FormatCost(path.Info.Payment),
		TransportSummary: transportSummary,
		Steps:            steps,
		Segments:         stitchSegments(origin.Position(), destination.Position(), segments),
		DurationMinutes:  path.Info.TotalTime,
		DistanceMeters:   path.Info.TotalDistance,
		CostWon:          path.Info.Payment,
	}, nil
}

// walkingRoute covers endpoints too close together for a transit search
func walkingRoute(origin ctdf.Location, destination ctdf.Location) *ctdf.Route {
	distance := origin.DistanceTo(destination)
	minutes := int(math.Ceil(distance / walkingMetresPerMinute))

	return &ctdf.Route{
		Origin:           origin.DisplayAddress,
		Destination:      destination.DisplayAddress,
		Mode:             ctdf.RouteModeWalking,
		Duration:         util.FormatDuration(minutes),
		Distance:         util.FormatDistance(distance),
		Cost:             util.FormatCost(0),
		TransportSummary: []string{},
		Steps: []ctdf.Step{
			{
				Instruction: ctdf.WalkingLabel,
				Duration:    util.FormatDuration(minutes),
				Distance:    util.FormatDistance(distance),
				TravelMode:  ctdf.TravelModeWalking,
				Colour:      transforms.DefaultColour(transforms.ColourWalking),
			},
		},
		Segments:        []ctdf.Segment{walkingSegment(origin.Position(), destination.Position())},
		DurationMinutes: minutes,
		DistanceMeters:  distance,
	}
}
