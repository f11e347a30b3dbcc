package ctdf

import (
	"fmt"
	"math"
)

const (
	earthRadiusMeters = 6371008.8
	pi180             = math.Pi / 180.0

	// PositionTolerance is the coordinate delta (degrees) below which two positions are treated as the same point
	PositionTolerance = 0.00001
)

type Location struct {
	Latitude       float64 `json:"latitude" groups:"basic"`
	Longitude      float64 `json:"longitude" groups:"basic"`
	DisplayAddress string  `json:"display_address" groups:"basic"`
}

func (l Location) Position() Position {
	return Position{l.Longitude, l.Latitude}
}

func (l Location) String() string {
	return fmt.Sprintf("%s (%f, %f)", l.DisplayAddress, l.Latitude, l.Longitude)
}

// DistanceTo returns the great circle distance in meters
func (l Location) DistanceTo(other Location) float64 {
	return l.Position().DistanceTo(other.Position())
}

// Position is a [lng, lat] pair, the order used by map renderers and the routing API
type Position [2]float64

func (p Position) Longitude() float64 {
	return p[0]
}

func (p Position) Latitude() float64 {
	return p[1]
}

func (p Position) Equal(other Position) bool {
	return math.Abs(p[0]-other[0]) <= PositionTolerance && math.Abs(p[1]-other[1]) <= PositionTolerance
}

func (p Position) DistanceTo(other Position) float64 {
	lat1 := p.Latitude() * pi180
	lat2 := other.Latitude() * pi180
	diffLat := lat2 - lat1
	diffLon := (other.Longitude() - p.Longitude()) * pi180

	a := math.Pow(math.Sin(diffLat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(diffLon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return c * earthRadiusMeters
}
