package odsay

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/travigo/transitplanner/pkg/ctdf"
)

type CandidateGroupName string

const (
	CandidateGroupTrain        CandidateGroupName = "trainRequest"
	CandidateGroupExpressBus   CandidateGroupName = "exBusRequest"
	CandidateGroupIntercityBus CandidateGroupName = "outBusRequest"
)

func (g CandidateGroupName) IsTrain() bool {
	return g == CandidateGroupTrain
}

type CandidateGroup struct {
	Count   int                      `json:"count"`
	Records []map[string]interface{} `json:"OBJ"`
}

// InterCityCandidate is one long distance record. Trains, express buses and
// intercity buses all use slightly different field names so the record stays untyped.
type InterCityCandidate struct {
	Group  CandidateGroupName
	Record map[string]interface{}
}

var (
	trainFareKeys = []string{"charge"}
	busFareKeys   = []string{"payment", "price"}
	minutesKeys   = []string{"time", "travelTime", "totalTime"}
	distanceKeys  = []string{"distance", "totalDistance"}
)

// kilometreThreshold is the largest distance value still interpreted as kilometres
const kilometreThreshold = 1000

// InterCityCandidates returns every long distance record in group order train, express bus then intercity bus
func (r *PathResult) InterCityCandidates() []InterCityCandidate {
	var candidates []InterCityCandidate

	groups := []struct {
		name  CandidateGroupName
		group *CandidateGroup
	}{
		{CandidateGroupTrain, r.TrainRequest},
		{CandidateGroupExpressBus, r.ExpressBusRequest},
		{CandidateGroupIntercityBus, r.IntercityBusRequest},
	}

	for _, g := range groups {
		if g.group == nil {
			continue
		}

		for _, record := range g.group.Records {
			if record == nil {
				continue
			}
			candidates = append(candidates, InterCityCandidate{Group: g.name, Record: record})
		}
	}

	return candidates
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(v), ",", ""), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func (c InterCityCandidate) Has(key string) bool {
	value, ok := c.Record[key]
	return ok && value != nil
}

// Float returns the first of keys that holds a number or numeric string
func (c InterCityCandidate) Float(keys ...string) (float64, bool) {
	for _, key := range keys {
		if f, ok := toFloat(c.Record[key]); ok {
			return f, true
		}
	}

	return 0, false
}

func (c InterCityCandidate) Int(keys ...string) (int, bool) {
	f, ok := c.Float(keys...)
	return int(f), ok
}

func (c InterCityCandidate) String(keys ...string) string {
	for _, key := range keys {
		switch v := c.Record[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64, int, json.Number:
			return fmt.Sprint(v)
		}
	}

	return ""
}

func (c InterCityCandidate) TrainFare() int {
	fare, _ := c.Int(trainFareKeys...)
	return fare
}

func (c InterCityCandidate) BusFare() int {
	fare, _ := c.Int(busFareKeys...)
	return fare
}

// Minutes is the travel time of the main leg, missing values sort last
func (c InterCityCandidate) Minutes() (int, bool) {
	return c.Int(minutesKeys...)
}

// DistanceMeters normalises the record distance, which is in kilometres for small values and metres otherwise
func (c InterCityCandidate) DistanceMeters() float64 {
	distance, ok := c.Float(distanceKeys...)
	if !ok {
		return 0
	}

	if distance <= kilometreThreshold {
		return distance * 1000
	}

	return distance
}

func (c InterCityCandidate) TypeCode() int {
	code, _ := c.Int("type")
	return code
}

// BusClass returns the bus class and whether the record carries the field at all
func (c InterCityCandidate) BusClass() (string, bool) {
	if !c.Has("busClass") {
		return "", false
	}

	return c.String("busClass"), true
}

// VehicleTypeName returns the name of the first listed vehicle type
func (c InterCityCandidate) VehicleTypeName() (string, bool) {
	vehicleTypes, ok := c.Record["vehicleTypes"].([]interface{})
	if !ok || len(vehicleTypes) == 0 {
		return "", false
	}

	switch first := vehicleTypes[0].(type) {
	case map[string]interface{}:
		name, _ := first["name"].(string)
		return name, true
	case nil:
		return "", true
	default:
		return fmt.Sprint(first), true
	}
}

func (c InterCityCandidate) DepartureStation() (ctdf.Location, bool) {
	return c.station("startSTN", "SX", "SY")
}

func (c InterCityCandidate) ArrivalStation() (ctdf.Location, bool) {
	return c.station("endSTN", "EX", "EY")
}

func (c InterCityCandidate) station(nameKey string, xKey string, yKey string) (ctdf.Location, bool) {
	x, xOK := c.Float(xKey)
	y, yOK := c.Float(yKey)

	return ctdf.Location{
		Latitude:       y,
		Longitude:      x,
		DisplayAddress: c.String(nameKey),
	}, xOK && yOK
}

// Text flattens every value of the record into one string for brand matching
func (c InterCityCandidate) Text() string {
	var parts []string
	flattenValue(c.Record, &parts)

	return strings.Join(parts, " ")
}

func flattenValue(value interface{}, parts *[]string) {
	switch v := value.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			flattenValue(v[key], parts)
		}
	case []interface{}:
		for _, item := range v {
			flattenValue(item, parts)
		}
	case string:
		if v != "" {
			*parts = append(*parts, v)
		}
	case nil:
	default:
		*parts = append(*parts, fmt.Sprint(v))
	}
}
