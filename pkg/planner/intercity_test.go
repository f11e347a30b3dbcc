package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/transitplanner/pkg/ctdf"
	"github.com/travigo/transitplanner/pkg/odsay"
)

func TestClassifyCandidate(t *testing.T) {
	cases := []struct {
		name         string
		candidate    odsay.InterCityCandidate
		expectedName string
		expectedFare int
	}{
		{
			name: "vehicle type",
			candidate: odsay.InterCityCandidate{Group: odsay.CandidateGroupTrain, Record: map[string]interface{}{
				"vehicleTypes": []interface{}{map[string]interface{}{"name": "KTX"}},
				"charge":       float64(59800),
				"payment":      float64(100),
			}},
			expectedName: "KTX",
			expectedFare: 59800,
		},
		{
			name: "unnamed vehicle type refined by brand",
			candidate: odsay.InterCityCandidate{Group: odsay.CandidateGroupTrain, Record: map[string]interface{}{
				"vehicleTypes": []interface{}{map[string]interface{}{"code": float64(2)}},
				"trainName":    "무궁화",
				"charge":       float64(28600),
			}},
			expectedName: "무궁화호",
			expectedFare: 28600,
		},
		{
			name: "bus class",
			candidate: odsay.InterCityCandidate{Group: odsay.CandidateGroupExpressBus, Record: map[string]interface{}{
				"busClass": "우등",
				"payment":  float64(36600),
			}},
			expectedName: "우등",
			expectedFare: 36600,
		},
		{
			name: "empty bus class",
			candidate: odsay.InterCityCandidate{Group: odsay.CandidateGroupExpressBus, Record: map[string]interface{}{
				"busClass": "",
				"price":    float64(23000),
			}},
			expectedName: "고속버스",
			expectedFare: 23000,
		},
		{
			name: "numeric bus class refined by brand",
			candidate: odsay.InterCityCandidate{Group: odsay.CandidateGroupExpressBus, Record: map[string]interface{}{
				"busClass":  float64(2),
				"className": "프리미엄",
				"payment":   float64(44400),
			}},
			expectedName: "프리미엄버스",
			expectedFare: 44400,
		},
		{
			name: "type code",
			candidate: odsay.InterCityCandidate{Group: odsay.CandidateGroupIntercityBus, Record: map[string]interface{}{
				"type":    float64(3),
				"payment": float64(15000),
			}},
			expectedName: "시외버스",
			expectedFare: 15000,
		},
		{
			name: "air",
			candidate: odsay.InterCityCandidate{Record: map[string]interface{}{
				"type":    float64(4),
				"payment": float64(70000),
			}},
			expectedName: "항공",
			expectedFare: 70000,
		},
		{
			name: "unknown train",
			candidate: odsay.InterCityCandidate{Group: odsay.CandidateGroupTrain, Record: map[string]interface{}{
				"charge":  float64(8000),
				"payment": float64(9000),
			}},
			expectedName: "기차",
			expectedFare: 9000,
		},
		{
			name: "unknown train with brand",
			candidate: odsay.InterCityCandidate{Group: odsay.CandidateGroupTrain, Record: map[string]interface{}{
				"railName": "SRT",
				"charge":   float64(52600),
			}},
			expectedName: "SRT",
			expectedFare: 52600,
		},
		{
			name: "unknown coach",
			candidate: odsay.InterCityCandidate{Group: odsay.CandidateGroupIntercityBus, Record: map[string]interface{}{
				"payment": float64(12000),
			}},
			expectedName: "시외교통",
			expectedFare: 12000,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			name, fare := classifyCandidate(c.candidate)
			assert.Equal(t, c.expectedName, name)
			assert.Equal(t, c.expectedFare, fare)
		})
	}
}

var (
	seoulStation = ctdf.Location{Latitude: 37.5547, Longitude: 126.9707, DisplayAddress: "서울"}
	busanStation = ctdf.Location{Latitude: 35.1151, Longitude: 129.0415, DisplayAddress: "부산"}
	haeundae     = ctdf.Location{Latitude: 35.1631, Longitude: 129.1635, DisplayAddress: "해운대"}
)

func ktxCandidate() odsay.InterCityCandidate {
	return odsay.InterCityCandidate{Group: odsay.CandidateGroupTrain, Record: map[string]interface{}{
		"startSTN":     "서울",
		"endSTN":       "부산",
		"SX":           seoulStation.Longitude,
		"SY":           seoulStation.Latitude,
		"EX":           busanStation.Longitude,
		"EY":           busanStation.Latitude,
		"time":         float64(163),
		"distance":     float64(397.2),
		"charge":       float64(59800),
		"vehicleTypes": []interface{}{map[string]interface{}{"name": "KTX"}},
	}}
}

func TestMergeCompositeRoute(t *testing.T) {
	access, err := AssembleIntraCityRoute(gangnamCityHallPath(), gangnamExit, seoulStation, [][]ctdf.Position{
		{gangnamStation, cityHallStation},
	})
	require.NoError(t, err)

	egress := walkingRoute(busanStation, ctdf.Location{Latitude: 35.1160, Longitude: 129.0420, DisplayAddress: "부산역 광장"})
	destination := ctdf.Location{Latitude: 35.1160, Longitude: 129.0420, DisplayAddress: "부산역 광장"}

	route, err := mergeCompositeRoute(ktxCandidate(), access, egress, gangnamExit, destination)
	require.NoError(t, err)

	assert.True(t, route.Approximate)
	assert.Equal(t, ctdf.RouteModeTransit, route.Mode)
	assert.Equal(t, access.DurationMinutes+163+egress.DurationMinutes, route.DurationMinutes)
	assert.InDelta(t, access.DistanceMeters+397200+egress.DistanceMeters, route.DistanceMeters, 0.001)
	assert.Equal(t, 1400+59800, route.CostWon)
	assert.Equal(t, "61,200원 (+)", route.Cost)
	assert.Equal(t, 2, egress.DurationMinutes)
	assert.Equal(t, "3시간 16분 (+)", route.Duration)
	assert.Contains(t, route.Distance, "km (+)")
	assert.Equal(t, []string{"2호선", "KTX"}, route.TransportSummary)

	require.Len(t, route.Steps, len(access.Steps)+1+len(egress.Steps))
	main := route.Steps[len(access.Steps)]
	assert.Equal(t, "KTX (서울 -> 부산)", main.Instruction)
	assert.Equal(t, "2시간 43분", main.Duration)
	assert.Equal(t, "397.20km", main.Distance)
	assert.Equal(t, "#3B57A4", main.Colour)
	assert.Equal(t, seoulStation.Position(), main.Transit.DepartureCoordinates)
	assert.Equal(t, busanStation.Position(), main.Transit.ArrivalCoordinates)

	mainSegment := route.Segments[len(access.Segments)]
	assert.Equal(t, []ctdf.Position{seoulStation.Position(), busanStation.Position()}, mainSegment.Path)
	assert.True(t, route.IsContinuous())
	assert.Equal(t, gangnamExit.Position(), route.Segments[0].First())
	assert.Equal(t, destination.Position(), route.Segments[len(route.Segments)-1].Last())
}

func TestMergeCompositeRouteSharesNothing(t *testing.T) {
	access, err := AssembleIntraCityRoute(gangnamCityHallPath(), gangnamExit, seoulStation, nil)
	require.NoError(t, err)
	egress := walkingRoute(busanStation, haeundae)

	route, err := mergeCompositeRoute(ktxCandidate(), access, egress, gangnamExit, haeundae)
	require.NoError(t, err)

	access.Steps[1].Transit.LineName = "변경"
	access.Segments[0].Path[0] = ctdf.Position{0, 0}
	egress.Steps[0].Instruction = "변경"

	assert.Equal(t, "2호선", route.Steps[1].Transit.LineName)
	assert.Equal(t, gangnamExit.Position(), route.Segments[0].First())
	assert.Equal(t, "도보", route.Steps[len(route.Steps)-1].Instruction)
}

func coachCandidate(busClass string, minutes interface{}) odsay.InterCityCandidate {
	record := map[string]interface{}{
		"startSTN": "서울경부",
		"endSTN":   "부산",
		"SX":       127.0049,
		"SY":       37.5045,
		"EX":       129.0596,
		"EY":       35.2839,
		"busClass": busClass,
		"payment":  float64(36600),
	}
	if minutes != nil {
		record["time"] = minutes
	}

	return odsay.InterCityCandidate{Group: odsay.CandidateGroupExpressBus, Record: record}
}

func TestSelectCandidatesNightFilter(t *testing.T) {
	candidates := []odsay.InterCityCandidate{
		coachCandidate("심야우등", float64(240)),
		coachCandidate("우등", float64(260)),
		coachCandidate("일반", float64(250)),
	}

	afternoon := time.Date(2026, 3, 2, 14, 0, 0, 0, time.Local)
	selected := selectCandidates(candidates, afternoon, 5)
	require.Len(t, selected, 2)
	assert.Equal(t, float64(250), selected[0].Record["time"])
	assert.Equal(t, float64(260), selected[1].Record["time"])

	night := time.Date(2026, 3, 2, 23, 30, 0, 0, time.Local)
	selected = selectCandidates(candidates, night, 5)
	require.Len(t, selected, 3)
	assert.Equal(t, "심야우등", selected[0].Record["busClass"])

	early := time.Date(2026, 3, 3, 4, 59, 0, 0, time.Local)
	assert.Len(t, selectCandidates(candidates, early, 5), 3)

	morning := time.Date(2026, 3, 3, 5, 0, 0, 0, time.Local)
	assert.Len(t, selectCandidates(candidates, morning, 5), 2)
}

func TestSelectCandidatesFilterFallback(t *testing.T) {
	candidates := []odsay.InterCityCandidate{
		coachCandidate("심야우등", float64(260)),
		coachCandidate("심야고속", float64(240)),
	}

	afternoon := time.Date(2026, 3, 2, 14, 0, 0, 0, time.Local)
	selected := selectCandidates(candidates, afternoon, 5)

	require.Len(t, selected, 2)
	assert.Equal(t, "심야고속", selected[0].Record["busClass"])
	assert.Equal(t, "심야우등", candidates[0].Record["busClass"])
}

func TestSelectCandidatesOrderingAndLimit(t *testing.T) {
	withoutTerminals := coachCandidate("우등", float64(100))
	delete(withoutTerminals.Record, "EX")

	candidates := []odsay.InterCityCandidate{
		coachCandidate("우등", nil),
		coachCandidate("우등", "300"),
		withoutTerminals,
		coachCandidate("우등", float64(200)),
		coachCandidate("일반", float64(200)),
		coachCandidate("우등", float64(150)),
	}

	afternoon := time.Date(2026, 3, 2, 14, 0, 0, 0, time.Local)

	selected := selectCandidates(candidates, afternoon, 10)
	require.Len(t, selected, 5)
	assert.Equal(t, float64(150), selected[0].Record["time"])
	assert.Equal(t, "우등", selected[1].Record["busClass"])
	assert.Equal(t, "일반", selected[2].Record["busClass"])
	assert.Equal(t, "300", selected[3].Record["time"])
	assert.Nil(t, selected[4].Record["time"])

	assert.Len(t, selectCandidates(candidates, afternoon, 2), 2)
}
