package ctdf

type Route struct {
	Origin      string    `json:"origin" groups:"basic"`
	Destination string    `json:"destination" groups:"basic"`
	Mode        RouteMode `json:"mode" groups:"basic"`

	Duration string `json:"duration" groups:"basic"`
	Distance string `json:"distance" groups:"basic"`
	Cost     string `json:"cost" groups:"basic"`

	TransportSummary []string `json:"transport_summary" groups:"basic"`

	Steps    []Step    `json:"steps" groups:"basic"`
	Segments []Segment `json:"segments" groups:"detailed"`

	DurationMinutes int     `json:"duration_minutes" groups:"detailed"`
	DistanceMeters  float64 `json:"distance_meters" groups:"detailed"`
	CostWon         int     `json:"cost_won" groups:"detailed"`

	// Approximate is set when the totals were summed from independently queried legs
	Approximate bool `json:"approximate" groups:"basic"`
}

type Step struct {
	Instruction string         `json:"instruction" groups:"basic"`
	Duration    string         `json:"duration" groups:"basic"`
	Distance    string         `json:"distance" groups:"basic"`
	TravelMode  TravelMode     `json:"travel_mode" groups:"basic"`
	Transit     *TransitDetail `json:"transit,omitempty" groups:"basic"`
	Colour      string         `json:"color" groups:"basic"`
}

type TransitDetail struct {
	LineName             string   `json:"line_name" groups:"basic"`
	DepartureStop        string   `json:"departure_stop" groups:"basic"`
	ArrivalStop          string   `json:"arrival_stop" groups:"basic"`
	DepartureCoordinates Position `json:"departure_coords" groups:"basic"`
	ArrivalCoordinates   Position `json:"arrival_coords" groups:"basic"`
}

// Segment is one drawable polyline chunk of a Route
type Segment struct {
	Type   string     `json:"type" groups:"detailed"`
	Colour string     `json:"color" groups:"detailed"`
	Path   []Position `json:"path" groups:"detailed"`
}

func (s Segment) First() Position {
	return s.Path[0]
}

func (s Segment) Last() Position {
	return s.Path[len(s.Path)-1]
}

// IsContinuous reports whether every segment starts where the previous one ended
func (r *Route) IsContinuous() bool {
	for i := 1; i < len(r.Segments); i++ {
		if !r.Segments[i-1].Last().Equal(r.Segments[i].First()) {
			return false
		}
	}

	return true
}
