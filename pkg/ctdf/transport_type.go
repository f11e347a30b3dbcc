package ctdf

type TravelMode string

const (
	TravelModeWalking TravelMode = "WALKING"
	TravelModeTransit TravelMode = "TRANSIT"
)

type RouteMode string

const (
	RouteModeTransit RouteMode = "transit"
	RouteModeWalking RouteMode = "walking"
)

// TransportType is the display class of a long distance leg
type TransportType string

const (
	TransportTypeIntercity    TransportType = "시외교통"
	TransportTypeTrain        TransportType = "기차"
	TransportTypeExpressBus   TransportType = "고속버스"
	TransportTypeIntercityBus TransportType = "시외버스"
	TransportTypeAir          TransportType = "항공"
	TransportTypeFerry        TransportType = "해운"
)

const (
	WalkingLabel = "도보"
	SubwayLabel  = "지하철"
	BusLabel     = "버스"
)
