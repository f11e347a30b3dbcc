package ctdf

type RouteSearchOutcome string

const (
	RouteSearchOutcomeFound            RouteSearchOutcome = "found"
	RouteSearchOutcomeNoRoute          RouteSearchOutcome = "no_route"
	RouteSearchOutcomeEndpointNotFound RouteSearchOutcome = "endpoint_not_found"
)

type RouteSearchResult struct {
	Success bool               `json:"success" groups:"basic"`
	Outcome RouteSearchOutcome `json:"outcome" groups:"basic"`
	Routes  []*Route           `json:"routes" groups:"basic"`
	Count   int                `json:"count" groups:"basic"`
	Message string             `json:"message" groups:"basic"`
}
