package planner

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/travigo/transitplanner/pkg/ctdf"
	"github.com/travigo/transitplanner/pkg/naver"
)

const (
	MessageEndpointNotFound = "출발지 또는 도착지의 좌표를 찾을 수 없습니다."
	MessageNoRoute          = "대중교통 경로를 찾을 수 없습니다."
)

type Geocoder interface {
	GetPlacePoint(ctx context.Context, query string) (*ctdf.Location, error)
}

// Service is the search text entry point, it geocodes both ends then plans between them
type Service struct {
	Geocoder Geocoder
	Planner  *Planner
}

func NewServiceFromEnvironment() *Service {
	return &Service{
		Geocoder: naver.NewClientFromEnvironment(),
		Planner:  NewFromEnvironment(),
	}
}

func (s *Service) SearchPublicTransport(ctx context.Context, originSearch string, destinationSearch string) *ctdf.RouteSearchResult {
	origin, err := s.Geocoder.GetPlacePoint(ctx, originSearch)
	if err != nil {
		log.Info().Err(err).Str("origin", originSearch).Msg("Could not resolve origin")
		return endpointNotFoundResult()
	}

	destination, err := s.Geocoder.GetPlacePoint(ctx, destinationSearch)
	if err != nil {
		log.Info().Err(err).Str("destination", destinationSearch).Msg("Could not resolve destination")
		return endpointNotFoundResult()
	}

	routes := s.Planner.ResolveRoutes(ctx, *origin, *destination)

	if len(routes) == 0 {
		return &ctdf.RouteSearchResult{
			Success: true,
			Outcome: ctdf.RouteSearchOutcomeNoRoute,
			Routes:  []*ctdf.Route{},
			Count:   0,
			Message: MessageNoRoute,
		}
	}

	for _, route := range routes {
		route.Origin = originSearch
		route.Destination = destinationSearch
	}

	log.Info().
		Str("origin", originSearch).
		Str("destination", destinationSearch).
		Int("routes", len(routes)).
		Msg("Public transport search complete")

	return &ctdf.RouteSearchResult{
		Success: true,
		Outcome: ctdf.RouteSearchOutcomeFound,
		Routes:  routes,
		Count:   len(routes),
		Message: fmt.Sprintf("경로 %d개 검색 완료", len(routes)),
	}
}

func endpointNotFoundResult() *ctdf.RouteSearchResult {
	return &ctdf.RouteSearchResult{
		Success: false,
		Outcome: ctdf.RouteSearchOutcomeEndpointNotFound,
		Routes:  []*ctdf.Route{},
		Count:   0,
		Message: MessageEndpointNotFound,
	}
}
