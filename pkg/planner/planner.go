package planner

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/transitplanner/pkg/ctdf"
	"github.com/travigo/transitplanner/pkg/odsay"
	"github.com/travigo/transitplanner/pkg/util"
)

const (
	DefaultTopN             = 5
	DefaultTopK             = 5
	DefaultMaxDepth         = 2
	DefaultWalkOnlyDistance = 700.0

	serviceTimezone = "Asia/Seoul"
)

// serviceNow is the wall clock of the served region, used for the night service window
func serviceNow() time.Time {
	location, err := time.LoadLocation(serviceTimezone)
	if err != nil {
		return time.Now()
	}

	return time.Now().In(location)
}

// Gateway is the upstream routing service
type Gateway interface {
	FetchTransitPaths(ctx context.Context, origin ctdf.Location, destination ctdf.Location) (*odsay.PathResult, bool)
	FetchLaneGeometry(ctx context.Context, mapObject string) [][]ctdf.Position
}

// Planner resolves coordinate pairs into routes.
// Direct paths are preferred, otherwise long distance legs are bracketed by recursively resolved access and egress routes.
type Planner struct {
	Gateway Gateway

	TopN     int
	TopK     int
	Workers  int
	MaxDepth int

	// WalkOnlyDistance is the great circle distance in metres below which a walking route is returned without a search
	WalkOnlyDistance float64

	Now func() time.Time
}

func New(gateway Gateway) *Planner {
	return &Planner{
		Gateway:          gateway,
		TopN:             DefaultTopN,
		TopK:             DefaultTopK,
		Workers:          DefaultTopK,
		MaxDepth:         DefaultMaxDepth,
		WalkOnlyDistance: DefaultWalkOnlyDistance,
		Now:              serviceNow,
	}
}

func NewFromEnvironment() *Planner {
	planner := New(odsay.NewClientFromEnvironment())

	planner.TopN = util.GetEnvironmentInt("TRAVIGO_PLANNER_TOP_N", DefaultTopN)
	planner.TopK = util.GetEnvironmentInt("TRAVIGO_PLANNER_TOP_K", DefaultTopK)
	planner.Workers = util.GetEnvironmentInt("TRAVIGO_PLANNER_WORKERS", planner.TopK)

	return planner
}

type indexedRoute struct {
	index int
	route *ctdf.Route
}

func collectRoutes(results []indexedRoute) []*ctdf.Route {
	sort.Slice(results, func(i, j int) bool {
		return results[i].index < results[j].index
	})

	routes := []*ctdf.Route{}
	for _, result := range results {
		if result.route != nil {
			routes = append(routes, result.route)
		}
	}

	return routes
}

func (p *Planner) ResolveRoutes(ctx context.Context, origin ctdf.Location, destination ctdf.Location) []*ctdf.Route {
	return p.resolve(ctx, origin, destination, 0)
}

func (p *Planner) resolve(ctx context.Context, origin ctdf.Location, destination ctdf.Location, depth int) []*ctdf.Route {
	if depth >= p.MaxDepth {
		log.Debug().Int("depth", depth).Str("origin", origin.String()).Str("destination", destination.String()).Msg("Route resolution depth limit reached")
		return []*ctdf.Route{}
	}

	if origin.DistanceTo(destination) < p.WalkOnlyDistance {
		return []*ctdf.Route{walkingRoute(origin, destination)}
	}

	result, found := p.Gateway.FetchTransitPaths(ctx, origin, destination)
	if !found {
		return []*ctdf.Route{}
	}

	if routes := p.assembleDirectRoutes(ctx, result.Paths, origin, destination); len(routes) > 0 {
		return routes
	}

	return p.composeInterCityRoutes(ctx, result, origin, destination, depth)
}

func (p *Planner) assembleDirectRoutes(ctx context.Context, paths []odsay.Path, origin ctdf.Location, destination ctdf.Location) []*ctdf.Route {
	if len(paths) == 0 {
		return nil
	}
	if p.TopN > 0 && len(paths) > p.TopN {
		paths = paths[:p.TopN]
	}

	resultsPool := pool.NewWithResults[indexedRoute]().WithMaxGoroutines(len(paths))

	for i, path := range paths {
		i, path := i, path

		resultsPool.Go(func() indexedRoute {
			lanes := p.Gateway.FetchLaneGeometry(ctx, path.Info.MapObject)

			route, err := AssembleIntraCityRoute(path, origin, destination, lanes)
			if err != nil {
				log.Debug().Err(err).Int("path", i).Msg("Skipping path")
				return indexedRoute{index: i}
			}

			return indexedRoute{index: i, route: route}
		})
	}

	return collectRoutes(resultsPool.Wait())
}

// firstFlatRoute picks the first route that is not itself a composite
func firstFlatRoute(routes []*ctdf.Route) *ctdf.Route {
	for _, route := range routes {
		if !route.Approximate {
			return route
		}
	}

	return nil
}

func (p *Planner) composeInterCityRoutes(ctx context.Context, result *odsay.PathResult, origin ctdf.Location, destination ctdf.Location, depth int) []*ctdf.Route {
	candidates := selectCandidates(result.InterCityCandidates(), p.Now(), p.TopK)
	if len(candidates) == 0 {
		return []*ctdf.Route{}
	}

	workers := p.Workers
	if workers <= 0 {
		workers = len(candidates)
	}

	resultsPool := pool.NewWithResults[indexedRoute]().WithMaxGoroutines(workers)

	for i, candidate := range candidates {
		i, candidate := i, candidate

		resultsPool.Go(func() indexedRoute {
			return indexedRoute{
				index: i,
				route: p.composeCandidate(ctx, candidate, origin, destination, depth),
			}
		})
	}

	return collectRoutes(resultsPool.Wait())
}

func (p *Planner) composeCandidate(ctx context.Context, candidate odsay.InterCityCandidate, origin ctdf.Location, destination ctdf.Location, depth int) *ctdf.Route {
	departure, _ := candidate.DepartureStation()
	arrival, _ := candidate.ArrivalStation()

	access := firstFlatRoute(p.resolve(ctx, origin, departure, depth+1))
	if access == nil {
		log.Debug().Str("terminal", departure.DisplayAddress).Msg("No access route to departure terminal")
		return nil
	}

	egress := firstFlatRoute(p.resolve(ctx, arrival, destination, depth+1))
	if egress == nil {
		log.Debug().Str("terminal", arrival.DisplayAddress).Msg("No egress route from arrival terminal")
		return nil
	}

	route, err := mergeCompositeRoute(candidate, access, egress, origin, destination)
	if err != nil {
		log.Error().Err(err).Msg("Failed to merge intercity route")
		return nil
	}

	return route
}
