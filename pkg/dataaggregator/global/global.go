package global

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitplanner/pkg/dataaggregator"
	"github.com/travigo/transitplanner/pkg/dataaggregator/source/cachedresults"
	"github.com/travigo/transitplanner/pkg/dataaggregator/source/journeyplanner"
	"github.com/travigo/transitplanner/pkg/dataaggregator/source/places"
	"github.com/travigo/transitplanner/pkg/planner"
	"github.com/travigo/transitplanner/pkg/redis_client"
)

// Setup registers the planner sources, route searches are memoised when a redis connection is available
func Setup(service *planner.Service) {
	dataaggregator.GlobalAggregator = dataaggregator.Aggregator{}

	var routeSource dataaggregator.DataSource = journeyplanner.Source{Service: service}

	if redis_client.Client != nil {
		cache := &cachedresults.Cache{}
		cache.Setup(redis_client.Client)

		routeSource = cachedresults.Source{
			CachedResults: cache,
			Upstream:      routeSource,
		}
	} else {
		log.Info().Msg("Redis not connected, route search caching disabled")
	}

	dataaggregator.GlobalAggregator.RegisterSource(routeSource)
	dataaggregator.GlobalAggregator.RegisterSource(places.Source{Geocoder: service.Geocoder})
}
