package cachedresults

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/travigo/transitplanner/pkg/ctdf"
	"github.com/travigo/transitplanner/pkg/dataaggregator"
	"github.com/travigo/transitplanner/pkg/dataaggregator/query"
)

// Source memoises whole route searches from Upstream. Other queries pass straight through.
type Source struct {
	CachedResults *Cache
	Upstream      dataaggregator.DataSource
}

func (s Source) GetName() string {
	return fmt.Sprintf("Cached %s", s.Upstream.GetName())
}

func (s Source) Supports() []reflect.Type {
	return s.Upstream.Supports()
}

func transitRoutesCacheKey(q query.TransitRoutes) string {
	return fmt.Sprintf(
		"cachedresults/transitroutes/%s/%s",
		strings.TrimSpace(q.OriginSearch),
		strings.TrimSpace(q.DestinationSearch),
	)
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	transitQuery, ok := q.(query.TransitRoutes)
	if !ok {
		return s.Upstream.Lookup(ctx, q)
	}

	cacheItemPath := transitRoutesCacheKey(transitQuery)

	if cachedObject, err := s.CachedResults.Cache.Get(ctx, cacheItemPath); err == nil {
		var result *ctdf.RouteSearchResult
		if err := json.Unmarshal([]byte(cachedObject), &result); err == nil && result != nil {
			log.Debug().Str("key", cacheItemPath).Msg("Serving route search from cache")
			return result, nil
		}
	}

	upstreamResult, err := s.Upstream.Lookup(ctx, q)
	if err != nil {
		return upstreamResult, err
	}

	result, ok := upstreamResult.(*ctdf.RouteSearchResult)
	if !ok || result == nil || result.Outcome == ctdf.RouteSearchOutcomeEndpointNotFound {
		return upstreamResult, nil
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return result, nil
	}

	if err := s.CachedResults.Cache.Set(ctx, cacheItemPath, string(resultJSON)); err != nil {
		log.Error().Err(err).Str("key", cacheItemPath).Msg("Failed to store route search in cache")
	}

	return result, nil
}
