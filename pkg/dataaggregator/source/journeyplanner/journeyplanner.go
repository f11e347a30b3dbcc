package journeyplanner

import (
	"context"
	"reflect"

	"github.com/travigo/transitplanner/pkg/ctdf"
	"github.com/travigo/transitplanner/pkg/dataaggregator/query"
	"github.com/travigo/transitplanner/pkg/dataaggregator/source"
	"github.com/travigo/transitplanner/pkg/planner"
)

type Source struct {
	Service *planner.Service
}

func (s Source) GetName() string {
	return "Public Transport Planner"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(ctdf.RouteSearchResult{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	switch q := q.(type) {
	case query.TransitRoutes:
		return s.Service.SearchPublicTransport(ctx, q.OriginSearch, q.DestinationSearch), nil
	default:
		return nil, source.UnsupportedSourceError
	}
}
