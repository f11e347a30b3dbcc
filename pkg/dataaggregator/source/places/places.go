package places

import (
	"context"
	"reflect"

	"github.com/travigo/transitplanner/pkg/ctdf"
	"github.com/travigo/transitplanner/pkg/dataaggregator/query"
	"github.com/travigo/transitplanner/pkg/dataaggregator/source"
	"github.com/travigo/transitplanner/pkg/planner"
)

type Source struct {
	Geocoder planner.Geocoder
}

func (s Source) GetName() string {
	return "Place Geocoder"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(ctdf.Location{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	switch q := q.(type) {
	case query.Place:
		location, err := s.Geocoder.GetPlacePoint(ctx, q.Query)
		if err != nil {
			return nil, err
		}

		return location, nil
	default:
		return nil, source.UnsupportedSourceError
	}
}
