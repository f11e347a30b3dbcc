package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/transitplanner/pkg/ctdf"
	"github.com/travigo/transitplanner/pkg/naver"
	"github.com/travigo/transitplanner/pkg/odsay"
)

type fakeGeocoder map[string]ctdf.Location

func (g fakeGeocoder) GetPlacePoint(ctx context.Context, query string) (*ctdf.Location, error) {
	location, ok := g[query]
	if !ok {
		return nil, naver.ErrPlaceNotFound
	}

	return &location, nil
}

func newTestService() *Service {
	gateway := newFakeGateway()
	gateway.add(gangnamExit, cityHall, &odsay.PathResult{Paths: []odsay.Path{gangnamCityHallPath()}})

	return &Service{
		Geocoder: fakeGeocoder{
			"강남역":  gangnamExit,
			"서울시청": cityHall,
			"해운대":  haeundae,
		},
		Planner: newTestPlanner(gateway),
	}
}

func TestSearchPublicTransportFound(t *testing.T) {
	result := newTestService().SearchPublicTransport(context.Background(), "강남역", "서울시청")

	assert.True(t, result.Success)
	assert.Equal(t, ctdf.RouteSearchOutcomeFound, result.Outcome)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, "경로 1개 검색 완료", result.Message)

	require.Len(t, result.Routes, 1)
	assert.Equal(t, "강남역", result.Routes[0].Origin)
	assert.Equal(t, "서울시청", result.Routes[0].Destination)
}

func TestSearchPublicTransportNoRoute(t *testing.T) {
	result := newTestService().SearchPublicTransport(context.Background(), "강남역", "해운대")

	assert.True(t, result.Success)
	assert.Equal(t, ctdf.RouteSearchOutcomeNoRoute, result.Outcome)
	assert.Equal(t, MessageNoRoute, result.Message)
	assert.NotNil(t, result.Routes)
	assert.Empty(t, result.Routes)
}

func TestSearchPublicTransportEndpointNotFound(t *testing.T) {
	service := newTestService()

	for _, pair := range [][2]string{{"어딘가", "서울시청"}, {"강남역", "어딘가"}} {
		result := service.SearchPublicTransport(context.Background(), pair[0], pair[1])

		assert.False(t, result.Success)
		assert.Equal(t, ctdf.RouteSearchOutcomeEndpointNotFound, result.Outcome)
		assert.Equal(t, MessageEndpointNotFound, result.Message)
		assert.Empty(t, result.Routes)
	}
}
