package odsay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/transitplanner/pkg/ctdf"
)

const searchFixture = `{
	"result": {
		"path": [
			{
				"pathType": 1,
				"info": {"totalTime": 31, "totalDistance": 9120, "payment": 1400, "mapObj": "2:2:201:228"},
				"subPath": [
					{"trafficType": 3, "distance": 320, "sectionTime": 5},
					{
						"trafficType": 1, "distance": 8500, "sectionTime": 22,
						"lane": [{"name": "수도권 2호선", "subwayCode": 2}],
						"startName": "강남", "startX": 127.0276, "startY": 37.4979,
						"endName": "시청", "endX": 126.9784, "endY": 37.5665
					},
					{"trafficType": 3, "distance": 300, "sectionTime": 4}
				]
			}
		]
	}
}`

var (
	gangnam  = ctdf.Location{Latitude: 37.4979, Longitude: 127.0276}
	cityHall = ctdf.Location{Latitude: 37.5665, Longitude: 126.9784}
)

func newTestClient(serverURL string) *Client {
	client := NewClient("test-key")
	client.BaseURL = serverURL
	client.Timeout = 2 * time.Second

	return client
}

func TestFetchTransitPaths(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/searchPubTransPath", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		assert.Equal(t, "127.0276", r.URL.Query().Get("SX"))
		assert.Equal(t, "37.4979", r.URL.Query().Get("SY"))
		assert.Equal(t, "126.9784", r.URL.Query().Get("EX"))
		assert.Equal(t, "37.5665", r.URL.Query().Get("EY"))

		w.Write([]byte(searchFixture))
	}))
	defer server.Close()

	result, ok := newTestClient(server.URL).FetchTransitPaths(context.Background(), gangnam, cityHall)
	require.True(t, ok)
	require.Len(t, result.Paths, 1)

	path := result.Paths[0]
	assert.Equal(t, 31, path.Info.TotalTime)
	assert.Equal(t, "2:2:201:228", path.Info.MapObject)
	require.Len(t, path.SubPaths, 3)
	assert.Equal(t, TrafficTypeSubway, path.SubPaths[1].TrafficType)
	assert.Equal(t, "수도권 2호선", path.SubPaths[1].FirstLane().Name)
	assert.Equal(t, Lane{}, path.SubPaths[0].FirstLane())
	assert.Empty(t, result.InterCityCandidates())
}

func TestFetchTransitPathsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": [{"code": "-98", "message": "출, 도착지가 700m이내입니다."}]}`))
	}))
	defer server.Close()

	result, ok := newTestClient(server.URL).FetchTransitPaths(context.Background(), gangnam, cityHall)
	assert.False(t, ok)
	assert.Nil(t, result)
}

func TestFetchTransitPathsBadStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, ok := newTestClient(server.URL).FetchTransitPaths(context.Background(), gangnam, cityHall)
	assert.False(t, ok)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchTransitPathsRetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(searchFixture))
	}))
	defer server.Close()

	result, ok := newTestClient(server.URL).FetchTransitPaths(context.Background(), gangnam, cityHall)
	require.True(t, ok)
	assert.Len(t, result.Paths, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchTransitPathsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.Timeout = 100 * time.Millisecond

	started := time.Now()
	_, ok := client.FetchTransitPaths(context.Background(), gangnam, cityHall)
	assert.False(t, ok)
	assert.Less(t, time.Since(started), time.Second)
}

func TestFetchTransitPathsWithoutKey(t *testing.T) {
	client := NewClient("")

	_, ok := client.FetchTransitPaths(context.Background(), gangnam, cityHall)
	assert.False(t, ok)
	assert.Empty(t, client.FetchLaneGeometry(context.Background(), "2:2:201:228"))
}

func TestFetchLaneGeometry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/loadLane", r.URL.Path)
		assert.Equal(t, "0:0@2:2:201:228", r.URL.Query().Get("mapObject"))
		assert.Equal(t, "0", r.URL.Query().Get("lang"))

		w.Write([]byte(`{"result": {"lane": [
			{"class": 2, "type": 2, "section": [
				{"graphPos": [{"x": 127.0276, "y": 37.4979}, {"x": 127.0, "y": 37.5}]},
				{"graphPos": [{"x": 126.99, "y": 37.55}]}
			]},
			{"class": 2, "type": 2, "section": []}
		]}}`))
	}))
	defer server.Close()

	lanes := newTestClient(server.URL).FetchLaneGeometry(context.Background(), "2:2:201:228")
	require.Len(t, lanes, 1)
	assert.Equal(t, []ctdf.Position{
		{127.0276, 37.4979},
		{127.0, 37.5},
		{126.99, 37.55},
	}, lanes[0])
}

func TestFetchLaneGeometryFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	lanes := newTestClient(server.URL).FetchLaneGeometry(context.Background(), "2:2:201:228")
	assert.NotNil(t, lanes)
	assert.Empty(t, lanes)
}
