package odsay

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitplanner/pkg/ctdf"
)

type TrafficType int

const (
	TrafficTypeSubway TrafficType = 1
	TrafficTypeBus    TrafficType = 2
	TrafficTypeWalk   TrafficType = 3
)

type PathResult struct {
	Paths []Path `json:"path"`

	TrainRequest        *CandidateGroup `json:"trainRequest"`
	ExpressBusRequest   *CandidateGroup `json:"exBusRequest"`
	IntercityBusRequest *CandidateGroup `json:"outBusRequest"`
}

type Path struct {
	PathType int      `json:"pathType"`
	Info     PathInfo `json:"info"`

	SubPaths []SubPath `json:"subPath"`
}

type PathInfo struct {
	TotalTime     int     `json:"totalTime"`
	TotalDistance float64 `json:"totalDistance"`
	Payment       int     `json:"payment"`
	MapObject     string  `json:"mapObj"`
}

type SubPath struct {
	TrafficType TrafficType `json:"trafficType"`
	Distance    float64     `json:"distance"`
	SectionTime int         `json:"sectionTime"`

	Lanes []Lane `json:"lane"`

	StartName string  `json:"startName"`
	StartX    float64 `json:"startX"`
	StartY    float64 `json:"startY"`
	EndName   string  `json:"endName"`
	EndX      float64 `json:"endX"`
	EndY      float64 `json:"endY"`
}

type Lane struct {
	Name       string `json:"name"`
	BusNo      string `json:"busNo"`
	SubwayCode int    `json:"subwayCode"`
}

// FirstLane returns the primary line serving the sub path, or an empty Lane when the upstream omitted it
func (s SubPath) FirstLane() Lane {
	if len(s.Lanes) == 0 {
		return Lane{}
	}

	return s.Lanes[0]
}

type searchResponse struct {
	Result *PathResult     `json:"result"`
	Error  json.RawMessage `json:"error"`
}

func decodeSearchResponse(body []byte) (*PathResult, error) {
	var response searchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "decoding searchPubTransPath response")
	}

	if len(response.Error) > 0 && string(response.Error) != "null" {
		return nil, errors.Errorf("searchPubTransPath returned error %s", string(response.Error))
	}

	if response.Result == nil {
		return nil, errors.New("searchPubTransPath response has no result")
	}

	return response.Result, nil
}

// FetchTransitPaths searches public transport paths between two points.
// The boolean is false when the upstream has nothing to offer, which is a normal outcome.
func (c *Client) FetchTransitPaths(ctx context.Context, origin ctdf.Location, destination ctdf.Location) (*PathResult, bool) {
	if c.APIKey == "" {
		log.Warn().Msg("ODsay API key not configured, skipping path search")
		return nil, false
	}

	params := url.Values{}
	params.Set("SX", strconv.FormatFloat(origin.Longitude, 'f', -1, 64))
	params.Set("SY", strconv.FormatFloat(origin.Latitude, 'f', -1, 64))
	params.Set("EX", strconv.FormatFloat(destination.Longitude, 'f', -1, 64))
	params.Set("EY", strconv.FormatFloat(destination.Latitude, 'f', -1, 64))

	body, err := c.get(ctx, "searchPubTransPath", params)
	if err != nil {
		log.Warn().Err(err).Str("origin", origin.String()).Str("destination", destination.String()).Msg("searchPubTransPath request failed")
		return nil, false
	}

	result, err := decodeSearchResponse(body)
	if err != nil {
		log.Debug().Err(err).Str("origin", origin.String()).Str("destination", destination.String()).Msg("No transit paths found")
		return nil, false
	}

	log.Debug().
		Int("paths", len(result.Paths)).
		Int("candidates", len(result.InterCityCandidates())).
		Msg("Fetched transit paths")

	return result, true
}
