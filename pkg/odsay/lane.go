package odsay

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/rs/zerolog/log"
	"github.com/travigo/transitplanner/pkg/ctdf"
)

type laneResponse struct {
	Result *struct {
		Lanes []struct {
			Class    int `json:"class"`
			Type     int `json:"type"`
			Sections []struct {
				GraphPositions []struct {
					X float64 `json:"x"`
					Y float64 `json:"y"`
				} `json:"graphPos"`
			} `json:"section"`
		} `json:"lane"`
	} `json:"result"`
}

// FetchLaneGeometry loads the detailed polylines for the transit legs of a path, one per lane.
// Geometry is only used for drawing so any failure returns an empty list.
func (c *Client) FetchLaneGeometry(ctx context.Context, mapObject string) [][]ctdf.Position {
	if c.APIKey == "" || mapObject == "" {
		return [][]ctdf.Position{}
	}

	params := url.Values{}
	params.Set("mapObject", "0:0@"+mapObject)
	params.Set("lang", "0")

	body, err := c.get(ctx, "loadLane", params)
	if err != nil {
		log.Error().Err(err).Str("mapobject", mapObject).Msg("loadLane request failed")
		return [][]ctdf.Position{}
	}

	var response laneResponse
	if err := json.Unmarshal(body, &response); err != nil || response.Result == nil {
		log.Error().Err(err).Str("mapobject", mapObject).Msg("Failed to decode loadLane response")
		return [][]ctdf.Position{}
	}

	laneSections := [][]ctdf.Position{}
	for _, lane := range response.Result.Lanes {
		var sectionCoordinates []ctdf.Position

		for _, section := range lane.Sections {
			for _, graph := range section.GraphPositions {
				sectionCoordinates = append(sectionCoordinates, ctdf.Position{graph.X, graph.Y})
			}
		}

		if len(sectionCoordinates) > 0 {
			laneSections = append(laneSections, sectionCoordinates)
		}
	}

	return laneSections
}
