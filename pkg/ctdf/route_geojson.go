package ctdf

import (
	geojson "github.com/paulmach/go.geojson"
)

// GeoJSON returns the route segments as a FeatureCollection of LineStrings, one per segment
func (r *Route) GeoJSON() *geojson.FeatureCollection {
	featureCollection := geojson.NewFeatureCollection()

	for index, segment := range r.Segments {
		coordinates := make([][]float64, len(segment.Path))
		for i, position := range segment.Path {
			coordinates[i] = []float64{position.Longitude(), position.Latitude()}
		}

		feature := geojson.NewLineStringFeature(coordinates)
		feature.SetProperty("index", index)
		feature.SetProperty("type", segment.Type)
		feature.SetProperty("color", segment.Colour)

		featureCollection.AddFeature(feature)
	}

	return featureCollection
}
