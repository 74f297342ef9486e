package odata

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type geojsonGeometry struct {
	Type        string          `json:"type"`
	Coordinates [][][]float64   `json:"coordinates"`
	Geometry    json.RawMessage `json:"geometry"`
	Features    []struct {
		Geometry json.RawMessage `json:"geometry"`
	} `json:"features"`
}

// GeoJSONToWKT converts a GeoJSON polygon to a WKT string suitable for the
// geometry search term. Accepts a bare Polygon geometry, a Feature, or a
// FeatureCollection containing exactly one feature.
func GeoJSONToWKT(data []byte) (string, error) {
	var g geojsonGeometry
	if err := json.Unmarshal(data, &g); err != nil {
		return "", fmt.Errorf("parse geojson: %w", err)
	}

	switch g.Type {
	case "Feature":
		return GeoJSONToWKT(g.Geometry)
	case "FeatureCollection":
		if len(g.Features) != 1 {
			return "", fmt.Errorf("feature collection must contain exactly one feature, got %d", len(g.Features))
		}
		return GeoJSONToWKT(g.Features[0].Geometry)
	case "Polygon":
	default:
		return "", fmt.Errorf("unsupported geojson type %q", g.Type)
	}

	if len(g.Coordinates) == 0 || len(g.Coordinates[0]) == 0 {
		return "", fmt.Errorf("polygon has no coordinates")
	}

	ring := g.Coordinates[0]
	pairs := make([]string, 0, len(ring))
	for _, coord := range ring {
		if len(coord) < 2 {
			return "", fmt.Errorf("coordinate must have two components, got %d", len(coord))
		}
		pairs = append(pairs, strconv.FormatFloat(coord[0], 'f', -1, 64)+" "+strconv.FormatFloat(coord[1], 'f', -1, 64))
	}

	return "POLYGON((" + strings.Join(pairs, ", ") + "))", nil
}
