package layer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/geoforge/mapserv/internal/geom"
)

// geoJSONObject is the subset of GeoJSON needed to walk geometries out of
// any of the top-level object kinds.
type geoJSONObject struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
	Geometry    *geoJSONObject  `json:"geometry"`
	Geometries  []geoJSONObject `json:"geometries"`
	Features    []geoJSONObject `json:"features"`
}

// ParseGeoJSON reads a GeoJSON document and returns its features as a
// Dataset. Supported geometries: Point, MultiPoint, LineString,
// MultiLineString, Polygon, MultiPolygon, and GeometryCollection, wrapped
// in a bare geometry, a Feature, or a FeatureCollection. Coordinates beyond
// the first two positions (elevation etc.) are ignored.
func ParseGeoJSON(r io.Reader) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read geojson: %w", err)
	}
	var root geoJSONObject
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse geojson: %w", err)
	}

	d := &Dataset{}
	if err := walkGeoJSON(&root, d); err != nil {
		return nil, err
	}
	if d.Empty() {
		return nil, errors.New("geojson: no geometries found")
	}
	return d, nil
}

// LoadGeoJSON parses the GeoJSON file at path.
func LoadGeoJSON(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geojson: %w", err)
	}
	defer f.Close()
	return ParseGeoJSON(f)
}

func walkGeoJSON(obj *geoJSONObject, d *Dataset) error {
	switch obj.Type {
	case "FeatureCollection":
		for i := range obj.Features {
			if err := walkGeoJSON(&obj.Features[i], d); err != nil {
				return err
			}
		}
	case "Feature":
		if obj.Geometry != nil {
			return walkGeoJSON(obj.Geometry, d)
		}
	case "GeometryCollection":
		for i := range obj.Geometries {
			if err := walkGeoJSON(&obj.Geometries[i], d); err != nil {
				return err
			}
		}
	case "Point":
		var pos []float64
		if err := json.Unmarshal(obj.Coordinates, &pos); err != nil {
			return fmt.Errorf("geojson point: %w", err)
		}
		p, ok := position(pos)
		if !ok {
			return errors.New("geojson point: fewer than two coordinates")
		}
		d.addPoint(p)
	case "MultiPoint":
		var coords [][]float64
		if err := json.Unmarshal(obj.Coordinates, &coords); err != nil {
			return fmt.Errorf("geojson multipoint: %w", err)
		}
		for _, pos := range coords {
			if p, ok := position(pos); ok {
				d.addPoint(p)
			}
		}
	case "LineString":
		var coords [][]float64
		if err := json.Unmarshal(obj.Coordinates, &coords); err != nil {
			return fmt.Errorf("geojson linestring: %w", err)
		}
		d.addLine(positions(coords))
	case "MultiLineString":
		var coords [][][]float64
		if err := json.Unmarshal(obj.Coordinates, &coords); err != nil {
			return fmt.Errorf("geojson multilinestring: %w", err)
		}
		for _, line := range coords {
			d.addLine(positions(line))
		}
	case "Polygon":
		var coords [][][]float64
		if err := json.Unmarshal(obj.Coordinates, &coords); err != nil {
			return fmt.Errorf("geojson polygon: %w", err)
		}
		d.addPolygon(rings(coords))
	case "MultiPolygon":
		var coords [][][][]float64
		if err := json.Unmarshal(obj.Coordinates, &coords); err != nil {
			return fmt.Errorf("geojson multipolygon: %w", err)
		}
		for _, poly := range coords {
			d.addPolygon(rings(poly))
		}
	default:
		return fmt.Errorf("geojson: unsupported type %q", obj.Type)
	}
	return nil
}

func position(pos []float64) (geom.Point, bool) {
	if len(pos) < 2 {
		return geom.Point{}, false
	}
	return geom.Point{X: pos[0], Y: pos[1]}, true
}

func positions(coords [][]float64) []geom.Point {
	pts := make([]geom.Point, 0, len(coords))
	for _, pos := range coords {
		if p, ok := position(pos); ok {
			pts = append(pts, p)
		}
	}
	return pts
}

func rings(coords [][][]float64) [][]geom.Point {
	out := make([][]geom.Point, 0, len(coords))
	for _, ring := range coords {
		out = append(out, positions(ring))
	}
	return out
}
