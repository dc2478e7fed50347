package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
)

// GeoJSON envelope types. Coordinates stay raw until the geometry type
// is known.

type geoJSONCollection struct {
	Type     string           `json:"type"`
	CRS      *geoJSONCRS      `json:"crs"`
	Features []geoJSONFeature `json:"features"`
}

type geoJSONCRS struct {
	Properties struct {
		Name string `json:"name"`
	} `json:"properties"`
}

type geoJSONFeature struct {
	Properties map[string]interface{} `json:"properties"`
	Geometry   *geoJSONGeometry       `json:"geometry"`
}

type geoJSONGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

const earthRadiusM = 6378137.0 // spherical Mercator radius

// crsTransform resolves the collection's declared CRS to a per-point
// transform into EPSG:4326. An absent CRS means the file already follows
// the GeoJSON default (WGS84 lon/lat).
func crsTransform(crs *geoJSONCRS) (func(Point) Point, error) {
	name := ""
	if crs != nil {
		name = crs.Properties.Name
	}
	switch {
	case name == "", strings.Contains(name, "4326"), strings.Contains(name, "CRS84"):
		return func(p Point) Point { return p }, nil
	case strings.Contains(name, "3857"):
		return inverseMercator, nil
	default:
		return nil, fmt.Errorf("unsupported CRS %q", name)
	}
}

// inverseMercator converts spherical-Mercator meters to WGS84 degrees.
func inverseMercator(p Point) Point {
	lon := p.X / earthRadiusM * 180 / math.Pi
	lat := (2*math.Atan(math.Exp(p.Y/earthRadiusM)) - math.Pi/2) * 180 / math.Pi
	return Point{X: lon, Y: lat}
}

func readCollection(path string) (*geoJSONCollection, func(Point) Point, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	var fc geoJSONCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, nil, fmt.Errorf("%s: expected FeatureCollection, got %q", path, fc.Type)
	}

	transform, err := crsTransform(fc.CRS)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return &fc, transform, nil
}

// checkProperties validates that every required property is present on
// every feature. GIS exports usually carry a uniform attribute table,
// but a hand-edited file can drop a key from one feature, and a blank
// code would otherwise join silently.
func checkProperties(fc *geoJSONCollection, source string, required ...string) error {
	for i := range fc.Features {
		var missing []string
		for _, name := range required {
			if _, ok := fc.Features[i].Properties[name]; !ok {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("feature %d: %w", i, &SchemaError{Source: source, Missing: missing})
		}
	}
	return nil
}

// propString reads a feature property as a string. Numeric attribute
// values (common for code fields in GIS exports) are formatted without
// a fractional part.
func propString(props map[string]interface{}, name string) string {
	v, ok := props[name]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == math.Trunc(t) {
			return fmt.Sprintf("%.0f", t)
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// ReadDistricts loads the district polygon dataset and normalizes its
// geometry to EPSG:4326.
func ReadDistricts(path string) ([]DistrictPolygon, error) {
	fc, transform, err := readCollection(path)
	if err != nil {
		return nil, err
	}
	if err := checkProperties(fc, "district dataset", "IDDIST", "DEPARTAMEN", "PROVINCIA", "DISTRITO"); err != nil {
		return nil, err
	}

	districts := make([]DistrictPolygon, 0, len(fc.Features))
	for i, f := range fc.Features {
		if f.Geometry == nil {
			return nil, fmt.Errorf("%s: feature %d has no geometry", path, i)
		}
		polys, err := parsePolygons(f.Geometry, transform)
		if err != nil {
			return nil, fmt.Errorf("%s: feature %d: %w", path, i, err)
		}
		districts = append(districts, DistrictPolygon{
			Department: strings.ToUpper(propString(f.Properties, "DEPARTAMEN")),
			Province:   strings.ToUpper(propString(f.Properties, "PROVINCIA")),
			District:   strings.ToUpper(propString(f.Properties, "DISTRITO")),
			Code:       propString(f.Properties, "IDDIST"),
			Geometry:   polys,
		})
	}
	return districts, nil
}

// ReadPopulationCenters loads the population-center point dataset and
// normalizes its geometry to EPSG:4326.
func ReadPopulationCenters(path string) ([]PopulationCenter, error) {
	fc, transform, err := readCollection(path)
	if err != nil {
		return nil, err
	}
	if err := checkProperties(fc, "population-center dataset",
		"NOME", "CCDD", "CCPP", "DEPARTAMEN", "PROVINCIA", "DISTRITO"); err != nil {
		return nil, err
	}

	centers := make([]PopulationCenter, 0, len(fc.Features))
	for i, f := range fc.Features {
		if f.Geometry == nil {
			return nil, fmt.Errorf("%s: feature %d has no geometry", path, i)
		}
		pt, err := parsePoint(f.Geometry, transform)
		if err != nil {
			return nil, fmt.Errorf("%s: feature %d: %w", path, i, err)
		}
		centers = append(centers, PopulationCenter{
			Name:       propString(f.Properties, "NOME"),
			Department: strings.ToUpper(propString(f.Properties, "DEPARTAMEN")),
			Province:   strings.ToUpper(propString(f.Properties, "PROVINCIA")),
			District:   strings.ToUpper(propString(f.Properties, "DISTRITO")),
			DeptCode:   padTo(propString(f.Properties, "CCDD"), deptCodeWidth),
			Code:       propString(f.Properties, "CCPP"),
			Geom:       pt,
		})
	}
	return centers, nil
}

func parsePoint(g *geoJSONGeometry, transform func(Point) Point) (Point, error) {
	if g.Type != "Point" {
		return Point{}, fmt.Errorf("expected Point geometry, got %q", g.Type)
	}
	var coords []float64
	if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
		return Point{}, fmt.Errorf("parse point coordinates: %w", err)
	}
	if len(coords) < 2 {
		return Point{}, fmt.Errorf("point has %d coordinates, want 2", len(coords))
	}
	return transform(Point{X: coords[0], Y: coords[1]}), nil
}

func parsePolygons(g *geoJSONGeometry, transform func(Point) Point) ([]Polygon, error) {
	switch g.Type {
	case "Polygon":
		var rings [][][]float64
		if err := json.Unmarshal(g.Coordinates, &rings); err != nil {
			return nil, fmt.Errorf("parse polygon coordinates: %w", err)
		}
		return []Polygon{buildPolygon(rings, transform)}, nil
	case "MultiPolygon":
		var multi [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &multi); err != nil {
			return nil, fmt.Errorf("parse multipolygon coordinates: %w", err)
		}
		polys := make([]Polygon, 0, len(multi))
		for _, rings := range multi {
			polys = append(polys, buildPolygon(rings, transform))
		}
		return polys, nil
	default:
		return nil, fmt.Errorf("expected Polygon or MultiPolygon geometry, got %q", g.Type)
	}
}

func buildPolygon(rings [][][]float64, transform func(Point) Point) Polygon {
	poly := make(Polygon, 0, len(rings))
	for _, ring := range rings {
		r := make(Ring, 0, len(ring))
		for _, c := range ring {
			if len(c) < 2 {
				continue
			}
			r = append(r, transform(Point{X: c[0], Y: c[1]}))
		}
		poly = append(poly, r)
	}
	return poly
}
