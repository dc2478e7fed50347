package main

import (
	"fmt"
	"strings"
)

// Point is a 2D position in EPSG:4326: X is longitude, Y is latitude.
type Point struct {
	X float64
	Y float64
}

// Ring is a closed linear ring of a polygon boundary.
type Ring []Point

// Polygon is an exterior ring followed by zero or more holes.
type Polygon []Ring

// HospitalRecord is one row of the MINSA IPRESS health-facility registry.
// Department/Province/District are uppercase-normalized at read time.
// North/East hold the raw NORTE/ESTE coordinate values; nil means the
// field was empty or failed numeric coercion.
type HospitalRecord struct {
	Name        string
	Department  string
	Province    string
	District    string
	Status      string
	Institution string
	North       *float64
	East        *float64
	UBIGEO      string
}

// HospitalPoint is a filtered registry row plus its WGS84 point geometry.
// Built once by the filter and never mutated downstream.
type HospitalPoint struct {
	HospitalRecord
	Geom Point
}

// DistrictPolygon is one administrative district from the national
// district dataset. Code is the UBIGEO-style district identifier
// (IDDIST), unique per district.
type DistrictPolygon struct {
	Department string
	Province   string
	District   string
	Code       string
	Geometry   []Polygon
}

// DistrictWithCount is a district plus its hospital count. Derived on
// every run; districts with no matching hospital code carry 0.
type DistrictWithCount struct {
	DistrictPolygon
	HospitalCount int
}

// PopulationCenter is one settlement from the population-center dataset.
// DeptCode is the two-digit department code (CCDD) used to scope
// proximity queries.
type PopulationCenter struct {
	Name       string
	Department string
	Province   string
	District   string
	DeptCode   string
	Code       string
	Geom       Point
}

// ProximityResult is the buffer-containment count for one population
// center. Index is the center's position in the input collection and
// doubles as the tie-break key for extremum selection.
type ProximityResult struct {
	Index             int
	Name              string
	Code              string
	Geom              Point
	HospitalsInBuffer int
}

// ProximityAnalysis is the output of the proximity analyzer for one
// department. Hospitals is the department-restricted hospital set the
// counts were computed against.
type ProximityAnalysis struct {
	Department       string
	DepartmentCode   string
	BufferKM         float64
	Results          []ProximityResult
	MostIsolated     *ProximityResult
	MostConcentrated *ProximityResult
	Hospitals        []HospitalPoint
}

// CategoryCount is one name/count pair in a distribution, ordered by
// count descending then name ascending.
type CategoryCount struct {
	Name  string
	Count int
}

// SummaryStats is the fixed-shape aggregate over the filtered hospital
// set and the district counts.
type SummaryStats struct {
	TotalHospitals            int
	TotalDistricts            int
	DistrictsWithHospitals    int
	DistrictsWithoutHospitals int
	AvgHospitalsPerDistrict   float64
	MaxHospitalsPerDistrict   int
	DepartmentsCovered        int
	TopDepartments            []CategoryCount
	Institutions              []CategoryCount
}

// DataSourceError marks one of the three input sources as unreadable or
// malformed. The run produces no partial results when it occurs.
type DataSourceError struct {
	Source string
	Err    error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// SchemaError reports required columns or feature properties absent
// from a loaded source.
type SchemaError struct {
	Source  string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required column(s): %s",
		e.Source, strings.Join(e.Missing, ", "))
}
