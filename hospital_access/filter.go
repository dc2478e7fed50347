package main

import "math"

// statusOperational is the registry's marker for a functioning facility.
const statusOperational = "EN FUNCIONAMIENTO"

// publicInstitutions is the whitelist of public owning bodies: health
// ministry, regional governments, social security, armed forces, police.
var publicInstitutions = map[string]bool{
	"MINSA":             true,
	"GOBIERNO REGIONAL": true,
	"ESSALUD":           true,
	"FFAA":              true,
	"PNP":               true,
}

// filterStage is one exclusion rule of the hospital filter. Stages run
// in declaration order, each shrinking the working set.
type filterStage struct {
	name string
	keep func(*HospitalRecord) bool
}

var filterStages = []filterStage{
	{
		name: "non-operational",
		keep: func(r *HospitalRecord) bool {
			return r.Status == statusOperational
		},
	},
	{
		name: "non-public institution",
		keep: func(r *HospitalRecord) bool {
			return publicInstitutions[r.Institution]
		},
	},
	{
		name: "missing coordinates",
		keep: func(r *HospitalRecord) bool {
			return r.North != nil && r.East != nil
		},
	},
	{
		name: "invalid coordinates",
		keep: func(r *HospitalRecord) bool {
			// Zero is a placeholder for "no coordinate" in the source data.
			return *r.North != 0 && *r.East != 0 &&
				math.Abs(*r.North) <= 90 && math.Abs(*r.East) <= 180
		},
	},
}

// FilterReport records how many rows each stage excluded. Only the
// aggregate counts are observable; individual dropped rows are not.
type FilterReport struct {
	Input   int
	Dropped map[string]int
	Kept    int
}

// FilterHospitals reduces the raw registry to operational public
// hospitals with valid coordinates and builds their point geometries.
func FilterHospitals(records []HospitalRecord) ([]HospitalRecord, []HospitalPoint, FilterReport) {
	report := FilterReport{
		Input:   len(records),
		Dropped: make(map[string]int, len(filterStages)),
	}

	working := records
	for _, stage := range filterStages {
		kept := make([]HospitalRecord, 0, len(working))
		for i := range working {
			if stage.keep(&working[i]) {
				kept = append(kept, working[i])
			}
		}
		report.Dropped[stage.name] = len(working) - len(kept)
		working = kept
	}
	report.Kept = len(working)

	points := make([]HospitalPoint, len(working))
	for i := range working {
		points[i] = HospitalPoint{
			HospitalRecord: working[i],
			Geom:           pointFromNorthEast(*working[i].North, *working[i].East),
		}
	}

	return working, points, report
}

// pointFromNorthEast builds the WGS84 point for a registry row. In the
// IPRESS export NORTE is the latitude (Y axis) and ESTE the longitude
// (X axis); swapping the two mirrors the whole map.
func pointFromNorthEast(north, east float64) Point {
	return Point{X: east, Y: north}
}
