package main

import (
	"fmt"
	"strings"
)

// defaultBufferKM is the policy buffer radius for proximity analysis.
const defaultBufferKM = 10.0

// kmPerDegree is the flat-earth approximation used to convert a buffer
// radius into decimal degrees. Good enough at department scale; the
// resulting buffer is a planar disk in degree space, not a geodesic
// circle.
const kmPerDegree = 111.0

func kmToDegrees(km float64) float64 {
	return km / kmPerDegree
}

// departmentCodes maps department names to their two-digit CCDD codes.
var departmentCodes = map[string]string{
	"lima":        "15",
	"loreto":      "16",
	"cusco":       "08",
	"arequipa":    "04",
	"piura":       "20",
	"la libertad": "13",
	"cajamarca":   "06",
	"puno":        "21",
	"junin":       "12",
	"ancash":      "02",
}

// departmentCode resolves a department name (case-insensitive) to its
// two-digit code.
func departmentCode(name string) (string, bool) {
	code, ok := departmentCodes[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}

// UnknownDepartmentError reports a department name with no entry in the
// code table.
type UnknownDepartmentError struct {
	Department string
}

func (e *UnknownDepartmentError) Error() string {
	return fmt.Sprintf("unknown department %q", e.Department)
}

// AnalyzeProximity buffers each population center of the department by
// bufferKM and counts the department's hospitals strictly inside each
// buffer, then selects the most isolated (fewest) and most concentrated
// (most) centers. Ties go to the center with the lowest input index.
//
// A department with no hospitals or no population centers is a
// recoverable condition: the analysis comes back nil with a nil error,
// and callers must check for it.
//
// Containment is O(centers × hospitals). Both sets are restricted to
// one department first, which keeps this at hundreds to low thousands
// of points; running it against the national point set would want an
// R-tree instead.
func AnalyzeProximity(hospitals []HospitalPoint, centers []PopulationCenter, department string, bufferKM float64) (*ProximityAnalysis, error) {
	code, ok := departmentCode(department)
	if !ok {
		return nil, &UnknownDepartmentError{Department: department}
	}

	deptName := strings.ToUpper(strings.TrimSpace(department))

	var deptHospitals []HospitalPoint
	for i := range hospitals {
		if hospitals[i].Department == deptName {
			deptHospitals = append(deptHospitals, hospitals[i])
		}
	}

	var deptCenters []PopulationCenter
	for i := range centers {
		if centers[i].DeptCode == code {
			deptCenters = append(deptCenters, centers[i])
		}
	}

	if len(deptHospitals) == 0 || len(deptCenters) == 0 {
		return nil, nil
	}

	radius := kmToDegrees(bufferKM)

	analysis := &ProximityAnalysis{
		Department:     deptName,
		DepartmentCode: code,
		BufferKM:       bufferKM,
		Results:        make([]ProximityResult, 0, len(deptCenters)),
		Hospitals:      deptHospitals,
	}

	for i, center := range deptCenters {
		count := 0
		for j := range deptHospitals {
			if withinDisk(deptHospitals[j].Geom, center.Geom, radius) {
				count++
			}
		}
		analysis.Results = append(analysis.Results, ProximityResult{
			Index:             i,
			Name:              center.Name,
			Code:              center.Code,
			Geom:              center.Geom,
			HospitalsInBuffer: count,
		})
	}

	min, max := 0, 0
	for i := 1; i < len(analysis.Results); i++ {
		if analysis.Results[i].HospitalsInBuffer < analysis.Results[min].HospitalsInBuffer {
			min = i
		}
		if analysis.Results[i].HospitalsInBuffer > analysis.Results[max].HospitalsInBuffer {
			max = i
		}
	}
	analysis.MostIsolated = &analysis.Results[min]
	analysis.MostConcentrated = &analysis.Results[max]

	return analysis, nil
}

// withinDisk reports whether p lies strictly inside the degree-space
// disk of the given radius around center. Boundary points do not count,
// matching polygon-containment semantics for a buffered point.
func withinDisk(p, center Point, radius float64) bool {
	dx := p.X - center.X
	dy := p.Y - center.Y
	return dx*dx+dy*dy < radius*radius
}
