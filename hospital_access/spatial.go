package main

import "strings"

// Administrative code widths: two digits each for department, province
// and district.
const (
	deptCodeWidth     = 2
	districtCodeWidth = 6
)

// padTo normalizes an administrative code to a fixed-width zero-padded
// form. GIS exports store these as numeric attributes, which drops the
// leading zero. An empty code stays empty rather than becoming all
// zeros.
func padTo(code string, width int) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	for len(code) < width {
		code = "0" + code
	}
	return code
}

// padCode normalizes a district code to the form used as the
// hospital↔district join key.
func padCode(code string) string {
	return padTo(code, districtCodeWidth)
}

// CountHospitalsByDistrict joins hospitals to districts by normalized
// administrative code and counts per district. The join is code-based,
// not point-in-polygon: the UBIGEO code is authoritative, and a hospital
// whose code matches no district is simply not counted anywhere.
//
// The output has exactly one row per input district, in input order;
// unmatched districts carry 0. The second return value is the number of
// hospitals assigned to some district.
func CountHospitalsByDistrict(hospitals []HospitalPoint, districts []DistrictPolygon) ([]DistrictWithCount, int) {
	counts := make(map[string]int, len(districts))
	for i := range hospitals {
		counts[padCode(hospitals[i].UBIGEO)]++
	}

	out := make([]DistrictWithCount, len(districts))
	assigned := 0
	for i, d := range districts {
		n := counts[padCode(d.Code)]
		out[i] = DistrictWithCount{DistrictPolygon: d, HospitalCount: n}
		assigned += n
	}

	return out, assigned
}
