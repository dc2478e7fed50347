package main

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	hospitals := []HospitalRecord{
		testRecord("H1", "LIMA", "150101", f64Ptr(-12.0), f64Ptr(-77.0)),
		testRecord("H2", "LIMA", "150101", f64Ptr(-12.1), f64Ptr(-77.1)),
		testRecord("H3", "LIMA", "150102", f64Ptr(-12.2), f64Ptr(-77.2)),
		testRecord("H4", "CUSCO", "080101", f64Ptr(-13.5), f64Ptr(-71.9)),
		testRecord("H5", "LORETO", "160101", f64Ptr(-3.7), f64Ptr(-73.2)),
	}
	hospitals[3].Institution = "ESSALUD"
	hospitals[4].Institution = "GOBIERNO REGIONAL"

	districts := []DistrictWithCount{
		{DistrictPolygon: testDistrict("LIMA", "LIMA", "150101"), HospitalCount: 2},
		{DistrictPolygon: testDistrict("LIMA", "SJL", "150102"), HospitalCount: 1},
		{DistrictPolygon: testDistrict("CUSCO", "CUSCO", "080101"), HospitalCount: 1},
		{DistrictPolygon: testDistrict("LORETO", "IQUITOS", "160101"), HospitalCount: 1},
		{DistrictPolygon: testDistrict("PUNO", "PUNO", "210101"), HospitalCount: 0},
	}

	stats := Summarize(hospitals, districts)

	if stats.TotalHospitals != 5 {
		t.Errorf("TotalHospitals = %d, want 5", stats.TotalHospitals)
	}
	if stats.DepartmentsCovered != 3 {
		t.Errorf("DepartmentsCovered = %d, want 3", stats.DepartmentsCovered)
	}
	if stats.TotalDistricts != 5 {
		t.Errorf("TotalDistricts = %d, want 5", stats.TotalDistricts)
	}
	if stats.DistrictsWithHospitals != 4 || stats.DistrictsWithoutHospitals != 1 {
		t.Errorf("coverage = %d/%d, want 4/1",
			stats.DistrictsWithHospitals, stats.DistrictsWithoutHospitals)
	}
	if stats.MaxHospitalsPerDistrict != 2 {
		t.Errorf("MaxHospitalsPerDistrict = %d, want 2", stats.MaxHospitalsPerDistrict)
	}
	if math.Abs(stats.AvgHospitalsPerDistrict-1.0) > 1e-12 {
		t.Errorf("AvgHospitalsPerDistrict = %v, want 1.0", stats.AvgHospitalsPerDistrict)
	}

	if len(stats.TopDepartments) != 3 {
		t.Fatalf("TopDepartments has %d entries, want 3", len(stats.TopDepartments))
	}
	if stats.TopDepartments[0].Name != "LIMA" || stats.TopDepartments[0].Count != 3 {
		t.Errorf("top department = %+v, want LIMA/3", stats.TopDepartments[0])
	}
	// CUSCO and LORETO tie at 1; name ascending breaks the tie.
	if stats.TopDepartments[1].Name != "CUSCO" || stats.TopDepartments[2].Name != "LORETO" {
		t.Errorf("tie order = %q, %q", stats.TopDepartments[1].Name, stats.TopDepartments[2].Name)
	}

	institutions := map[string]int{}
	for _, c := range stats.Institutions {
		institutions[c.Name] = c.Count
	}
	if institutions["MINSA"] != 3 || institutions["ESSALUD"] != 1 || institutions["GOBIERNO REGIONAL"] != 1 {
		t.Errorf("institution mix = %v", institutions)
	}
}

func TestSummarizeTruncatesTopDepartments(t *testing.T) {
	var hospitals []HospitalRecord
	for _, dept := range []string{"LIMA", "CUSCO", "LORETO", "PIURA", "PUNO", "JUNIN", "ANCASH"} {
		hospitals = append(hospitals, testRecord("H", dept, "150101", f64Ptr(-12.0), f64Ptr(-77.0)))
	}

	stats := Summarize(hospitals, nil)
	if len(stats.TopDepartments) != topDepartmentCount {
		t.Errorf("TopDepartments has %d entries, want %d", len(stats.TopDepartments), topDepartmentCount)
	}
	if stats.DepartmentsCovered != 7 {
		t.Errorf("DepartmentsCovered = %d, want 7", stats.DepartmentsCovered)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	stats := Summarize(nil, nil)
	if stats.TotalHospitals != 0 || stats.AvgHospitalsPerDistrict != 0 {
		t.Errorf("empty summary = %+v", stats)
	}
}
