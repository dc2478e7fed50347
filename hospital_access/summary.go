package main

import "sort"

// topDepartmentCount limits the department ranking in the summary.
const topDepartmentCount = 5

// Summarize derives descriptive aggregates from the filtered hospital
// set and the per-district counts. Pure function of its inputs.
func Summarize(hospitals []HospitalRecord, districts []DistrictWithCount) SummaryStats {
	stats := SummaryStats{
		TotalHospitals: len(hospitals),
		TotalDistricts: len(districts),
	}

	maxCount := 0
	totalCount := 0
	for i := range districts {
		n := districts[i].HospitalCount
		totalCount += n
		if n > 0 {
			stats.DistrictsWithHospitals++
		} else {
			stats.DistrictsWithoutHospitals++
		}
		if n > maxCount {
			maxCount = n
		}
	}
	stats.MaxHospitalsPerDistrict = maxCount
	if len(districts) > 0 {
		stats.AvgHospitalsPerDistrict = float64(totalCount) / float64(len(districts))
	}

	departments := make(map[string]int)
	institutions := make(map[string]int)
	for i := range hospitals {
		departments[hospitals[i].Department]++
		institutions[hospitals[i].Institution]++
	}
	stats.DepartmentsCovered = len(departments)

	stats.TopDepartments = sortedCounts(departments)
	if len(stats.TopDepartments) > topDepartmentCount {
		stats.TopDepartments = stats.TopDepartments[:topDepartmentCount]
	}
	stats.Institutions = sortedCounts(institutions)

	return stats
}

// sortedCounts turns a count map into a deterministic ranking: count
// descending, then name ascending.
func sortedCounts(counts map[string]int) []CategoryCount {
	out := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategoryCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
