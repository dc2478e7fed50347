package main

import (
	"fmt"
	"os"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Datasets holds the three loaded input structures. LoadDatasets either
// fills all three or returns an error; callers never see a partial set.
type Datasets struct {
	Hospitals []HospitalRecord
	Districts []DistrictPolygon
	Centers   []PopulationCenter
}

// datasetCache keeps parsed inputs across repeated runs in the same
// process. Entries are keyed by path plus modification time, so editing
// a source file invalidates its entry on the next load instead of
// serving stale data.
var datasetCache = gocache.New(30*time.Minute, time.Hour)

// InvalidateCache drops every cached dataset.
func InvalidateCache() {
	datasetCache.Flush()
}

func sourceKey(path string) string {
	fi, err := os.Stat(path)
	if err != nil {
		return path
	}
	return fmt.Sprintf("%s|%d", path, fi.ModTime().UnixNano())
}

// LoadDatasets reads the hospital registry, district polygons and
// population centers. Any failure is reported as a DataSourceError
// naming the source that failed.
func LoadDatasets(hospitalsPath, districtsPath, centersPath string) (*Datasets, error) {
	hospitals, err := loadHospitals(hospitalsPath)
	if err != nil {
		return nil, &DataSourceError{Source: "hospital registry", Err: err}
	}

	districts, err := loadDistricts(districtsPath)
	if err != nil {
		return nil, &DataSourceError{Source: "district dataset", Err: err}
	}

	centers, err := loadCenters(centersPath)
	if err != nil {
		return nil, &DataSourceError{Source: "population-center dataset", Err: err}
	}

	return &Datasets{
		Hospitals: hospitals,
		Districts: districts,
		Centers:   centers,
	}, nil
}

func loadHospitals(path string) ([]HospitalRecord, error) {
	key := "hospitals:" + sourceKey(path)
	if v, ok := datasetCache.Get(key); ok {
		return v.([]HospitalRecord), nil
	}

	reader, err := NewRegistryReader(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	datasetCache.SetDefault(key, records)
	return records, nil
}

func loadDistricts(path string) ([]DistrictPolygon, error) {
	key := "districts:" + sourceKey(path)
	if v, ok := datasetCache.Get(key); ok {
		return v.([]DistrictPolygon), nil
	}

	districts, err := ReadDistricts(path)
	if err != nil {
		return nil, err
	}

	datasetCache.SetDefault(key, districts)
	return districts, nil
}

func loadCenters(path string) ([]PopulationCenter, error) {
	key := "centers:" + sourceKey(path)
	if v, ok := datasetCache.Get(key); ok {
		return v.([]PopulationCenter), nil
	}

	centers, err := ReadPopulationCenters(path)
	if err != nil {
		return nil, err
	}

	datasetCache.SetDefault(key, centers)
	return centers, nil
}
