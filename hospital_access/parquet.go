package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
)

// Derived-dataset Parquet rows. These files are the interchange format
// between the pipeline and its consumers (the Postgres loader and the
// dashboard's chart/map layer). District geometry is not exported here;
// the dashboard reads polygons from the original GeoJSON and joins on
// district_code.

type HospitalRow struct {
	Name        string  `parquet:"name"`
	Department  string  `parquet:"department"`
	Province    string  `parquet:"province"`
	District    string  `parquet:"district"`
	Institution string  `parquet:"institution"`
	UBIGEO      string  `parquet:"ubigeo"`
	Longitude   float64 `parquet:"longitude"`
	Latitude    float64 `parquet:"latitude"`
}

type DistrictCountRow struct {
	Code          string `parquet:"district_code"`
	Department    string `parquet:"department"`
	Province      string `parquet:"province"`
	District      string `parquet:"district"`
	HospitalCount int32  `parquet:"hospital_count"`
}

type ProximityRow struct {
	CenterIndex       int32   `parquet:"center_index"`
	Name              string  `parquet:"name"`
	Code              string  `parquet:"center_code"`
	Longitude         float64 `parquet:"longitude"`
	Latitude          float64 `parquet:"latitude"`
	HospitalsInBuffer int32   `parquet:"hospitals_in_buffer"`
	MostIsolated      bool    `parquet:"most_isolated"`
	MostConcentrated  bool    `parquet:"most_concentrated"`
}

// Output file names under the output directory.
const (
	hospitalsParquet = "hospitals.parquet"
	districtsParquet = "district_counts.parquet"
	proximityParquet = "proximity.parquet"
)

// WriteOutputs writes the three derived datasets as Snappy-compressed
// Parquet files. The proximity file is skipped when the analysis came
// back empty.
func WriteOutputs(dir string, hospitals []HospitalPoint, districts []DistrictWithCount, analysis *ProximityAnalysis) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := writeParquet(filepath.Join(dir, hospitalsParquet), hospitalRows(hospitals)); err != nil {
		return err
	}
	if err := writeParquet(filepath.Join(dir, districtsParquet), districtRows(districts)); err != nil {
		return err
	}
	if analysis != nil {
		if err := writeParquet(filepath.Join(dir, proximityParquet), proximityRows(analysis)); err != nil {
			return err
		}
	}
	return nil
}

func hospitalRows(hospitals []HospitalPoint) []HospitalRow {
	rows := make([]HospitalRow, len(hospitals))
	for i := range hospitals {
		h := &hospitals[i]
		rows[i] = HospitalRow{
			Name:        h.Name,
			Department:  h.Department,
			Province:    h.Province,
			District:    h.District,
			Institution: h.Institution,
			UBIGEO:      padCode(h.UBIGEO),
			Longitude:   h.Geom.X,
			Latitude:    h.Geom.Y,
		}
	}
	return rows
}

func districtRows(districts []DistrictWithCount) []DistrictCountRow {
	rows := make([]DistrictCountRow, len(districts))
	for i := range districts {
		d := &districts[i]
		rows[i] = DistrictCountRow{
			Code:          padCode(d.Code),
			Department:    d.Department,
			Province:      d.Province,
			District:      d.District,
			HospitalCount: int32(d.HospitalCount),
		}
	}
	return rows
}

func proximityRows(analysis *ProximityAnalysis) []ProximityRow {
	rows := make([]ProximityRow, len(analysis.Results))
	for i := range analysis.Results {
		r := &analysis.Results[i]
		rows[i] = ProximityRow{
			CenterIndex:       int32(r.Index),
			Name:              r.Name,
			Code:              r.Code,
			Longitude:         r.Geom.X,
			Latitude:          r.Geom.Y,
			HospitalsInBuffer: int32(r.HospitalsInBuffer),
			MostIsolated:      r.Index == analysis.MostIsolated.Index,
			MostConcentrated:  r.Index == analysis.MostConcentrated.Index,
		}
	}
	return rows
}

// writeParquet writes rows to a new Snappy-compressed Parquet file.
func writeParquet[T any](path string, rows []T) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	writer := parquet.NewGenericWriter[T](file,
		parquet.Compression(&parquet.Snappy),
	)

	if len(rows) > 0 {
		if _, err := writer.Write(rows); err != nil {
			file.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	if err := writer.Close(); err != nil {
		file.Close()
		return fmt.Errorf("close %s: %w", path, err)
	}
	return file.Close()
}
