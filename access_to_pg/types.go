package main

// Parquet rows produced by the hospital_access pipeline. Field tags must
// stay in sync with the writer side.

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
