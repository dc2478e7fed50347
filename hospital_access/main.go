package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	hospitals := flag.String("hospitals", "", "IPRESS hospital registry CSV (Latin-1)")
	districts := flag.String("districts", "", "District polygons GeoJSON")
	centers := flag.String("centers", "", "Population centers GeoJSON")
	dept := flag.String("dept", "", "Department for proximity analysis")
	buffer := flag.Float64("buffer", 0, "Proximity buffer radius in km")
	outDir := flag.String("out", "", "Output directory for Parquet results")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *hospitals != "" {
		cfg.Inputs.Hospitals = *hospitals
	}
	if *districts != "" {
		cfg.Inputs.Districts = *districts
	}
	if *centers != "" {
		cfg.Inputs.Centers = *centers
	}
	if *dept != "" {
		cfg.Analysis.Department = *dept
	}
	if *buffer > 0 {
		cfg.Analysis.BufferKM = *buffer
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\n", err)
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  hospital_access -hospitals IPRESS.csv -districts DISTRITOS.geojson -centers CCPP.geojson \\\n")
		fmt.Fprintf(os.Stderr, "                  [-dept Lima] [-buffer 10] [-out results/] [-config pipeline.yaml]\n")
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg Config) error {
	start := time.Now()

	fmt.Printf("Registry:  %s\n", cfg.Inputs.Hospitals)
	fmt.Printf("Districts: %s\n", cfg.Inputs.Districts)
	fmt.Printf("Centers:   %s\n", cfg.Inputs.Centers)
	fmt.Println()

	ds, err := LoadDatasets(cfg.Inputs.Hospitals, cfg.Inputs.Districts, cfg.Inputs.Centers)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %d registry rows, %d districts, %d population centers\n",
		len(ds.Hospitals), len(ds.Districts), len(ds.Centers))

	kept, points, report := FilterHospitals(ds.Hospitals)
	for _, stage := range filterStages {
		if n := report.Dropped[stage.name]; n > 0 {
			fmt.Printf("  dropped %d rows: %s\n", n, stage.name)
		}
	}
	fmt.Printf("Operational public hospitals with valid coordinates: %d\n", len(kept))

	counts, assigned := CountHospitalsByDistrict(points, ds.Districts)
	fmt.Printf("Hospitals assigned to districts: %d\n", assigned)

	analysis, err := AnalyzeProximity(points, ds.Centers, cfg.Analysis.Department, cfg.Analysis.BufferKM)
	if err != nil {
		return err
	}

	if analysis == nil {
		fmt.Printf("No hospitals or population centers for %s; skipping proximity analysis\n",
			cfg.Analysis.Department)
	} else {
		fmt.Printf("\nProximity analysis for %s (%.0f km buffer, %d centers, %d hospitals)\n",
			analysis.Department, analysis.BufferKM, len(analysis.Results), len(analysis.Hospitals))
		fmt.Printf("  most isolated:     %s (%d hospitals in buffer)\n",
			analysis.MostIsolated.Name, analysis.MostIsolated.HospitalsInBuffer)
		fmt.Printf("  most concentrated: %s (%d hospitals in buffer)\n",
			analysis.MostConcentrated.Name, analysis.MostConcentrated.HospitalsInBuffer)
	}

	stats := Summarize(kept, counts)
	fmt.Println()
	fmt.Printf("Summary\n")
	fmt.Printf("  Hospitals:            %d\n", stats.TotalHospitals)
	fmt.Printf("  Departments covered:  %d\n", stats.DepartmentsCovered)
	fmt.Printf("  Districts w/ hosp.:   %d\n", stats.DistrictsWithHospitals)
	fmt.Printf("  Districts w/o hosp.:  %d\n", stats.DistrictsWithoutHospitals)
	fmt.Printf("  Avg per district:     %.2f\n", stats.AvgHospitalsPerDistrict)
	fmt.Printf("  Max per district:     %d\n", stats.MaxHospitalsPerDistrict)
	for _, d := range stats.TopDepartments {
		fmt.Printf("    %-20s %d\n", d.Name, d.Count)
	}

	if err := WriteOutputs(cfg.Output.Dir, points, counts, analysis); err != nil {
		return err
	}
	fmt.Printf("\nResults written to %s\n", cfg.Output.Dir)
	fmt.Printf("Done in %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}
