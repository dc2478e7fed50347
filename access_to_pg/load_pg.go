package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/parquet-go/parquet-go"
)

// Pipeline output file names, matching the hospital_access writer.
const (
	hospitalsParquet = "hospitals.parquet"
	districtsParquet = "district_counts.parquet"
	proximityParquet = "proximity.parquet"
)

// loadResultsToPg loads one pipeline run's Parquet outputs into
// PostgreSQL under a fresh run id. The proximity file is optional: a
// run whose region came back empty does not produce one.
func loadResultsToPg(ctx context.Context, dir, connStr, department string, bufferKM float64) error {
	start := time.Now()

	hospitals, err := readParquet[HospitalRow](filepath.Join(dir, hospitalsParquet))
	if err != nil {
		return err
	}
	districts, err := readParquet[DistrictCountRow](filepath.Join(dir, districtsParquet))
	if err != nil {
		return err
	}

	var proximity []ProximityRow
	proximityPath := filepath.Join(dir, proximityParquet)
	if _, err := os.Stat(proximityPath); err == nil {
		proximity, err = readParquet[ProximityRow](proximityPath)
		if err != nil {
			return err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", proximityPath, err)
	}

	fmt.Printf("Input dir:  %s\n", dir)
	fmt.Printf("Hospitals:  %d\n", len(hospitals))
	fmt.Printf("Districts:  %d\n", len(districts))
	fmt.Printf("Centers:    %d\n", len(proximity))
	fmt.Println()

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return fmt.Errorf("parse connection: %w", err)
	}
	poolConfig.MaxConns = 4

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	fmt.Println("Connected to PostgreSQL")

	runID := uuid.New().String()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO analysis_runs (run_id, department, buffer_km) VALUES ($1, $2, $3)`,
		runID, department, bufferKM,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	hospitalCount, err := tx.CopyFrom(ctx,
		pgx.Identifier{"hospitals"},
		[]string{"run_id", "name", "department", "province", "district", "institution", "ubigeo", "longitude", "latitude"},
		pgx.CopyFromSlice(len(hospitals), func(i int) ([]interface{}, error) {
			h := &hospitals[i]
			return []interface{}{runID, h.Name, h.Department, h.Province, h.District,
				h.Institution, h.UBIGEO, h.Longitude, h.Latitude}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy hospitals: %w", err)
	}

	districtCount, err := tx.CopyFrom(ctx,
		pgx.Identifier{"district_counts"},
		[]string{"run_id", "district_code", "department", "province", "district", "hospital_count"},
		pgx.CopyFromSlice(len(districts), func(i int) ([]interface{}, error) {
			d := &districts[i]
			return []interface{}{runID, d.Code, d.Department, d.Province, d.District,
				d.HospitalCount}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy district_counts: %w", err)
	}

	centerCount, err := tx.CopyFrom(ctx,
		pgx.Identifier{"proximity_centers"},
		[]string{"run_id", "center_index", "name", "center_code", "longitude", "latitude",
			"hospitals_in_buffer", "most_isolated", "most_concentrated"},
		pgx.CopyFromSlice(len(proximity), func(i int) ([]interface{}, error) {
			p := &proximity[i]
			return []interface{}{runID, p.CenterIndex, p.Name, p.Code, p.Longitude, p.Latitude,
				p.HospitalsInBuffer, p.MostIsolated, p.MostConcentrated}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy proximity_centers: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	fmt.Println()
	fmt.Printf("Done in %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("  Run:        %s\n", runID)
	fmt.Printf("  Hospitals:  %d\n", hospitalCount)
	fmt.Printf("  Districts:  %d\n", districtCount)
	fmt.Printf("  Centers:    %d\n", centerCount)

	return nil
}

// readParquet reads an entire Parquet file of rows of type T.
func readParquet[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	defer f.Close()

	reader := parquet.NewGenericReader[T](f)
	defer reader.Close()

	rows := make([]T, 0, reader.NumRows())
	buf := make([]T, 4096)
	for {
		n, err := reader.Read(buf)
		rows = append(rows, buf[:n]...)
		if err != nil {
			if err == io.EOF {
				return rows, nil
			}
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
}
