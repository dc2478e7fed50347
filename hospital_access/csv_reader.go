package main

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Registry column keys after ISO 8859-1 decoding, lowercased.
const (
	colName        = "nombre del establecimiento"
	colDepartment  = "departamento"
	colProvince    = "provincia"
	colDistrict    = "distrito"
	colStatus      = "condición"
	colInstitution = "institución"
	colNorth       = "norte"
	colEast        = "este"
	colUBIGEO      = "ubigeo"
)

var requiredRegistryColumns = []string{
	colName, colDepartment, colProvince, colDistrict,
	colStatus, colInstitution, colNorth, colEast, colUBIGEO,
}

// RegistryReader streams the IPRESS hospital registry CSV and emits one
// HospitalRecord per data row. The file is a single-byte Latin-1
// (ISO 8859-1) export; all fields are decoded to UTF-8 before parsing.
type RegistryReader struct {
	file   *os.File
	csv    *csv.Reader
	rowNum int64
	colIdx map[string]int // lowercase header → column index
}

func NewRegistryReader(path string) (*RegistryReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	bufReader := bufio.NewReaderSize(file, 256*1024)

	// Skip UTF-8 BOM if present (some exports prepend one even though
	// the body is Latin-1).
	bom, err := bufReader.Peek(3)
	if err == nil && len(bom) >= 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		bufReader.Discard(3)
	}

	decoded := transform.NewReader(bufReader, charmap.ISO8859_1.NewDecoder())
	reader := csv.NewReader(decoded)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	r := &RegistryReader{
		file:   file,
		csv:    reader,
		colIdx: make(map[string]int),
	}

	if err := r.readHeader(); err != nil {
		file.Close()
		return nil, err
	}

	return r, nil
}

func (r *RegistryReader) readHeader() error {
	header, err := r.csv.Read()
	if err != nil {
		return fmt.Errorf("read header row: %w", err)
	}
	r.rowNum++

	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		if _, ok := r.colIdx[h]; !ok {
			r.colIdx[h] = i
		}
	}

	var missing []string
	for _, col := range requiredRegistryColumns {
		if _, ok := r.colIdx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Source: "hospital registry", Missing: missing}
	}

	return nil
}

// Next returns the next registry row. Returns io.EOF when done.
// Coordinate fields are coerced to float64 here; values that are empty
// or non-numeric come back nil and are dropped later by the filter.
func (r *RegistryReader) Next() (HospitalRecord, error) {
	for {
		row, err := r.csv.Read()
		if err != nil {
			return HospitalRecord{}, err
		}
		r.rowNum++

		// Skip empty rows
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}

		return HospitalRecord{
			Name:        valAt(row, r.colIdx, colName),
			Department:  strings.ToUpper(valAt(row, r.colIdx, colDepartment)),
			Province:    strings.ToUpper(valAt(row, r.colIdx, colProvince)),
			District:    strings.ToUpper(valAt(row, r.colIdx, colDistrict)),
			Status:      valAt(row, r.colIdx, colStatus),
			Institution: valAt(row, r.colIdx, colInstitution),
			North:       optFloat(row, r.colIdx, colNorth),
			East:        optFloat(row, r.colIdx, colEast),
			UBIGEO:      valAt(row, r.colIdx, colUBIGEO),
		}, nil
	}
}

// ReadAll drains the reader into a slice.
func (r *RegistryReader) ReadAll() ([]HospitalRecord, error) {
	var records []HospitalRecord
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read registry row %d: %w", r.rowNum+1, err)
		}
		records = append(records, rec)
	}
}

// RowNum returns the current CSV row number (1-based).
func (r *RegistryReader) RowNum() int64 {
	return r.rowNum
}

func (r *RegistryReader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// Column access helpers, standalone functions as in the charge loaders.

func valAt(row []string, idx map[string]int, col string) string {
	if i, ok := idx[col]; ok && i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func optFloat(row []string, idx map[string]int, col string) *float64 {
	if i, ok := idx[col]; ok && i < len(row) {
		return parseFloat(row[i])
	}
	return nil
}

func parseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
