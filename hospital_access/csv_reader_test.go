package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// registryHeader is the IPRESS column row as it appears after Latin-1
// decoding. The fixture files below encode it as ISO 8859-1 bytes
// (0xF3 = ó).
const registryHeaderLatin1 = "Nombre del establecimiento,Departamento,Provincia,Distrito,Condici\xf3n,Instituci\xf3n,NORTE,ESTE,UBIGEO\n"

// writeRegistryCSV writes ISO 8859-1 encoded registry content to a temp
// file and returns its path.
func writeRegistryCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ipress.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write registry CSV: %v", err)
	}
	return path
}

func readAllRecords(t *testing.T, path string) []HospitalRecord {
	t.Helper()
	r, err := NewRegistryReader(path)
	if err != nil {
		t.Fatalf("NewRegistryReader: %v", err)
	}
	defer r.Close()

	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	return records
}

func TestRegistryReaderDecodesLatin1(t *testing.T) {
	content := registryHeaderLatin1 +
		"Hospital Mar\xeda Auxiliadora,LIMA,LIMA,SAN JUAN DE MIRAFLORES,EN FUNCIONAMIENTO,MINSA,-12.1630,-76.9645,150133\n"

	records := readAllRecords(t, writeRegistryCSV(t, content))
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	rec := records[0]
	if rec.Name != "Hospital María Auxiliadora" {
		t.Errorf("name not decoded from Latin-1: %q", rec.Name)
	}
	if rec.Status != statusOperational {
		t.Errorf("status = %q, want %q", rec.Status, statusOperational)
	}
	if rec.Institution != "MINSA" {
		t.Errorf("institution = %q", rec.Institution)
	}
	if rec.North == nil || *rec.North != -12.1630 {
		t.Errorf("north = %v, want -12.1630", rec.North)
	}
	if rec.East == nil || *rec.East != -76.9645 {
		t.Errorf("east = %v, want -76.9645", rec.East)
	}
	if rec.UBIGEO != "150133" {
		t.Errorf("ubigeo = %q", rec.UBIGEO)
	}
}

func TestRegistryReaderUppercasesHierarchy(t *testing.T) {
	content := registryHeaderLatin1 +
		"Centro de Salud Beln,Loreto,Maynas,Beln,EN FUNCIONAMIENTO,GOBIERNO REGIONAL,-3.77,-73.26,160112\n"

	records := readAllRecords(t, writeRegistryCSV(t, content))
	rec := records[0]
	if rec.Department != "LORETO" || rec.Province != "MAYNAS" {
		t.Errorf("hierarchy not uppercased: %q / %q", rec.Department, rec.Province)
	}
}

func TestRegistryReaderMissingColumns(t *testing.T) {
	content := "Nombre del establecimiento,Departamento,Provincia,Distrito,Instituci\xf3n,ESTE,UBIGEO\n" +
		"Hospital A,LIMA,LIMA,LIMA,MINSA,-77.0,150101\n"

	_, err := NewRegistryReader(writeRegistryCSV(t, content))
	if err == nil {
		t.Fatal("expected SchemaError for missing columns")
	}

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %T: %v", err, err)
	}
	missing := strings.Join(schemaErr.Missing, ",")
	if !strings.Contains(missing, "condición") || !strings.Contains(missing, "norte") {
		t.Errorf("missing columns = %v, want condición and norte", schemaErr.Missing)
	}
}

func TestRegistryReaderCoordinateCoercion(t *testing.T) {
	content := registryHeaderLatin1 +
		"Hospital A,LIMA,LIMA,LIMA,EN FUNCIONAMIENTO,MINSA,-12.05,-77.03,150101\n" +
		"Hospital B,LIMA,LIMA,LIMA,EN FUNCIONAMIENTO,MINSA,S/D,-77.03,150102\n" +
		"Hospital C,LIMA,LIMA,LIMA,EN FUNCIONAMIENTO,MINSA,,-77.03,150103\n"

	records := readAllRecords(t, writeRegistryCSV(t, content))
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0].North == nil {
		t.Error("numeric NORTE should coerce")
	}
	if records[1].North != nil {
		t.Error("non-numeric NORTE should coerce to nil")
	}
	if records[2].North != nil {
		t.Error("empty NORTE should coerce to nil")
	}
}

func TestRegistryReaderSkipsBOMAndEmptyRows(t *testing.T) {
	content := "\xef\xbb\xbf" + registryHeaderLatin1 +
		"Hospital A,LIMA,LIMA,LIMA,EN FUNCIONAMIENTO,MINSA,-12.05,-77.03,150101\n" +
		"\n" +
		"Hospital B,CUSCO,CUSCO,CUSCO,EN FUNCIONAMIENTO,ESSALUD,-13.53,-71.96,080101\n"

	records := readAllRecords(t, writeRegistryCSV(t, content))
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Name != "Hospital A" {
		t.Errorf("BOM not skipped, first name = %q", records[0].Name)
	}
}
