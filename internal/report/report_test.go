package report

import (
	"bytes"
	"encoding/csv"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/spigell/resume-analyzer/internal/store"
)

func sampleRecords() []store.Record {
	return []store.Record{{
		ID:                uuid.MustParse("7f1c6a4e-3b2d-4c1e-9a8f-2d3e4f5a6b7c"),
		Name:              "Jane Doe",
		Email:             "jane@example.com",
		Score:             80,
		CreatedAt:         time.Date(2026, 3, 1, 9, 5, 7, 0, time.UTC),
		PageCount:         2,
		Domain:            "Data Science",
		Tier:              "Intermediate",
		Skills:            []string{"Python", "SQL"},
		RecommendedSkills: []string{"Data Mining", "Keras"},
	}}
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRecords()); err != nil {
		t.Fatalf("write: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	want := [][]string{
		Columns,
		{"7f1c6a4e-3b2d-4c1e-9a8f-2d3e4f5a6b7c", "Jane Doe", "jane@example.com", "80", "2026-03-01_09:05:07", "2",
			"Data Science", "Intermediate", "Python, SQL", "Data Mining, Keras"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("unexpected rows:\n%v", rows)
	}
}

func TestWriteXLSX(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, XLSX, sampleRecords()); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header and one row, got %d", len(rows))
	}
	if !reflect.DeepEqual(rows[0], Columns) {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][1] != "Jane Doe" || rows[1][3] != "80" || rows[1][9] != "Data Mining, Keras" {
		t.Fatalf("unexpected row: %v", rows[1])
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Format{"csv": CSV, " XLSX ": XLSX} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
