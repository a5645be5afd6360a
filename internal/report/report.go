// Package report exports stored analyses as CSV or XLSX tables.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/spigell/resume-analyzer/internal/store"
)

const (
	sheetName       = "Analyses"
	timestampLayout = "2006-01-02_15:04:05"
)

// Columns is the header row of every report.
var Columns = []string{
	"ID", "Name", "Email", "Resume Score", "Timestamp", "Total Page",
	"Predicted Field", "User Level", "Actual Skills", "Recommended Skills",
}

// Format is an export format.
type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

// ParseFormat accepts "csv" or "xlsx" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, XLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported report format %q", s)
	}
}

// Write exports records to w in the given format.
func Write(w io.Writer, format Format, records []store.Record) error {
	switch format {
	case CSV:
		return WriteCSV(w, records)
	case XLSX:
		return WriteXLSX(w, records)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

func row(rec store.Record) []string {
	return []string{
		rec.ID.String(),
		rec.Name,
		rec.Email,
		strconv.Itoa(rec.Score),
		rec.CreatedAt.Format(timestampLayout),
		strconv.Itoa(rec.PageCount),
		rec.Domain,
		rec.Tier,
		strings.Join(rec.Skills, ", "),
		strings.Join(rec.RecommendedSkills, ", "),
	}
}

// WriteCSV writes a header row and one row per record.
func WriteCSV(w io.Writer, records []store.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}
	for _, rec := range records {
		if err := cw.Write(row(rec)); err != nil {
			return fmt.Errorf("csv row %s: %w", rec.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a single-sheet workbook. Score and page count are stored
// as numbers.
func WriteXLSX(w io.Writer, records []store.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}

	for i, header := range Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("xlsx header: %w", err)
		}
	}

	for i, rec := range records {
		values := row(rec)
		cells := make([]any, len(values))
		for j, v := range values {
			cells[j] = v
		}
		cells[3] = rec.Score
		cells[5] = rec.PageCount

		start, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetName, start, &cells); err != nil {
			return fmt.Errorf("xlsx row %s: %w", rec.ID, err)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 38) // id
	_ = f.SetColWidth(sheetName, "B", "C", 28) // name, email
	_ = f.SetColWidth(sheetName, "E", "E", 20) // timestamp
	_ = f.SetColWidth(sheetName, "G", "H", 20) // field, level
	_ = f.SetColWidth(sheetName, "I", "J", 60) // skills

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}
