// ABOUTME: Workbook encoder writing the dataset as a four-sheet xlsx file
// ABOUTME: Every cell is written as a string so values round-trip verbatim

package backup

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/harper/autoseguro/internal/models"
	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the produced workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// defaultSheet is the sheet excelize creates in a new file.
const defaultSheet = "Sheet1"

// FileName returns the download name for a backup taken at t:
// autoseguro_backup_YYYY-MM-DD.xlsx (UTC date).
func FileName(t time.Time) string {
	return fmt.Sprintf("autoseguro_backup_%s.xlsx", t.UTC().Format("2006-01-02"))
}

// Encode serializes the dataset into an xlsx workbook with the sheets
// clients, vehicles, policies and claims, in that order.
func Encode(ds *models.Dataset) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sh.name()); err != nil {
				return nil, fmt.Errorf("%w: create sheet %s: %w", ErrExportFailed, sh.name(), err)
			}
		} else if _, err := f.NewSheet(sh.name()); err != nil {
			return nil, fmt.Errorf("%w: create sheet %s: %w", ErrExportFailed, sh.name(), err)
		}

		if err := writeSheet(f, sh.name(), sh.fields(), sh.rows(ds)); err != nil {
			return nil, fmt.Errorf("%w: sheet %s: %w", ErrExportFailed, sh.name(), err)
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: write workbook: %w", ErrExportFailed, err)
	}
	return buf.Bytes(), nil
}

// writeSheet writes the header followed by one row per record.
func writeSheet(f *excelize.File, name string, header []string, rows [][]string) error {
	if err := writeRow(f, name, 1, header); err != nil {
		return err
	}
	for i, r := range rows {
		for col, v := range r {
			if err := checkCell(v); err != nil {
				return fmt.Errorf("row %d field %s: %w", i+2, header[col], err)
			}
		}
		if err := writeRow(f, name, i+2, r); err != nil {
			return err
		}
	}
	return nil
}

// checkCell rejects values a workbook cell cannot hold unchanged. excelize
// truncates long text and replaces characters XML 1.0 forbids.
func checkCell(v string) error {
	if !utf8.ValidString(v) {
		return fmt.Errorf("invalid UTF-8 text")
	}
	if n := utf8.RuneCountInString(v); n > excelize.TotalCellChars {
		return fmt.Errorf("%d characters exceeds the cell limit of %d", n, excelize.TotalCellChars)
	}
	for _, r := range v {
		if (r < 0x20 && r != '\t' && r != '\n' && r != '\r') || r == 0xFFFE || r == 0xFFFF {
			return fmt.Errorf("control character %U cannot be stored", r)
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(sheet, cell, &cells)
}
