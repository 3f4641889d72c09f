// ABOUTME: Workbook decoder validating shape before accepting a dataset
// ABOUTME: Fails fast on unparsable bytes, missing sheets, and malformed sheet structure

package backup

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/harper/autoseguro/internal/models"
	"github.com/xuri/excelize/v2"
)

// DecodeOption configures Decode.
type DecodeOption func(*decodeConfig)

type decodeConfig struct {
	strict bool
}

// WithStrictValidation requires every column to be present and every record
// to pass field validation (dates, money, tax ids, statuses).
func WithStrictValidation() DecodeOption {
	return func(c *decodeConfig) { c.strict = true }
}

// Decode parses an xlsx workbook into a dataset.
//
// Validation runs in order: the bytes must parse as a workbook, all four
// sheets must exist, and each sheet must be a header row followed by record
// rows. By default individual fields are not type-checked and references
// between collections are not verified.
func Decode(data []byte, opts ...DecodeOption) (*models.Dataset, error) {
	var cfg decodeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	defer func() { _ = f.Close() }()

	present := make(map[string]bool)
	for _, name := range f.GetSheetList() {
		present[name] = true
	}
	for _, name := range SheetNames {
		if !present[name] {
			return nil, &MissingSheetError{Sheet: name}
		}
	}

	ds := models.NewDataset()
	for _, sh := range sheets {
		raw, err := f.GetRows(sh.name())
		if err != nil {
			return nil, structureErr(sh.name(), "read rows: %v", err)
		}
		records, err := toRecords(sh.name(), sh.fields(), raw, cfg.strict)
		if err != nil {
			return nil, err
		}
		if err := sh.load(ds, records, cfg.strict); err != nil {
			return nil, err
		}
	}

	return ds, nil
}

// toRecords turns raw sheet rows into field-keyed records. The first row is
// the header; blank rows are skipped; unknown columns are ignored.
func toRecords(sheet string, fields []string, raw [][]string, strict bool) ([]row, error) {
	if len(raw) == 0 {
		if strict {
			return nil, structureErr(sheet, "missing header row")
		}
		return nil, nil
	}

	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f] = true
	}

	header := raw[0]
	columns := make(map[int]string)
	seen := make(map[string]bool)
	for i, name := range header {
		if !known[name] {
			continue
		}
		if seen[name] {
			return nil, structureErr(sheet, "duplicate column %q", name)
		}
		seen[name] = true
		columns[i] = name
	}

	if strict {
		for _, f := range fields {
			if !seen[f] {
				return nil, structureErr(sheet, "missing column %q", f)
			}
		}
	}

	var records []row
	for n, cells := range raw[1:] {
		if isBlank(cells) {
			continue
		}
		if len(columns) == 0 {
			return nil, structureErr(sheet, "header row has no recognised columns")
		}
		for i := len(header); i < len(cells); i++ {
			if strings.TrimSpace(cells[i]) != "" {
				return nil, structureErr(sheet, "row %d has values beyond the header", n+2)
			}
		}

		rec := make(row, len(fields))
		for i, name := range columns {
			if i < len(cells) {
				rec[name] = cells[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func structureErr(sheet, format string, args ...any) error {
	return fmt.Errorf("%w: sheet %s: %s", ErrInvalidStructure, sheet, fmt.Sprintf(format, args...))
}
