// ABOUTME: Backup and restore errors
// ABOUTME: Decode failures are reported without touching the stored dataset

package backup

import (
	"errors"
	"fmt"
)

// Backup errors.
var (
	ErrExportFailed     = errors.New("export failed")
	ErrImportFailed     = errors.New("import failed")
	ErrMalformed        = errors.New("malformed file")
	ErrInvalidStructure = errors.New("invalid structure")
)

// MissingSheetError reports a required sheet absent from the workbook.
type MissingSheetError struct {
	Sheet string
}

func (e *MissingSheetError) Error() string {
	return fmt.Sprintf("missing sheet: %s", e.Sheet)
}

// IsDecodeError reports whether err came from workbook validation rather
// than from storage.
func IsDecodeError(err error) bool {
	var missing *MissingSheetError
	return errors.Is(err, ErrMalformed) ||
		errors.Is(err, ErrInvalidStructure) ||
		errors.As(err, &missing)
}
