package excel

import (
	"log"
	"os"
	"time"

	"salesnorm/domain/schema"
	"salesnorm/domain/table"
	"salesnorm/internal/errors"

	"github.com/xuri/excelize/v2"
)

// WorkbookReader reads the fixed-layout sales template from an xlsx/xlsm
// workbook. The file handle is opened per call and released as soon as the
// needed cells have been read.
type WorkbookReader struct {
	filePath string
}

// NewWorkbookReader creates a reader for the workbook at filePath.
func NewWorkbookReader(filePath string) *WorkbookReader {
	return &WorkbookReader{filePath: filePath}
}

// SheetNames returns the workbook's sheet list in workbook order.
func (r *WorkbookReader) SheetNames() ([]string, error) {
	f, err := r.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.GetSheetList(), nil
}

// ReadRaw reads one sheet into a raw table: the composite header captured
// from the two fixed header rows, and every row below as untyped cell text.
// The grid is rectangular - ragged rows are padded with empty cells.
func (r *WorkbookReader) ReadRaw(sheet string) (table.RawTable, error) {
	startTime := time.Now()
	f, err := r.open()
	if err != nil {
		return table.RawTable{}, err
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return table.RawTable{}, errors.SheetReadFailed(sheet, err)
	}
	log.Printf("[WorkbookReader] Sheet %q read in %.2fms (%d rows)", sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	if len(rows) < schema.HeaderRowSecond {
		return table.RawTable{}, errors.StructureInvalid(schema.NewNoHeaderRowsError(len(rows)))
	}

	// excelize trims trailing empty cells per row, so the grid width is the
	// widest row from the header down.
	width := 0
	for _, row := range rows[schema.HeaderRowFirst-1:] {
		if len(row) > width {
			width = len(row)
		}
	}

	top := rows[schema.HeaderRowFirst-1]
	bottom := rows[schema.HeaderRowSecond-1]
	labels := make([][]string, width)
	for i := range labels {
		labels[i] = []string{cellAt(top, i), cellAt(bottom, i)}
	}

	var cells [][]string
	for _, row := range rows[schema.HeaderRowSecond:] {
		padded := make([]string, width)
		copy(padded, row)
		cells = append(cells, padded)
	}

	return table.RawTable{Labels: labels, Cells: cells}, nil
}

func (r *WorkbookReader) open() (*excelize.File, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.WorkbookOpenFailed(r.filePath, err)
	}

	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.WorkbookOpenFailed(r.filePath, err)
	}
	return f, nil
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
