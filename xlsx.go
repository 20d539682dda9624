package tabq

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// NewXLSXSource reads one sheet of an XLSX workbook and exposes its rows
// as a RowSource, so the record pipeline runs over spreadsheets the same
// way it runs over delimited text. An empty sheet name selects the first
// sheet. The sheet is read fully up front; XLSX is a ZIP container and
// cannot be streamed row by row from a plain reader.
func NewXLSXSource(r io.Reader, sheet string) (RowSource, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX workbook: %w", err)
	}
	defer func() {
		_ = workbook.Close() // Ignore close error
	}()

	if sheet == "" {
		names := workbook.GetSheetList()
		if len(names) == 0 {
			return nil, errors.New("no sheets found in XLSX workbook")
		}
		sheet = names[0]
	}

	iter, err := workbook.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to open rows iterator for sheet %s: %w", sheet, err)
	}
	defer iter.Close()

	var rows [][]string
	for iter.Next() {
		row, err := iter.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read row in sheet %s: %w", sheet, err)
		}
		rows = append(rows, row)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to iterate sheet %s: %w", sheet, err)
	}
	return NewSliceSource(rows), nil
}
