package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrEmptyCSV = errors.New("csv has no header row")

// ReadTableCSV builds a table from CSV. The first record is the header and
// becomes the column list; every following record is a row. Rows are not
// padded, so a record of the wrong width makes Validate fail.
func ReadTableCSV(r io.Reader) (*TableData, error) {
	reader := csv.NewReader(r)
	// width is checked by Validate so the error carries the row index
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyCSV
	}

	header := records[0]
	if len(header) > 0 {
		// spreadsheet exports often start with a byte order mark
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t := &TableData{Columns: header, Rows: make([][]any, 0, len(records)-1)}
	for _, rec := range records[1:] {
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" && len(header) != 1 {
			continue
		}
		row := make([]any, len(rec))
		for i, v := range rec {
			row[i] = v
		}
		t.Rows = append(t.Rows, row)
	}

	return t, t.Validate()
}
