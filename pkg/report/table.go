package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

var ErrMalformedTable = errors.New("malformed table")

// MalformedTableError reports a row whose length does not match the column count.
type MalformedTableError struct {
	Row  int
	Got  int
	Want int
}

func (e *MalformedTableError) Error() string {
	return fmt.Sprintf("malformed table: row %d has %d cells, expected %d", e.Row, e.Got, e.Want)
}

func (e *MalformedTableError) Is(target error) bool {
	return target == ErrMalformedTable
}

// TableData is the per-report table. It carries its own column list so that
// editing a product template never changes reports that already exist.
type TableData struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// legacyTableData is the shape written by the first version of the system.
type legacyTableData struct {
	Estrutura struct {
		Colunas []string `json:"colunas"`
	} `json:"estrutura"`
	Dados [][]any `json:"dados"`
}

func (t *TableData) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decoding table: %w", err)
	}

	_, hasLegacy := raw["estrutura"]
	if _, hasColumns := raw["columns"]; !hasColumns && hasLegacy {
		var legacy legacyTableData
		if err := decodeNumbers(data, &legacy); err != nil {
			return fmt.Errorf("decoding legacy table: %w", err)
		}
		t.Columns = legacy.Estrutura.Colunas
		t.Rows = legacy.Dados
		return nil
	}

	type plain TableData
	var p plain
	if err := decodeNumbers(data, &p); err != nil {
		return fmt.Errorf("decoding table: %w", err)
	}
	*t = TableData(p)
	return nil
}

func decodeNumbers(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// IsRenderable is true only when both columns and rows are populated.
func IsRenderable(t *TableData) bool {
	return t != nil && len(t.Columns) > 0 && len(t.Rows) > 0
}

// Validate checks that every row has exactly one cell per column.
func (t *TableData) Validate() error {
	if t == nil {
		return nil
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return &MalformedTableError{Row: i, Got: len(row), Want: len(t.Columns)}
		}
	}
	return nil
}

// ToGrid returns the header row followed by every data row, all cells in
// display form.
func ToGrid(t *TableData) ([][]string, error) {
	if t == nil {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	grid := make([][]string, 0, len(t.Rows)+1)
	header := make([]string, len(t.Columns))
	copy(header, t.Columns)
	grid = append(grid, header)

	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = CellText(v)
		}
		grid = append(grid, cells)
	}

	return grid, nil
}

// CellText converts a decoded JSON cell to the text shown in the document.
func CellText(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case json.Number:
		return c.String()
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(c), 'f', -1, 32)
	case int:
		return strconv.Itoa(c)
	case int64:
		return strconv.FormatInt(c, 10)
	case bool:
		return strconv.FormatBool(c)
	default:
		return fmt.Sprint(c)
	}
}
