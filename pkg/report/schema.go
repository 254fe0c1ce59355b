package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

type ValueType string

const (
	ValueText   ValueType = "text"
	ValueNumber ValueType = "number"
	ValueSelect ValueType = "select"
	ValueDate   ValueType = "date"
)

var dateLayouts = []string{"2006-01-02", "02/01/2006"}

func (v ValueType) Valid() bool {
	switch v {
	case ValueText, ValueNumber, ValueSelect, ValueDate:
		return true
	}
	return false
}

type Column struct {
	Name    string    `json:"name"`
	Type    ValueType `json:"type"`
	Options []string  `json:"options,omitempty"`
}

// ColumnSchema is the column template a product declares for its reports.
type ColumnSchema struct {
	Columns []Column `json:"columns"`
}

func (s *ColumnSchema) UnmarshalJSON(data []byte) error {
	var raw struct {
		Columns json.RawMessage `json:"columns"`
		Colunas []string        `json:"colunas"`
		Tipos   []string        `json:"tipos"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding column schema: %w", err)
	}

	if len(raw.Columns) == 0 && len(raw.Colunas) > 0 {
		cols := make([]Column, len(raw.Colunas))
		for i, name := range raw.Colunas {
			cols[i] = Column{Name: name, Type: ValueText}
			if i < len(raw.Tipos) && raw.Tipos[i] != "" {
				cols[i].Type = ValueType(raw.Tipos[i])
			}
		}
		s.Columns = cols
		return nil
	}

	s.Columns = nil
	if len(raw.Columns) == 0 || string(raw.Columns) == "null" {
		return nil
	}
	return json.Unmarshal(raw.Columns, &s.Columns)
}

func (s *ColumnSchema) IsEmpty() bool {
	return s == nil || len(s.Columns) == 0
}

func (s *ColumnSchema) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Validate checks the schema itself: unique non-blank names, known types and
// options on every select column.
func (s *ColumnSchema) Validate() error {
	if s == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(s.Columns))
	for i, c := range s.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return fmt.Errorf("column %d: name must not be empty", i)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("column %q is declared more than once", name)
		}
		seen[name] = struct{}{}

		if !c.Type.Valid() {
			return fmt.Errorf("column %q: unknown type %q", name, c.Type)
		}
		if c.Type == ValueSelect && len(c.Options) == 0 {
			return fmt.Errorf("column %q: select column needs at least one option", name)
		}
	}
	return nil
}

var (
	ErrSchemaMismatch = errors.New("table columns do not match template")
	ErrCellType       = errors.New("cell does not match column type")
)

type SchemaMismatchError struct {
	Want []string
	Got  []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("table columns %q do not match template columns %q", e.Got, e.Want)
}

func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

type CellTypeError struct {
	Row    int
	Column string
	Type   ValueType
	Value  string
}

func (e *CellTypeError) Error() string {
	return fmt.Sprintf("row %d, column %q: %q is not a valid %s", e.Row, e.Column, e.Value, e.Type)
}

func (e *CellTypeError) Is(target error) bool {
	return target == ErrCellType
}

// Check verifies that a table was built from this schema: same columns in the
// same order, and every non-empty cell parses as its column type.
func (s *ColumnSchema) Check(t *TableData) error {
	if s.IsEmpty() || t == nil {
		return nil
	}
	if err := t.Validate(); err != nil {
		return err
	}

	names := s.Names()
	if !slices.Equal(names, t.Columns) {
		return &SchemaMismatchError{Want: names, Got: t.Columns}
	}

	for r, row := range t.Rows {
		for i, cell := range row {
			col := s.Columns[i]
			text := strings.TrimSpace(CellText(cell))
			if text == "" {
				continue
			}
			if !cellMatches(col, text) {
				return &CellTypeError{Row: r, Column: col.Name, Type: col.Type, Value: text}
			}
		}
	}
	return nil
}

func cellMatches(col Column, text string) bool {
	switch col.Type {
	case ValueNumber:
		_, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64)
		return err == nil
	case ValueDate:
		for _, layout := range dateLayouts {
			if _, err := time.Parse(layout, text); err == nil {
				return true
			}
		}
		return false
	case ValueSelect:
		return slices.Contains(col.Options, text)
	default:
		return true
	}
}

// CheckRevision decides whether next may replace a report's stored table.
// A table following the current template is type checked. Otherwise it must
// keep the columns it was stored with, so reports written under an older
// template stay editable.
func (s *ColumnSchema) CheckRevision(previous, next *TableData) error {
	if next == nil {
		return nil
	}
	if err := next.Validate(); err != nil {
		return err
	}
	if s.IsEmpty() {
		return nil
	}

	if slices.Equal(s.Names(), next.Columns) {
		return s.Check(next)
	}
	if previous != nil && len(previous.Columns) > 0 && slices.Equal(previous.Columns, next.Columns) {
		return nil
	}
	return &SchemaMismatchError{Want: s.Names(), Got: next.Columns}
}
