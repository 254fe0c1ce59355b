package report

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"
)

func TestIsRenderable(t *testing.T) {
	tests := []struct {
		name  string
		table *TableData
		want  bool
	}{
		{"nil table", nil, false},
		{"empty table", &TableData{}, false},
		{"columns without rows", &TableData{Columns: []string{"A"}}, false},
		{"rows without columns", &TableData{Rows: [][]any{{"x"}}}, false},
		{"columns and rows", &TableData{Columns: []string{"A"}, Rows: [][]any{{"x"}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRenderable(tt.table); got != tt.want {
				t.Errorf("IsRenderable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToGrid(t *testing.T) {
	table := &TableData{
		Columns: []string{"Measure", "Value", "Ok"},
		Rows: [][]any{
			{"100mm", json.Number("50"), true},
			{"200mm", 75.5, nil},
		},
	}

	grid, err := ToGrid(table)
	if err != nil {
		t.Fatalf("ToGrid() error = %v", err)
	}

	if len(grid) != 1+len(table.Rows) {
		t.Fatalf("got %d rows, want %d", len(grid), 1+len(table.Rows))
	}
	if !slices.Equal(grid[0], table.Columns) {
		t.Errorf("header row = %v, want %v", grid[0], table.Columns)
	}

	want := [][]string{{"100mm", "50", "true"}, {"200mm", "75.5", ""}}
	for i, row := range want {
		if !slices.Equal(grid[i+1], row) {
			t.Errorf("row %d = %v, want %v", i, grid[i+1], row)
		}
	}
}

func TestToGridMalformed(t *testing.T) {
	table := &TableData{
		Columns: []string{"A", "B"},
		Rows:    [][]any{{"1", "2"}, {"3"}},
	}

	grid, err := ToGrid(table)
	if grid != nil {
		t.Errorf("expected no grid, got %v", grid)
	}
	if !errors.Is(err, ErrMalformedTable) {
		t.Fatalf("expected ErrMalformedTable, got %v", err)
	}

	var mte *MalformedTableError
	if !errors.As(err, &mte) {
		t.Fatalf("expected *MalformedTableError, got %T", err)
	}
	if mte.Row != 1 || mte.Got != 1 || mte.Want != 2 {
		t.Errorf("unexpected error detail: %+v", mte)
	}
}

func TestTableDataUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"current shape", `{"columns":["Medida","Valor"],"rows":[["100mm",50],["200mm","75kg"]]}`},
		{"legacy shape", `{"estrutura":{"colunas":["Medida","Valor"]},"dados":[["100mm",50],["200mm","75kg"]]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var table TableData
			if err := json.Unmarshal([]byte(tt.in), &table); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}

			grid, err := ToGrid(&table)
			if err != nil {
				t.Fatalf("ToGrid() error = %v", err)
			}
			want := [][]string{{"Medida", "Valor"}, {"100mm", "50"}, {"200mm", "75kg"}}
			for i := range want {
				if !slices.Equal(grid[i], want[i]) {
					t.Errorf("row %d = %v, want %v", i, grid[i], want[i])
				}
			}
		})
	}
}

func TestTableDataMarshalUsesCurrentShape(t *testing.T) {
	var table TableData
	legacy := `{"estrutura":{"colunas":["A"]},"dados":[[1]]}`
	if err := json.Unmarshal([]byte(legacy), &table); err != nil {
		t.Fatal(err)
	}

	out, err := json.Marshal(&table)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"columns":["A"],"rows":[[1]]}` {
		t.Errorf("Marshal() = %s", out)
	}
}
