package report

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestReadTableCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCols []string
		wantRows int
		wantErr  error
	}{
		{
			name:     "header and rows",
			input:    "Medida,Valor\n100mm,50\n200mm,75\n",
			wantCols: []string{"Medida", "Valor"},
			wantRows: 2,
		},
		{
			name:     "header only",
			input:    "Medida,Valor\n",
			wantCols: []string{"Medida", "Valor"},
			wantRows: 0,
		},
		{
			name:     "byte order mark",
			input:    "\ufeffMedida,Valor\na,b\n",
			wantCols: []string{"Medida", "Valor"},
			wantRows: 1,
		},
		{
			name:    "short row",
			input:   "Medida,Valor\n100mm\n",
			wantErr: ErrMalformedTable,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: ErrEmptyCSV,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ReadTableCSV(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ReadTableCSV() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadTableCSV() error = %v", err)
			}
			if !slices.Equal(table.Columns, tt.wantCols) {
				t.Errorf("columns = %v, want %v", table.Columns, tt.wantCols)
			}
			if len(table.Rows) != tt.wantRows {
				t.Errorf("got %d rows, want %d", len(table.Rows), tt.wantRows)
			}
		})
	}
}

func TestReadTableCSVMalformedRowIndex(t *testing.T) {
	_, err := ReadTableCSV(strings.NewReader("A,B\n1,2\n3\n"))

	var mte *MalformedTableError
	if !errors.As(err, &mte) {
		t.Fatalf("expected MalformedTableError, got %v", err)
	}
	if mte.Row != 1 || mte.Got != 1 || mte.Want != 2 {
		t.Errorf("unexpected error detail: %+v", mte)
	}
}
