package util

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type validatedReport struct {
	OrderCode string  `validate:"required,strNotEmpty,cmax=10"`
	Title     string  `validate:"cmin=2"`
	Status    *string `validate:"omitempty,strNotEmpty"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	if err := RegisterCustomValidations(v); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestCustomValidations(t *testing.T) {
	blank := "   "
	tests := []struct {
		name   string
		in     validatedReport
		failed []string
	}{
		{"valid", validatedReport{OrderCode: "PED-001", Title: "Ok"}, nil},
		{"accented title counts runes", validatedReport{OrderCode: "ÇÇÇÇÇÇÇÇÇÇ", Title: "çã"}, nil},
		{"whitespace order code", validatedReport{OrderCode: "   ", Title: "Ok"}, []string{"strNotEmpty"}},
		{"surrounding spaces ignored", validatedReport{OrderCode: " PED-001 ", Title: " a "}, []string{"cmin"}},
		{"too long", validatedReport{OrderCode: "PED-0000001", Title: "Ok"}, []string{"cmax"}},
		{"blank pointer", validatedReport{OrderCode: "PED-1", Title: "Ok", Status: &blank}, []string{"strNotEmpty"}},
	}

	v := newValidator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)

			var ve validator.ValidationErrors
			errors.As(err, &ve)
			if len(ve) != len(tt.failed) {
				t.Fatalf("got %d failures (%v), want %v", len(ve), err, tt.failed)
			}
			for i, fe := range ve {
				if fe.Tag() != tt.failed[i] {
					t.Errorf("failure %d tag = %s, want %s", i, fe.Tag(), tt.failed[i])
				}
			}
		})
	}
}

func TestGenerateErrorMessages(t *testing.T) {
	v := newValidator(t)
	validationErr := v.Struct(validatedReport{Title: "Ok"})

	var jsonErr error
	var target struct {
		PageSize uint `json:"pageSize"`
	}
	jsonErr = json.Unmarshal([]byte(`{"pageSize":"ten"}`), &target)

	tests := []struct {
		name   string
		err    error
		params []interface{}
		want   ApiError
	}{
		{"validation renamed", validationErr, []interface{}{map[string]string{"OrderCode": "orderCode"}}, ApiError{"orderCode", "orderCode is required"}},
		{"not found", gorm.ErrRecordNotFound, []interface{}{"reportId"}, ApiError{"reportId", "Record not found"}},
		{"duplicate", gorm.ErrDuplicatedKey, nil, ApiError{"Unknown", "Record already exists"}},
		{"json type", jsonErr, nil, ApiError{"pageSize", "pageSize must be of type uint"}},
		{"plain", errors.New("boom"), []interface{}{"table"}, ApiError{"table", "boom"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateErrorMessages(tt.err, tt.params...)
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("GenerateErrorMessages() = %+v, want [%+v]", got, tt.want)
			}
		})
	}

	if got := GenerateErrorMessages(nil); len(got) != 0 {
		t.Errorf("nil error should produce no entries, got %+v", got)
	}
}
