package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "nil error returns empty",
			err:      nil,
			wantCode: "",
		},
		{
			name:     "missing column",
			err:      &MissingColumnError{File: "price.csv", Missing: []Field{FieldPrice}},
			wantCode: "PL001",
		},
		{
			name:     "row shape",
			err:      &FileError{File: "price.csv", Line: 4, Err: errors.New("row has 2 fields, header has 3")},
			wantCode: "PL002",
		},
		{
			name:     "read failure",
			err:      &FileError{File: "price.csv", Err: fmt.Errorf("read file: %w", errors.New("permission denied"))},
			wantCode: "PL010",
		},
		{
			name:     "encoding",
			err:      &FileError{File: "price.csv", Err: ErrInvalidEncoding},
			wantCode: "PL011",
		},
		{
			name:     "number",
			err:      fmt.Errorf("weight: invalid number %q", "1,5"),
			wantCode: "PL012",
		},
		{
			name:     "zero weight wrapped",
			err:      &FileError{File: "price.csv", Line: 2, Err: ErrZeroWeight},
			wantCode: "PL013",
		},
		{
			name:     "empty search",
			err:      ErrEmptyResult,
			wantCode: "PL020",
		},
		{
			name:     "empty export",
			err:      ErrEmptyExport,
			wantCode: "PL021",
		},
		{
			name:     "csv quoting",
			err:      &FileError{File: "price.csv", Err: errors.New("invalid csv: bare quote")},
			wantCode: "PL003",
		},
		{
			name:     "file too large",
			err:      &FileError{File: "price.csv", Err: errors.New("file too large: exceeds 10 bytes")},
			wantCode: "PL014",
		},
		{
			name:     "busy server",
			err:      errors.New("too many concurrent snapshot downloads"),
			wantCode: "PL040",
		},
		{
			name:     "unknown route",
			err:      errors.New("route not found"),
			wantCode: "PL041",
		},
		{
			name:     "unknown error falls back",
			err:      errors.New("something odd"),
			wantCode: "PL000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapError(tt.err).Code; got != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, got, tt.wantCode)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}

	got := FormatUserError(ErrZeroWeight)
	want := "Вес равен нулю (Код: PL013). Укажите вес больше нуля"
	if got != want {
		t.Errorf("FormatUserError() = %q, want %q", got, want)
	}

	got = FormatUserError(ErrEmptyResult)
	want = "Ничего не найдено. (Код: PL020)"
	if got != want {
		t.Errorf("FormatUserError() = %q, want %q", got, want)
	}
}

func TestIsUserFacing(t *testing.T) {
	if IsUserFacing(nil) {
		t.Error("nil should not be user facing")
	}
	if !IsUserFacing(ErrEmptyExport) {
		t.Error("ErrEmptyExport should be user facing")
	}
	if IsUserFacing(errors.New("boom")) {
		t.Error("unknown error should not be user facing")
	}
}

func TestDiagnosticFor(t *testing.T) {
	tests := []struct {
		name string
		res  FileResult
		want string
	}{
		{
			name: "success has no diagnostic",
			res:  FileResult{File: "price.csv"},
			want: "",
		},
		{
			name: "missing column",
			res:  FileResult{File: "price.csv", Err: &MissingColumnError{File: "price.csv"}},
			want: "Не удалось найти нужные столбцы в файле price.csv",
		},
		{
			name: "file level error",
			res:  FileResult{File: "price.csv", Err: &FileError{File: "price.csv", Err: ErrInvalidEncoding}},
			want: "Ошибка при обработке файла price.csv: encoding error: file is not valid UTF-8",
		},
		{
			name: "line level error",
			res:  FileResult{File: "price.csv", Err: &FileError{File: "price.csv", Line: 3, Err: ErrZeroWeight}},
			want: "Ошибка при обработке файла price.csv: строка 3: zero weight: division by zero",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DiagnosticFor(tt.res); got != tt.want {
				t.Errorf("DiagnosticFor() = %q, want %q", got, tt.want)
			}
		})
	}
}
