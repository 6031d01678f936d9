package importer

import (
	"errors"
	"fmt"
	"strings"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format: expected .xlsx or .csv")
	ErrNoHeader          = errors.New("no header row found")
)

// MissingColumnsError reports required columns absent from the header row.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("file must contain columns: %s", strings.Join(e.Columns, ", "))
}

// FormatOf picks the reader for an uploaded file by its extension.
func FormatOf(filename string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(filename))

	switch {
	case strings.HasSuffix(name, ".xlsx"):
		return FormatXLSX, nil
	case strings.HasSuffix(name, ".csv"):
		return FormatCSV, nil
	}

	return "", ErrUnsupportedFormat
}
