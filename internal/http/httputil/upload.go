package httputil

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
)

var ErrMissingFile = errors.New("file field is required")

// FormFile reads the multipart "file" field, capping the body at maxBytes.
// The caller closes the returned file.
func FormFile(w http.ResponseWriter, r *http.Request, maxBytes int64) (multipart.File, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, "", fmt.Errorf("failed to parse form: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", ErrMissingFile
	}

	return file, header.Filename, nil
}

// ImportResponse is the body returned by every import endpoint.
type ImportResponse[T any] struct {
	Message  string   `json:"message"`
	Count    int      `json:"imported_count"`
	Imported []T      `json:"imported_orders"`
	Warnings []string `json:"warnings,omitempty"`
}

func NewImportResponse[T any](kind string, imported []T, warnings []string) ImportResponse[T] {
	return ImportResponse[T]{
		Message:  "Successfully imported " + strconv.Itoa(len(imported)) + " " + kind,
		Count:    len(imported),
		Imported: imported,
		Warnings: warnings,
	}
}

type importFailure struct {
	Detail   string   `json:"detail"`
	Warnings []string `json:"warnings,omitempty"`
}

// WriteImportFailure answers 400 when an upload produced no records.
func WriteImportFailure(w http.ResponseWriter, detail string, warnings []string) {
	WriteJSON(w, http.StatusBadRequest, importFailure{Detail: detail, Warnings: warnings})
}
