package service

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var spreadsheetTypes = []string{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/octet-stream",
}

func InArray[T comparable](val T, array []T) bool {
	for _, v := range array {
		if val == v {
			return true
		}
	}
	return false
}

// OpenSpreadsheet checks an uploaded file is an xlsx workbook and opens it.
// The caller closes the returned file.
func OpenSpreadsheet(file *multipart.FileHeader) (multipart.File, error) {
	if file == nil {
		return nil, fmt.Errorf("file is required")
	}

	if ext := strings.ToLower(filepath.Ext(file.Filename)); ext != ".xlsx" {
		return nil, fmt.Errorf("invalid file extension %q, expected .xlsx", ext)
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "" && !InArray(contentType, spreadsheetTypes) {
		return nil, fmt.Errorf("invalid file type, expected: %v, got: %s", spreadsheetTypes, contentType)
	}

	return file.Open()
}
