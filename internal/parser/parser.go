package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Table is the raw result of parsing a CSV export: a header row plus the
// data rows in file order. Rows may have fewer or more cells than headers.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// ErrUnsupported indicates a file extension that is not a CSV export.
var ErrUnsupported = errors.New("unsupported file format")

var extensions = []string{".csv", ".txt"}

// CanParse reports whether the file name looks like a CSV export.
func CanParse(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ReadFile reads a CSV export from disk and returns its text.
func ReadFile(path string) (string, error) {
	if !CanParse(path) {
		return "", fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupported)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(data), nil
}

// ParseFile reads and parses a CSV export from disk.
func ParseFile(path string) (Table, error) {
	text, err := ReadFile(path)
	if err != nil {
		return Table{}, err
	}
	return Parse(text), nil
}
