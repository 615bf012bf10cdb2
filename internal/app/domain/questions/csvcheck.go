// Package questions serves the question bank: the browsable list, per-
// question deletion and the bulk CSV intake with its validation pipeline.
package questions

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// requiredColumns is the exact header set a questions CSV must carry,
// case-insensitive and order-independent.
var requiredColumns = []string{
	"title_slug",
	"id",
	"title",
	"difficulty",
	"leetcode question link",
	"topic tags",
	"company tags",
}

const (
	errFileType = "Invalid file type. Only .csv files are allowed"
	errFileSize = "File size exceeds the 5 MiB limit"
	errNoData   = "file has no data rows"
)

// Validator checks an upload candidate before anything is sent to the
// backend. CheckName and CheckSize are cheap synchronous gates; CheckContent
// reads the file and is only run once both gates pass.
type Validator struct {
	MaxBytes int64
}

// CheckName rejects anything that is not a .csv, case-insensitively.
func (v Validator) CheckName(filename string) []string {
	if !strings.EqualFold(filepath.Ext(filename), ".csv") {
		return []string{errFileType}
	}
	return nil
}

// CheckSize rejects files above the ceiling.
func (v Validator) CheckSize(size int64) []string {
	if size > v.MaxBytes {
		return []string{errFileSize}
	}
	return nil
}

// CheckContent validates the header row against the required column set and
// requires at least one data row. Column names are trimmed and compared
// case-insensitively; order does not matter. The check keeps no state, so
// re-running it on the same content yields the same result.
func (v Validator) CheckContent(content io.Reader) []string {
	reader := csv.NewReader(content)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return []string{errNoData}
	}

	seen := make(map[string]bool, len(header))
	for _, col := range header {
		seen[strings.ToLower(strings.TrimSpace(col))] = true
	}

	var errs []string

	var missing []string
	required := make(map[string]bool, len(requiredColumns))
	for _, col := range requiredColumns {
		required[col] = true
		if !seen[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		errs = append(errs, fmt.Sprintf("missing columns: %s", strings.Join(missing, ", ")))
	}

	var extra []string
	for _, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		if !required[name] {
			extra = append(extra, name)
		}
	}
	if len(extra) > 0 {
		errs = append(errs, fmt.Sprintf("extra columns: %s", strings.Join(extra, ", ")))
	}

	if _, err := reader.Read(); err != nil {
		errs = append(errs, errNoData)
	}

	return errs
}

// Check runs the full pipeline in spec order: extension, size, then content.
// Content is not read unless the cheap gates pass.
func (v Validator) Check(filename string, size int64, content io.Reader) []string {
	errs := v.CheckName(filename)
	errs = append(errs, v.CheckSize(size)...)
	if len(errs) > 0 {
		return errs
	}
	return v.CheckContent(content)
}
