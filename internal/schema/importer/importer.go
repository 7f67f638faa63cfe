// Package importer seeds template schemas from uploaded spreadsheets. Only
// the header row becomes fields; data rows are returned as a read-only
// preview so the operator can sanity-check the file before committing.
// Nothing here ever produces instance data.
package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sidyfoba/solarcom-console/internal/schema"
)

// Result is the outcome of parsing an uploaded workbook.
type Result struct {
	// Headers is the first row of the first sheet, in column order.
	Headers []string `json:"headers"`

	// Fields is one String-typed, non-required field definition per header.
	Fields []schema.FieldDefinition `json:"fields"`

	// Preview holds the data rows keyed by header, for display only.
	Preview []map[string]string `json:"preview"`
}

// FromXLSX parses the first sheet of an xlsx workbook. A malformed or empty
// file returns an error and no partial result, so the caller's field list
// stays untouched.
func FromXLSX(r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", sheets[0])
	}

	// Blank header cells are dropped, so each kept header remembers its
	// original column; preview cells are read from that column, not from
	// the position in the filtered list.
	headers := make([]string, 0, len(rows[0]))
	columns := make([]int, 0, len(rows[0]))
	for col, h := range rows[0] {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		headers = append(headers, h)
		columns = append(columns, col)
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("sheet %q has an empty header row", sheets[0])
	}

	preview := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		entry := make(map[string]string, len(headers))
		for i, h := range headers {
			if col := columns[i]; col < len(row) {
				entry[h] = row[col]
			} else {
				entry[h] = ""
			}
		}
		preview = append(preview, entry)
	}

	return &Result{
		Headers: headers,
		Fields:  HeadersToFields(headers),
		Preview: preview,
	}, nil
}

// HeadersToFields synthesizes one String-typed, non-required field per
// header, preserving column order.
func HeadersToFields(headers []string) []schema.FieldDefinition {
	fields := make([]schema.FieldDefinition, 0, len(headers))
	for _, h := range headers {
		fields = append(fields, schema.FieldDefinition{
			ID:   schema.NewFieldID(),
			Name: h,
			Kind: schema.KindString,
		})
	}
	return fields
}
