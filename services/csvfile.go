package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"dinein-dashboard/models"
)

const utf8BOM = "\uFEFF"

// DecodeCSV reads a header-first CSV export. Short records only carry the
// columns they have; blank records are skipped.
func DecodeCSV(name string, r io.Reader) (*models.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", name, err)
	}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		header[i] = strings.TrimSpace(h)
	}

	ds := &models.Dataset{Name: name, Columns: header}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s line %d: %w", name, line, err)
		}
		if blank(rec) {
			continue
		}
		row := make(models.Row, len(header))
		for i, v := range rec {
			if i >= len(header) {
				break
			}
			row[header[i]] = v
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
