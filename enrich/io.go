package enrich

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadRows loads a (url, type) CSV batch. A leading header row is skipped.
func ReadRows(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var rows []Row
	for i, record := range records {
		if len(record) == 0 || record[0] == "" {
			continue
		}
		if i == 0 && strings.EqualFold(record[0], "url") {
			continue
		}
		row := Row{URL: record[0]}
		if len(record) > 1 {
			row.Label = record[1]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Writer receives enriched chunks as they complete.
type Writer interface {
	WriteChunk(rows []EnrichedRow) error
	Close() error
}

// NewWriter picks the output format by extension: .xlsx via excelize,
// anything else as CSV.
func NewWriter(path string, withHTTPS bool) (Writer, error) {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return newXLSXWriter(path, withHTTPS), nil
	}
	return newCSVWriter(path, withHTTPS)
}

func header(withHTTPS bool) []string {
	h := []string{"url", "type", "domain_age", "domain_status"}
	if withHTTPS {
		h = append(h, "is_https")
	}
	return h
}

func record(row EnrichedRow, withHTTPS bool) []string {
	rec := []string{
		row.URL,
		row.Label,
		strconv.Itoa(row.DomainAge),
		strconv.Itoa(row.DomainStatus),
	}
	if withHTTPS {
		v := "0"
		if row.IsHTTPS != nil && *row.IsHTTPS {
			v = "1"
		}
		rec = append(rec, v)
	}
	return rec
}

type csvWriter struct {
	file      *os.File
	w         *csv.Writer
	withHTTPS bool
}

func newCSVWriter(path string, withHTTPS bool) (*csvWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	if err := w.Write(header(withHTTPS)); err != nil {
		f.Close()
		return nil, err
	}
	return &csvWriter{file: f, w: w, withHTTPS: withHTTPS}, nil
}

// WriteChunk appends and flushes, so a long run leaves usable output behind
// even if it is interrupted.
func (c *csvWriter) WriteChunk(rows []EnrichedRow) error {
	for _, row := range rows {
		if err := c.w.Write(record(row, c.withHTTPS)); err != nil {
			return err
		}
	}
	c.w.Flush()
	return c.w.Error()
}

func (c *csvWriter) Close() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		c.file.Close()
		return err
	}
	return c.file.Close()
}

type xlsxWriter struct {
	path      string
	file      *excelize.File
	sheet     string
	nextRow   int
	withHTTPS bool
}

func newXLSXWriter(path string, withHTTPS bool) *xlsxWriter {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	x := &xlsxWriter{path: path, file: f, sheet: sheet, nextRow: 1, withHTTPS: withHTTPS}
	_ = x.writeRow(header(withHTTPS))
	return x
}

func (x *xlsxWriter) writeRow(values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, x.nextRow)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := x.file.SetSheetRow(x.sheet, cell, &row); err != nil {
		return err
	}
	x.nextRow++
	return nil
}

func (x *xlsxWriter) WriteChunk(rows []EnrichedRow) error {
	for _, row := range rows {
		if err := x.writeRow(record(row, x.withHTTPS)); err != nil {
			return err
		}
	}
	return nil
}

func (x *xlsxWriter) Close() error {
	if err := x.file.SaveAs(x.path); err != nil {
		return err
	}
	return x.file.Close()
}
