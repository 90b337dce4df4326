// Package export writes modeling and inversion tables to CSV or XLSX files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/bob-anderson-ok/zoeppritz/elastic"
	"github.com/bob-anderson-ok/zoeppritz/inversion"
	"github.com/bob-anderson-ok/zoeppritz/modeling"
)

const sheet = "Sheet1"

// Table is a header row followed by numeric rows.
type Table struct {
	Headers []string
	Rows    [][]float64
}

// Samples tabulates forward modeling output.
func Samples(samples []modeling.Sample) Table {
	t := Table{Headers: []string{"angle", "amplitude", "phase"}}
	for _, row := range modeling.Table(samples) {
		t.Rows = append(t.Rows, row[:])
	}
	return t
}

// History tabulates the states visited by an exact inversion.
func History(states []inversion.State) Table {
	t := Table{Headers: []string{"iteration"}}
	for _, p := range elastic.Params {
		t.Headers = append(t.Headers, p.String())
	}
	t.Headers = append(t.Headers, "misfit")
	for _, s := range states {
		v := s.Model.Vector()
		t.Rows = append(t.Rows, []float64{float64(s.Iteration), v[0], v[1], v[2], v[3], s.Misfit})
	}
	return t
}

// Fit tabulates observed data beside one or more fitted curves sampled on
// the same angles. names labels the fitted columns.
func Fit(angles, observed []float64, names []string, fitted ...[]float64) (Table, error) {
	if len(names) != len(fitted) {
		return Table{}, fmt.Errorf("export: %d names for %d fitted curves: %w", len(names), len(fitted), elastic.ErrInvalidArgument)
	}
	if len(observed) != len(angles) {
		return Table{}, fmt.Errorf("export: %d observed values for %d angles: %w", len(observed), len(angles), elastic.ErrInvalidArgument)
	}
	for i, f := range fitted {
		if len(f) != len(angles) {
			return Table{}, fmt.Errorf("export: fitted curve %q has %d values for %d angles: %w", names[i], len(f), len(angles), elastic.ErrInvalidArgument)
		}
	}
	t := Table{Headers: append([]string{"angle", "observed"}, names...)}
	for i, a := range angles {
		row := []float64{a, observed[i]}
		for _, f := range fitted {
			row = append(row, f[i])
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func (t Table) check() error {
	for i, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return fmt.Errorf("export: row %d has %d columns, want %d: %w", i, len(row), len(t.Headers), elastic.ErrInvalidArgument)
		}
	}
	return nil
}

// Write picks the format from the file extension: ".xlsx" or ".csv".
func Write(path string, t Table) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return WriteXLSX(path, t)
	case ".csv":
		return WriteCSV(path, t)
	}
	return fmt.Errorf("export: unknown table format %q: %w", filepath.Ext(path), elastic.ErrInvalidArgument)
}

func WriteCSV(path string, t Table) (err error) {
	if err := t.check(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(t.Headers); err != nil {
		return err
	}
	record := make([]string, len(t.Headers))
	for _, row := range t.Rows {
		for i, v := range row {
			record[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func WriteXLSX(path string, t Table) error {
	if err := t.check(); err != nil {
		return err
	}
	f := excelize.NewFile()
	defer f.Close()

	// Header row
	for i, h := range t.Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	// Data rows
	for r, row := range t.Rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return f.SaveAs(path)
}
