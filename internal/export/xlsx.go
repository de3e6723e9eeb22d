package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/calview-cli/internal/dataset"
	"github.com/KaramelBytes/calview-cli/internal/summary"
	"github.com/KaramelBytes/calview-cli/internal/variables"
)

const (
	dataSheet    = "Data"
	summarySheet = "Summary"
)

// WriteXLSX writes a workbook with a Data sheet holding the same table
// WriteCSV emits, and a Summary sheet with the final-error ranking and the
// total-error percent change. stats may be nil to skip the Summary sheet.
func WriteXLSX(w io.Writer, ds *dataset.Dataset, vars []*variables.Variable, kind Kind, stats *summary.Stats) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), dataSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	cols := make([]string, 0, len(vars))
	header := []interface{}{dataset.IterationColumn}
	for _, v := range vars {
		col := kind.column(v)
		if col == "" {
			continue
		}
		cols = append(cols, col)
		header = append(header, fmt.Sprintf("%s_%s", v.Name, kind))
	}
	if err := f.SetSheetRow(dataSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range ds.Records {
		row := make([]interface{}, len(header))
		row[0] = r.Iteration
		for j, col := range cols {
			if v, ok := r.Fields[col]; ok {
				row[j+1] = v
			} else {
				row[j+1] = nil // blank cell, absent is not zero
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(dataSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if stats != nil {
		if _, err := f.NewSheet(summarySheet); err != nil {
			return fmt.Errorf("add summary sheet: %w", err)
		}
		head := []interface{}{"Error Column", "|Final Error|"}
		if err := f.SetSheetRow(summarySheet, "A1", &head); err != nil {
			return fmt.Errorf("write summary header: %w", err)
		}
		rowIdx := 2
		for _, re := range stats.Ranking {
			row := []interface{}{re.Column, re.Magnitude}
			cell, err := excelize.CoordinatesToCellName(1, rowIdx)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
				return fmt.Errorf("write ranking row: %w", err)
			}
			rowIdx++
		}
		change := []interface{}{"Total error change", stats.FormatPercentChange()}
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(summarySheet, cell, &change); err != nil {
			return fmt.Errorf("write percent change: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
