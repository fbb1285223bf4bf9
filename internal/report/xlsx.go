package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "summary"
	resultsSheet = "results"
)

func writeXLSX(w io.Writer, report Report) error {
	f := excelize.NewFile()
	defer f.Close()

	err := f.SetSheetName("Sheet1", summarySheet)
	if err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	_, err = f.NewSheet(resultsSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	summary := [][]interface{}{
		{report.Title},
		{},
		{"Configured threshold", report.ConfiguredThreshold},
		{"Generated", report.Generated.Format(time.RFC3339)},
		{"Rows", len(report.Rows)},
	}

	for i, values := range summary {
		err = setRow(f, summarySheet, i+1, values)
		if err != nil {
			return err
		}
	}

	err = setRow(f, resultsSheet, 1, []interface{}{"ID", "Duration (ms)", "Type", "Host", "Alert"})
	if err != nil {
		return err
	}

	for i, row := range report.Rows {
		var duration interface{}
		if row.DurationMs != nil {
			duration = *row.DurationMs
		}

		err = setRow(f, resultsSheet, i+2, []interface{}{row.ID, duration, row.Type, row.Host, row.Alert})
		if err != nil {
			return err
		}
	}

	err = f.Write(w)
	if err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}

	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	if len(values) == 0 {
		return nil
	}

	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}

	err = f.SetSheetRow(sheet, cell, &values)
	if err != nil {
		return fmt.Errorf("failed to set %s!%s: %w", sheet, cell, err)
	}

	return nil
}
