package export

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/diillson/cdr-billing/internal/domain/entity"
)

// ExportBillingReportToXLSX writes one worksheet per generated report.
func (r *ExportRepositoryImpl) ExportBillingReportToXLSX(report *entity.BillingReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "xlsx")
	if err != nil {
		return "", err
	}

	x := excelize.NewFile()
	defer x.Close()

	for _, t := range reportTables(report) {
		if err := writeSheet(x, t); err != nil {
			return "", err
		}
	}
	x.DeleteSheet("Sheet1")
	x.SetActiveSheet(0)

	if err := x.SaveAs(outputFilename); err != nil {
		return "", fmt.Errorf("error writing XLSX file: %w", err)
	}
	return filepath.Abs(outputFilename)
}

func writeSheet(x *excelize.File, t table) error {
	if _, err := x.NewSheet(t.sheet); err != nil {
		return fmt.Errorf("error creating sheet %q: %w", t.sheet, err)
	}
	write := func(rowNum int, cells []string) error {
		for i, v := range cells {
			cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
			if err != nil {
				return err
			}
			if err := x.SetCellStr(t.sheet, cell, v); err != nil {
				return err
			}
		}
		return nil
	}
	if err := write(1, t.header); err != nil {
		return fmt.Errorf("error writing sheet %q: %w", t.sheet, err)
	}
	for i, row := range t.rows {
		if err := write(i+2, row); err != nil {
			return fmt.Errorf("error writing sheet %q: %w", t.sheet, err)
		}
	}
	return nil
}
