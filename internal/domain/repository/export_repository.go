package repository

import (
	"github.com/diillson/cdr-billing/internal/domain/entity"
)

type ExportRepository interface {
	// Voice
	ExportCDRReportToCSV(stats []*entity.CustomerStats, ratePerMinute float64, filename, outputDir string) (string, error)
	ExportCombinedCDRReportToCSV(stats []*entity.CustomerStats, ratePerMinute float64, filename, outputDir string) (string, error)
	ExportCallRatioToCSV(ratio entity.CallRatio, filename, outputDir string) (string, error)
	ExportCallerIDReportToCSV(counts []entity.NamedCount, filename, outputDir string) (string, error)

	// Inventory
	ExportPhoneCountsToCSV(counts []entity.NamedCount, filename, outputDir string) (string, error)
	ExportExcludedPhonesToCSV(entries []entity.PhoneInventoryEntry, filename, outputDir string) (string, error)

	// SMS
	ExportSMSReportToCSV(stats []*entity.SMSStats, ratePerMessage float64, filename, outputDir string) (string, error)

	// Spreadsheet-based reports
	ExportSeatReportToCSV(seats []entity.SeatStats, filename, outputDir string) (string, error)
	ExportDepartmentPivotToCSV(pivot *entity.DepartmentPivot, filename, outputDir string) (string, error)

	// Whole run
	ExportBillingReportToJSON(report *entity.BillingReport, filename, outputDir string) (string, error)
	ExportBillingReportToPDF(report *entity.BillingReport, filename, outputDir string) (string, error)
	ExportBillingReportToXLSX(report *entity.BillingReport, filename, outputDir string) (string, error)
}
