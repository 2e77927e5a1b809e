package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/diillson/cdr-billing/internal/domain/entity"
	"github.com/diillson/cdr-billing/internal/domain/repository"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// --- Relatórios de voz ---

func (r *ExportRepositoryImpl) ExportCDRReportToCSV(stats []*entity.CustomerStats, ratePerMinute float64, filename, outputDir string) (string, error) {
	return writeCSV(cdrTable(stats, ratePerMinute), filename, outputDir)
}

func (r *ExportRepositoryImpl) ExportCombinedCDRReportToCSV(stats []*entity.CustomerStats, ratePerMinute float64, filename, outputDir string) (string, error) {
	return writeCSV(combinedTable(stats, ratePerMinute), filename, outputDir)
}

func (r *ExportRepositoryImpl) ExportCallRatioToCSV(ratio entity.CallRatio, filename, outputDir string) (string, error) {
	return writeCSV(callRatioTable(ratio), filename, outputDir)
}

func (r *ExportRepositoryImpl) ExportCallerIDReportToCSV(counts []entity.NamedCount, filename, outputDir string) (string, error) {
	return writeCSV(callerIDTable(counts), filename, outputDir)
}

// --- Inventário ---

func (r *ExportRepositoryImpl) ExportPhoneCountsToCSV(counts []entity.NamedCount, filename, outputDir string) (string, error) {
	return writeCSV(phoneCountsTable(counts), filename, outputDir)
}

func (r *ExportRepositoryImpl) ExportExcludedPhonesToCSV(entries []entity.PhoneInventoryEntry, filename, outputDir string) (string, error) {
	return writeCSV(excludedPhonesTable(entries), filename, outputDir)
}

// --- SMS ---

func (r *ExportRepositoryImpl) ExportSMSReportToCSV(stats []*entity.SMSStats, ratePerMessage float64, filename, outputDir string) (string, error) {
	return writeCSV(smsTable(stats, ratePerMessage), filename, outputDir)
}

// --- Planilhas ---

func (r *ExportRepositoryImpl) ExportSeatReportToCSV(seats []entity.SeatStats, filename, outputDir string) (string, error) {
	return writeCSV(seatsTable(seats), filename, outputDir)
}

func (r *ExportRepositoryImpl) ExportDepartmentPivotToCSV(pivot *entity.DepartmentPivot, filename, outputDir string) (string, error) {
	return writeCSV(pivotTable(pivot), filename, outputDir)
}

// --- Relatório completo ---

func (r *ExportRepositoryImpl) ExportBillingReportToJSON(report *entity.BillingReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// reportTables lists the sections of report that were generated, in run order.
func reportTables(report *entity.BillingReport) []table {
	var tables []table
	if report.Ratio != nil {
		tables = append(tables, cdrTable(report.Customers, report.VoiceRatePerMinute), callRatioTable(*report.Ratio))
	}
	tables = append(tables, phoneCountsTable(report.BillablePhones))
	if len(report.ExcludedEntries) > 0 {
		tables = append(tables, excludedPhonesTable(report.ExcludedEntries))
	}
	if len(report.CallerIDs) > 0 {
		tables = append(tables, callerIDTable(report.CallerIDs))
	}
	if report.SMSOverall != nil {
		tables = append(tables, smsTable(report.SMS, report.SMSRatePerMessage))
	}
	if report.CombinedRatio != nil {
		tables = append(tables, combinedTable(report.Combined, report.VoiceRatePerMinute))
	}
	if report.Pivot != nil {
		tables = append(tables, pivotTable(report.Pivot))
	}
	if len(report.Seats) > 0 {
		tables = append(tables, seatsTable(report.Seats))
	}
	return tables
}

// --- Funções Auxiliares ---

func writeCSV(t table, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(t.header); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}
	if err := writer.WriteAll(t.rows); err != nil {
		return "", fmt.Errorf("error writing CSV rows: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// generateFilename garante que o diretório exista e monta o caminho do arquivo.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	return filepath.Join(dir, fmt.Sprintf("%s.%s", base, ext)), nil
}
