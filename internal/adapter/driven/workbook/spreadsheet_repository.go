package workbook

import (
	"fmt"
	"iter"
	"slices"

	"github.com/diillson/cdr-billing/internal/domain/entity"
	"github.com/diillson/cdr-billing/internal/domain/repository"
)

// SpreadsheetRepositoryImpl implementa o SpreadsheetRepository sobre o extrator de células.
type SpreadsheetRepositoryImpl struct{}

// NewSpreadsheetRepository cria uma nova implementação do SpreadsheetRepository.
func NewSpreadsheetRepository() repository.SpreadsheetRepository {
	return &SpreadsheetRepositoryImpl{}
}

// LoadCallRecords reads the switch CDR export from worksheet sheet.
func (r *SpreadsheetRepositoryImpl) LoadCallRecords(path string, sheet int) (*repository.SheetResult[entity.CallRecord], error) {
	return loadSheet(path, sheet, CallRecords)
}

// LoadSeatStats reads per-domain seat counts from worksheet sheet.
func (r *SpreadsheetRepositoryImpl) LoadSeatStats(path string, sheet int) (*repository.SheetResult[entity.SeatStats], error) {
	return loadSheet(path, sheet, SeatStats)
}

// LoadDepartmentRows probes candidate worksheets in order and reads the first
// one whose header carries a Department column.
func (r *SpreadsheetRepositoryImpl) LoadDepartmentRows(path string, candidates []int) (*repository.SheetResult[entity.DepartmentRow], error) {
	wb, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	result := &repository.SheetResult[entity.DepartmentRow]{}
	if err := wb.SharedStringsErr(); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("shared strings unavailable: %s", err))
	}

	for _, idx := range candidates {
		if !wb.HasSheet(idx) {
			continue
		}
		sh := wb.Sheet(idx)
		header, ok := sh.Header()
		if !ok || !IsDepartmentHeader(header) {
			continue
		}

		result.Sheet = idx
		result.Records = slices.Collect(DepartmentRows(sh.Rows()))
		if err := sh.Err(); err != nil {
			result.Warnings = append(result.Warnings, err.Error())
		}
		return result, nil
	}

	result.Warnings = append(result.Warnings, fmt.Sprintf("could not find a user export sheet among %v", candidates))
	return result, nil
}

func loadSheet[T any](path string, sheet int, mapRows func(iter.Seq[Row]) iter.Seq[T]) (*repository.SheetResult[T], error) {
	wb, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	result := &repository.SheetResult[T]{Sheet: sheet}
	if err := wb.SharedStringsErr(); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("shared strings unavailable: %s", err))
	}

	sh := wb.Sheet(sheet)
	result.Records = slices.Collect(mapRows(sh.Rows()))
	if err := sh.Err(); err != nil {
		result.Warnings = append(result.Warnings, err.Error())
	}
	return result, nil
}
