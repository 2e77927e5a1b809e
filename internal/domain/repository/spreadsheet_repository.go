package repository

import (
	"github.com/diillson/cdr-billing/internal/domain/entity"
)

// SheetResult is what could be read from one worksheet. Structural problems
// never fail the read; they are reported as warnings next to the records.
type SheetResult[T any] struct {
	Sheet    int
	Records  []T
	Warnings []string
}

// SpreadsheetRepository defines the interface for reading report tables out of spreadsheets.
type SpreadsheetRepository interface {
	LoadCallRecords(path string, sheet int) (*SheetResult[entity.CallRecord], error)
	LoadSeatStats(path string, sheet int) (*SheetResult[entity.SeatStats], error)
	LoadDepartmentRows(path string, candidates []int) (*SheetResult[entity.DepartmentRow], error)
}
