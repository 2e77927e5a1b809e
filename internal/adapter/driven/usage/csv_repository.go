package usage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/diillson/cdr-billing/internal/domain/entity"
	"github.com/diillson/cdr-billing/internal/domain/repository"
)

// Column names of the CSV exports.
const (
	colSource      = "Source"
	colDestination = "Destination"
	colSeconds     = "Seconds"
	colCost        = "Cost"
	colDirection   = "msgDirection"
	colPhoneNumber = "Phone Number"
	colDomain      = "Domain"
	colTreatment   = "Treatment"
	colNotes       = "Notes"
	colEnable      = "Enable"
)

const utf8BOM = "\ufeff"

// CSVRepositoryImpl implementa o UsageRepository lendo exportações CSV.
type CSVRepositoryImpl struct{}

// NewCSVRepository cria uma nova implementação do UsageRepository.
func NewCSVRepository() repository.UsageRepository {
	return &CSVRepositoryImpl{}
}

func (r *CSVRepositoryImpl) LoadCalls(path string) ([]entity.CallRecord, error) {
	var out []entity.CallRecord
	err := readFile(path, func(rd io.Reader) error {
		var err error
		out, err = ParseCalls(rd)
		return err
	})
	return out, err
}

func (r *CSVRepositoryImpl) LoadMessages(path string) ([]entity.MessageRecord, error) {
	var out []entity.MessageRecord
	err := readFile(path, func(rd io.Reader) error {
		var err error
		out, err = ParseMessages(rd)
		return err
	})
	return out, err
}

func (r *CSVRepositoryImpl) LoadInventory(path string) ([]entity.PhoneInventoryEntry, error) {
	var out []entity.PhoneInventoryEntry
	err := readFile(path, func(rd io.Reader) error {
		var err error
		out, err = ParseInventory(rd)
		return err
	})
	return out, err
}

func readFile(path string, parse func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening %s: %w", path, err)
	}
	defer f.Close()

	if err := parse(f); err != nil {
		return fmt.Errorf("error reading %s: %w", path, err)
	}
	return nil
}

// ParseCalls reads a CDR export. Every row is returned, including zero-duration
// calls; unparseable numbers become 0.
func ParseCalls(r io.Reader) ([]entity.CallRecord, error) {
	var out []entity.CallRecord
	err := eachRow(r, func(row record) {
		out = append(out, entity.CallRecord{
			Source:      row.get(colSource),
			Destination: row.get(colDestination),
			Seconds:     parseAmount(row.get(colSeconds)),
			Cost:        parseAmount(row.get(colCost)),
			Origin:      entity.OriginCSV,
		})
	})
	return out, err
}

// ParseMessages reads an SMS log export.
func ParseMessages(r io.Reader) ([]entity.MessageRecord, error) {
	var out []entity.MessageRecord
	err := eachRow(r, func(row record) {
		out = append(out, entity.MessageRecord{
			Source:      row.get(colSource),
			Destination: row.get(colDestination),
			Direction:   row.get(colDirection),
			Cost:        parseAmount(row.get(colCost)),
		})
	})
	return out, err
}

// ParseInventory reads a phone number inventory export.
func ParseInventory(r io.Reader) ([]entity.PhoneInventoryEntry, error) {
	var out []entity.PhoneInventoryEntry
	err := eachRow(r, func(row record) {
		out = append(out, entity.PhoneInventoryEntry{
			PhoneNumber: row.get(colPhoneNumber),
			Domain:      row.get(colDomain),
			Treatment:   row.get(colTreatment),
			Destination: row.get(colDestination),
			Notes:       row.getRaw(colNotes),
			Enable:      row.get(colEnable),
		})
	})
	return out, err
}

// record is one data row addressed by header name.
type record struct {
	fields []string
	index  map[string]int
}

func (r record) getRaw(name string) string {
	i, ok := r.index[name]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return r.fields[i]
}

func (r record) get(name string) string {
	return strings.TrimSpace(r.getRaw(name))
}

// eachRow streams the data rows of a header-driven CSV. Malformed rows are skipped.
func eachRow(r io.Reader, fn func(record)) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error reading CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		h = strings.TrimSpace(h)
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	for {
		fields, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				continue
			}
			return fmt.Errorf("error reading CSV row: %w", err)
		}
		if len(fields) == 1 && strings.TrimSpace(fields[0]) == "" {
			continue
		}
		fn(record{fields: fields, index: index})
	}
}

// parseAmount parses a numeric field, tolerating "$" and thousands separators.
func parseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
