package usecase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/cdr-billing/internal/domain/entity"
	"github.com/diillson/cdr-billing/internal/domain/repository"
	"github.com/diillson/cdr-billing/internal/shared/types"
)

// --- fakes ---

type fakeUsageRepo struct {
	calls     []entity.CallRecord
	msgs      []entity.MessageRecord
	inventory []entity.PhoneInventoryEntry
	loaded    []string
}

func (f *fakeUsageRepo) LoadCalls(path string) ([]entity.CallRecord, error) {
	f.loaded = append(f.loaded, path)
	return f.calls, nil
}

func (f *fakeUsageRepo) LoadMessages(path string) ([]entity.MessageRecord, error) {
	f.loaded = append(f.loaded, path)
	return f.msgs, nil
}

func (f *fakeUsageRepo) LoadInventory(path string) ([]entity.PhoneInventoryEntry, error) {
	f.loaded = append(f.loaded, path)
	return f.inventory, nil
}

type fakeSheetRepo struct {
	calls []entity.CallRecord
	seats []entity.SeatStats
	rows  []entity.DepartmentRow
}

func (f *fakeSheetRepo) LoadCallRecords(path string, sheet int) (*repository.SheetResult[entity.CallRecord], error) {
	return &repository.SheetResult[entity.CallRecord]{Sheet: sheet, Records: f.calls, Warnings: []string{"row 7: bad duration"}}, nil
}

func (f *fakeSheetRepo) LoadSeatStats(path string, sheet int) (*repository.SheetResult[entity.SeatStats], error) {
	return &repository.SheetResult[entity.SeatStats]{Sheet: sheet, Records: f.seats}, nil
}

func (f *fakeSheetRepo) LoadDepartmentRows(path string, candidates []int) (*repository.SheetResult[entity.DepartmentRow], error) {
	return &repository.SheetResult[entity.DepartmentRow]{Sheet: candidates[0], Records: f.rows}, nil
}

type fakeInputRepo struct {
	missing  map[string]bool
	resolved []string
	cleaned  bool
}

func (f *fakeInputRepo) Resolve(_ context.Context, location string) (string, error) {
	if f.missing[location] {
		return "", fmt.Errorf("%s: %w", location, fs.ErrNotExist)
	}
	f.resolved = append(f.resolved, location)
	return location, nil
}

func (f *fakeInputRepo) UseProfile(profile, region string) {}

func (f *fakeInputRepo) CallerAccount(context.Context) (string, error) { return "", nil }

func (f *fakeInputRepo) Cleanup() error {
	f.cleaned = true
	return nil
}

type fakeConfigRepo struct {
	cfg *types.Config
}

func (f *fakeConfigRepo) LoadConfigFile(string) (*types.Config, error) {
	if f.cfg == nil {
		return nil, errors.New("no such config")
	}
	return f.cfg, nil
}

// fakeExportRepo records the file names it was asked to write.
type fakeExportRepo struct {
	files  []string
	report *entity.BillingReport
}

func (f *fakeExportRepo) record(filename, ext string) (string, error) {
	f.files = append(f.files, filename+"."+ext)
	return filename + "." + ext, nil
}

func (f *fakeExportRepo) ExportCDRReportToCSV(_ []*entity.CustomerStats, _ float64, filename, _ string) (string, error) {
	return f.record(filename, "csv")
}

func (f *fakeExportRepo) ExportCombinedCDRReportToCSV(_ []*entity.CustomerStats, _ float64, filename, _ string) (string, error) {
	return f.record(filename, "csv")
}

func (f *fakeExportRepo) ExportCallRatioToCSV(_ entity.CallRatio, filename, _ string) (string, error) {
	return f.record(filename, "csv")
}

func (f *fakeExportRepo) ExportCallerIDReportToCSV(_ []entity.NamedCount, filename, _ string) (string, error) {
	return f.record(filename, "csv")
}

func (f *fakeExportRepo) ExportPhoneCountsToCSV(_ []entity.NamedCount, filename, _ string) (string, error) {
	return f.record(filename, "csv")
}

func (f *fakeExportRepo) ExportExcludedPhonesToCSV(_ []entity.PhoneInventoryEntry, filename, _ string) (string, error) {
	return f.record(filename, "csv")
}

func (f *fakeExportRepo) ExportSMSReportToCSV(_ []*entity.SMSStats, _ float64, filename, _ string) (string, error) {
	return f.record(filename, "csv")
}

func (f *fakeExportRepo) ExportSeatReportToCSV(_ []entity.SeatStats, filename, _ string) (string, error) {
	return f.record(filename, "csv")
}

func (f *fakeExportRepo) ExportDepartmentPivotToCSV(_ *entity.DepartmentPivot, filename, _ string) (string, error) {
	return f.record(filename, "csv")
}

func (f *fakeExportRepo) ExportBillingReportToJSON(report *entity.BillingReport, filename, _ string) (string, error) {
	f.report = report
	return f.record(filename, "json")
}

func (f *fakeExportRepo) ExportBillingReportToPDF(_ *entity.BillingReport, filename, _ string) (string, error) {
	return f.record(filename, "pdf")
}

func (f *fakeExportRepo) ExportBillingReportToXLSX(_ *entity.BillingReport, filename, _ string) (string, error) {
	return f.record(filename, "xlsx")
}

type recordingConsole struct {
	warnings []string
	infos    []string
	splits   []types.JurisdictionSplit
}

func (c *recordingConsole) Print(a ...interface{})                 {}
func (c *recordingConsole) Printf(format string, a ...interface{}) {}
func (c *recordingConsole) Println(a ...interface{})               {}
func (c *recordingConsole) LogInfo(format string, a ...interface{}) {
	c.infos = append(c.infos, fmt.Sprintf(format, a...))
}
func (c *recordingConsole) LogWarning(format string, a ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, a...))
}
func (c *recordingConsole) LogError(format string, a ...interface{})   {}
func (c *recordingConsole) LogSuccess(format string, a ...interface{}) {}
func (c *recordingConsole) Status(string) types.StatusHandle           { return nopHandle{} }
func (c *recordingConsole) ProgressWithTotal(int) types.ProgressHandle { return nopHandle{} }
func (c *recordingConsole) CreateTable() types.TableInterface          { return &nopTable{} }
func (c *recordingConsole) DisplayCallRatio(split types.JurisdictionSplit) {
	c.splits = append(c.splits, split)
}

type nopHandle struct{}

func (nopHandle) Update(string) {}
func (nopHandle) Increment()    {}
func (nopHandle) Stop()         {}

type nopTable struct{ rows int }

func (t *nopTable) AddColumn(string, ...interface{}) {}
func (t *nopTable) AddRow(...interface{})            { t.rows++ }
func (t *nopTable) Render() string                   { return "" }

// --- helpers ---

type fixture struct {
	usage   *fakeUsageRepo
	sheets  *fakeSheetRepo
	inputs  *fakeInputRepo
	exports *fakeExportRepo
	config  *fakeConfigRepo
	console *recordingConsole
	uc      *BillingUseCase
}

func newFixture() *fixture {
	f := &fixture{
		usage: &fakeUsageRepo{
			inventory: testInventory,
			calls: []entity.CallRecord{
				{Source: "2025550100", Destination: "3105550111", Seconds: 120, Cost: 0.02, Origin: entity.OriginCSV},
				{Source: "3105550199", Destination: "4155550000", Seconds: 60, Cost: 0.01, Origin: entity.OriginCSV},
			},
			msgs: []entity.MessageRecord{{Source: "2025550100", Destination: "3105550111", Direction: "outgoing"}},
		},
		sheets: &fakeSheetRepo{
			calls: []entity.CallRecord{{Source: "2025550100", Destination: "2025550101", Seconds: 60, Customer: "AcmeDC"}},
			seats: []entity.SeatStats{{Customer: "AcmeDC", PBXUsers: 3}},
			rows:  []entity.DepartmentRow{{Department: "Sales", UserType: "u"}},
		},
		inputs:  &fakeInputRepo{missing: map[string]bool{}},
		exports: &fakeExportRepo{},
		config:  &fakeConfigRepo{},
		console: &recordingConsole{},
	}
	f.uc = NewBillingUseCase(f.usage, f.sheets, f.inputs, f.exports, f.config, f.console)
	f.uc.now = func() time.Time { return time.Date(2025, 3, 1, 8, 30, 0, 0, time.UTC) }
	return f
}

// --- tests ---

func TestRunReportsRequiresCDRAndInventory(t *testing.T) {
	f := newFixture()

	err := f.uc.RunReports(context.Background(), &types.CLIArgs{InventoryFile: "phones.csv"})
	assert.ErrorIs(t, err, types.ErrMissingCDRFile)

	err = f.uc.RunReports(context.Background(), &types.CLIArgs{CDRFile: "cdr.csv"})
	assert.ErrorIs(t, err, types.ErrMissingInventoryFile)

	assert.Empty(t, f.usage.loaded)
	assert.Empty(t, f.exports.files)
}

func TestRunReportsMissingRequiredFileFails(t *testing.T) {
	f := newFixture()
	f.inputs.missing["cdr.csv"] = true

	err := f.uc.RunReports(context.Background(), &types.CLIArgs{CDRFile: "cdr.csv", InventoryFile: "phones.csv"})
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.True(t, f.inputs.cleaned)
}

func TestRunReportsMinimalInputs(t *testing.T) {
	f := newFixture()

	err := f.uc.RunReports(context.Background(), &types.CLIArgs{CDRFile: "cdr.csv", InventoryFile: "phones.csv"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"cdr.csv", "call_ratio.csv", "phones.csv", "phones_excl.csv", "callerid.csv",
	}, f.exports.files)
	require.Len(t, f.console.splits, 1)
	assert.InDelta(t, 66.666, f.console.splits[0].Interstate, 0.01)
	assert.True(t, f.inputs.cleaned)
}

func TestRunReportsAllInputs(t *testing.T) {
	f := newFixture()
	args := &types.CLIArgs{
		CDRFile:        "cdr.csv",
		InventoryFile:  "phones.csv",
		SMSFile:        "sms.csv",
		DomainStats:    "stats.xlsx",
		MasterWorkbook: "master.xlsx",
		ReportName:     "march",
		ReportType:     []string{"csv", "json"},
		Timestamp:      true,
	}

	require.NoError(t, f.uc.RunReports(context.Background(), args))

	for _, want := range []string{
		"march_cdr_20250301_083000.csv",
		"march_sms_20250301_083000.csv",
		"march_cdr_combined_20250301_083000.csv",
		"march_department_pivot_20250301_083000.csv",
		"march_seats_20250301_083000.csv",
		"march_billing_report_20250301_083000.json",
	} {
		assert.Contains(t, f.exports.files, want)
	}

	report := f.exports.report
	require.NotNil(t, report)
	require.NotNil(t, report.CombinedRatio)
	assert.Equal(t, 3, report.CombinedRatio.Totals.TotalCalls)
	assert.Equal(t, 1, report.SMSOverall.TotalMessages)
	assert.Equal(t, 1, report.Pivot.Billable())
	assert.Len(t, report.Seats, 1)
	assert.Len(t, f.console.splits, 2)
	assert.Contains(t, strings.Join(f.console.warnings, "\n"), "bad duration")
}

func TestRunReportsSkipsMissingOptionalInputs(t *testing.T) {
	f := newFixture()
	f.inputs.missing["sms.csv"] = true

	args := &types.CLIArgs{CDRFile: "cdr.csv", InventoryFile: "phones.csv", SMSFile: "sms.csv"}
	require.NoError(t, f.uc.RunReports(context.Background(), args))

	assert.NotContains(t, f.exports.files, "sms.csv")
	require.NotEmpty(t, f.console.warnings)
	assert.Contains(t, f.console.warnings[0], "SMS file")
}

func TestLoadConfigPrecedence(t *testing.T) {
	f := newFixture()
	f.config.cfg = &types.Config{
		CDRFile: "from-file.csv",
		Dir:     "out",
		Rates:   types.Rates{VoicePerMinute: types.Rate(0.01)},
	}

	cfg, err := f.uc.LoadConfig(&types.CLIArgs{ConfigFile: "billing.toml", CDRFile: "from-flag.csv"})
	require.NoError(t, err)

	assert.Equal(t, "from-flag.csv", cfg.CDRFile)
	assert.Equal(t, "out", cfg.Dir)
	assert.Equal(t, 0.01, cfg.Rates.Voice())
	assert.Equal(t, types.DefaultSMSRatePerMessage, cfg.Rates.SMS())
	assert.Equal(t, []int{10, 11}, cfg.Sheets.DepartmentPivot)

	f.config.cfg = nil
	_, err = f.uc.LoadConfig(&types.CLIArgs{ConfigFile: "missing.toml"})
	assert.Error(t, err)
}
